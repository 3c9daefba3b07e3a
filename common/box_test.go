package common

import "testing"

func TestOverlap(t *testing.T) {
	cases := []struct {
		name string
		a, b Box
		want bool
	}{
		{"touching_right_edge", Box{0, 0, 10, 10}, Box{10, 0, 10, 10}, false},
		{"touching_bottom_edge", Box{0, 0, 10, 10}, Box{0, 10, 10, 10}, false},
		{"corner_touch", Box{0, 0, 10, 10}, Box{10, 10, 10, 10}, false},
		{"partial", Box{0, 0, 10, 10}, Box{5, 5, 10, 10}, true},
		{"one_pixel", Box{0, 0, 10, 10}, Box{9, 9, 10, 10}, true},
		{"contained", Box{0, 0, 10, 10}, Box{2, 2, 3, 3}, true},
		{"identical", Box{4, 4, 6, 6}, Box{4, 4, 6, 6}, true},
		{"disjoint", Box{0, 0, 10, 10}, Box{30, 30, 5, 5}, false},
		{"negative_coords", Box{-10, -10, 15, 15}, Box{0, 0, 10, 10}, true},
		{"zero_width_inside", Box{5, 5, 0, 4}, Box{0, 0, 10, 10}, false},
		{"zero_height_inside", Box{5, 5, 4, 0}, Box{0, 0, 10, 10}, false},
		{"negative_size", Box{5, 5, -3, -3}, Box{0, 0, 10, 10}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.a.Intersects(c.b); got != c.want {
				t.Fatalf("Intersects(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
			}
			if got := c.b.Intersects(c.a); got != c.want {
				t.Fatalf("Intersects(%v, %v) = %v, want %v (symmetry)", c.b, c.a, got, c.want)
			}
		})
	}
}

func TestOverlapSymmetricSweep(t *testing.T) {
	a := Box{0, 0, 4, 3}
	for x := -6; x <= 6; x++ {
		for y := -5; y <= 5; y++ {
			for _, size := range []int{-1, 0, 1, 2, 5} {
				b := Box{x, y, size, size + 1}
				if a.Intersects(b) != b.Intersects(a) {
					t.Fatalf("asymmetric result for %v and %v", a, b)
				}
			}
		}
	}
}

func TestBoxOffset(t *testing.T) {
	b := Box{1, 2, 3, 4}.Offset(5, -2)
	if b != (Box{6, 0, 3, 4}) {
		t.Fatalf("unexpected offset box %v", b)
	}
	if b.Right() != 9 || b.Bottom() != 4 {
		t.Fatalf("unexpected edges right=%d bottom=%d", b.Right(), b.Bottom())
	}
}

func TestClampSign(t *testing.T) {
	if Clamp(15, 0, 12) != 12 || Clamp(-3, 0, 12) != 0 || Clamp(5, 0, 12) != 5 {
		t.Fatalf("clamp returned unexpected values")
	}
	if Sign(-4) != -1 || Sign(0) != 0 || Sign(9) != 1 {
		t.Fatalf("sign returned unexpected values")
	}
}
