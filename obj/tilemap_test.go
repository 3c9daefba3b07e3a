package obj

import (
	"errors"
	"image"
	"testing"

	"github.com/milk9111/boxloop/common"
	"github.com/milk9111/boxloop/render"
)

func mustTilemap(t *testing.T, cfg TilemapConfig) *Tilemap {
	t.Helper()
	tm, err := NewTilemap(cfg)
	if err != nil {
		t.Fatalf("NewTilemap: %v", err)
	}
	return tm
}

func TestNewTilemapValidation(t *testing.T) {
	cases := []struct {
		name string
		cfg  TilemapConfig
	}{
		{"too_few_rows", TilemapConfig{TileWidth: 8, TileHeight: 8, Cols: 2, Rows: 3, Grid: []string{"==", "=="}}},
		{"too_many_rows", TilemapConfig{TileWidth: 8, TileHeight: 8, Cols: 2, Rows: 1, Grid: []string{"==", "=="}}},
		{"short_row", TilemapConfig{TileWidth: 8, TileHeight: 8, Cols: 3, Rows: 2, Grid: []string{"===", "=="}}},
		{"long_row", TilemapConfig{TileWidth: 8, TileHeight: 8, Cols: 1, Rows: 1, Grid: []string{"=="}}},
		{"zero_tile", TilemapConfig{TileWidth: 0, TileHeight: 8, Cols: 1, Rows: 1, Grid: []string{"="}}},
		{"negative_size", TilemapConfig{TileWidth: 8, TileHeight: 8, Cols: -1, Rows: 0}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := NewTilemap(c.cfg); !errors.Is(err, ErrBadGrid) {
				t.Fatalf("expected ErrBadGrid, got %v", err)
			}
		})
	}
}

func TestTilemapCountsRunes(t *testing.T) {
	tm := mustTilemap(t, TilemapConfig{TileWidth: 4, TileHeight: 4, Cols: 3, Rows: 1, Grid: []string{"#é#"}})
	if r, ok := tm.TileAt(1, 0); !ok || r != 'é' {
		t.Fatalf("expected é at column 1, got %q", r)
	}
	if _, ok := tm.TileAt(3, 0); ok {
		t.Fatalf("expected out-of-range lookup to fail")
	}
}

func TestTilemapDraw(t *testing.T) {
	tube := image.NewRGBA(image.Rect(0, 0, 16, 16))
	tm := mustTilemap(t, TilemapConfig{
		TileWidth: 16, TileHeight: 16,
		X: 4, Y: 2,
		Cols: 3, Rows: 2,
		Tiles:  map[rune]image.Image{'=': tube},
		Solids: "=#",
		Grid: []string{
			" =#",
			"=  ",
		},
	})

	var rec render.Recorder
	tm.Draw(&rec)
	want := []render.DrawCall{
		{Image: tube, X: 20, Y: 2, W: 16, H: 16},
		{Image: tube, X: 4, Y: 18, W: 16, H: 16},
	}
	if len(rec.Calls) != len(want) {
		t.Fatalf("expected %d draws, got %d", len(want), len(rec.Calls))
	}
	for i := range want {
		if rec.Calls[i] != want[i] {
			t.Fatalf("draw %d: got %+v, want %+v", i, rec.Calls[i], want[i])
		}
	}
}

func TestTilemapCollisionScanOrder(t *testing.T) {
	tm := mustTilemap(t, TilemapConfig{
		TileWidth: 10, TileHeight: 10,
		Cols: 6, Rows: 2,
		Solids: "=",
		Grid: []string{
			"  =  =",
			"=     ",
		},
	})
	subject := NewEntity(20, 0, 40, 10)

	got, ok := tm.CollideAgainst(subject, 0, 0)
	if !ok {
		t.Fatalf("expected a hit")
	}
	if got.Box != (common.Box{X: 20, Y: 0, W: 10, H: 10}) {
		t.Fatalf("expected the (2,0) tile, got %+v", got.Box)
	}
	if got.Object != Object(tm) {
		t.Fatalf("collision should report the tilemap")
	}

	// Row-major: a box covering (5,0) and (0,1) reports (5,0) first.
	subject = NewEntity(0, 0, 60, 20)
	got, ok = tm.CollideAgainst(subject, 0, 0)
	if !ok || got.Box.X != 20 || got.Box.Y != 0 {
		t.Fatalf("expected first row-major tile (2,0), got %+v", got.Box)
	}
	got, ok = tm.CollideAgainst(NewEntity(0, 5, 10, 10), 0, 1)
	if !ok || got.Box != (common.Box{X: 0, Y: 10, W: 10, H: 10}) {
		t.Fatalf("expected tile (0,1), got %+v ok=%v", got.Box, ok)
	}
}

func TestTilemapSolidWithoutImage(t *testing.T) {
	tm := mustTilemap(t, TilemapConfig{
		TileWidth: 8, TileHeight: 8,
		Cols: 2, Rows: 1,
		Solids: "x",
		Grid:   []string{"xx"},
	})

	var rec render.Recorder
	tm.Draw(&rec)
	if len(rec.Calls) != 0 {
		t.Fatalf("symbols without an image must not be drawn")
	}
	if _, ok := tm.CollideAgainst(NewEntity(0, 0, 4, 4), 0, 0); !ok {
		t.Fatalf("solid symbols collide even without an image")
	}
}

func TestTilemapIncludesOrigin(t *testing.T) {
	tm := mustTilemap(t, TilemapConfig{
		TileWidth: 10, TileHeight: 10,
		X: 100, Y: 50,
		Cols: 1, Rows: 1,
		Solids: "=",
		Grid:   []string{"="},
	})
	if _, ok := tm.CollideAgainst(NewEntity(0, 0, 10, 10), 0, 0); ok {
		t.Fatalf("a box at the origin must not hit a map placed at (100,50)")
	}
	got, ok := tm.CollideAgainst(NewEntity(95, 45, 10, 10), 0, 0)
	if !ok || got.Box != (common.Box{X: 100, Y: 50, W: 10, H: 10}) {
		t.Fatalf("unexpected collision %+v ok=%v", got.Box, ok)
	}
	if tm.Box() != (common.Box{X: 100, Y: 50, W: 10, H: 10}) {
		t.Fatalf("tilemap box should cover the map in pixels, got %+v", tm.Box())
	}
}

func TestTilemapSetTileset(t *testing.T) {
	tm := mustTilemap(t, TilemapConfig{
		TileWidth: 10, TileHeight: 10,
		Cols: 2, Rows: 1,
		Tiles:  map[rune]image.Image{'=': image.NewRGBA(image.Rect(0, 0, 10, 10))},
		Solids: "=",
		Grid:   []string{"=#"},
	})
	hash := image.NewRGBA(image.Rect(0, 0, 10, 10))
	tm.SetTileset(map[rune]image.Image{'#': hash, '=': nil}, "#")

	if tm.IsSolid('=') || !tm.IsSolid('#') {
		t.Fatalf("solid symbols were not replaced")
	}
	var rec render.Recorder
	tm.Draw(&rec)
	if len(rec.Calls) != 1 || rec.Calls[0].Image != hash || rec.Calls[0].X != 10 {
		t.Fatalf("expected only the '#' tile drawn, got %+v", rec.Calls)
	}
	if got, ok := tm.CollideAgainst(NewEntity(0, 0, 20, 10), 0, 0); !ok || got.Box.X != 10 {
		t.Fatalf("expected the '#' tile to block, got %+v ok=%v", got.Box, ok)
	}
	if tm.Cols() != 2 || tm.Width != 20 {
		t.Fatalf("grid size must not change")
	}
}

func TestTilemapProcessIsNoop(t *testing.T) {
	tm := mustTilemap(t, TilemapConfig{TileWidth: 1, TileHeight: 1, Cols: 1, Rows: 1, Grid: []string{" "}})
	tm.Process(Tick{Elapsed: ms(1000)})
	if tm.X != 0 || tm.Y != 0 {
		t.Fatalf("tilemap moved during Process")
	}
}
