package sample

import (
	"image/color"
	"testing"
	"time"

	"github.com/milk9111/boxloop/assets"
	"github.com/milk9111/boxloop/obj"
	"github.com/milk9111/boxloop/prefabs"
	"github.com/milk9111/boxloop/render"
)

var testKeys = Bindings{
	Left:  []obj.Key{obj.KeyLeft},
	Right: []obj.Key{obj.KeyRight},
	Jump:  []obj.Key{"D"},
}

func solid(c color.Color) prefabs.YAMLColor { return prefabs.YAMLColor{Color: c} }

func testSpec(x, y int) *prefabs.PlayerSpec {
	return &prefabs.PlayerSpec{
		MoveSpeed: 2,
		JumpSpeed: 12,
		Gravity:   1.2,
		MaxFall:   12,
		Transform: prefabs.TransformSpec{X: x, Y: y, Z: 1},
		Collider:  prefabs.ColliderSpec{Width: 10, Height: 10},
		Animations: []prefabs.AnimationSpec{
			{Name: spriteStand, Colors: []prefabs.YAMLColor{solid(color.White)}},
			{Name: spriteJump, Colors: []prefabs.YAMLColor{solid(color.Black)}},
			{
				Name:        spriteRun,
				Colors:      []prefabs.YAMLColor{solid(color.White), solid(color.Black)},
				DurationsMS: []int{150, 150},
			},
		},
	}
}

var testTileset = &prefabs.TilesetSpec{
	TileWidth:  10,
	TileHeight: 10,
	Tiles: []prefabs.TileSpec{
		{Char: "=", Name: "tube", Color: solid(color.White), Solid: true},
		{Char: ".", Name: "grass", Color: solid(color.Black)},
	},
}

// scene runs a player in a tile level one tick at a time.
type scene struct {
	t      *testing.T
	world  *obj.World
	player *Player
	now    time.Time
}

func newScene(t *testing.T, rows []string, x, y int) *scene {
	t.Helper()
	level, err := buildTilemap(rows, testTileset, nil)
	if err != nil {
		t.Fatalf("buildTilemap: %v", err)
	}
	player, err := NewPlayer(testSpec(x, y), nil, testKeys)
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	world := obj.NewWorld()
	world.Enqueue(level)
	world.Enqueue(player)
	world.Flush()
	return &scene{t: t, world: world, player: player, now: time.Unix(0, 0)}
}

func (s *scene) tick(keys ...obj.Key) {
	s.world.Update(s.now, obj.NewKeyState(keys...))
	s.world.Flush()
	s.now = s.now.Add(40 * time.Millisecond)
}

func (s *scene) settle() {
	s.t.Helper()
	for i := 0; i < 100; i++ {
		s.tick()
		if s.player.OnGround() {
			return
		}
	}
	s.t.Fatalf("player never landed, at (%d, %d)", s.player.X, s.player.Y)
}

func (s *scene) sprite() string {
	name, _ := s.player.CurrentSprite()
	return name
}

func TestPlayerLandsOnFloor(t *testing.T) {
	s := newScene(t, []string{
		"    ",
		"    ",
		"    ",
		"====",
	}, 0, 0)

	s.tick()
	if s.player.OnGround() || s.sprite() != spriteJump || s.player.Y != 1 {
		t.Fatalf("expected a fall, got y=%d ground=%v sprite=%s", s.player.Y, s.player.OnGround(), s.sprite())
	}

	s.settle()
	if s.player.Y != 20 {
		t.Fatalf("expected the player to rest on the floor at y=20, got %d", s.player.Y)
	}
	if s.sprite() != spriteStand {
		t.Fatalf("expected stand after landing, got %s", s.sprite())
	}
}

func TestPlayerSnapsOntoTile(t *testing.T) {
	// Falling 5px from y=-3 overlaps the tile at y=10; the player snaps to y=0.
	s := newScene(t, []string{" ", "="}, 0, -3)
	s.player.yAcc = 3.9
	s.tick()
	if s.player.Y != 0 || !s.player.OnGround() {
		t.Fatalf("got y=%d ground=%v", s.player.Y, s.player.OnGround())
	}
}

func TestPlayerRuns(t *testing.T) {
	s := newScene(t, []string{
		"     ",
		"     ",
		"=====",
	}, 10, 0)
	s.settle()

	s.tick(obj.KeyRight)
	if s.player.X != 12 || s.sprite() != spriteRun || s.player.FlipX {
		t.Fatalf("right: x=%d sprite=%s flip=%v", s.player.X, s.sprite(), s.player.FlipX)
	}

	s.tick(obj.KeyLeft)
	if s.player.X != 10 || !s.player.FlipX {
		t.Fatalf("left: x=%d flip=%v", s.player.X, s.player.FlipX)
	}

	s.tick()
	if s.sprite() != spriteStand || !s.player.FlipX {
		t.Fatalf("idle: sprite=%s flip=%v", s.sprite(), s.player.FlipX)
	}

	s.tick(obj.KeyLeft, obj.KeyRight)
	if s.player.X != 10 || s.sprite() != spriteStand {
		t.Fatalf("opposite keys should cancel: x=%d sprite=%s", s.player.X, s.sprite())
	}
}

func TestPlayerBlockedByWall(t *testing.T) {
	s := newScene(t, []string{
		"   =",
		"   =",
		"   =",
		"====",
	}, 20, 0)
	s.settle()

	s.tick(obj.KeyRight)
	if s.player.X != 20 {
		t.Fatalf("wall should block the move, x=%d", s.player.X)
	}
	if s.sprite() != spriteStand || s.player.FlipX {
		t.Fatalf("blocked player should stand facing right: sprite=%s flip=%v", s.sprite(), s.player.FlipX)
	}
}

func TestPlayerJumps(t *testing.T) {
	s := newScene(t, []string{
		"  ",
		"  ",
		"  ",
		"==",
	}, 0, 20)
	s.tick()
	if !s.player.OnGround() || s.player.Y != 20 {
		t.Fatalf("expected to start on the floor, y=%d", s.player.Y)
	}

	s.tick("D")
	if s.player.Y != 8 || s.player.OnGround() || s.sprite() != spriteJump {
		t.Fatalf("jump: y=%d ground=%v sprite=%s", s.player.Y, s.player.OnGround(), s.sprite())
	}

	// Holding jump in mid-air does not jump again.
	s.tick("D")
	if s.player.Y != -2 || s.player.yAcc <= -12 {
		t.Fatalf("mid-air: y=%d yAcc=%v", s.player.Y, s.player.yAcc)
	}
}

func TestPlayerHitsCeiling(t *testing.T) {
	s := newScene(t, []string{
		"==",
		"  ",
		"  ",
		"==",
	}, 0, 20)
	s.tick()

	s.tick("D")
	if s.player.Y != 10 {
		t.Fatalf("expected to stop under the ceiling at y=10, got %d", s.player.Y)
	}
	if s.player.OnGround() || s.sprite() != spriteJump || s.player.yAcc != 0 {
		t.Fatalf("ceiling hit: ground=%v sprite=%s yAcc=%v", s.player.OnGround(), s.sprite(), s.player.yAcc)
	}
}

func TestPlayerSetSpec(t *testing.T) {
	s := newScene(t, []string{"  ", "  ", "  ", "=="}, 0, 20)
	s.tick()

	faster := testSpec(0, 0)
	faster.MoveSpeed = 5
	faster.Collider = prefabs.ColliderSpec{Width: 6, Height: 10}
	s.player.SetSpec(faster)
	s.player.SetSpec(nil)

	s.tick(obj.KeyRight)
	if s.player.Width != 6 || s.player.X != 5 {
		t.Fatalf("new spec not applied: width=%d x=%d", s.player.Width, s.player.X)
	}
}

func TestNewPlayerFrames(t *testing.T) {
	spec := testSpec(0, 0)
	spec.Collider = prefabs.ColliderSpec{Width: 22, Height: 24}
	spec.Animations = []prefabs.AnimationSpec{
		{Name: spriteStand, Sheet: "player.png", FrameW: 22, FrameH: 24, Frames: []int{0}, Colors: []prefabs.YAMLColor{solid(color.White)}},
		{Name: spriteRun, Sheet: "player.png", FrameW: 22, FrameH: 24, Frames: []int{1, 2, 3, 2}, DurationsMS: []int{150, 150, 150, 150}},
		{Name: spriteJump, Sheet: "missing.png", FrameW: 22, FrameH: 24, Frames: []int{4}, Colors: []prefabs.YAMLColor{solid(color.Black)}},
	}

	p, err := NewPlayer(spec, render.NewLoader(assets.FS()), testKeys)
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}

	run, ok := p.Sprite(spriteRun)
	if !ok || run.Len() != 4 {
		t.Fatalf("run should have 4 frames from the sheet")
	}
	if b := run.Frame().Bounds(); b.Dx() != 22 || b.Dy() != 24 || b.Min.X != 22 {
		t.Fatalf("unexpected first run frame %v", b)
	}

	jump, ok := p.Sprite(spriteJump)
	if !ok || jump.Len() != 1 {
		t.Fatalf("jump should fall back to one placeholder frame")
	}
	if got := jump.Frame().At(0, 0); got != color.RGBAModel.Convert(color.Black) {
		t.Fatalf("placeholder color %v", got)
	}

	if name, cur := p.CurrentSprite(); name != spriteStand || cur == nil {
		t.Fatalf("new players start standing")
	}
}

func TestNewPlayerErrors(t *testing.T) {
	if _, err := NewPlayer(nil, nil, testKeys); err == nil {
		t.Fatalf("expected an error for a nil spec")
	}

	spec := testSpec(0, 0)
	spec.Animations = append(spec.Animations, prefabs.AnimationSpec{Name: "empty"})
	if _, err := NewPlayer(spec, nil, testKeys); err == nil {
		t.Fatalf("expected an error for an animation without frames")
	}

	spec = testSpec(0, 0)
	spec.Animations[2].DurationsMS = []int{150}
	if _, err := NewPlayer(spec, nil, testKeys); err == nil {
		t.Fatalf("expected an error for mismatched durations")
	}
}
