package sample

import (
	"fmt"
	"image"
	"slices"
	"sync/atomic"

	"github.com/milk9111/boxloop/component"
	"github.com/milk9111/boxloop/obj"
	"github.com/milk9111/boxloop/prefabs"
	"github.com/milk9111/boxloop/render"
)

const (
	spriteStand = "stand"
	spriteRun   = "run"
	spriteJump  = "jump"
)

// Bindings maps the player's actions to key names.
type Bindings struct {
	Left, Right, Jump []obj.Key
}

func bindingsFrom(left, right, jump []string) Bindings {
	conv := func(names []string) []obj.Key {
		keys := make([]obj.Key, len(names))
		for i, n := range names {
			keys[i] = obj.Key(n)
		}
		return keys
	}
	return Bindings{Left: conv(left), Right: conv(right), Jump: conv(jump)}
}

// Player is the sample game's hero: it runs, falls and jumps, and stops
// against anything solid in the world.
type Player struct {
	obj.Entity

	keys Bindings

	// spec is swapped by the prefab watcher and read once per tick.
	spec    atomic.Pointer[prefabs.PlayerSpec]
	applied *prefabs.PlayerSpec

	yAcc     float64
	onGround bool
}

// NewPlayer builds a player from its prefab. Frames come from the loader
// when the sheet named in the prefab is available.
func NewPlayer(spec *prefabs.PlayerSpec, images *render.Loader, keys Bindings) (*Player, error) {
	if spec == nil {
		return nil, fmt.Errorf("player: nil spec")
	}
	p := &Player{
		Entity:   *obj.NewEntity(spec.Transform.X, spec.Transform.Y, spec.Collider.Width, spec.Collider.Height),
		keys:     keys,
		onGround: true,
	}
	p.Z = spec.Transform.Z

	for _, anim := range spec.Animations {
		frames := animationFrames(anim, images, spec.Collider.Width, spec.Collider.Height)
		if len(frames) == 0 {
			return nil, fmt.Errorf("player: animation %q has no frames", anim.Name)
		}
		if len(frames) == 1 && len(anim.DurationsMS) == 0 {
			p.AddSprite(anim.Name, frames[0])
			continue
		}
		if err := p.AddAnimation(anim.Name, frames, anim.Durations()); err != nil {
			return nil, fmt.Errorf("player: animation %q: %w", anim.Name, err)
		}
	}
	p.SetSprite(spriteStand)

	p.SetSpec(spec)
	p.applied = spec
	return p, nil
}

// animationFrames cuts the animation's frames out of its sheet, or falls
// back to solid w x h placeholders in the prefab's colors.
func animationFrames(anim prefabs.AnimationSpec, images *render.Loader, w, h int) []image.Image {
	if anim.Sheet != "" && len(anim.Frames) > 0 && images != nil {
		if sheet, err := images.Load(anim.Sheet); err == nil {
			all := component.SheetFrames(sheet, anim.FrameW, anim.FrameH, slices.Max(anim.Frames)+1)
			frames := make([]image.Image, 0, len(anim.Frames))
			for _, i := range anim.Frames {
				if i < 0 || i >= len(all) {
					frames = nil
					break
				}
				frames = append(frames, all[i])
			}
			if len(frames) > 0 {
				return frames
			}
		}
	}

	frames := make([]image.Image, len(anim.Colors))
	for i, c := range anim.Colors {
		frames[i] = render.Placeholder(w, h, c.RGBA8())
	}
	return frames
}

// SetSpec swaps the tuning the player reads on its next tick. It is safe to
// call from any goroutine.
func (p *Player) SetSpec(spec *prefabs.PlayerSpec) {
	if spec != nil {
		p.spec.Store(spec)
	}
}

// OnGround reports whether the player is standing on something.
func (p *Player) OnGround() bool { return p.onGround }

func (p *Player) Process(t obj.Tick) {
	p.Entity.Process(t)

	spec := p.spec.Load()
	if spec != p.applied {
		p.Width, p.Height = spec.Collider.Width, spec.Collider.Height
		p.applied = spec
	}

	dx := 0
	if t.Keys.Any(p.keys.Left...) {
		dx -= spec.MoveSpeed
	}
	if t.Keys.Any(p.keys.Right...) {
		dx += spec.MoveSpeed
	}

	p.yAcc = min(p.yAcc+spec.Gravity, spec.MaxFall)
	dy := int(p.yAcc)
	if p.onGround && t.Keys.Any(p.keys.Jump...) {
		p.yAcc = -spec.JumpSpeed
		dy = int(p.yAcc)
	}

	if dy != 0 {
		p.moveVertical(dy)
	}
	p.moveHorizontal(dx)

	if dx < 0 {
		p.FlipX = true
	} else if dx > 0 {
		p.FlipX = false
	}
}

func (p *Player) moveVertical(dy int) {
	hit, blocked := p.World().QueryCollision(p, 0, dy)
	if !blocked {
		p.Y += dy
		p.SetSprite(spriteJump)
		p.onGround = false
		return
	}

	p.yAcc = 0
	if dy > 0 {
		if !p.onGround {
			p.SetSprite(spriteStand)
		}
		p.onGround = true
		// Fast falls stop short of the ground; snap onto it.
		p.Y = hit.Box.Y - p.Height
		return
	}
	p.Y = hit.Box.Bottom()
	p.SetSprite(spriteJump)
	p.onGround = false
}

func (p *Player) moveHorizontal(dx int) {
	if dx != 0 {
		if _, blocked := p.World().QueryCollision(p, dx, 0); !blocked {
			p.X += dx
			if p.onGround {
				p.SetSprite(spriteRun)
			}
			return
		}
	}
	if p.onGround {
		p.SetSprite(spriteStand)
	}
}
