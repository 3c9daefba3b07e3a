package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](dir, filename string) (T, error) {
	var zero T
	data, err := Load(dir, filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type PlayerSpec struct {
	Name       string          `yaml:"name"`
	MoveSpeed  int             `yaml:"move_speed"`
	JumpSpeed  float64         `yaml:"jump_speed"`
	Gravity    float64         `yaml:"gravity"`
	MaxFall    float64         `yaml:"max_fall"`
	Transform  TransformSpec   `yaml:"transform"`
	Collider   ColliderSpec    `yaml:"collider"`
	Animations []AnimationSpec `yaml:"animations"`
}

func LoadPlayerSpec(dir string) (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec](dir, "player.yaml")
	if err != nil {
		return nil, err
	}
	if spec.Collider.Width <= 0 || spec.Collider.Height <= 0 {
		return nil, fmt.Errorf("prefabs: player.yaml: collider %dx%d must be positive", spec.Collider.Width, spec.Collider.Height)
	}
	return &spec, nil
}

// TilesetSpec describes the tiles a level grid is drawn with.
type TilesetSpec struct {
	TileWidth  int        `yaml:"tile_width"`
	TileHeight int        `yaml:"tile_height"`
	Tiles      []TileSpec `yaml:"tiles"`
}

type TileSpec struct {
	Char  string    `yaml:"char"`
	Name  string    `yaml:"name"`
	Image string    `yaml:"image"` // optional, replaces Color when it loads
	Color YAMLColor `yaml:"color"`
	Solid bool      `yaml:"solid"`
}

// Rune returns the grid character the tile is placed with.
func (t TileSpec) Rune() (rune, error) {
	r := []rune(t.Char)
	if len(r) != 1 {
		return 0, fmt.Errorf("tile %q: char %q must be a single character", t.Name, t.Char)
	}
	return r[0], nil
}

func LoadTilesetSpec(dir string) (*TilesetSpec, error) {
	spec, err := LoadSpec[TilesetSpec](dir, "tiles.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type TransformSpec struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	Z int `yaml:"z"`
}

type ColliderSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// AnimationSpec is one named sprite. Frames come from a sheet image when it
// loads, otherwise from solid placeholder colors.
type AnimationSpec struct {
	Name        string      `yaml:"name"`
	Sheet       string      `yaml:"sheet"`
	FrameW      int         `yaml:"frame_w"`
	FrameH      int         `yaml:"frame_h"`
	Frames      []int       `yaml:"frames"`
	Colors      []YAMLColor `yaml:"colors"`
	DurationsMS []int       `yaml:"durations_ms"`
}

// FrameCount is the number of frames the animation plays.
func (a AnimationSpec) FrameCount() int {
	if a.Sheet != "" && len(a.Frames) > 0 {
		return len(a.Frames)
	}
	return len(a.Colors)
}

// Durations converts DurationsMS.
func (a AnimationSpec) Durations() []time.Duration {
	out := make([]time.Duration, len(a.DurationsMS))
	for i, ms := range a.DurationsMS {
		out[i] = time.Duration(ms) * time.Millisecond
	}
	return out
}

// YAMLColor accepts "#rrggbb", "#rrggbbaa" or an SVG color name.
type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	if named, ok := colornames.Map[strings.ToLower(value.Value)]; ok {
		c.Color = named
		return nil
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// RGBA8 returns the color as color.RGBA, magenta when unset.
func (c YAMLColor) RGBA8() color.RGBA {
	if c.Color == nil {
		return colornames.Magenta
	}
	return color.RGBAModel.Convert(c.Color).(color.RGBA)
}
