package sample

import (
	"fmt"
	"image"
	"strings"
	"sync/atomic"

	"github.com/milk9111/boxloop/levels"
	"github.com/milk9111/boxloop/obj"
	"github.com/milk9111/boxloop/prefabs"
	"github.com/milk9111/boxloop/render"
)

// Level is a tile level whose tileset can be replaced while the game runs.
type Level struct {
	*obj.Tilemap

	images *render.Loader
	// pending is set by the prefab watcher and applied on the next tick.
	pending atomic.Pointer[tiles]
}

type tiles struct {
	images map[rune]image.Image
	solids string
}

// LoadLevel reads the named level grid and turns it into a tilemap drawn
// with tileset. Tiles whose image is missing are drawn in their color.
func LoadLevel(name string, tileset *prefabs.TilesetSpec, images *render.Loader) (*Level, error) {
	rows, err := levels.Load(name)
	if err != nil {
		return nil, err
	}
	tm, err := buildTilemap(rows, tileset, images)
	if err != nil {
		return nil, err
	}
	return &Level{Tilemap: tm, images: images}, nil
}

// SetTileset queues a new tileset. The tile size must match the level's.
func (l *Level) SetTileset(tileset *prefabs.TilesetSpec) error {
	if tileset == nil {
		return fmt.Errorf("level: nil tileset")
	}
	if w, h := l.TileSize(); tileset.TileWidth != w || tileset.TileHeight != h {
		return fmt.Errorf("level: tile size %dx%d, want %dx%d", tileset.TileWidth, tileset.TileHeight, w, h)
	}
	ts, err := buildTiles(tileset, l.images)
	if err != nil {
		return err
	}
	l.pending.Store(ts)
	return nil
}

func (l *Level) Process(t obj.Tick) {
	if ts := l.pending.Swap(nil); ts != nil {
		l.Tilemap.SetTileset(ts.images, ts.solids)
	}
	l.Tilemap.Process(t)
}

func buildTiles(tileset *prefabs.TilesetSpec, images *render.Loader) (*tiles, error) {
	ts := &tiles{images: make(map[rune]image.Image, len(tileset.Tiles))}
	var solids strings.Builder
	for _, spec := range tileset.Tiles {
		r, err := spec.Rune()
		if err != nil {
			return nil, fmt.Errorf("level: %w", err)
		}
		placeholder := render.Placeholder(tileset.TileWidth, tileset.TileHeight, spec.Color.RGBA8())
		img := image.Image(placeholder)
		if spec.Image != "" && images != nil {
			img = images.LoadOr(spec.Image, placeholder)
		}
		ts.images[r] = img
		if spec.Solid {
			solids.WriteRune(r)
		}
	}
	ts.solids = solids.String()
	return ts, nil
}

func buildTilemap(rows []string, tileset *prefabs.TilesetSpec, images *render.Loader) (*obj.Tilemap, error) {
	if tileset == nil {
		return nil, fmt.Errorf("level: nil tileset")
	}
	ts, err := buildTiles(tileset, images)
	if err != nil {
		return nil, err
	}

	cols := 0
	if len(rows) > 0 {
		cols = len([]rune(rows[0]))
	}
	tm, err := obj.NewTilemap(obj.TilemapConfig{
		TileWidth:  tileset.TileWidth,
		TileHeight: tileset.TileHeight,
		Cols:       cols,
		Rows:       len(rows),
		Tiles:      ts.images,
		Solids:     ts.solids,
		Grid:       rows,
	})
	if err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}
	return tm, nil
}
