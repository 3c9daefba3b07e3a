package obj

import (
	"errors"
	"fmt"
	"image"
	"unicode/utf8"

	"github.com/milk9111/boxloop/common"
	"github.com/milk9111/boxloop/render"
)

// ErrBadGrid is returned when a tile grid does not match its declared size.
var ErrBadGrid = errors.New("malformed tile grid")

// TilemapConfig describes a tilemap. Grid holds one string per row, one
// symbol per column.
type TilemapConfig struct {
	TileWidth  int
	TileHeight int
	// X and Y place the map's top-left corner in pixels.
	X, Y int
	// Cols and Rows are the map size in tiles.
	Cols int
	Rows int

	Tiles  map[rune]image.Image
	Solids string
	Grid   []string
}

// Tilemap is a grid of symbols drawn with a tileset. Only cells whose symbol
// is solid take part in collision.
type Tilemap struct {
	Entity

	tileW, tileH int
	cols, rows   int
	grid         [][]rune
	tiles        map[rune]image.Image
	solid        map[rune]struct{}
}

// NewTilemap validates cfg and builds the map.
func NewTilemap(cfg TilemapConfig) (*Tilemap, error) {
	if cfg.TileWidth <= 0 || cfg.TileHeight <= 0 {
		return nil, fmt.Errorf("%w: tile size %dx%d", ErrBadGrid, cfg.TileWidth, cfg.TileHeight)
	}
	if cfg.Cols < 0 || cfg.Rows < 0 {
		return nil, fmt.Errorf("%w: map size %dx%d", ErrBadGrid, cfg.Cols, cfg.Rows)
	}
	if len(cfg.Grid) != cfg.Rows {
		return nil, fmt.Errorf("%w: %d rows, want %d", ErrBadGrid, len(cfg.Grid), cfg.Rows)
	}

	grid := make([][]rune, cfg.Rows)
	for row, line := range cfg.Grid {
		if n := utf8.RuneCountInString(line); n != cfg.Cols {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrBadGrid, row, n, cfg.Cols)
		}
		grid[row] = []rune(line)
	}

	t := &Tilemap{
		Entity: Entity{
			X:      cfg.X,
			Y:      cfg.Y,
			Width:  cfg.Cols * cfg.TileWidth,
			Height: cfg.Rows * cfg.TileHeight,
		},
		tileW: cfg.TileWidth,
		tileH: cfg.TileHeight,
		cols:  cfg.Cols,
		rows:  cfg.Rows,
		grid:  grid,
	}
	t.SetTileset(cfg.Tiles, cfg.Solids)
	return t, nil
}

// SetTileset replaces the symbol images and the solid symbols. The grid and
// tile size stay as they are.
func (t *Tilemap) SetTileset(tiles map[rune]image.Image, solids string) {
	t.tiles = make(map[rune]image.Image, len(tiles))
	for r, img := range tiles {
		if img != nil {
			t.tiles[r] = img
		}
	}
	t.solid = make(map[rune]struct{})
	for _, r := range solids {
		t.solid[r] = struct{}{}
	}
}

// Cols returns the map width in tiles.
func (t *Tilemap) Cols() int { return t.cols }

// Rows returns the map height in tiles.
func (t *Tilemap) Rows() int { return t.rows }

// TileSize returns the tile size in pixels.
func (t *Tilemap) TileSize() (int, int) { return t.tileW, t.tileH }

// TileAt returns the symbol at (col, row).
func (t *Tilemap) TileAt(col, row int) (rune, bool) {
	if col < 0 || row < 0 || col >= t.cols || row >= t.rows {
		return 0, false
	}
	return t.grid[row][col], true
}

// IsSolid reports whether symbol r takes part in collision.
func (t *Tilemap) IsSolid(r rune) bool {
	_, ok := t.solid[r]
	return ok
}

// TileBox returns the pixel box of the cell at (col, row).
func (t *Tilemap) TileBox(col, row int) common.Box {
	return common.Box{
		X: t.X + col*t.tileW,
		Y: t.Y + row*t.tileH,
		W: t.tileW,
		H: t.tileH,
	}
}

// Process does nothing; tilemaps are static.
func (t *Tilemap) Process(Tick) {}

// Draw paints every cell that has an image for its symbol.
func (t *Tilemap) Draw(c render.Canvas) {
	if c == nil {
		return
	}
	for row := 0; row < t.rows; row++ {
		for col := 0; col < t.cols; col++ {
			img, ok := t.tiles[t.grid[row][col]]
			if !ok {
				continue
			}
			box := t.TileBox(col, row)
			c.DrawFrame(img, box.X, box.Y, box.W, box.H)
		}
	}
}

// CollideAgainst returns the first solid tile, scanning row by row, that
// other would hit after moving by (dx, dy).
func (t *Tilemap) CollideAgainst(other Object, dx, dy int) (Collision, bool) {
	target, ok := boxOf(other)
	if !ok {
		return Collision{}, false
	}
	target = target.Offset(dx, dy)
	for row := 0; row < t.rows; row++ {
		for col := 0; col < t.cols; col++ {
			if !t.IsSolid(t.grid[row][col]) {
				continue
			}
			box := t.TileBox(col, row)
			if box.Intersects(target) {
				return Collision{Box: box, Object: t.object()}, true
			}
		}
	}
	return Collision{}, false
}

// object is the world object that owns this map: whatever embedded it and was
// enqueued, or the map itself before it joins a world.
func (t *Tilemap) object() Object {
	if t.self != nil {
		return t.self
	}
	return t
}
