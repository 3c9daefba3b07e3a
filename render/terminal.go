package render

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// halfBlock paints the top half of a cell in the foreground color, so each
// terminal cell shows two vertically stacked pixels.
const halfBlock = '▀'

// Cell is one terminal cell: the pixel shown in its upper and lower half.
type Cell struct {
	X, Y        int
	Top, Bottom color.RGBA
}

// Cells samples img onto a cols x rows grid of half-block cells, row-major.
func Cells(img image.Image, cols, rows int) []Cell {
	if img == nil || cols <= 0 || rows <= 0 {
		return nil
	}
	b := img.Bounds()
	if b.Empty() {
		return nil
	}

	sample := func(cx, py int) color.RGBA {
		x := b.Min.X + cx*b.Dx()/cols
		y := b.Min.Y + py*b.Dy()/(rows*2)
		return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
	}

	cells := make([]Cell, 0, cols*rows)
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			cells = append(cells, Cell{
				X:      cx,
				Y:      cy,
				Top:    sample(cx, cy*2),
				Bottom: sample(cx, cy*2+1),
			})
		}
	}
	return cells
}

// TerminalSurface rasterizes into a software Buffer and presents it on a
// tcell screen, scaled to the screen size.
type TerminalSurface struct {
	*Buffer
	screen tcell.Screen
}

// NewTerminalSurface creates a surface with a w x h frame buffer.
func NewTerminalSurface(screen tcell.Screen, w, h int) *TerminalSurface {
	return &TerminalSurface{Buffer: NewBuffer(w, h), screen: screen}
}

// Screen returns the screen the surface presents to.
func (t *TerminalSurface) Screen() tcell.Screen { return t.screen }

func (t *TerminalSurface) Present() error {
	cols, rows := t.screen.Size()
	for _, c := range Cells(t.Buffer.Image(), cols, rows) {
		style := tcell.StyleDefault.
			Foreground(tcellColor(c.Top)).
			Background(tcellColor(c.Bottom))
		t.screen.SetContent(c.X, c.Y, halfBlock, nil, style)
	}
	t.screen.Show()
	return nil
}

func tcellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
