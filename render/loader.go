package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"io/fs"
	"path"
	"strings"
	"sync"

	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
)

// Loader decodes images from a file system and caches them by name.
type Loader struct {
	fsys fs.FS

	mu     sync.Mutex
	images map[string]image.Image
}

// NewLoader creates a loader reading from fsys. A nil fsys only serves
// images added with Register.
func NewLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys, images: make(map[string]image.Image)}
}

// Register stores an image by name, replacing any cached one.
func (l *Loader) Register(name string, img image.Image) {
	if name == "" || img == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.images[cleanImagePath(name)] = img
}

// Load returns the image stored under name, decoding it on first use.
func (l *Loader) Load(name string) (image.Image, error) {
	if name == "" {
		return nil, fmt.Errorf("empty image name")
	}
	clean := cleanImagePath(name)

	l.mu.Lock()
	defer l.mu.Unlock()
	if img, ok := l.images[clean]; ok {
		return img, nil
	}
	if l.fsys == nil {
		return nil, fmt.Errorf("load image %s: %w", name, fs.ErrNotExist)
	}

	b, err := fs.ReadFile(l.fsys, clean)
	if err != nil {
		return nil, fmt.Errorf("load image %s: %w", name, err)
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", name, err)
	}
	l.images[clean] = img
	return img, nil
}

// LoadOr returns the named image, or fallback when it cannot be loaded.
func (l *Loader) LoadOr(name string, fallback image.Image) image.Image {
	img, err := l.Load(name)
	if err != nil {
		return fallback
	}
	return img
}

// Placeholder builds a solid w x h image.
func Placeholder(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

// NamedColor looks up an SVG color name ("steelblue", "crimson", ...).
// Unknown names come back magenta so that they stand out on screen.
func NamedColor(name string) color.RGBA {
	if c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return colornames.Magenta
}

func cleanImagePath(name string) string {
	s := path.Clean(strings.ReplaceAll(name, "\\", "/"))
	s = strings.TrimPrefix(s, "/")
	return strings.TrimPrefix(s, "assets/")
}
