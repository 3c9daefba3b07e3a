package assets

import (
	"embed"
	"io/fs"
	"os"
)

//go:embed *.png
var assetsFS embed.FS

// FS returns the embedded images.
func FS() fs.FS { return assetsFS }

// Open returns dir when it is set and exists, otherwise the embedded
// images. Artists can drop replacement PNGs into dir without a rebuild.
func Open(dir string) fs.FS {
	if dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return overlay{disk: os.DirFS(dir)}
		}
	}
	return assetsFS
}

// overlay reads from disk first and falls back to the embedded copy.
type overlay struct {
	disk fs.FS
}

func (o overlay) Open(name string) (fs.File, error) {
	if f, err := o.disk.Open(name); err == nil {
		return f, nil
	}
	return assetsFS.Open(name)
}
