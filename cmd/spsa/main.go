// Command spsa previews a sprite sheet animation: it slices the sheet into
// frames and plays them through the engine loop.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/milk9111/boxloop/assets"
	"github.com/milk9111/boxloop/component"
	"github.com/milk9111/boxloop/config"
	"github.com/milk9111/boxloop/host"
	"github.com/milk9111/boxloop/obj"
	"github.com/milk9111/boxloop/render"
	"github.com/milk9111/boxloop/system"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "spsa: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	sheetPath := flag.String("sheet", "player.png", "sheet file; bare names are read from the embedded assets")
	frameW := flag.Int("w", 22, "frame width")
	frameH := flag.Int("h", 24, "frame height")
	count := flag.Int("n", 0, "frames to play, 0 for the whole sheet")
	frameMS := flag.Int("ms", 150, "milliseconds per frame")
	backend := flag.String("backend", config.BackendEbiten, "ebiten or terminal")
	flag.Parse()

	frames, err := loadFrames(*sheetPath, *frameW, *frameH, *count)
	if err != nil {
		return err
	}
	durations := make([]time.Duration, len(frames))
	for i := range durations {
		durations[i] = time.Duration(*frameMS) * time.Millisecond
	}

	const size = 64
	preview := obj.NewEntity((size-*frameW)/2, (size-*frameH)/2, *frameW, *frameH)
	if len(frames) == 1 {
		preview.AddSprite("preview", frames[0])
	} else if err := preview.AddAnimation("preview", frames, durations); err != nil {
		return err
	}
	preview.SetSprite("preview")

	world := obj.NewWorld()
	world.Enqueue(preview)
	world.Flush()

	cfg := config.Default()
	cfg.Window = config.WindowConfig{Title: "spsa " + filepath.Base(*sheetPath), Width: size, Height: size, Scale: 8}
	keys := obj.NewKeyTable()

	switch *backend {
	case config.BackendTerminal:
		screen, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		if err := screen.Init(); err != nil {
			return err
		}
		defer screen.Fini()
		surface := render.NewTerminalSurface(screen, size, size)
		loop, err := system.NewLoop(world, surface, keys, system.WithTPS(cfg.TPS))
		if err != nil {
			return err
		}
		return system.RunTerminal(context.Background(), loop, surface, keys)
	default:
		surface := host.NewEbitenSurface(size, size)
		loop, err := system.NewLoop(world, surface, keys, system.WithTPS(cfg.TPS))
		if err != nil {
			return err
		}
		return host.RunEbiten(loop, surface, keys, cfg)
	}
}

func loadFrames(path string, frameW, frameH, count int) ([]image.Image, error) {
	fsys, name := assets.FS(), path
	if filepath.Base(path) != path {
		fsys, name = os.DirFS(filepath.Dir(path)), filepath.Base(path)
	}
	sheet, err := render.NewLoader(fsys).Load(name)
	if err != nil {
		return nil, err
	}
	frames := component.SheetFrames(sheet, frameW, frameH, count)
	if len(frames) == 0 {
		return nil, fmt.Errorf("%s has no %dx%d frames", path, frameW, frameH)
	}
	return frames, nil
}
