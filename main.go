package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/milk9111/boxloop/config"
	"github.com/milk9111/boxloop/host"
	"github.com/milk9111/boxloop/render"
	"github.com/milk9111/boxloop/sample"
	"github.com/milk9111/boxloop/system"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "boxloop: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "config file (.toml, .yaml or .yml)")
	backend := flag.String("backend", "", "ebiten, terminal or headless (overrides the config)")
	ticks := flag.Uint64("ticks", 250, "ticks to run with the headless backend")
	debug := flag.Bool("debug", false, "enable debug logging")
	levelName := flag.String("level", "sample", "level name in levels/ (basename, .txt optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *debug {
		cfg.Logging.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	game, err := sample.NewGame(cfg, *levelName, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.PrefabsDir != "" {
		if err := game.WatchPrefabs(ctx, cfg.PrefabsDir); err != nil {
			log.Warn("prefab hot reload disabled", zap.String("dir", cfg.PrefabsDir), zap.Error(err))
		}
	}

	opts := []system.LoopOption{system.WithTPS(cfg.TPS), system.WithLogger(log)}
	w, h := cfg.Window.Width, cfg.Window.Height

	switch cfg.Backend {
	case config.BackendEbiten:
		surface := host.NewEbitenSurface(w, h)
		loop, err := system.NewLoop(game.World, surface, game.Keys, opts...)
		if err != nil {
			return err
		}
		return host.RunEbiten(loop, surface, game.Keys, cfg)

	case config.BackendTerminal:
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("create screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("init screen: %w", err)
		}
		defer screen.Fini()
		surface := render.NewTerminalSurface(screen, w, h)
		loop, err := system.NewLoop(game.World, surface, game.Keys, opts...)
		if err != nil {
			return err
		}
		return system.RunTerminal(ctx, loop, surface, game.Keys)

	default:
		surface := render.NewBuffer(w, h)
		loop, err := system.NewLoop(game.World, surface, game.Keys, opts...)
		if err != nil {
			return err
		}
		if err := system.RunHeadless(ctx, loop, *ticks); err != nil {
			return err
		}
		log.Info("headless run finished",
			zap.Uint64("ticks", loop.Ticks()),
			zap.Uint64("overruns", loop.Overruns()),
			zap.Int("player_x", game.Player.X),
			zap.Int("player_y", game.Player.Y),
			zap.Bool("on_ground", game.Player.OnGround()),
		)
		return nil
	}
}

// newLogger builds the configured logger. The terminal backend owns the
// screen, so without a log file it logs nothing.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Backend == config.BackendTerminal && cfg.Logging.File == "" {
		return zap.NewNop(), nil
	}
	return config.NewLogger(cfg.Logging)
}
