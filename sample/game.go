// Package sample is a small platformer built on the engine: a player that
// runs and jumps across a tile level.
package sample

import (
	"context"

	"go.uber.org/zap"

	"github.com/milk9111/boxloop/assets"
	"github.com/milk9111/boxloop/config"
	"github.com/milk9111/boxloop/obj"
	"github.com/milk9111/boxloop/prefabs"
	"github.com/milk9111/boxloop/render"
)

// Game is the platformer: one level and a player, ready to be
// handed to a loop.
type Game struct {
	World  *obj.World
	Keys   *obj.KeyTable
	Player *Player
	Level  *Level

	log *zap.Logger
}

// NewGame builds the named level and the player. Prefabs are read from
// cfg.PrefabsDir when set, falling back to the embedded copies.
func NewGame(cfg *config.Config, levelName string, log *zap.Logger) (*Game, error) {
	images := render.NewLoader(assets.Open(cfg.AssetsDir))

	tileset, err := prefabs.LoadTilesetSpec(cfg.PrefabsDir)
	if err != nil {
		return nil, err
	}
	level, err := LoadLevel(levelName, tileset, images)
	if err != nil {
		return nil, err
	}

	spec, err := prefabs.LoadPlayerSpec(cfg.PrefabsDir)
	if err != nil {
		return nil, err
	}
	player, err := NewPlayer(spec, images, bindingsFrom(cfg.Keys.Left, cfg.Keys.Right, cfg.Keys.Jump))
	if err != nil {
		return nil, err
	}

	world := obj.NewWorld(obj.WithLogger(log))
	world.Enqueue(level)
	world.Enqueue(player)
	world.Flush()

	cols, rows := level.Cols(), level.Rows()
	log.Info("game ready",
		zap.String("level", levelName),
		zap.Int("cols", cols),
		zap.Int("rows", rows),
		zap.Int("player_x", player.X),
		zap.Int("player_y", player.Y),
	)

	return &Game{
		World:  world,
		Keys:   obj.NewKeyTable(),
		Player: player,
		Level:  level,
		log:    log,
	}, nil
}

// WatchPrefabs reloads the player's tuning when player.yaml changes in dir,
// and the level's tiles when tiles.yaml does, until ctx is done. A broken
// file keeps what was loaded before.
func (g *Game) WatchPrefabs(ctx context.Context, dir string) error {
	w, err := prefabs.NewWatcher(dir)
	if err != nil {
		return err
	}
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case name, ok := <-w.Events:
				if !ok {
					return
				}
				g.reload(dir, name)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				g.log.Warn("prefab watcher error", zap.Error(err))
			}
		}
	}()
	return nil
}

func (g *Game) reload(dir, name string) {
	var err error
	switch name {
	case "player.yaml":
		var spec *prefabs.PlayerSpec
		if spec, err = prefabs.LoadPlayerSpec(dir); err == nil {
			g.Player.SetSpec(spec)
		}
	case "tiles.yaml":
		var tileset *prefabs.TilesetSpec
		if tileset, err = prefabs.LoadTilesetSpec(dir); err == nil {
			err = g.Level.SetTileset(tileset)
		}
	default:
		return
	}
	if err != nil {
		g.log.Warn("prefab reload failed", zap.String("file", name), zap.Error(err))
		return
	}
	g.log.Info("prefab reloaded", zap.String("file", name))
}
