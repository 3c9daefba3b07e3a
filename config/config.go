package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for config files that are neither TOML
// nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Backends a game can run on.
const (
	BackendEbiten   = "ebiten"
	BackendTerminal = "terminal"
	BackendHeadless = "headless"
)

type Config struct {
	Window     WindowConfig  `toml:"window" yaml:"window"`
	TPS        int           `toml:"tps" yaml:"tps"`
	Backend    string        `toml:"backend" yaml:"backend"`
	AssetsDir  string        `toml:"assets_dir" yaml:"assets_dir"`   // optional PNG overrides
	PrefabsDir string        `toml:"prefabs_dir" yaml:"prefabs_dir"` // optional prefab overrides, watched for changes
	Logging    LoggingConfig `toml:"logging" yaml:"logging"`
	Keys       KeysConfig    `toml:"keys" yaml:"keys"`
}

type WindowConfig struct {
	Title  string `toml:"title" yaml:"title"`
	Width  int    `toml:"width" yaml:"width"`   // logical pixels
	Height int    `toml:"height" yaml:"height"` // logical pixels
	Scale  int    `toml:"scale" yaml:"scale"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`   // debug, info, warn, error
	Format string `toml:"format" yaml:"format"` // json or console
	File   string `toml:"file" yaml:"file"`     // empty means stderr
}

// KeysConfig binds game actions to key names as ebiten spells them.
type KeysConfig struct {
	Left  []string `toml:"left" yaml:"left"`
	Right []string `toml:"right" yaml:"right"`
	Jump  []string `toml:"jump" yaml:"jump"`
}

// Load reads the config at path over the defaults. The decoder is chosen by
// extension. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("config %s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Default returns the settings of the sample game: a 256x240 screen shown
// at twice its size, 25 ticks per second.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "boxloop",
			Width:  256,
			Height: 240,
			Scale:  2,
		},
		TPS:     25,
		Backend: BackendEbiten,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Keys: KeysConfig{
			Left:  []string{"ArrowLeft"},
			Right: []string{"ArrowRight"},
			Jump:  []string{"D", "Space"},
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Window.Scale <= 0:
		return fmt.Errorf("window scale %d must be positive", c.Window.Scale)
	case c.TPS < 1 || c.TPS > 1000:
		return fmt.Errorf("tps %d out of range 1..1000", c.TPS)
	}
	switch c.Backend {
	case BackendEbiten, BackendTerminal, BackendHeadless:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	return nil
}

// NewLogger builds a zap logger: JSON for production, colored console
// output otherwise. Unknown levels fall back to info.
func NewLogger(cfg LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}

	return zapCfg.Build()
}
