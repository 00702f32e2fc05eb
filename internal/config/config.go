package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Game     GameConfig     `toml:"game"`
	Tracking TrackingConfig `toml:"tracking"`
	Logging  LoggingConfig  `toml:"logging"`
}

type ServerConfig struct {
	BindAddress string `toml:"bind_address"`
}

type DatabaseConfig struct {
	DSN             string        `toml:"dsn"` // empty = in-memory saves only
	MaxOpenConns    int           `toml:"max_open_conns"`
	MaxIdleConns    int           `toml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `toml:"conn_max_lifetime"`
}

type GameConfig struct {
	TileWidth        float64 `toml:"tile_width"`        // degrees per grid cell
	NeighborhoodSize int     `toml:"neighborhood_size"` // visibility radius in cells (Chebyshev)
	SpawnProbability float64 `toml:"spawn_probability"` // chance a cell holds a cache (0.0-1.0)
	MaxCacheTokens   int     `toml:"max_cache_tokens"`  // upper bound on initial tokens per cache
	MetersPerDegree  float64 `toml:"meters_per_degree"` // linear approximation near the play latitude
	WorldSeed        string  `toml:"world_seed"`        // salts the luck oracle; fixed per deployment
	StartRegion      string  `toml:"start_region"`      // name from the region table
	RegionsPath      string  `toml:"regions_path"`      // YAML region table (optional)
	ScriptsDir       string  `toml:"scripts_dir"`       // Lua event hooks (empty = disabled)
}

type TrackingConfig struct {
	Interval  time.Duration `toml:"interval"`   // simulated fix interval
	StepTiles float64       `toml:"step_tiles"` // walk step per fix, in tile widths
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			BindAddress: "0.0.0.0:8080",
		},
		Database: DatabaseConfig{
			DSN:             "",
			MaxOpenConns:    10,
			MaxIdleConns:    2,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Game: GameConfig{
			TileWidth:        0.0001,
			NeighborhoodSize: 8,
			SpawnProbability: 0.1,
			MaxCacheTokens:   100,
			MetersPerDegree:  111_320,
			WorldSeed:        "geocoin",
			StartRegion:      "oakes",
			RegionsPath:      "data/regions.yaml",
		},
		Tracking: TrackingConfig{
			Interval:  2 * time.Second,
			StepTiles: 1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
