package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"tilemerge/meta"
)

const envPrefix = "TILEMERGE"

type Config struct {
	LogLevel        string        `mapstructure:"log_level"`
	RolloutDepth    int           `mapstructure:"rollout_depth"`
	Rollouts        int           `mapstructure:"rollouts"`
	Goroutines      int           `mapstructure:"goroutines"`
	Seed            uint64        `mapstructure:"seed"` // 0 draws a fresh seed
	MaxMoves        int           `mapstructure:"max_moves"`
	MoveDelay       time.Duration `mapstructure:"move_delay"`
	ListenAddr      string        `mapstructure:"listen_addr"`
	AgentURL        string        `mapstructure:"agent_url"`
	ExperimentGames int           `mapstructure:"experiment_games"`
	ExperimentDir   string        `mapstructure:"experiment_dir"`
}

// Load layers defaults, the optional config file at path and TILEMERGE_*
// environment variables, in increasing precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("log_level", meta.LogLevel)
	v.SetDefault("rollout_depth", meta.RolloutDepth)
	v.SetDefault("rollouts", meta.RolloutsPerMove)
	v.SetDefault("goroutines", meta.Goroutines)
	v.SetDefault("seed", 0)
	v.SetDefault("max_moves", meta.MaxMoves)
	v.SetDefault("move_delay", meta.MoveDelay)
	v.SetDefault("listen_addr", meta.ListenAddr)
	v.SetDefault("agent_url", meta.AgentURL)
	v.SetDefault("experiment_games", meta.ExperimentGames)
	v.SetDefault("experiment_dir", meta.ExperimentDir)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	switch {
	case c.RolloutDepth <= 0:
		return fmt.Errorf("rollout_depth must be positive, got %d", c.RolloutDepth)
	case c.Rollouts < 0:
		return fmt.Errorf("rollouts must not be negative, got %d", c.Rollouts)
	case c.Goroutines <= 0:
		return fmt.Errorf("goroutines must be positive, got %d", c.Goroutines)
	case c.MaxMoves < 0:
		return fmt.Errorf("max_moves must not be negative, got %d", c.MaxMoves)
	case c.ExperimentGames <= 0:
		return fmt.Errorf("experiment_games must be positive, got %d", c.ExperimentGames)
	}
	return nil
}
