package bootstrap

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"baduk/internal/domain/baduk"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"

	xdgConfigFile = "baduk/.env"
)

type Config struct {
	ServerPort       string `mapstructure:"SERVER_PORT"`
	GrpcPort         string `mapstructure:"GRPC_PORT"`
	Storage          string `mapstructure:"STORAGE"`
	RedisUrl         string `mapstructure:"REDIS_URL"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	MongoUri         string `mapstructure:"MONGO_URI"`
	MongoDatabase    string `mapstructure:"MONGO_DATABASE"`
	DefaultBoardSize int    `mapstructure:"DEFAULT_BOARD_SIZE"`
	IsLocalCors      bool   `mapstructure:"LOCAL_CORS"`
	StateTTLHours    int    `mapstructure:"STATE_TTL_HOURS"`
}

var defaults = map[string]any{
	"SERVER_PORT":        "8080",
	"GRPC_PORT":          "8082",
	"STORAGE":            StorageMemory,
	"REDIS_URL":          "localhost:6379",
	"REDIS_PASSWORD":     "",
	"MONGO_URI":          "",
	"MONGO_DATABASE":     "baduk",
	"DEFAULT_BOARD_SIZE": 19,
	"LOCAL_CORS":         false,
	"STATE_TTL_HOURS":    24,
}

// Setup reads cfgPath, or $XDG_CONFIG_HOME/baduk/.env when cfgPath does not
// exist. Environment variables override file values; every key has a
// default, so running without any file is valid.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path := resolveConfigFile(cfgPath); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func resolveConfigFile(cfgPath string) string {
	if cfgPath != "" {
		if _, err := os.Stat(cfgPath); err == nil {
			return cfgPath
		}
	}
	if path, err := xdg.SearchConfigFile(xdgConfigFile); err == nil {
		return path
	}
	return ""
}

func (c *Config) Validate() error {
	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))
	switch c.Storage {
	case StorageMemory, StorageRedis:
	default:
		return fmt.Errorf("unknown STORAGE %q", c.Storage)
	}
	if c.Storage == StorageRedis && c.RedisUrl == "" {
		return errors.New("REDIS_URL is required for redis storage")
	}
	if c.DefaultBoardSize <= 0 || c.DefaultBoardSize > baduk.MaxSize {
		return fmt.Errorf("DEFAULT_BOARD_SIZE must be between 1 and %d, got %d", baduk.MaxSize, c.DefaultBoardSize)
	}
	if c.StateTTLHours < 0 {
		return fmt.Errorf("STATE_TTL_HOURS must not be negative, got %d", c.StateTTLHours)
	}
	return nil
}

// StateTTL is how long an untouched live game is kept. Zero means forever.
func (c Config) StateTTL() time.Duration {
	return time.Duration(c.StateTTLHours) * time.Hour
}
