package daynight

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Backend      string `env:"DAYNIGHT_BACKEND" envDefault:"memory"`
	LogLevel     string `env:"DAYNIGHT_LOG_LEVEL" envDefault:"WARN"`
	LogPath      string `env:"DAYNIGHT_LOG_PATH"`
	TimeFormat   string `env:"DAYNIGHT_TIME_FORMAT" envDefault:"15:04"`
	StrictCreate bool   `env:"DAYNIGHT_STRICT_CREATE" envDefault:"false"`
	Addr         string `env:"DAYNIGHT_ADDR" envDefault:":8080"`
	DevMode      bool   `env:"DAYNIGHT_DEV_MODE"`
}

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

var (
	userHome, _    = os.UserHomeDir()
	DefaultLogPath = path.Join(userHome, ".daynight", "daynight.log")
)

const defaultConf = `DAYNIGHT_BACKEND=memory
DAYNIGHT_LOG_LEVEL=WARN
DAYNIGHT_TIME_FORMAT=15:04
`

// DefaultConfigPath is where LoadConfig looks when no file is given.
func DefaultConfigPath() string {
	cfgDir, _ := os.UserConfigDir()
	return path.Join(cfgDir, "daynight", "daynight.conf")
}

// LoadConfig reads confFile, creating it with defaults if it is missing.
// Environment variables take precedence over values in the file.
func LoadConfig(confFile string) (Config, error) {
	if _, err := os.Stat(confFile); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(path.Dir(confFile), 0o744); err != nil {
			return Config{}, fmt.Errorf("create config dir: %w", err)
		}
		if err := os.WriteFile(confFile, []byte(defaultConf), 0o644); err != nil {
			return Config{}, fmt.Errorf("write default config: %w", err)
		}
	}
	if err := godotenv.Load(confFile); err != nil {
		return Config{}, fmt.Errorf("load %s: %w", confFile, err)
	}

	cfg := Config{LogPath: DefaultLogPath}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.DevMode {
		cfg.LogLevel = "DEBUG"
	}
	cfg.Backend = strings.ToLower(cfg.Backend)

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendMemory, BackendSQLite:
		return nil
	default:
		return fmt.Errorf("unknown backend %q: want %q or %q", c.Backend, BackendMemory, BackendSQLite)
	}
}
