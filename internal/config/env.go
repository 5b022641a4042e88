package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// Settings holds the runtime options read from the environment.
// CLI flags take precedence over these values.
type Settings struct {
	Addr            string        `env:"LIFECAL_ADDR" envDefault:"127.0.0.1:18081"`
	DataDir         string        `env:"LIFECAL_DATA_DIR"`
	BaseAge         float64       `env:"LIFECAL_BASE_AGE" envDefault:"75"`
	ReadTimeout     time.Duration `env:"LIFECAL_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"LIFECAL_WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"LIFECAL_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	DocCacheEntries int           `env:"LIFECAL_DOC_CACHE_ENTRIES" envDefault:"64"`
	DocCacheBytes   int64         `env:"LIFECAL_DOC_CACHE_BYTES" envDefault:"67108864"`
}

// LoadSettings parses Settings from the process environment.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", ErrParseEnv, err)
	}
	if s.DataDir == "" {
		s.DataDir = DefaultDataDir()
	}
	return s, nil
}

// DBPath returns the sqlite file location inside the data directory.
func (s Settings) DBPath() string {
	return filepath.Join(s.DataDir, DBFileName)
}

// DefaultDataDir follows the XDG data directory convention.
func DefaultDataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, DataDirName)
}
