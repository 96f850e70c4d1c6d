package config

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Settings represents the application configuration persisted to disk.
// Every field can also be overridden through the environment, which is how
// container deployments inject the API key without touching the file.
type Settings struct {
	Server    ServerSettings    `json:"server"`
	Catalog   CatalogSettings   `json:"catalog"`
	Cache     CacheSettings     `json:"cache"`
	Watchlist WatchlistSettings `json:"watchlist"`
	Suggest   SuggestSettings   `json:"suggest"`
	Log       LogConfig         `json:"log"`
}

type ServerSettings struct {
	Host string `json:"host" env:"MOVIEBUDDY_HOST"`
	Port int    `json:"port" env:"MOVIEBUDDY_PORT"`
}

type CatalogSettings struct {
	TMDBAPIKey string `json:"tmdbApiKey" env:"MOVIEBUDDY_TMDB_API_KEY"`
	Language   string `json:"language" env:"MOVIEBUDDY_LANGUAGE"`
}

type CacheSettings struct {
	Directory       string `json:"directory" env:"MOVIEBUDDY_CACHE_DIR"`
	CatalogTTLHours int    `json:"catalogTtlHours" env:"MOVIEBUDDY_CATALOG_TTL_HOURS"`
}

type WatchlistSettings struct {
	Directory string `json:"directory" env:"MOVIEBUDDY_WATCHLIST_DIR"`
}

type SuggestSettings struct {
	DebounceMillis int `json:"debounceMillis" env:"MOVIEBUDDY_SUGGEST_DEBOUNCE_MS"`
}

// LogConfig controls the rotating log file.
type LogConfig struct {
	File       string `json:"file" env:"MOVIEBUDDY_LOG_FILE"`
	Level      string `json:"level" env:"MOVIEBUDDY_LOG_LEVEL"`
	MaxSize    int    `json:"maxSize"`
	MaxAge     int    `json:"maxAge"`
	MaxBackups int    `json:"maxBackups"`
	Compress   bool   `json:"compress"`
}

// DefaultSettings returns sane defaults for a fresh install.
func DefaultSettings() Settings {
	return Settings{
		Server:    ServerSettings{Host: "0.0.0.0", Port: 8080},
		Catalog:   CatalogSettings{TMDBAPIKey: "", Language: "en"},
		Cache:     CacheSettings{Directory: "cache", CatalogTTLHours: 24},
		Watchlist: WatchlistSettings{Directory: "data/watchlist"},
		Suggest:   SuggestSettings{DebounceMillis: 300},
		Log: LogConfig{
			File:       "cache/logs/backend.log",
			Level:      "info",
			MaxSize:    50, // MB per file
			MaxBackups: 3,
			MaxAge:     7, // days
			Compress:   true,
		},
	}
}

// Manager loads and persists settings to a JSON file.
type Manager struct {
	path string
}

func NewManager(configPath string) *Manager {
	return &Manager{path: configPath}
}

// EnsureDir ensures parent directory exists.
func (m *Manager) EnsureDir() error {
	dir := filepath.Dir(m.path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// Load reads settings.json from disk, creating it with defaults when missing,
// then applies environment overrides on top.
func (m *Manager) Load() (Settings, error) {
	if m.path == "" {
		return Settings{}, errors.New("config path not set")
	}

	settings := DefaultSettings()
	if _, err := os.Stat(m.path); errors.Is(err, fs.ErrNotExist) {
		if err := m.Save(settings); err != nil {
			return Settings{}, err
		}
	} else {
		data, err := os.ReadFile(m.path)
		if err != nil {
			return Settings{}, err
		}
		if err := json.Unmarshal(data, &settings); err != nil {
			return Settings{}, err
		}
	}

	if err := env.Parse(&settings); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// Save writes settings atomically via a temp file.
func (m *Manager) Save(s Settings) error {
	if m.path == "" {
		return errors.New("config path not set")
	}
	if err := m.EnsureDir(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	tmp := m.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, m.path)
}
