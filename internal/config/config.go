package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	MinViewDistance = 1
	MaxViewDistance = 32

	// EnvPath names the settings file when no path is given explicitly.
	EnvPath = "BLOCKWORLD_CONFIG"
)

// AtlasLayout describes the block texture atlas grid.
type AtlasLayout struct {
	Columns  int `yaml:"columns"`
	Rows     int `yaml:"rows"`
	TileSize int `yaml:"tile_size"`
}

// Settings is the on-disk form of the configuration.
type Settings struct {
	Seed             uint32      `yaml:"seed"`
	WorldPath        string      `yaml:"world_path"`
	ViewDistance     int         `yaml:"view_distance"` // in chunks
	WalkSpeed        float32     `yaml:"walk_speed"`
	MouseSensitivity float32     `yaml:"mouse_sensitivity"`
	ShowDebug        bool        `yaml:"show_debug"`
	LogLevel         string      `yaml:"log_level"`
	Atlas            AtlasLayout `yaml:"atlas"`
}

// Defaults returns the settings used when no file exists.
func Defaults() Settings {
	return Settings{
		Seed:             12345,
		WorldPath:        "world.bws",
		ViewDistance:     6,
		WalkSpeed:        4.3,
		MouseSensitivity: 0.005,
		LogLevel:         "info",
		Atlas:            AtlasLayout{Columns: 16, Rows: 16, TileSize: 16},
	}
}

var (
	mu      sync.RWMutex
	current = Defaults()
)

func (s *Settings) normalize() {
	def := Defaults()
	s.ViewDistance = clampViewDistance(s.ViewDistance)
	if s.WalkSpeed <= 0 {
		s.WalkSpeed = def.WalkSpeed
	}
	if s.Atlas.Columns <= 0 || s.Atlas.Rows <= 0 || s.Atlas.TileSize <= 0 {
		s.Atlas = def.Atlas
	}
	if s.LogLevel == "" {
		s.LogLevel = def.LogLevel
	}
}

func clampViewDistance(d int) int {
	return min(max(d, MinViewDistance), MaxViewDistance)
}

// Load reads YAML settings from path and makes them current. An empty path falls back to
// $BLOCKWORLD_CONFIG. A missing file leaves the defaults in place and is not an error.
// Keys absent from the file keep their default values.
func Load(path string) (Settings, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}

	s := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Current(), errors.Wrapf(err, "read config %s", path)
		default:
			if err := yaml.Unmarshal(data, &s); err != nil {
				return Current(), errors.Wrapf(err, "parse config %s", path)
			}
		}
	}
	s.normalize()

	mu.Lock()
	current = s
	mu.Unlock()
	return s, nil
}

// Save writes the current settings to path as YAML.
func Save(path string) error {
	data, err := yaml.Marshal(Current())
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create config dir %s", dir)
		}
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "write config %s", path)
}

// Current returns a copy of the settings in effect.
func Current() Settings {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Reset restores the defaults.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	current = Defaults()
}

// GetViewDistance returns the streaming radius in chunks
func GetViewDistance() int {
	mu.RLock()
	defer mu.RUnlock()
	return current.ViewDistance
}

// SetViewDistance sets the streaming radius, clamped to [MinViewDistance, MaxViewDistance].
func SetViewDistance(distance int) {
	mu.Lock()
	defer mu.Unlock()
	current.ViewDistance = clampViewDistance(distance)
}

func GetWalkSpeed() float32 {
	mu.RLock()
	defer mu.RUnlock()
	return current.WalkSpeed
}

// SetWalkSpeed ignores non-positive speeds.
func SetWalkSpeed(speed float32) {
	if speed <= 0 {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	current.WalkSpeed = speed
}

func GetMouseSensitivity() float32 {
	mu.RLock()
	defer mu.RUnlock()
	return current.MouseSensitivity
}

func GetShowDebug() bool {
	mu.RLock()
	defer mu.RUnlock()
	return current.ShowDebug
}

func SetShowDebug(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	current.ShowDebug = enabled
}

func GetLogLevel() string {
	mu.RLock()
	defer mu.RUnlock()
	return current.LogLevel
}

// GetAtlas returns the texture atlas layout
func GetAtlas() AtlasLayout {
	mu.RLock()
	defer mu.RUnlock()
	return current.Atlas
}

// SetAtlas replaces the atlas layout. Layouts with a non-positive dimension are ignored.
func SetAtlas(a AtlasLayout) {
	if a.Columns <= 0 || a.Rows <= 0 || a.TileSize <= 0 {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	current.Atlas = a
}
