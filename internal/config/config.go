package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Tordek/darkstone/internal/constants"
)

const (
	DeleteModeRemove = "remove"
	DeleteModeTrash  = "trash"

	defaultPreviewStyle = "dracula"
	defaultWordWrap     = 100
)

var ValidDeleteModes = map[string]bool{
	DeleteModeRemove: true,
	DeleteModeTrash:  true,
}

type PreviewConfig struct {
	Style    string `yaml:"style"     json:"style"     mapstructure:"style"`
	WordWrap int    `yaml:"word_wrap" json:"word_wrap" mapstructure:"word_wrap"`
}

type Config struct {
	NotesPath    string        `yaml:"notes_path"    json:"notes_path"    mapstructure:"notes_path"`
	Extension    string        `yaml:"extension"     json:"extension"     mapstructure:"extension"`
	IgnoreHidden bool          `yaml:"ignore_hidden" json:"ignore_hidden" mapstructure:"ignore_hidden"`
	DeleteMode   string        `yaml:"delete_mode"   json:"delete_mode"   mapstructure:"delete_mode"`
	Preview      PreviewConfig `yaml:"preview"       json:"preview"       mapstructure:"preview"`
	Debug        bool          `yaml:"debug"         json:"debug"         mapstructure:"debug"`

	home string
}

// DefaultConfig is what a first run writes: notes live in
// <home>/.darkstone/notes.
func DefaultConfig(home string) *Config {
	return &Config{
		NotesPath:  filepath.Join(home, constants.ConfigDir, constants.NotesDir),
		DeleteMode: DeleteModeRemove,
		Preview: PreviewConfig{
			Style:    defaultPreviewStyle,
			WordWrap: defaultWordWrap,
		},
		home: home,
	}
}

func setDefaults(v *viper.Viper, def *Config) {
	v.SetDefault("notes_path", def.NotesPath)
	v.SetDefault("extension", def.Extension)
	v.SetDefault("ignore_hidden", def.IgnoreHidden)
	v.SetDefault("delete_mode", def.DeleteMode)
	v.SetDefault("preview.style", def.Preview.Style)
	v.SetDefault("preview.word_wrap", def.Preview.WordWrap)
	v.SetDefault("debug", def.Debug)
}

// Load reads the configuration file under home. DARKSTONE_* environment
// variables override file values, e.g. DARKSTONE_NOTES_PATH or
// DARKSTONE_PREVIEW_STYLE. An empty file yields the defaults.
func Load(home string) (*Config, error) {
	path := GetConfigPath(home)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(constants.ConfigFileType)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, DefaultConfig(home))

	if len(strings.TrimSpace(string(data))) > 0 {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.home = home
	cfg.NotesPath = expandHome(cfg.NotesPath, home)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func expandHome(p, home string) string {
	if p == "~" {
		return home
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(home, p[2:])
	}
	return p
}

func (cfg *Config) Validate() error {
	if strings.TrimSpace(cfg.NotesPath) == "" {
		return &ConfigInitError{Field: "notes_path", msg: "not set"}
	}
	if !filepath.IsAbs(cfg.NotesPath) {
		return &ConfigInitError{Field: "notes_path", msg: fmt.Sprintf("%q must be absolute", cfg.NotesPath)}
	}
	if !ValidDeleteModes[cfg.DeleteMode] {
		return &ConfigInitError{
			Field: "delete_mode",
			msg:   fmt.Sprintf("invalid value %q, expected %q or %q", cfg.DeleteMode, DeleteModeRemove, DeleteModeTrash),
		}
	}
	if cfg.Preview.WordWrap < 0 {
		return &ConfigInitError{Field: "preview.word_wrap", msg: "cannot be negative"}
	}
	return nil
}

func (cfg *Config) Home() string { return cfg.home }

func (cfg *Config) GetConfigPath() string {
	return GetConfigPath(cfg.home)
}

// SetNotesPath points the configuration at a new notes directory and saves.
func (cfg *Config) SetNotesPath(path string) error {
	path = expandHome(path, cfg.home)
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		path = abs
	}
	cfg.NotesPath = filepath.Clean(path)
	return cfg.Save()
}

func (cfg *Config) Save() error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.home == "" {
		return errors.New("config has no home directory")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	configPath := cfg.GetConfigPath()
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}
