package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Tordek/darkstone/internal/constants"
)

func GetConfigPath(homeDir string) string {
	return filepath.Join(
		homeDir,
		constants.ConfigDir,
		constants.ConfigFile+"."+constants.ConfigFileType,
	)
}

// EnsureConfigExists writes the default configuration when the file is
// missing or empty, then makes sure the notes directory exists.
func EnsureConfigExists(homeDir string) (*Config, error) {
	configPath := GetConfigPath(homeDir)

	data, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, os.ErrNotExist) || (err == nil && len(strings.TrimSpace(string(data))) == 0):
		if err := DefaultConfig(homeDir).Save(); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to check config file existence: %w", err)
	}

	cfg, err := Load(homeDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := os.MkdirAll(cfg.NotesPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create notes directory: %w", err)
	}

	return cfg, nil
}
