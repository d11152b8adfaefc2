package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"focusflow/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	FocusMinutes        int  `yaml:"focus_minutes"`
	BreakMinutes        int  `yaml:"break_minutes"`
	MicroBreakSeconds   int  `yaml:"micro_break_seconds"`
	MicroBreakEveryMins int  `yaml:"micro_break_every_minutes"`
	MicroBreakEnabled   bool `yaml:"micro_break_enabled"`
	AutoStartCycle      bool `yaml:"auto_start_cycle"`
	KeepHistory         bool `yaml:"keep_history"`
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return settings, err
	}

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		FocusMinutes:        int(settings.FocusDuration / time.Minute),
		BreakMinutes:        int(settings.BreakDuration / time.Minute),
		MicroBreakSeconds:   int(settings.MicroBreakDuration / time.Second),
		MicroBreakEveryMins: int(settings.MicroBreakEvery / time.Minute),
		MicroBreakEnabled:   settings.MicroBreakEnabled,
		AutoStartCycle:      settings.AutoStartCycle,
		KeepHistory:         settings.KeepHistory,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func resolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.FocusMinutes > 0 {
		settings.FocusDuration = time.Duration(fileData.FocusMinutes) * time.Minute
	}
	if fileData.BreakMinutes > 0 {
		settings.BreakDuration = time.Duration(fileData.BreakMinutes) * time.Minute
	}
	if fileData.MicroBreakSeconds > 0 {
		settings.MicroBreakDuration = time.Duration(fileData.MicroBreakSeconds) * time.Second
	}
	if fileData.MicroBreakEveryMins > 0 {
		settings.MicroBreakEvery = time.Duration(fileData.MicroBreakEveryMins) * time.Minute
	}

	settings.MicroBreakEnabled = fileData.MicroBreakEnabled
	settings.AutoStartCycle = fileData.AutoStartCycle
	settings.KeepHistory = fileData.KeepHistory
}
