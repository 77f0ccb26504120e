package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appName    = "network-watchdog"
	configFile = "config.yaml"
)

// Settings represents the optional on-disk configuration file. Every field
// has a compiled-in default; CLI flags override file values.
type Settings struct {
	// Interval between reachability checks in loop mode, in seconds.
	Interval int `yaml:"interval,omitempty"`

	// ProbeURL is the NCSI endpoint used by the HTTP probe.
	ProbeURL string `yaml:"probe_url,omitempty"`

	// ProbeTimeout is the probe request timeout in seconds.
	ProbeTimeout int `yaml:"probe_timeout,omitempty"`

	// ProbeMode selects the probe implementation: "http" (default) or "icmp".
	ProbeMode string `yaml:"probe_mode,omitempty"`

	// ProbeHost is the target host for the ICMP probe.
	ProbeHost string `yaml:"probe_host,omitempty"`

	// All disables the visible-network filter and tries every saved profile.
	All bool `yaml:"all,omitempty"`

	// Profiles restricts recovery to these saved profile names.
	Profiles []string `yaml:"profiles,omitempty"`

	// LogLevel sets logging verbosity: debug, info, warn, error.
	LogLevel string `yaml:"log_level,omitempty"`
}

// Default returns the compiled-in defaults, matching the CLI flag defaults.
func Default() Settings {
	return Settings{
		Interval:     60,
		ProbeURL:     "http://www.msftconnecttest.com/connecttest.txt",
		ProbeTimeout: 5,
		ProbeMode:    "http",
		ProbeHost:    "1.1.1.1",
	}
}

// IntervalDuration returns the check interval as a time.Duration.
func (s Settings) IntervalDuration() time.Duration {
	return time.Duration(s.Interval) * time.Second
}

// ProbeTimeoutDuration returns the probe timeout as a time.Duration.
func (s Settings) ProbeTimeoutDuration() time.Duration {
	return time.Duration(s.ProbeTimeout) * time.Second
}

// Validate reports whether the settings are usable.
func (s Settings) Validate() error {
	if s.Interval <= 0 {
		return fmt.Errorf("interval must be positive, got %d", s.Interval)
	}
	if s.ProbeTimeout <= 0 {
		return fmt.Errorf("probe_timeout must be positive, got %d", s.ProbeTimeout)
	}
	switch s.ProbeMode {
	case "http", "icmp":
	default:
		return fmt.Errorf("probe_mode must be \"http\" or \"icmp\", got %q", s.ProbeMode)
	}
	return nil
}

// GetConfigDir returns the OS-appropriate configuration directory.
// This follows platform conventions:
//   - Linux: $XDG_CONFIG_HOME/network-watchdog or $HOME/.config/network-watchdog
//   - macOS: $HOME/.config/network-watchdog (following XDG convention on macOS)
//   - Windows: %LOCALAPPDATA%\network-watchdog
func GetConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			userProfile := os.Getenv("USERPROFILE")
			if userProfile == "" {
				return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
			}
			baseDir = filepath.Join(userProfile, "AppData", "Local", appName)
		} else {
			baseDir = filepath.Join(localAppData, appName)
		}

	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config", appName)

	default:
		xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfigHome != "" {
			baseDir = filepath.Join(xdgConfigHome, appName)
		} else {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			baseDir = filepath.Join(homeDir, ".config", appName)
		}
	}

	return baseDir, nil
}

// GetConfigPath returns the full path to the configuration file.
func GetConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, configFile), nil
}

// Load reads settings from path. An empty path means the default location,
// where a missing file is not an error: defaults are returned unchanged, so
// the config file stays strictly optional. A path given explicitly must
// exist.
func Load(path string) (Settings, error) {
	settings := Default()

	explicit := path != ""
	if !explicit {
		var err error
		path, err = GetConfigPath()
		if err != nil {
			return settings, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return settings, nil
}
