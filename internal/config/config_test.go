package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	settings := Default()

	if settings.Interval != 60 {
		t.Errorf("Interval = %d, want 60", settings.Interval)
	}
	if settings.ProbeTimeout != 5 {
		t.Errorf("ProbeTimeout = %d, want 5", settings.ProbeTimeout)
	}
	if settings.ProbeMode != "http" {
		t.Errorf("ProbeMode = %s, want http", settings.ProbeMode)
	}
	if settings.ProbeURL == "" {
		t.Error("ProbeURL should have a default")
	}
	if err := settings.Validate(); err != nil {
		t.Errorf("default settings should validate, got %v", err)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	// A path the user named must exist; silently running on defaults
	// would hide a typo in --config.
	path := filepath.Join(t.TempDir(), "nope.yaml")
	if _, err := Load(path); err == nil {
		t.Error("Load() error = nil, want error for missing explicit file")
	}
}

func TestLoad_MissingDefaultFile(t *testing.T) {
	// The default-location file is optional: point the config dir at an
	// empty directory and expect defaults with no error.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	settings, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v, want nil for missing default file", err)
	}
	if settings.Interval != Default().Interval {
		t.Errorf("missing file should yield defaults, got interval %d", settings.Interval)
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
interval: 120
probe_mode: icmp
probe_host: 8.8.8.8
profiles:
  - Home
  - Office
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if settings.Interval != 120 {
		t.Errorf("Interval = %d, want 120", settings.Interval)
	}
	if settings.ProbeMode != "icmp" {
		t.Errorf("ProbeMode = %s, want icmp", settings.ProbeMode)
	}
	if settings.ProbeHost != "8.8.8.8" {
		t.Errorf("ProbeHost = %s, want 8.8.8.8", settings.ProbeHost)
	}
	// Untouched fields keep their defaults.
	if settings.ProbeTimeout != 5 {
		t.Errorf("ProbeTimeout = %d, want default 5", settings.ProbeTimeout)
	}
	if len(settings.Profiles) != 2 || settings.Profiles[0] != "Home" || settings.Profiles[1] != "Office" {
		t.Errorf("Profiles = %v, want [Home Office]", settings.Profiles)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("interval: [not a number"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() error = nil, want parse error")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("interval: -3"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() error = nil, want validation error")
	}
	if !strings.Contains(err.Error(), "interval") {
		t.Errorf("error %q should mention interval", err)
	}
}

func TestValidate_ProbeMode(t *testing.T) {
	settings := Default()
	settings.ProbeMode = "dns"

	if err := settings.Validate(); err == nil {
		t.Error("Validate() = nil, want error for unknown probe mode")
	}
}
