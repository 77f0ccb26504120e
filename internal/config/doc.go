// Package config provides the optional settings file for the network watchdog.
//
// This package manages a YAML-based configuration file holding the watchdog's
// cadence and probe settings. Everything in the file can also be supplied as
// a CLI flag; flags win over file values, which win over compiled-in
// defaults. The file follows OS-specific conventions for storage location.
//
// # Configuration File Location
//
//   - Linux: $XDG_CONFIG_HOME/network-watchdog/config.yaml or $HOME/.config/network-watchdog/config.yaml
//   - macOS: $HOME/.config/network-watchdog/config.yaml
//   - Windows: %LOCALAPPDATA%\network-watchdog\config.yaml
//
// # Security
//
// This package NEVER stores Wi-Fi credentials. Saved network profiles,
// including their secrets, are owned entirely by the platform (WLAN profile
// store on Windows, NetworkManager on Linux); the watchdog only references
// them by name.
//
// # Usage Example
//
//	settings, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	probe := probe.NewHTTP(settings.ProbeURL, settings.ProbeTimeoutDuration())
package config
