//go:build linux

package radio

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/Wifx/gonetworkmanager"
	"go.uber.org/zap"

	"github.com/sunfkny/network-watchdog/internal/logging"
)

// EnsureWifiOn flips NetworkManager's wireless switch on when it is off.
// When NetworkManager is unreachable it falls back to unblocking the Wi-Fi
// rfkill switch directly.
func EnsureWifiOn(ctx context.Context) error {
	nm, err := gonetworkmanager.NewNetworkManager()
	if err != nil {
		logging.Info("NetworkManager unreachable, trying rfkill", zap.Error(err))
		return rfkillUnblock(ctx)
	}

	enabled, err := nm.GetPropertyWirelessEnabled()
	if err != nil {
		return fmt.Errorf("failed to read wireless switch state: %w", err)
	}
	if enabled {
		logging.Info("Wi-Fi radio already on, skip")
		return nil
	}

	logging.Info("Turning on Wi-Fi radio...")
	if err := nm.SetPropertyWirelessEnabled(true); err != nil {
		return fmt.Errorf("failed to enable wireless switch: %w", err)
	}
	logging.Info("Wi-Fi radio on")
	return nil
}

func rfkillUnblock(ctx context.Context) error {
	out, err := exec.CommandContext(ctx, "rfkill", "unblock", "wifi").CombinedOutput()
	if err != nil {
		return fmt.Errorf("rfkill unblock wifi failed: %w (%s)", err, string(out))
	}
	logging.Info("Wi-Fi rfkill switch unblocked")
	return nil
}
