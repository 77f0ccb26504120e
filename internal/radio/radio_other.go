//go:build !linux && !windows

package radio

import (
	"context"

	"github.com/sunfkny/network-watchdog/internal/logging"
)

// EnsureWifiOn is a no-op on platforms without radio power control.
func EnsureWifiOn(ctx context.Context) error {
	logging.Debug("Radio power control not supported on this platform, skipping")
	return nil
}
