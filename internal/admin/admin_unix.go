//go:build !windows

package admin

import (
	"os"

	"github.com/sunfkny/network-watchdog/internal/logging"
)

// EnsureElevated warns when not running as root but does not fail:
// NetworkManager grants access through polkit, so an unprivileged run can
// still work on most desktop systems.
func EnsureElevated() error {
	if os.Geteuid() != 0 {
		logging.Warn("Not running as root; radio and adapter control may be denied by polkit")
	}
	return nil
}
