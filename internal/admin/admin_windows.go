//go:build windows

package admin

import (
	"errors"

	"golang.org/x/sys/windows"
)

// ErrNotElevated is returned when the process lacks administrator rights.
var ErrNotElevated = errors.New("administrator rights required: re-run from an elevated prompt, or via gsudo (winget install gsudo)")

// EnsureElevated fails when the process token is not elevated. Radio and
// adapter control need administrator rights, so this is a setup error, not
// something to retry.
func EnsureElevated() error {
	if windows.GetCurrentProcessToken().IsElevated() {
		return nil
	}
	return ErrNotElevated
}
