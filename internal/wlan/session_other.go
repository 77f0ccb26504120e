//go:build !linux && !windows

package wlan

// Open fails on platforms without a wireless-management backend.
func Open() (Session, error) {
	return nil, &SessionOpenError{Err: ErrUnsupportedPlatform}
}
