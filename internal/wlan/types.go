package wlan

import (
	"errors"
	"fmt"
)

// ErrUnsupportedPlatform is returned by Open on platforms without a
// wireless-management backend.
var ErrUnsupportedPlatform = errors.New("no wireless-management backend for this platform")

// Interface identifies one wireless adapter instance. The identifier is
// platform-specific (interface GUID on Windows, D-Bus object path on Linux)
// and is only valid for the lifetime of the Session that enumerated it.
type Interface struct {
	// ID is the opaque platform identifier.
	ID string

	// Name is a human-readable adapter name, if the platform provides one.
	Name string
}

// String returns a log-friendly representation of the interface.
func (i Interface) String() string {
	if i.Name != "" {
		return i.Name
	}
	return i.ID
}

// InterfaceState is the connection state of a wireless interface as reported
// by one poll of the platform. It is never cached beyond that poll.
type InterfaceState int

const (
	// StateUnknown means the platform reported a state this package does
	// not map, or the state could not be determined.
	StateUnknown InterfaceState = iota
	// StateDisconnected means the interface is not associated to a network.
	StateDisconnected
	// StateAssociating means a connection attempt is in progress.
	StateAssociating
	// StateAuthenticating means the interface is performing security
	// negotiation with a network.
	StateAuthenticating
	// StateConnected means the interface is associated at the link layer.
	// This says nothing about Internet reachability.
	StateConnected
)

// String returns a human-readable name for the state.
func (s InterfaceState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateAssociating:
		return "associating"
	case StateAuthenticating:
		return "authenticating"
	case StateConnected:
		return "connected"
	case StateUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("InterfaceState(%d)", int(s))
	}
}

// SessionOpenError indicates the platform wireless-management subsystem
// could not be initialized (e.g. the WLAN service or NetworkManager is not
// running). Fatal to the current recovery pass.
type SessionOpenError struct {
	Err error
}

func (e *SessionOpenError) Error() string {
	return fmt.Sprintf("failed to open wireless session: %v", e.Err)
}

func (e *SessionOpenError) Unwrap() error { return e.Err }

// ProfileQueryError indicates a per-interface query (saved profiles or
// visible networks) failed, typically because the interface disappeared
// mid-call. Callers skip the interface and continue the pass.
type ProfileQueryError struct {
	Interface Interface
	Err       error
}

func (e *ProfileQueryError) Error() string {
	return fmt.Sprintf("interface %s: query failed: %v", e.Interface, e.Err)
}

func (e *ProfileQueryError) Unwrap() error { return e.Err }

// ConnectRequestError indicates the platform synchronously rejected a
// connect request (bad profile name, interface busy). The profile is skipped;
// the pass continues with the next candidate.
type ConnectRequestError struct {
	Profile string
	Err     error
}

func (e *ConnectRequestError) Error() string {
	return fmt.Sprintf("connect request for %q rejected: %v", e.Profile, e.Err)
}

func (e *ConnectRequestError) Unwrap() error { return e.Err }
