package wlan

// Session is a handle to the platform wireless-management subsystem. It is
// acquired with Open, exclusively owned by one recovery pass, and must be
// released exactly once with Close on every exit path.
//
// All list results are copied out into plain Go values before the method
// returns; no reference into platform-owned buffers survives the call.
type Session interface {
	// Interfaces returns the wireless interfaces currently visible to the
	// OS, in platform enumeration order. An empty slice is a valid result
	// meaning "no wireless hardware", not an error.
	Interfaces() ([]Interface, error)

	// SavedProfiles returns the names of the saved network profiles for the
	// interface, in platform enumeration order. Names are unique within one
	// interface's list. Fails if the interface became invalid mid-call;
	// callers treat that as "skip interface".
	SavedProfiles(iface Interface) ([]string, error)

	// Scan requests a fresh network scan on the interface. Scan completion
	// is asynchronous and the platform exposes no completion signal to this
	// caller; callers wanting settled results wait a fixed settle interval
	// before reading VisibleNetworks.
	Scan(iface Interface) error

	// VisibleNetworks returns the set of currently in-range network
	// identities: broadcast network names plus saved-profile names the
	// platform reports as matching an in-range broadcast.
	VisibleNetworks(iface Interface) (map[string]struct{}, error)

	// Connect issues a fire-and-forget connect request for the named saved
	// profile. A nil return means the request was accepted, not that the
	// interface is connected.
	Connect(iface Interface, profile string) error

	// State returns the interface's connection state from one poll. The
	// second return is false when the query failed; callers treat that as
	// "state unknown, keep polling".
	State(iface Interface) (InterfaceState, bool)

	// Close releases the platform handle. Safe to call even if open
	// partially failed.
	Close() error
}
