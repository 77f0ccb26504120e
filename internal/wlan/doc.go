// Package wlan implements the wireless recovery core: session access to the
// platform wireless-management subsystem, strategy-based filtering of saved
// profiles, and the per-profile connect-poll-verify state machine.
//
// # Recovery pass
//
// One pass opens exactly one Session and closes it on every exit path. The
// engine enumerates interfaces (falling back to an adapter-enable attempt
// when none are visible), lists each interface's saved profiles, filters
// them through the configured Strategy, and tries the survivors in
// enumeration order. A candidate counts as a success only when it both
// reaches the connected state within the polling budget and passes the
// injected reachability probe: a profile can associate at the radio level
// while still providing no Internet access (captive portal, expired
// credentials), so link state alone would produce false positives.
//
// # Platform backends
//
// Open returns the backend for the build platform: the WLAN API
// (wlanapi.dll) on Windows and NetworkManager over D-Bus on Linux. Both
// copy platform list results into plain Go values immediately, so no
// reference into platform-owned buffers outlives the producing call.
//
// # Error policy
//
// Per-interface query failures skip the interface; per-profile failures
// (connect rejection, poll timeout, failed verification) skip the profile.
// Both are routine outcomes of a pass, not anomalies. Only session-open
// failure is fatal to the pass.
package wlan
