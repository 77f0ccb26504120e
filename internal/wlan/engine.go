package wlan

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/sunfkny/network-watchdog/internal/logging"
	"github.com/sunfkny/network-watchdog/internal/probe"
)

// Default engine cadence. The settle delays are pragmatic waits after
// asynchronous platform actions that expose no completion signal.
const (
	// DefaultScanSettle is the wait between requesting a scan and reading
	// the visible-network list.
	DefaultScanSettle = 2 * time.Second

	// DefaultAdapterSettle is the wait after an adapter enable succeeded
	// before re-enumerating interfaces.
	DefaultAdapterSettle = 3 * time.Second

	// DefaultPollInterval is the wait between interface state polls while a
	// connect request is pending.
	DefaultPollInterval = 2 * time.Second

	// DefaultPollBudget is the total time allowed for one profile to reach
	// the connected state.
	DefaultPollBudget = 30 * time.Second
)

// Reason classifies why a recovery pass failed.
type Reason int

const (
	// ReasonNone is the zero value, used on success.
	ReasonNone Reason = iota
	// ReasonNoSession means the wireless-management subsystem could not be
	// initialized.
	ReasonNoSession
	// ReasonNoInterface means no wireless interface was visible, even after
	// the adapter-enable fallback.
	ReasonNoInterface
	// ReasonNoCandidates means interfaces existed but no saved profile
	// passed the strategy filter on any of them.
	ReasonNoCandidates
	// ReasonExhausted means every candidate profile was attempted and none
	// restored reachability.
	ReasonExhausted
	// ReasonCancelled means the context was cancelled before the pass could
	// finish.
	ReasonCancelled
)

// String returns a human-readable name for the failure reason.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonNoSession:
		return "no session"
	case ReasonNoInterface:
		return "no interface"
	case ReasonNoCandidates:
		return "no candidate profiles"
	case ReasonExhausted:
		return "all candidates exhausted"
	case ReasonCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Outcome is the result of one recovery pass.
type Outcome struct {
	// OK is true when a profile restored reachability.
	OK bool

	// Profile is the saved profile that restored reachability, when OK.
	Profile string

	// Attempted counts connect attempts made during the pass.
	Attempted int

	// Reason classifies the failure, when !OK.
	Reason Reason

	// Err carries the underlying error where one exists, such as the
	// setup failure for ReasonNoSession or the context error for
	// ReasonCancelled.
	Err error
}

// Engine runs the wireless recovery pass: open a session, discover
// interfaces (enabling a disabled adapter if none are visible), filter each
// interface's saved profiles through the strategy, and try candidates in
// order until one restores reachability.
//
// A pass owns its Session exclusively from open to close; no two passes run
// concurrently against the same handle, and nothing is cached across
// iterations.
type Engine struct {
	// Open acquires the platform session; production wiring passes
	// wlan.Open, tests a stub.
	Open func() (Session, error)

	// Probe verifies end-to-end reachability after a link-layer connect.
	Probe probe.Prober

	// EnableAdapter attempts to enable a disabled wireless adapter when no
	// interface is visible. Optional; nil skips the fallback.
	EnableAdapter func() bool

	// Strategy selects candidate profiles. Immutable for the pass.
	Strategy Strategy

	// Clock drives all waits; tests substitute a mock.
	Clock clock.Clock

	ScanSettle    time.Duration
	AdapterSettle time.Duration
	PollInterval  time.Duration
	PollBudget    time.Duration
}

// NewEngine returns an Engine with the default cadence.
func NewEngine(open func() (Session, error), prober probe.Prober, enable func() bool, strategy Strategy) *Engine {
	return &Engine{
		Open:          open,
		Probe:         prober,
		EnableAdapter: enable,
		Strategy:      strategy,
		Clock:         clock.New(),
		ScanSettle:    DefaultScanSettle,
		AdapterSettle: DefaultAdapterSettle,
		PollInterval:  DefaultPollInterval,
		PollBudget:    DefaultPollBudget,
	}
}

func (e *Engine) clock() clock.Clock {
	if e.Clock == nil {
		e.Clock = clock.New()
	}
	return e.Clock
}

// Recover executes one recovery pass and reports the outcome. The session is
// closed on every exit path. Cancelling ctx aborts the pass at its next
// wait; by default no pass-level timeout is applied.
func (e *Engine) Recover(ctx context.Context) Outcome {
	logging.Info("Initializing wireless session...")
	sess, err := e.Open()
	if err != nil {
		logging.Error("Failed to open wireless session", zap.Error(err))
		return Outcome{Reason: ReasonNoSession, Err: err}
	}
	defer sess.Close()
	logging.Info("Wireless session ready")

	ifaces, err := sess.Interfaces()
	if err != nil {
		logging.Error("Failed to enumerate wireless interfaces", zap.Error(err))
		return Outcome{Reason: ReasonNoInterface, Err: err}
	}
	logging.Info("Enumerated wireless interfaces", zap.Int("count", len(ifaces)))

	if len(ifaces) == 0 && e.EnableAdapter != nil {
		logging.Warn("No wireless interface; adapter may be disabled, trying to enable...")
		if e.EnableAdapter() {
			logging.Info("Adapter enable reported success, waiting before re-enumerating",
				zap.Duration("settle", e.AdapterSettle))
			if !e.wait(ctx, e.AdapterSettle) {
				return Outcome{Reason: ReasonNoInterface, Err: ctx.Err()}
			}
			ifaces, err = sess.Interfaces()
			if err != nil {
				logging.Error("Re-enumeration failed", zap.Error(err))
				return Outcome{Reason: ReasonNoInterface, Err: err}
			}
			logging.Info("Re-enumerated wireless interfaces", zap.Int("count", len(ifaces)))
		}
	}

	if len(ifaces) == 0 {
		logging.Warn("No wireless interface available")
		return Outcome{Reason: ReasonNoInterface}
	}

	attempted := 0
	for idx, iface := range ifaces {
		saved, err := sess.SavedProfiles(iface)
		if err != nil {
			logging.Warn("Failed to list saved profiles, skipping interface",
				zap.Int("interface", idx+1),
				zap.String("name", iface.String()),
				zap.Error(err),
			)
			continue
		}
		logging.Info("Listed saved profiles",
			zap.Int("interface", idx+1),
			zap.Int("profiles", len(saved)),
		)

		var visible map[string]struct{}
		if e.Strategy.Kind == ScanOnly {
			logging.Info("Scanning for visible networks (connect only in-range)...")
			if err := sess.Scan(iface); err != nil {
				logging.Debug("Scan request failed, reading possibly stale results", zap.Error(err))
			}
			if !e.wait(ctx, e.ScanSettle) {
				return e.abort(ctx, attempted)
			}
			visible, err = sess.VisibleNetworks(iface)
			if err != nil {
				logging.Warn("Failed to list visible networks, skipping interface",
					zap.Int("interface", idx+1),
					zap.Error(err),
				)
				continue
			}
			logging.Debug("Visible networks", zap.Int("count", len(visible)))
		}

		candidates := SelectProfiles(saved, e.Strategy, visible)
		if len(candidates) == 0 {
			logging.Info("No profiles to try after filter",
				zap.String("strategy", e.Strategy.String()))
			continue
		}
		logging.Debug("Candidate profiles on this interface",
			zap.Strings("profiles", candidates))

		for _, name := range candidates {
			attempted++
			logging.Info("Connecting to saved profile",
				zap.Int("attempt", attempted),
				zap.Int("candidates", len(candidates)),
				zap.String("profile", name),
			)

			if err := sess.Connect(iface, name); err != nil {
				logging.Info("Connect request rejected, trying next profile",
					zap.String("profile", name),
					zap.Error(err),
				)
				continue
			}

			logging.Info("Connect requested, polling interface state",
				zap.Duration("every", e.PollInterval),
				zap.Duration("budget", e.PollBudget),
			)
			if !e.pollConnected(ctx, sess, iface) {
				if ctx.Err() != nil {
					return e.abort(ctx, attempted)
				}
				logging.Info("Profile never reached connected state, trying next",
					zap.String("profile", name))
				continue
			}

			logging.Info("Link established, verifying reachability...")
			if e.Probe(ctx) {
				logging.Info("Network restored", zap.String("profile", name))
				return Outcome{OK: true, Profile: name, Attempted: attempted}
			}
			// Connected at the radio level but no Internet (captive portal,
			// expired credentials, wrong network behind same name). Stay
			// associated and move on; disconnecting first only adds latency.
			logging.Info("Profile connected but reachability check failed, trying next",
				zap.String("profile", name))
		}
	}

	if attempted == 0 {
		logging.Warn("No candidate profile on any interface",
			zap.String("strategy", e.Strategy.String()))
		return Outcome{Reason: ReasonNoCandidates}
	}
	logging.Warn("Recovery exhausted, no profile restored the network",
		zap.Int("attempted", attempted))
	return Outcome{Reason: ReasonExhausted, Attempted: attempted}
}

// pollConnected polls the interface state every PollInterval until it
// reaches StateConnected or the budget is exhausted. The number of rounds is
// fixed up front, never open-ended.
func (e *Engine) pollConnected(ctx context.Context, sess Session, iface Interface) bool {
	interval := e.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	rounds := int(e.PollBudget / interval)
	if rounds < 1 {
		rounds = 1
	}

	for round := 1; round <= rounds; round++ {
		if !e.wait(ctx, interval) {
			return false
		}
		state, ok := sess.State(iface)
		logging.Debug("Interface state poll",
			zap.Int("round", round),
			zap.Int("rounds", rounds),
			zap.String("state", state.String()),
			zap.Bool("queried", ok),
		)
		if ok && state == StateConnected {
			return true
		}
	}
	return false
}

// wait sleeps for d on the engine clock, returning false if ctx is done
// first. A non-positive d is a no-op.
func (e *Engine) wait(ctx context.Context, d time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if d <= 0 {
		return true
	}
	timer := e.clock().Timer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func (e *Engine) abort(ctx context.Context, attempted int) Outcome {
	logging.Warn("Recovery pass cancelled", zap.Int("attempted", attempted))
	return Outcome{Reason: ReasonCancelled, Attempted: attempted, Err: ctx.Err()}
}
