package watchdog

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/sunfkny/network-watchdog/internal/logging"
	"github.com/sunfkny/network-watchdog/internal/probe"
	"github.com/sunfkny/network-watchdog/internal/wlan"
)

// Watchdog periodically checks reachability and runs one recovery pass per
// detected outage. Recovery runs inline within the check cadence, never on a
// background scheduler, so at most one pass is in flight at a time. A failed
// pass is not retried immediately; the next periodic check is the retry
// mechanism, which bounds retry storms.
type Watchdog struct {
	// Probe reports current Internet reachability.
	Probe probe.Prober

	// EnsureRadio powers on the Wi-Fi radio before a recovery pass. A
	// failure is logged and the pass still runs: saved profiles may work
	// anyway. Optional.
	EnsureRadio func(ctx context.Context) error

	// Recover runs one recovery pass.
	Recover func(ctx context.Context) wlan.Outcome

	// Interval between reachability checks in loop mode.
	Interval time.Duration

	// Once makes Run check (and recover, if needed) a single time and exit.
	Once bool

	// Clock drives the loop sleeps; tests substitute a mock.
	Clock clock.Clock
}

// Run executes the watchdog until ctx is cancelled, or once in Once mode.
// It returns nil on clean termination, including cancellation.
func (w *Watchdog) Run(ctx context.Context) error {
	clk := w.Clock
	if clk == nil {
		clk = clock.New()
	}

	for {
		logging.Info("Checking network...")
		if w.Probe(ctx) {
			logging.Info("Network OK")
		} else {
			logging.Warn("Network unreachable, attempting Wi-Fi recovery")

			logging.Info("Step 1/2: Turn on Wi-Fi radio")
			if w.EnsureRadio != nil {
				if err := w.EnsureRadio(ctx); err != nil {
					logging.Warn("Failed to turn on Wi-Fi radio (continuing with saved profiles)",
						zap.Error(err))
				} else {
					logging.Info("Wi-Fi radio ready")
				}
			}

			logging.Info("Step 2/2: Enumerate and connect saved Wi-Fi profiles (filtered by strategy)")
			outcome := w.Recover(ctx)
			if outcome.OK {
				logging.Info("Network restored", zap.String("profile", outcome.Profile))
			} else {
				logging.Warn("Recovery failed this round",
					zap.String("reason", outcome.Reason.String()),
					zap.Int("attempted", outcome.Attempted),
				)
			}
		}

		if w.Once {
			logging.Info("Single-run mode, exiting")
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}

		logging.Info("Sleeping until next check", zap.Duration("interval", w.Interval))
		timer := clk.Timer(w.Interval)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			logging.Info("Watchdog stopped")
			return nil
		}
	}
}
