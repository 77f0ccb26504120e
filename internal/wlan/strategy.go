package wlan

import (
	"fmt"
	"strings"
)

// StrategyKind discriminates the connect-strategy variants.
type StrategyKind int

const (
	// ScanOnly tries only saved profiles whose name is currently in range.
	// Default; avoids futile connect attempts to out-of-range networks.
	ScanOnly StrategyKind = iota
	// All tries every saved profile regardless of visibility.
	All
	// Explicit tries only caller-named profiles, regardless of visibility.
	Explicit
)

// Strategy selects which saved profiles a recovery pass attempts.
// Construct with ScanOnlyStrategy, AllStrategy, or ExplicitStrategy.
type Strategy struct {
	Kind StrategyKind

	// names is only set for Explicit and is immutable once supplied.
	names []string
}

// ScanOnlyStrategy returns the default visible-networks-only strategy.
func ScanOnlyStrategy() Strategy {
	return Strategy{Kind: ScanOnly}
}

// AllStrategy returns the try-every-saved-profile strategy.
func AllStrategy() Strategy {
	return Strategy{Kind: All}
}

// ExplicitStrategy returns a strategy restricted to the given profile names.
// The name set is copied and is immutable for the lifetime of the Strategy.
func ExplicitStrategy(names []string) Strategy {
	copied := make([]string, len(names))
	copy(copied, names)
	return Strategy{Kind: Explicit, names: copied}
}

// String returns a log-friendly description of the strategy.
func (s Strategy) String() string {
	switch s.Kind {
	case ScanOnly:
		return "scan-only"
	case All:
		return "all"
	case Explicit:
		return fmt.Sprintf("explicit(%s)", strings.Join(s.names, ","))
	default:
		return fmt.Sprintf("StrategyKind(%d)", int(s.Kind))
	}
}

// SelectProfiles filters saved profiles down to the ordered subset the pass
// should attempt. It is pure: deterministic, side-effect-free, and never
// scans on its own. Output preserves the order of saved, so tie-breaks among
// equally-eligible profiles are first-enumerated-first-tried.
//
//   - ScanOnly with a nil visible set yields nothing: the caller must have
//     performed the scan.
//   - ScanOnly with a visible set yields saved ∩ visible.
//   - All yields saved unchanged.
//   - Explicit yields the saved profiles named by the strategy, in saved
//     order, not in the strategy's order.
func SelectProfiles(saved []string, strategy Strategy, visible map[string]struct{}) []string {
	switch strategy.Kind {
	case ScanOnly:
		if visible == nil {
			return nil
		}
		var out []string
		for _, name := range saved {
			if _, ok := visible[name]; ok {
				out = append(out, name)
			}
		}
		return out

	case All:
		out := make([]string, len(saved))
		copy(out, saved)
		return out

	case Explicit:
		wanted := make(map[string]struct{}, len(strategy.names))
		for _, name := range strategy.names {
			wanted[name] = struct{}{}
		}
		var out []string
		for _, name := range saved {
			if _, ok := wanted[name]; ok {
				out = append(out, name)
			}
		}
		return out

	default:
		panic(fmt.Sprintf("wlan: unknown strategy kind %d", int(strategy.Kind)))
	}
}
