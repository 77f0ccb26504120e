// Package logging provides structured logging for the network watchdog.
//
// This package wraps zap logger with convenience functions for the logging
// patterns used throughout the tool.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: probe details, visible-network dumps, state polls
//   - Info: normal operation (checks, recovery steps, per-profile attempts)
//   - Warn: recovered-from issues (interface skipped, recovery round failed)
//   - Error: fatal issues (setup failures)
//
// Per-profile failures during a recovery pass are expected, routine outcomes
// and are logged at Info; per-interface query failures are logged at Warn.
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Connecting to profile",
//	    zap.String("profile", "Home"),
//	    zap.Int("attempt", 2),
//	)
//
// # Configuration
//
// Initialize logging at startup:
//
//	if err := logging.Initialize("debug"); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// When no level is given, the NETWORK_WATCHDOG_LOG_LEVEL environment
// variable is consulted, defaulting to info.
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
