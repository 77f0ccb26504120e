// Package adapter attempts to enable a disabled wireless network adapter.
//
// When interface enumeration comes back empty the adapter is often simply
// disabled. TryEnable runs a short chain of external enable commands: first
// a privileged management-tool invocation filtered by wireless interface
// type, then a list of well-known interface-name enable commands. The first
// success wins; every failure is logged and non-fatal to the next attempt.
package adapter

import (
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/sunfkny/network-watchdog/internal/logging"
)

// command is one external enable attempt.
type command struct {
	name string
	args []string
}

func (c command) String() string {
	return c.name + " " + strings.Join(c.args, " ")
}

// runner executes one enable attempt. Tests substitute a stub.
type runner func(name string, args ...string) error

func runCommand(name string, args ...string) error {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		if trimmed := strings.TrimSpace(string(out)); trimmed != "" {
			return fmt.Errorf("%w: %s", err, trimmed)
		}
		return err
	}
	return nil
}

// tryCommands runs the attempts in order and reports whether any succeeded.
func tryCommands(run runner, attempts []command) bool {
	for _, c := range attempts {
		logging.Info("Trying to enable wireless adapter", zap.String("command", c.String()))
		if err := run(c.name, c.args...); err != nil {
			logging.Info("Enable attempt failed",
				zap.String("command", c.String()),
				zap.Error(err),
			)
			continue
		}
		logging.Info("Enable attempt succeeded", zap.String("command", c.String()))
		return true
	}
	logging.Warn("No wireless adapter could be enabled")
	return false
}

// TryEnable attempts to enable a disabled wireless adapter and reports
// whether any attempt succeeded.
func TryEnable() bool {
	return tryCommands(runCommand, enableAttempts())
}
