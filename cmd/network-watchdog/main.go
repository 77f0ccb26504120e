// Network-watchdog auto-recovers connectivity by reconnecting saved Wi-Fi.
//
// It periodically probes Internet reachability (NCSI-style); when the
// network is down it powers on the Wi-Fi radio, enables the wireless
// adapter if it is disabled, and tries saved Wi-Fi profiles until one
// restores connectivity or all have been tried.
//
// Usage:
//
//	network-watchdog [flags]
//
// Running without flags starts the periodic check loop with the default
// scan-only strategy. See 'network-watchdog --help' for available flags.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sunfkny/network-watchdog/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "network-watchdog",
	Short: "Auto-recover network by connecting to saved Wi-Fi when down",
	Long: `Periodically checks network reachability (NCSI). If unreachable, turns on
the Wi-Fi radio and tries saved Wi-Fi profiles until the network is restored
or all candidates have been tried.

By default only saved profiles matching a currently visible network are
attempted; use --all to try every saved profile, or --profiles to name an
explicit list.`,
	Version:      version.Full(),
	SilenceUsage: true,
	RunE:         runWatch,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("network-watchdog %s\n", version.Full())
	},
}
