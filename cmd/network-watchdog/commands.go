package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sunfkny/network-watchdog/internal/adapter"
	"github.com/sunfkny/network-watchdog/internal/admin"
	"github.com/sunfkny/network-watchdog/internal/config"
	"github.com/sunfkny/network-watchdog/internal/logging"
	"github.com/sunfkny/network-watchdog/internal/probe"
	"github.com/sunfkny/network-watchdog/internal/radio"
	"github.com/sunfkny/network-watchdog/internal/watchdog"
	"github.com/sunfkny/network-watchdog/internal/wlan"
)

// Watchdog flags. File values from --config sit below these; compiled-in
// defaults below both.
var (
	once         bool
	interval     int
	probeURL     string
	probeTimeout int
	probeMode    string
	probeHost    string
	tryAll       bool
	profileNames []string
	logLevel     string
	configPath   string
)

func init() {
	defaults := config.Default()

	rootCmd.Flags().BoolVarP(&once, "once", "1", false, "Check network once, try recovery once if down, then exit (no loop)")
	rootCmd.Flags().IntVar(&interval, "interval", defaults.Interval, "Check interval in seconds")
	rootCmd.Flags().StringVar(&probeURL, "probe-url", defaults.ProbeURL, "NCSI probe URL")
	rootCmd.Flags().IntVar(&probeTimeout, "probe-timeout", defaults.ProbeTimeout, "Probe timeout in seconds")
	rootCmd.Flags().StringVar(&probeMode, "probe-mode", defaults.ProbeMode, "Probe implementation (http, icmp)")
	rootCmd.Flags().StringVar(&probeHost, "probe-host", defaults.ProbeHost, "Target host for the icmp probe")
	rootCmd.Flags().BoolVar(&tryAll, "all", false, "Try all saved Wi-Fi profiles (no \"visible only\" filter)")
	rootCmd.Flags().StringSliceVar(&profileNames, "profiles", nil, "Only try these saved profile names (comma-separated or repeated)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log verbosity (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default: platform config dir)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	settings, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, &settings)
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := logging.Initialize(settings.LogLevel); err != nil {
		return err
	}
	defer logging.Sync()

	if err := admin.EnsureElevated(); err != nil {
		return err
	}

	strategy := connectStrategy(settings)
	prober := buildProber(settings)
	engine := wlan.NewEngine(wlan.Open, prober, adapter.TryEnable, strategy)

	w := &watchdog.Watchdog{
		Probe:       prober,
		EnsureRadio: radio.EnsureWifiOn,
		Recover:     engine.Recover,
		Interval:    settings.IntervalDuration(),
		Once:        once,
	}

	mode := "loop"
	if once {
		mode = "single run"
	}
	logging.Info("Network watchdog started",
		zap.String("strategy", strategy.String()),
		zap.String("mode", mode),
	)
	if !once {
		logging.Info("Checking network periodically",
			zap.Duration("interval", settings.IntervalDuration()))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return w.Run(ctx)
}

// applyFlagOverrides copies explicitly-set flags over file-loaded settings.
func applyFlagOverrides(cmd *cobra.Command, settings *config.Settings) {
	flags := cmd.Flags()
	if flags.Changed("interval") {
		settings.Interval = interval
	}
	if flags.Changed("probe-url") {
		settings.ProbeURL = probeURL
	}
	if flags.Changed("probe-timeout") {
		settings.ProbeTimeout = probeTimeout
	}
	if flags.Changed("probe-mode") {
		settings.ProbeMode = probeMode
	}
	if flags.Changed("probe-host") {
		settings.ProbeHost = probeHost
	}
	if flags.Changed("all") {
		settings.All = tryAll
	}
	if flags.Changed("profiles") {
		settings.Profiles = profileNames
	}
	if flags.Changed("log-level") {
		settings.LogLevel = logLevel
	}
}

// connectStrategy resolves the strategy flags: an explicit profile list wins
// over --all, which wins over the scan-only default.
func connectStrategy(settings config.Settings) wlan.Strategy {
	if len(settings.Profiles) > 0 {
		return wlan.ExplicitStrategy(settings.Profiles)
	}
	if settings.All {
		return wlan.AllStrategy()
	}
	return wlan.ScanOnlyStrategy()
}

func buildProber(settings config.Settings) probe.Prober {
	if settings.ProbeMode == "icmp" {
		return probe.NewICMP(settings.ProbeHost, settings.ProbeTimeoutDuration())
	}
	return probe.NewHTTP(settings.ProbeURL, settings.ProbeTimeoutDuration())
}
