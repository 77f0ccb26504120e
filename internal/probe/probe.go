package probe

import (
	"context"
	"net/http"
	"runtime"
	"time"

	probing "github.com/prometheus-community/pro-bing"
	"go.uber.org/zap"

	"github.com/sunfkny/network-watchdog/internal/logging"
)

const (
	// DefaultURL is the Windows NCSI connectivity-check endpoint.
	DefaultURL = "http://www.msftconnecttest.com/connecttest.txt"

	// DefaultTimeout is the default probe request timeout.
	DefaultTimeout = 5 * time.Second
)

// Prober reports whether the Internet is currently reachable.
// It never returns an error: any failure mode (timeout, DNS, refused
// connection) simply means "unreachable".
type Prober func(ctx context.Context) bool

// NewHTTP returns a Prober that issues a single GET against url and reports
// true iff the response has a success-class status. This mirrors the NCSI
// check Windows itself performs.
func NewHTTP(url string, timeout time.Duration) Prober {
	client := &http.Client{Timeout: timeout}

	return func(ctx context.Context) bool {
		logging.Debug("Requesting NCSI endpoint",
			zap.String("url", url),
			zap.Duration("timeout", timeout),
		)

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			logging.Debug("NCSI probe: bad request", zap.Error(err))
			return false
		}

		resp, err := client.Do(req)
		if err != nil {
			logging.Debug("NCSI probe: failed or timeout", zap.Error(err))
			return false
		}
		defer resp.Body.Close()

		// Success class only: captive portals answer with redirects.
		ok := resp.StatusCode >= 200 && resp.StatusCode < 300
		if ok {
			logging.Debug("NCSI probe: OK", zap.Int("status", resp.StatusCode))
		} else {
			logging.Debug("NCSI probe: bad status", zap.Int("status", resp.StatusCode))
		}
		return ok
	}
}

// NewICMP returns a Prober that sends a single echo request to host and
// reports true iff a reply arrives within timeout. Useful on networks where
// the NCSI endpoint is filtered but ICMP is not.
func NewICMP(host string, timeout time.Duration) Prober {
	return func(ctx context.Context) bool {
		pinger, err := probing.NewPinger(host)
		if err != nil {
			logging.Debug("ICMP probe: resolve failed", zap.Error(err))
			return false
		}
		pinger.Count = 1
		pinger.Timeout = timeout
		pinger.SetPrivileged(icmpPrivileged())

		if err := pinger.RunWithContext(ctx); err != nil {
			logging.Debug("ICMP probe: failed", zap.Error(err))
			return false
		}

		stats := pinger.Statistics()
		ok := stats.PacketsRecv > 0
		if ok {
			logging.Debug("ICMP probe: OK",
				zap.String("host", host),
				zap.Duration("rtt", stats.AvgRtt),
			)
		} else {
			logging.Debug("ICMP probe: no reply", zap.String("host", host))
		}
		return ok
	}
}

// icmpPrivileged reports whether the pinger must use raw ICMP sockets.
// Windows has no unprivileged UDP ping; the process is already elevated
// there, so raw sockets work. Elsewhere UDP ping avoids needing
// CAP_NET_RAW.
func icmpPrivileged() bool {
	return runtime.GOOS == "windows"
}
