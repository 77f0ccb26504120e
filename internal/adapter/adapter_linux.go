//go:build linux

package adapter

// wlanInterfaceNames are common kernel names for the wireless interface,
// tried in order by the ip-link fallback when NetworkManager cannot help.
var wlanInterfaceNames = []string{"wlan0", "wlp2s0", "wlp3s0", "wlo1"}

func enableAttempts() []command {
	attempts := []command{
		{name: "nmcli", args: []string{"radio", "wifi", "on"}},
	}
	for _, name := range wlanInterfaceNames {
		attempts = append(attempts, command{
			name: "ip",
			args: []string{"link", "set", name, "up"},
		})
	}
	return attempts
}
