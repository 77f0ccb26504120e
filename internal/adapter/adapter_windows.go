//go:build windows

package adapter

import "fmt"

// interfaceTypeWireless80211 is NetworkInterfaceType.Wireless80211 (IEEE
// 802.11) from the .NET NetworkInformation enumeration.
const interfaceTypeWireless80211 = 71

// wlanInterfaceNames are the interface names Windows commonly assigns to
// the built-in wireless adapter, tried in order by the netsh fallback.
var wlanInterfaceNames = []string{"Wi-Fi", "WLAN", "Wireless", "Wireless Network Connection"}

func enableAttempts() []command {
	ps := fmt.Sprintf(
		"Get-NetAdapter -ErrorAction SilentlyContinue | Where-Object { $_.InterfaceType -eq %d } | Enable-NetAdapter -Confirm:$false -ErrorAction SilentlyContinue",
		interfaceTypeWireless80211,
	)
	attempts := []command{
		{name: "powershell", args: []string{"-NoProfile", "-NonInteractive", "-Command", ps}},
	}
	for _, name := range wlanInterfaceNames {
		attempts = append(attempts, command{
			name: "netsh",
			args: []string{"interface", "set", "interface", "name=" + name, "admin=enable"},
		})
	}
	return attempts
}
