//go:build windows

package radio

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sunfkny/network-watchdog/internal/logging"
)

// radioOnScript drives the WinRT radio API from PowerShell: enumerate the
// system radios, find the Wi-Fi-kind ones, and switch any that are off to
// On. WinRT async operations need the WindowsRuntime marshaling assembly
// loaded first.
const radioOnScript = `
Add-Type -AssemblyName System.Runtime.WindowsRuntime
$asTask = ([System.WindowsRuntimeSystemExtensions].GetMethods() | Where-Object { $_.Name -eq 'AsTask' -and $_.GetParameters().Count -eq 1 -and $_.GetParameters()[0].ParameterType.Name -eq 'IAsyncOperation` + "`" + `1' })[0]
Function Await($op, $resultType) {
  $task = $asTask.MakeGenericMethod($resultType).Invoke($null, @($op))
  $task.Wait() | Out-Null
  $task.Result
}
[Windows.Devices.Radios.Radio,Windows.System.Devices,ContentType=WindowsRuntime] | Out-Null
$radios = Await ([Windows.Devices.Radios.Radio]::GetRadiosAsync()) ([System.Collections.Generic.IReadOnlyList[Windows.Devices.Radios.Radio]])
$wifi = $radios | Where-Object { $_.Kind -eq 'WiFi' }
if (-not $wifi) { Write-Output 'no-wifi-radio'; exit 0 }
foreach ($r in $wifi) {
  if ($r.State -ne 'On') {
    Await ($r.SetStateAsync('On')) ([Windows.Devices.Radios.RadioAccessStatus]) | Out-Null
    Write-Output 'turned-on'
  } else {
    Write-Output 'already-on'
  }
}
`

// EnsureWifiOn powers on the Wi-Fi radio if it is currently off.
func EnsureWifiOn(ctx context.Context) error {
	logging.Info("Getting system radio list...")
	out, err := exec.CommandContext(ctx,
		"powershell", "-NoProfile", "-NonInteractive", "-Command", radioOnScript,
	).CombinedOutput()
	if err != nil {
		return fmt.Errorf("radio power-on script failed: %w (%s)", err, strings.TrimSpace(string(out)))
	}

	result := strings.TrimSpace(string(out))
	switch {
	case strings.Contains(result, "no-wifi-radio"):
		logging.Warn("No Wi-Fi radio found")
	case strings.Contains(result, "turned-on"):
		logging.Info("Wi-Fi radio on")
	default:
		logging.Info("Wi-Fi already on, skip")
	}
	return nil
}
