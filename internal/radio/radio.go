// Package radio controls the power state of the system's Wi-Fi radio.
//
// EnsureWifiOn enumerates the system radios, finds the wireless one, and
// powers it on when it is off. It returns an error only on platform failure,
// never for "radio already on". On Linux this goes through NetworkManager's
// wireless switch (with an rfkill fallback); on Windows through the software
// radio switch exposed to netsh.
package radio
