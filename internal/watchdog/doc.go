// Package watchdog runs the outer check-and-recover loop: probe
// reachability on a fixed cadence and, when the network is down, power on
// the radio and run one recovery pass. It holds no state across cycles; the
// recovery core lives in package wlan.
package watchdog
