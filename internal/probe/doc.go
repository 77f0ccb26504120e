// Package probe implements the Internet reachability check that both the
// watchdog loop and the recovery engine consult.
//
// A probe answers one question: "is the Internet reachable right now?". The
// default implementation performs an NCSI-style HTTP GET against a
// well-known endpoint; an ICMP variant exists for networks that filter the
// NCSI endpoint. Probes are plain functions so the recovery engine can be
// tested with a stub.
package probe
