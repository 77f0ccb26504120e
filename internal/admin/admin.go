// Package admin checks whether the process has the privileges the recovery
// engine needs. Toggling radios and enabling adapters requires administrator
// rights on Windows; on Linux, NetworkManager mediates access via polkit so
// root is recommended but not required.
package admin
