//go:build linux

package wlan

import (
	"fmt"

	"github.com/Wifx/gonetworkmanager"
	"github.com/godbus/dbus/v5"
)

// nmSession is the NetworkManager-backed Session, talking to the daemon over
// the system D-Bus. Saved profiles are NetworkManager connection profiles of
// type 802-11-wireless, identified by their connection id.
type nmSession struct {
	nm       gonetworkmanager.NetworkManager
	settings gonetworkmanager.Settings
}

// Open acquires a NetworkManager session. Fails when the daemon is not
// running or the system bus is unreachable.
func Open() (Session, error) {
	nm, err := gonetworkmanager.NewNetworkManager()
	if err != nil {
		return nil, &SessionOpenError{Err: err}
	}
	settings, err := gonetworkmanager.NewSettings()
	if err != nil {
		return nil, &SessionOpenError{Err: err}
	}
	return &nmSession{nm: nm, settings: settings}, nil
}

func (s *nmSession) Interfaces() ([]Interface, error) {
	devices, err := s.nm.GetPropertyAllDevices()
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	var ifaces []Interface
	for _, device := range devices {
		deviceType, err := device.GetPropertyDeviceType()
		if err != nil {
			continue
		}
		if deviceType != gonetworkmanager.NmDeviceTypeWifi {
			continue
		}
		name, _ := device.GetPropertyInterface()
		ifaces = append(ifaces, Interface{
			ID:   string(device.GetPath()),
			Name: name,
		})
	}
	return ifaces, nil
}

func (s *nmSession) SavedProfiles(iface Interface) ([]string, error) {
	connections, err := s.settings.ListConnections()
	if err != nil {
		return nil, &ProfileQueryError{Interface: iface, Err: err}
	}

	var profiles []string
	for _, conn := range connections {
		id, typ, _, err := connectionIdentity(conn)
		if err != nil {
			continue
		}
		if typ != "802-11-wireless" || id == "" {
			continue
		}
		profiles = append(profiles, id)
	}
	return profiles, nil
}

func (s *nmSession) Scan(iface Interface) error {
	wireless, err := gonetworkmanager.NewDeviceWireless(dbus.ObjectPath(iface.ID))
	if err != nil {
		return &ProfileQueryError{Interface: iface, Err: err}
	}
	return wireless.RequestScan()
}

func (s *nmSession) VisibleNetworks(iface Interface) (map[string]struct{}, error) {
	wireless, err := gonetworkmanager.NewDeviceWireless(dbus.ObjectPath(iface.ID))
	if err != nil {
		return nil, &ProfileQueryError{Interface: iface, Err: err}
	}
	accessPoints, err := wireless.GetPropertyAccessPoints()
	if err != nil {
		return nil, &ProfileQueryError{Interface: iface, Err: err}
	}

	visible := make(map[string]struct{})
	for _, ap := range accessPoints {
		ssid, err := ap.GetPropertySSID()
		if err != nil || ssid == "" {
			continue
		}
		visible[ssid] = struct{}{}
	}

	// A saved profile's id need not equal its SSID; report profiles whose
	// configured SSID is in range under their id as well, so the selector
	// can match either identity.
	connections, err := s.settings.ListConnections()
	if err != nil {
		return visible, nil
	}
	for _, conn := range connections {
		id, typ, ssid, err := connectionIdentity(conn)
		if err != nil || typ != "802-11-wireless" || id == "" {
			continue
		}
		if _, inRange := visible[ssid]; inRange {
			visible[id] = struct{}{}
		}
	}
	return visible, nil
}

func (s *nmSession) Connect(iface Interface, profile string) error {
	device, err := gonetworkmanager.NewDevice(dbus.ObjectPath(iface.ID))
	if err != nil {
		return &ConnectRequestError{Profile: profile, Err: err}
	}

	connections, err := s.settings.ListConnections()
	if err != nil {
		return &ConnectRequestError{Profile: profile, Err: err}
	}
	for _, conn := range connections {
		id, typ, _, err := connectionIdentity(conn)
		if err != nil || typ != "802-11-wireless" {
			continue
		}
		if id != profile {
			continue
		}
		// Activation is asynchronous; a nil error means the request was
		// accepted, and the engine polls State for the result.
		if _, err := s.nm.ActivateConnection(conn, device, nil); err != nil {
			return &ConnectRequestError{Profile: profile, Err: err}
		}
		return nil
	}
	return &ConnectRequestError{Profile: profile, Err: fmt.Errorf("no saved connection with id %q", profile)}
}

func (s *nmSession) State(iface Interface) (InterfaceState, bool) {
	device, err := gonetworkmanager.NewDevice(dbus.ObjectPath(iface.ID))
	if err != nil {
		return StateUnknown, false
	}
	state, err := device.GetPropertyState()
	if err != nil {
		return StateUnknown, false
	}

	switch state {
	case gonetworkmanager.NmDeviceStateActivated:
		return StateConnected, true
	case gonetworkmanager.NmDeviceStateNeedAuth:
		return StateAuthenticating, true
	case gonetworkmanager.NmDeviceStatePrepare,
		gonetworkmanager.NmDeviceStateConfig,
		gonetworkmanager.NmDeviceStateIpConfig,
		gonetworkmanager.NmDeviceStateIpCheck,
		gonetworkmanager.NmDeviceStateSecondaries:
		return StateAssociating, true
	case gonetworkmanager.NmDeviceStateDisconnected,
		gonetworkmanager.NmDeviceStateUnavailable,
		gonetworkmanager.NmDeviceStateFailed,
		gonetworkmanager.NmDeviceStateDeactivating:
		return StateDisconnected, true
	default:
		return StateUnknown, true
	}
}

// Close releases the session. The D-Bus connection is shared process-wide by
// the NetworkManager bindings, so there is no per-session handle to free.
func (s *nmSession) Close() error {
	s.nm = nil
	s.settings = nil
	return nil
}

// connectionIdentity extracts the profile id, connection type, and
// configured SSID of a NetworkManager connection. The SSID is stored as a
// byte array in the 802-11-wireless settings group.
func connectionIdentity(conn gonetworkmanager.Connection) (id, typ, ssid string, err error) {
	settings, err := conn.GetSettings()
	if err != nil {
		return "", "", "", err
	}
	if meta, ok := settings["connection"]; ok {
		if v, ok := meta["id"].(string); ok {
			id = v
		}
		if v, ok := meta["type"].(string); ok {
			typ = v
		}
	}
	if wireless, ok := settings["802-11-wireless"]; ok {
		if raw, ok := wireless["ssid"].([]byte); ok {
			ssid = string(raw)
		}
	}
	return id, typ, ssid, nil
}
