//go:build windows

package wlan

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Native WLAN API bindings. The API hands back lists in wlanapi-owned
// buffers that must be released with WlanFreeMemory; every accessor below
// copies the values it needs out of the buffer before freeing it.
var (
	wlanapi = windows.NewLazySystemDLL("wlanapi.dll")

	procWlanOpenHandle              = wlanapi.NewProc("WlanOpenHandle")
	procWlanCloseHandle             = wlanapi.NewProc("WlanCloseHandle")
	procWlanEnumInterfaces          = wlanapi.NewProc("WlanEnumInterfaces")
	procWlanGetProfileList          = wlanapi.NewProc("WlanGetProfileList")
	procWlanGetAvailableNetworkList = wlanapi.NewProc("WlanGetAvailableNetworkList")
	procWlanScan                    = wlanapi.NewProc("WlanScan")
	procWlanConnect                 = wlanapi.NewProc("WlanConnect")
	procWlanQueryInterface          = wlanapi.NewProc("WlanQueryInterface")
	procWlanFreeMemory              = wlanapi.NewProc("WlanFreeMemory")
)

const (
	wlanClientVersion2 = 2

	wlanConnectionModeProfile = 0
	dot11BssTypeAny           = 3

	wlanIntfOpcodeInterfaceState = 6

	// wlan_interface_state values
	wlanInterfaceStateNotReady       = 0
	wlanInterfaceStateConnected      = 1
	wlanInterfaceStateDisconnecting  = 3
	wlanInterfaceStateDisconnected   = 4
	wlanInterfaceStateAssociating    = 5
	wlanInterfaceStateDiscovering    = 6
	wlanInterfaceStateAuthenticating = 7
)

type dot11SSID struct {
	Length uint32
	SSID   [32]byte
}

type wlanInterfaceInfo struct {
	InterfaceGUID        windows.GUID
	InterfaceDescription [256]uint16
	State                uint32
}

type wlanInterfaceInfoList struct {
	NumberOfItems uint32
	Index         uint32
	InterfaceInfo [1]wlanInterfaceInfo
}

type wlanProfileInfo struct {
	ProfileName [256]uint16
	Flags       uint32
}

type wlanProfileInfoList struct {
	NumberOfItems uint32
	Index         uint32
	ProfileInfo   [1]wlanProfileInfo
}

type wlanAvailableNetwork struct {
	ProfileName            [256]uint16
	Dot11SSID              dot11SSID
	BSSType                uint32
	NumberOfBSSIDs         uint32
	NetworkConnectable     int32
	NotConnectableReason   uint32
	NumberOfPhyTypes       uint32
	Dot11PhyTypes          [8]uint32
	MorePhyTypes           int32
	SignalQuality          uint32
	SecurityEnabled        int32
	DefaultAuthAlgorithm   uint32
	DefaultCipherAlgorithm uint32
	Flags                  uint32
	Reserved               uint32
}

type wlanAvailableNetworkList struct {
	NumberOfItems uint32
	Index         uint32
	Network       [1]wlanAvailableNetwork
}

type wlanConnectionParameters struct {
	ConnectionMode   uint32
	Profile          *uint16
	Dot11SSID        *dot11SSID
	DesiredBSSIDList uintptr
	BSSType          uint32
	Flags            uint32
}

// winSession is the wlanapi-backed Session. Interfaces are identified by
// GUID; the GUID-by-ID map lives only as long as the session, matching the
// interface validity window.
type winSession struct {
	handle windows.Handle
	guids  map[string]windows.GUID
}

// Open acquires a WLAN client handle. Fails when the WLAN AutoConfig
// service is not running.
func Open() (Session, error) {
	var negotiated uint32
	var handle windows.Handle
	ret, _, _ := procWlanOpenHandle.Call(
		uintptr(wlanClientVersion2),
		0,
		uintptr(unsafe.Pointer(&negotiated)),
		uintptr(unsafe.Pointer(&handle)),
	)
	if ret != 0 {
		return nil, &SessionOpenError{Err: fmt.Errorf("WlanOpenHandle failed: %w", windows.Errno(ret))}
	}
	return &winSession{handle: handle, guids: make(map[string]windows.GUID)}, nil
}

func (s *winSession) Interfaces() ([]Interface, error) {
	var list *wlanInterfaceInfoList
	ret, _, _ := procWlanEnumInterfaces.Call(
		uintptr(s.handle),
		0,
		uintptr(unsafe.Pointer(&list)),
	)
	if ret != 0 {
		return nil, fmt.Errorf("WlanEnumInterfaces failed: %w", windows.Errno(ret))
	}
	defer freeWlanMemory(unsafe.Pointer(list))

	count := int(list.NumberOfItems)
	base := unsafe.Pointer(&list.InterfaceInfo[0])
	size := unsafe.Sizeof(list.InterfaceInfo[0])

	ifaces := make([]Interface, 0, count)
	for i := 0; i < count; i++ {
		info := (*wlanInterfaceInfo)(unsafe.Pointer(uintptr(base) + uintptr(i)*size))
		id := info.InterfaceGUID.String()
		s.guids[id] = info.InterfaceGUID
		ifaces = append(ifaces, Interface{
			ID:   id,
			Name: windows.UTF16ToString(info.InterfaceDescription[:]),
		})
	}
	return ifaces, nil
}

func (s *winSession) SavedProfiles(iface Interface) ([]string, error) {
	guid, err := s.guid(iface)
	if err != nil {
		return nil, &ProfileQueryError{Interface: iface, Err: err}
	}

	var list *wlanProfileInfoList
	ret, _, _ := procWlanGetProfileList.Call(
		uintptr(s.handle),
		uintptr(unsafe.Pointer(&guid)),
		0,
		uintptr(unsafe.Pointer(&list)),
	)
	if ret != 0 {
		return nil, &ProfileQueryError{Interface: iface, Err: fmt.Errorf("WlanGetProfileList failed: %w", windows.Errno(ret))}
	}
	defer freeWlanMemory(unsafe.Pointer(list))

	count := int(list.NumberOfItems)
	base := unsafe.Pointer(&list.ProfileInfo[0])
	size := unsafe.Sizeof(list.ProfileInfo[0])

	profiles := make([]string, 0, count)
	for i := 0; i < count; i++ {
		info := (*wlanProfileInfo)(unsafe.Pointer(uintptr(base) + uintptr(i)*size))
		profiles = append(profiles, windows.UTF16ToString(info.ProfileName[:]))
	}
	return profiles, nil
}

func (s *winSession) Scan(iface Interface) error {
	guid, err := s.guid(iface)
	if err != nil {
		return &ProfileQueryError{Interface: iface, Err: err}
	}
	ret, _, _ := procWlanScan.Call(
		uintptr(s.handle),
		uintptr(unsafe.Pointer(&guid)),
		0, 0, 0,
	)
	if ret != 0 {
		return &ProfileQueryError{Interface: iface, Err: fmt.Errorf("WlanScan failed: %w", windows.Errno(ret))}
	}
	return nil
}

func (s *winSession) VisibleNetworks(iface Interface) (map[string]struct{}, error) {
	guid, err := s.guid(iface)
	if err != nil {
		return nil, &ProfileQueryError{Interface: iface, Err: err}
	}

	var list *wlanAvailableNetworkList
	ret, _, _ := procWlanGetAvailableNetworkList.Call(
		uintptr(s.handle),
		uintptr(unsafe.Pointer(&guid)),
		0,
		0,
		uintptr(unsafe.Pointer(&list)),
	)
	if ret != 0 {
		return nil, &ProfileQueryError{Interface: iface, Err: fmt.Errorf("WlanGetAvailableNetworkList failed: %w", windows.Errno(ret))}
	}
	defer freeWlanMemory(unsafe.Pointer(list))

	count := int(list.NumberOfItems)
	base := unsafe.Pointer(&list.Network[0])
	size := unsafe.Sizeof(list.Network[0])

	// Union of broadcast SSIDs and matched saved-profile names. The SSID
	// can be arbitrary bytes; treat it as a lossy string.
	visible := make(map[string]struct{})
	for i := 0; i < count; i++ {
		network := (*wlanAvailableNetwork)(unsafe.Pointer(uintptr(base) + uintptr(i)*size))
		if name := windows.UTF16ToString(network.ProfileName[:]); name != "" {
			visible[name] = struct{}{}
		}
		length := network.Dot11SSID.Length
		if length > 32 {
			length = 32
		}
		if ssid := string(network.Dot11SSID.SSID[:length]); ssid != "" {
			visible[ssid] = struct{}{}
		}
	}
	return visible, nil
}

func (s *winSession) Connect(iface Interface, profile string) error {
	guid, err := s.guid(iface)
	if err != nil {
		return &ConnectRequestError{Profile: profile, Err: err}
	}
	wide, err := windows.UTF16PtrFromString(profile)
	if err != nil {
		return &ConnectRequestError{Profile: profile, Err: err}
	}

	params := wlanConnectionParameters{
		ConnectionMode: wlanConnectionModeProfile,
		Profile:        wide,
		BSSType:        dot11BssTypeAny,
	}
	ret, _, _ := procWlanConnect.Call(
		uintptr(s.handle),
		uintptr(unsafe.Pointer(&guid)),
		uintptr(unsafe.Pointer(&params)),
		0,
	)
	if ret != 0 {
		return &ConnectRequestError{Profile: profile, Err: fmt.Errorf("WlanConnect failed: %w", windows.Errno(ret))}
	}
	return nil
}

func (s *winSession) State(iface Interface) (InterfaceState, bool) {
	guid, err := s.guid(iface)
	if err != nil {
		return StateUnknown, false
	}

	var size uint32
	var data unsafe.Pointer
	ret, _, _ := procWlanQueryInterface.Call(
		uintptr(s.handle),
		uintptr(unsafe.Pointer(&guid)),
		uintptr(wlanIntfOpcodeInterfaceState),
		0,
		uintptr(unsafe.Pointer(&size)),
		uintptr(unsafe.Pointer(&data)),
		0,
	)
	if ret != 0 || data == nil {
		return StateUnknown, false
	}
	state := *(*uint32)(data)
	freeWlanMemory(data)

	switch state {
	case wlanInterfaceStateConnected:
		return StateConnected, true
	case wlanInterfaceStateAssociating, wlanInterfaceStateDiscovering:
		return StateAssociating, true
	case wlanInterfaceStateAuthenticating:
		return StateAuthenticating, true
	case wlanInterfaceStateDisconnected, wlanInterfaceStateDisconnecting, wlanInterfaceStateNotReady:
		return StateDisconnected, true
	default:
		return StateUnknown, true
	}
}

func (s *winSession) Close() error {
	if s.handle == 0 {
		return nil
	}
	ret, _, _ := procWlanCloseHandle.Call(uintptr(s.handle), 0)
	s.handle = 0
	if ret != 0 {
		return fmt.Errorf("WlanCloseHandle failed: %w", windows.Errno(ret))
	}
	return nil
}

func (s *winSession) guid(iface Interface) (windows.GUID, error) {
	if guid, ok := s.guids[iface.ID]; ok {
		return guid, nil
	}
	// Interface from a previous enumeration within the same session.
	return windows.GUIDFromString(iface.ID)
}

func freeWlanMemory(p unsafe.Pointer) {
	if p != nil {
		procWlanFreeMemory.Call(uintptr(p))
	}
}
