package hid

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	profilePath      = dbus.ObjectPath("/org/bluez/handpilot_hid_profile")
	profileManagerIf = "org.bluez.ProfileManager1"
	profileIf        = "org.bluez.Profile1"
)

// profile implements org.bluez.Profile1, the callback interface BlueZ
// invokes once a remote host opens the control channel we registered. We
// only need it to exist on the bus; the actual data path is the raw L2CAP
// sockets opened separately via Listen.
type profile struct{}

func (profile) Release() *dbus.Error { return nil }
func (profile) Cancel() *dbus.Error  { return nil }

func (profile) NewConnection(path dbus.ObjectPath, fd dbus.UnixFD, opts map[string]dbus.Variant) *dbus.Error {
	return nil
}

func (profile) RequestDisconnection(path dbus.ObjectPath) *dbus.Error { return nil }

// Profile owns the D-Bus connection and BlueZ profile registration
// advertising this process as an HID 1.1 device.
type Profile struct {
	conn *dbus.Conn
}

// RegisterProfile connects to the system bus, exports the Profile1 callback
// object, and registers it with BlueZ's ProfileManager1 using the HID
// service record built from the fixed report descriptor.
func RegisterProfile(deviceName string) (*Profile, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("hid: connect system bus: %w", err)
	}

	if err := conn.Export(profile{}, profilePath, profileIf); err != nil {
		conn.Close()
		return nil, fmt.Errorf("hid: export profile object: %w", err)
	}

	opts := map[string]dbus.Variant{
		"ServiceRecord":         dbus.MakeVariant(serviceRecordXML(deviceName)),
		"Role":                  dbus.MakeVariant("server"),
		"RequireAuthentication": dbus.MakeVariant(false),
		"RequireAuthorization":  dbus.MakeVariant(false),
	}

	manager := conn.Object("org.bluez", dbus.ObjectPath("/org/bluez"))
	call := manager.Call(profileManagerIf+".RegisterProfile", 0, profilePath, ServiceClassUUID, opts)
	if call.Err != nil {
		conn.Close()
		return nil, fmt.Errorf("hid: RegisterProfile: %w", call.Err)
	}

	return &Profile{conn: conn}, nil
}

// Close tears down the D-Bus connection.
func (p *Profile) Close() error {
	return p.conn.Close()
}
