package hid

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Control and Interrupt PSMs a BlueZ HID host listens on, per the Bluetooth
// HID profile spec.
const (
	PSMControl   = 17
	PSMInterrupt = 19
)

// Listener is one bound, listening L2CAP SEQPACKET socket. Channel wraps the
// fd returned by Accept with a net.Conn-shaped Read/Write/Close surface.
type Listener struct {
	fd int
}

// Listen binds and listens on the given PSM against BDADDR_ANY, the local
// adapter's any-address, mirroring a BlueZ HID profile's control/interrupt
// socket setup.
func Listen(psm int) (*Listener, error) {
	fd, err := unix.Socket(unix.AF_BLUETOOTH, unix.SOCK_SEQPACKET, unix.BTPROTO_L2CAP)
	if err != nil {
		return nil, fmt.Errorf("hid: socket: %w", err)
	}

	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("hid: setsockopt SO_REUSEADDR: %w", err)
	}

	sa := &unix.SockaddrL2{PSM: uint16(psm)}
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("hid: bind psm %d: %w", psm, err)
	}

	if err := unix.Listen(fd, 1); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("hid: listen psm %d: %w", psm, err)
	}

	return &Listener{fd: fd}, nil
}

// Accept blocks for one incoming connection and returns a Channel wrapping
// it.
func (l *Listener) Accept() (*Channel, error) {
	nfd, _, err := unix.Accept(l.fd)
	if err != nil {
		return nil, fmt.Errorf("hid: accept: %w", err)
	}
	return &Channel{fd: nfd}, nil
}

// Close closes the listening socket.
func (l *Listener) Close() error {
	return unix.Close(l.fd)
}

// Channel is one accepted L2CAP connection (control or interrupt).
type Channel struct {
	fd int
}

// Send writes one HID report to the channel.
func (c *Channel) Send(report []byte) error {
	return unix.Send(c.fd, report, 0)
}

// Close closes the connection.
func (c *Channel) Close() error {
	return unix.Close(c.fd)
}
