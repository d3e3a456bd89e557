//go:build linux
// +build linux

package transport

import (
	"net"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// setupSocket turns on SO_TIMESTAMP on the underlying socket so readOne
// can recover the kernel's receive time instead of the time the packet
// happened to be dequeued, the way usock/conn.go reaches through
// SyscallConn to touch the raw file descriptor.
func setupSocket(conn *net.UDPConn) error {
	raw, err := conn.SyscallConn()
	if err != nil {
		return err
	}
	var sockErr error
	err = raw.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_TIMESTAMP, 1)
	})
	if err != nil {
		return err
	}
	return sockErr
}

func (s *UDPSource) readOne(buf []byte) (int, time.Time, error) {
	oob := make([]byte, unix.CmsgSpace(int(unsafe.Sizeof(unix.Timeval{}))))
	n, oobn, _, _, err := s.conn.ReadMsgUDP(buf, oob)
	if err != nil {
		return 0, time.Time{}, err
	}
	if t, ok := parseKernelTimestamp(oob[:oobn]); ok {
		return n, t, nil
	}
	return n, time.Now(), nil
}

// parseKernelTimestamp extracts the SCM_TIMESTAMP control message the
// kernel attaches when SO_TIMESTAMP is enabled.
func parseKernelTimestamp(oob []byte) (time.Time, bool) {
	msgs, err := unix.ParseSocketControlMessage(oob)
	if err != nil {
		return time.Time{}, false
	}
	for _, m := range msgs {
		if m.Header.Level != unix.SOL_SOCKET || m.Header.Type != unix.SO_TIMESTAMP {
			continue
		}
		if len(m.Data) < int(unsafe.Sizeof(unix.Timeval{})) {
			continue
		}
		tv := *(*unix.Timeval)(unsafe.Pointer(&m.Data[0]))
		sec, nsec := tv.Unix()
		return time.Unix(sec, nsec), true
	}
	return time.Time{}, false
}
