//go:build !linux
// +build !linux

package transport

import (
	"net"
	"time"
)

// setupSocket is a no-op outside Linux; readOne falls back to stamping
// packets with time.Now() at dequeue time.
func setupSocket(conn *net.UDPConn) error {
	return nil
}

func (s *UDPSource) readOne(buf []byte) (int, time.Time, error) {
	n, _, err := s.conn.ReadFromUDP(buf)
	if err != nil {
		return 0, time.Time{}, err
	}
	return n, time.Now(), nil
}
