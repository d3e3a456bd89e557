package transport

import (
	"net"
	"sync/atomic"

	"github.com/kstasik/netcode/router"
)

// UDPSource reads datagrams from a single UDP socket on a background
// goroutine and makes them available through Packets. Closing it
// unblocks the pending read the way closing any net.Conn does in Go:
// the blocked read returns a "use of closed network connection"
// error, which the reader goroutine treats as a shutdown signal rather
// than a transport fault.
type UDPSource struct {
	conn    *net.UDPConn
	packets chan Packet
	closed  int32
}

// ListenUDP binds addr and starts the background reader. backlog sizes
// the Packets channel; a slow consumer drops the oldest undelivered
// packet rather than blocking the reader goroutine, matching the
// "prefer freshest input" stance the simulation kernel takes elsewhere.
func ListenUDP(addr string, backlog int) (*UDPSource, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}
	conn, err := net.ListenUDP("udp", udpAddr)
	if err != nil {
		return nil, err
	}
	if err := setupSocket(conn); err != nil {
		conn.Close()
		return nil, err
	}
	s := &UDPSource{
		conn:    conn,
		packets: make(chan Packet, backlog),
	}
	go s.readLoop()
	return s, nil
}

func (s *UDPSource) readLoop() {
	defer close(s.packets)
	// one spare byte lets an oversize datagram show up as n > max
	// instead of being silently truncated to fit.
	buf := make([]byte, router.MaxDatagramSize+1)
	for {
		n, recvTime, err := s.readOne(buf)
		if err != nil {
			if atomic.LoadInt32(&s.closed) != 0 {
				return
			}
			continue
		}
		if n > router.MaxDatagramSize {
			continue
		}
		cp := make([]byte, n)
		copy(cp, buf[:n])
		pkt := Packet{RecvTime: recvTime, NBytes: n, Buffer: cp}
		select {
		case s.packets <- pkt:
		default:
			select {
			case <-s.packets:
			default:
			}
			select {
			case s.packets <- pkt:
			default:
			}
		}
	}
}

// Packets returns the channel packets are delivered on. It is closed
// once the reader goroutine observes Close.
func (s *UDPSource) Packets() <-chan Packet {
	return s.packets
}

// Close stops the background reader and releases the socket.
func (s *UDPSource) Close() error {
	atomic.StoreInt32(&s.closed, 1)
	return s.conn.Close()
}
