package transport

import (
	"net"
	"strconv"
	"testing"
	"time"
)

func TestUDPSourceDeliversPacket(t *testing.T) {
	src, err := ListenUDP("127.0.0.1:0", 4)
	if err != nil {
		t.Fatalf("ListenUDP: %v", err)
	}
	defer src.Close()

	addr := src.conn.LocalAddr().(*net.UDPAddr)
	client, err := net.Dial("udp", net.JoinHostPort("127.0.0.1", strconv.Itoa(addr.Port)))
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer client.Close()

	payload := []byte{2, 0xAA, 0xBB}
	if _, err := client.Write(payload); err != nil {
		t.Fatalf("Write: %v", err)
	}

	select {
	case pkt := <-src.Packets():
		if pkt.NBytes != len(payload) {
			t.Fatalf("NBytes = %d, want %d", pkt.NBytes, len(payload))
		}
		if pkt.RecvTime.IsZero() {
			t.Fatal("RecvTime should be populated")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for packet")
	}
}

func TestUDPSourceCloseStopsReader(t *testing.T) {
	src, err := ListenUDP("127.0.0.1:0", 1)
	if err != nil {
		t.Fatalf("ListenUDP: %v", err)
	}
	if err := src.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	select {
	case _, ok := <-src.Packets():
		if ok {
			t.Fatal("want channel closed, got a packet")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Packets() channel was not closed after Close")
	}
}
