// Command netserver is a minimal host loop that wires netconfig,
// transport and sim together: it loads a config file, binds a UDP
// socket, and drains received datagrams into the simulation on a fixed
// tick, the way cmd/snellerd's run_daemon.go parses flags and starts a
// long-lived server loop.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/kstasik/netcode/netconfig"
	"github.com/kstasik/netcode/router"
	"github.com/kstasik/netcode/sim"
	"github.com/kstasik/netcode/transport"
)

func main() {
	configPath := flag.String("c", "netserver.yaml", "path to the server config file")
	flag.Parse()

	logger := log.New(os.Stderr, "", log.Lshortfile)

	cfg, err := netconfig.Load(*configPath)
	if err != nil {
		logger.Fatal(err)
	}

	s := sim.Start(0, cfg.FrameDuration(), cfg.ActorCapacity, cfg.ObjectCapacity, logger)
	r := router.New(s, logger)

	src, err := transport.ListenUDP(cfg.ListenAddr, 256)
	if err != nil {
		logger.Fatal(err)
	}
	defer src.Close()

	logger.Printf("session %s: listening on %s, tick=%s", s.SessionID, cfg.ListenAddr, cfg.FrameDuration())
	runLoop(s, r, src, cfg.FrameDuration())
}

// runLoop steps the simulation on a fixed ticker while draining whatever
// datagrams arrived since the last tick, so a burst of packets never
// blocks the tick from firing on schedule.
func runLoop(s *sim.Simulation, r *router.Router, src transport.PacketSource, frameDuration time.Duration) {
	ticker := time.NewTicker(frameDuration)
	defer ticker.Stop()

	for {
		select {
		case pkt, ok := <-src.Packets():
			if !ok {
				return
			}
			r.Read(pkt.Buffer[:pkt.NBytes], s.Head())
		case <-ticker.C:
			s.Update(frameDuration)
		}
	}
}
