package netconfig

import (
	"testing"
	"time"
)

func TestParseValid(t *testing.T) {
	doc := []byte(`
tick_rate_hz: 60
actor_capacity: 64
object_capacity: 256
listen_addr: "0.0.0.0:7777"
`)
	cfg, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.TickRateHz != 60 {
		t.Fatalf("TickRateHz = %d, want 60", cfg.TickRateHz)
	}
	if got, want := cfg.FrameDuration(), time.Second/60; got != want {
		t.Fatalf("FrameDuration() = %v, want %v", got, want)
	}
}

func TestParseRejectsZeroTickRate(t *testing.T) {
	doc := []byte(`
tick_rate_hz: 0
actor_capacity: 1
listen_addr: "0.0.0.0:7777"
`)
	if _, err := Parse(doc); err == nil {
		t.Fatal("want error for zero tick_rate_hz")
	}
}

func TestParseRejectsMissingListenAddr(t *testing.T) {
	doc := []byte(`
tick_rate_hz: 30
actor_capacity: 1
`)
	if _, err := Parse(doc); err == nil {
		t.Fatal("want error for missing listen_addr")
	}
}

func TestParseRejectsNegativeObjectCapacity(t *testing.T) {
	doc := []byte(`
tick_rate_hz: 30
actor_capacity: 1
object_capacity: -1
listen_addr: "0.0.0.0:7777"
`)
	if _, err := Parse(doc); err == nil {
		t.Fatal("want error for negative object_capacity")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/config.yaml"); err == nil {
		t.Fatal("want error for missing file")
	}
}
