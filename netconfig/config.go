// Package netconfig loads the startup parameters for a server-side
// simulation from a YAML document: tick rate, actor/object capacity and
// the UDP address to listen on.
package netconfig

import (
	"fmt"
	"os"
	"time"

	"sigs.k8s.io/yaml"
)

// Config is the decoded form of a server's configuration file.
type Config struct {
	// TickRateHz is the fixed simulation rate. Must be positive.
	TickRateHz int `json:"tick_rate_hz"`
	// ActorCapacity bounds how many actors may be live at once.
	ActorCapacity int16 `json:"actor_capacity"`
	// ObjectCapacity bounds how many world objects may be live at once.
	// Zero means the world admits no objects.
	ObjectCapacity int16 `json:"object_capacity"`
	// ListenAddr is the UDP address to bind, e.g. "0.0.0.0:7777".
	ListenAddr string `json:"listen_addr"`
}

// FrameDuration returns the fixed tick period implied by TickRateHz.
func (c *Config) FrameDuration() time.Duration {
	return time.Second / time.Duration(c.TickRateHz)
}

// Validate reports the first problem found with c, or nil if c is usable.
func (c *Config) Validate() error {
	if c.TickRateHz <= 0 {
		return fmt.Errorf("netconfig: tick_rate_hz must be positive, got %d", c.TickRateHz)
	}
	if c.ActorCapacity <= 0 {
		return fmt.Errorf("netconfig: actor_capacity must be positive, got %d", c.ActorCapacity)
	}
	if c.ObjectCapacity < 0 {
		return fmt.Errorf("netconfig: object_capacity must not be negative, got %d", c.ObjectCapacity)
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("netconfig: listen_addr is required")
	}
	return nil
}

// Load reads and decodes a Config from path, then validates it.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("netconfig: reading %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes a Config from a YAML (or JSON, since YAML is a JSON
// superset) document and validates it.
func Parse(raw []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("netconfig: decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
