// Package config loads the JSON configuration file the server's CLI
// accepts via -c/--config, applying documented defaults when a key
// is absent.
// Grounded in ChickenIQ-VibeShitCraft/cmd/server/main.go's flags-into-
// a-struct shape, adapted to read a JSON file rather than flags alone.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Keepalive holds the heartbeat timer intervals.
type Keepalive struct {
	SendInterval int `json:"send_interval"`
	Timeout      int `json:"timeout"`
}

// Players holds the player-count cap announced on the status response.
type Players struct {
	Max int `json:"max"`
}

// ServerOverride lets a single process listen on multiple addresses
// with per-listener overrides via the `servers` array.
type ServerOverride struct {
	Port int    `json:"port,omitempty"`
	IPv6 *bool  `json:"ipv6,omitempty"`
	Description string `json:"description,omitempty"`
}

// Config is the complete, defaulted server configuration.
type Config struct {
	Port           int              `json:"port"`
	IPv6           bool             `json:"ipv6"`
	MaxConnections int              `json:"max_connections"`
	TimeoutSeconds int              `json:"timeout"`
	Online         bool             `json:"online"`
	Compression    int              `json:"compression"`
	Difficulty     int              `json:"difficulty"`
	Keepalive      Keepalive        `json:"keepalive"`
	Players        Players          `json:"players"`
	Description    string           `json:"description"`
	World          string           `json:"world"`
	DataDir        string           `json:"data_dir"`
	Servers        []ServerOverride `json:"servers,omitempty"`
}

// Default returns the documented default configuration.
func Default() Config {
	return Config{
		Port:           25565,
		IPv6:           true,
		MaxConnections: 32,
		TimeoutSeconds: 15,
		Online:         false,
		Compression:    2,
		Difficulty:     1,
		Keepalive:      Keepalive{SendInterval: 10, Timeout: 30},
		Players:        Players{Max: 10},
		Description:    "A go-mclib server",
		World:          "world",
		DataDir:        "data",
	}
}

// Load reads the JSON file at path and merges it over Default(). A
// missing or malformed file is a fatal configuration error, surfaced
// to the caller to print on stderr and abort startup.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
