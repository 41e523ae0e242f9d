// Package config loads settings for the addrkeeper command-line client.
package config

import "time"

// Config holds runtime settings for the addrkeeper CLI.
//
// Fields:
//   - ServerEndpointAddr: base URL of the HTTP API.
//   - ServerGRPCAddr: host:port of the session introspection service.
//   - RequestTimeout: upper bound for a single call to the backend.
type Config struct {
	ServerEndpointAddr string
	ServerGRPCAddr     string
	RequestTimeout     time.Duration
}

// LoadDefaults populates c with local development defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8080"
	c.ServerGRPCAddr = "127.0.0.1:50051"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
