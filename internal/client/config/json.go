package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/addrkeeper/internal/flagx"
	"github.com/dmitrijs2005/addrkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the client configuration.
// timex.Duration accepts both "10s" and integer nanoseconds.
type JsonConfig struct {
	ServerEndpointAddr *string         `json:"server_endpoint_addr"`
	ServerGRPCAddr     *string         `json:"server_grpc_addr"`
	RequestTimeout     *timex.Duration `json:"request_timeout"`
}

// parseJson overlays cfg with the JSON file named by -c/-config or
// $ADDRKEEPER_CONFIG. Read and decode failures panic.
func parseJson(cfg *Config) {
	path := flagx.ConfigPath()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != nil {
		cfg.ServerEndpointAddr = *jc.ServerEndpointAddr
	}
	if jc.ServerGRPCAddr != nil {
		cfg.ServerGRPCAddr = *jc.ServerGRPCAddr
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
