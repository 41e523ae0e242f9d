package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/addrkeeper/internal/flagx"
	"github.com/dmitrijs2005/addrkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration. Fields left
// out of the file keep whatever value the Config already had.
type JsonConfig struct {
	EndpointAddrHTTP        *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC        *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN             *string         `json:"database_dsn"`
	SessionValidityDuration *timex.Duration `json:"session_validity_duration"`
	ShutdownTimeout         *timex.Duration `json:"shutdown_timeout"`
	LogLevel                *string         `json:"log_level"`
	LogFormat               *string         `json:"log_format"`
	HashTime                *uint32         `json:"hash_time"`
	HashMemoryKB            *uint32         `json:"hash_memory_kb"`
	HashThreads             *uint8          `json:"hash_threads"`
}

// parseJson overlays values from the JSON file named by -c/-config (or
// $ADDRKEEPER_CONFIG). Without a path it does nothing. An unreadable or
// malformed file panics: the server must not start on a config it could not read.
func parseJson(config *Config) {
	path := flagx.ConfigPath()
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setIf(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setIf(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	setIf(&config.LogLevel, c.LogLevel)
	setIf(&config.LogFormat, c.LogFormat)
	setIf(&config.HashTime, c.HashTime)
	setIf(&config.HashMemoryKB, c.HashMemoryKB)
	setIf(&config.HashThreads, c.HashThreads)
	if c.SessionValidityDuration != nil {
		config.SessionValidityDuration = c.SessionValidityDuration.Duration
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
