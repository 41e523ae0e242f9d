package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/addrkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   base URL of the HTTP API
//	-g string   address and port of the gRPC service
//	-t int      request timeout (in seconds)
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-g", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "base URL of the HTTP API")
	fs.StringVar(&cfg.ServerGRPCAddr, "g", cfg.ServerGRPCAddr, "address and port of the gRPC service")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// -t only overrides when given, so a sub-second JSON value survives.
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
}
