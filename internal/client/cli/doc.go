// Package cli provides the interactive addrkeeper command-line client.
//
// It wires configuration, the HTTP API client and the session introspection
// client into a small REPL. The access token issued at login lives only in
// memory and is dropped on logout or exit.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
