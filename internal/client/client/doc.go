// Package client talks to the addrkeeper backend on behalf of the CLI.
//
// HTTPClient speaks the customer/address JSON API and keeps the access token
// handed out by login in memory. GRPCClient calls the internal session
// service to describe the current session.
//
// Failures the server reports with a {code, message} body come back as
// *APIError; transport failures wrap ErrUnavailable.
package client
