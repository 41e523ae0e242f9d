// Package common contains shared constants and sentinel errors used across
// addrkeeper components.
package common

// AuthorizationHeaderName carries either Basic credentials (login) or the
// access token (every protected call), over HTTP headers and gRPC metadata.
const AuthorizationHeaderName = "authorization"

// AccessTokenHeaderName is the response header the login endpoint uses to
// hand out a freshly issued access token.
const AccessTokenHeaderName = "access-token"
