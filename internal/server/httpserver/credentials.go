package httpserver

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/addrkeeper/internal/common"
)

const (
	basicPrefix  = "Basic "
	bearerPrefix = "Bearer "
)

// basicCredentials decodes "Basic base64(identifier:secret)". Anything else
// is common.ErrLoginMalformedRequest.
func basicCredentials(header string) (identifier, secret string, err error) {
	encoded, ok := strings.CutPrefix(header, basicPrefix)
	if !ok || encoded == "" {
		return "", "", common.ErrLoginMalformedRequest
	}

	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", common.ErrLoginMalformedRequest
	}

	identifier, secret, ok = strings.Cut(string(decoded), ":")
	if !ok || identifier == "" || secret == "" {
		return "", "", common.ErrLoginMalformedRequest
	}
	return identifier, secret, nil
}

// bearerToken returns the authorization header with an optional "Bearer "
// prefix removed. The rest is passed on verbatim.
func bearerToken(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get(common.AuthorizationHeaderName), bearerPrefix)
}
