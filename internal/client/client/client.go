package client

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/addrkeeper/internal/common"
	"github.com/dmitrijs2005/addrkeeper/internal/netx"
	"github.com/dmitrijs2005/addrkeeper/internal/shared"
)

// HTTPClient is safe for concurrent use.
type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Token returns the access token of the current login, if any.
func (c *HTTPClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) setToken(t string) {
	c.mu.Lock()
	c.token = t
	c.mu.Unlock()
}

// sessionGoneCodes are the gate rejections after which a token can never
// succeed again.
var sessionGoneCodes = map[string]bool{
	"ATHR-001": true,
	"ATHR-002": true,
	"ATHR-003": true,
}

// dropDeadToken forgets token if err says the server no longer accepts it.
// A token replaced by a newer login in the meantime is kept.
func (c *HTTPClient) dropDeadToken(token string, err error) {
	if !sessionGoneCodes[ErrorCode(err)] {
		return
	}
	c.mu.Lock()
	if c.token == token {
		c.token = ""
	}
	c.mu.Unlock()
}

func (c *HTTPClient) Signup(ctx context.Context, req shared.SignupCustomerRequest) (*shared.StatusResponse, error) {
	var out shared.StatusResponse
	if err := c.do(ctx, http.MethodPost, "/customer/signup", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates with Basic credentials and keeps the issued token.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*shared.LoginResponse, error) {
	cred := base64.StdEncoding.EncodeToString([]byte(email + ":" + password))
	h := http.Header{}
	h.Set(common.AuthorizationHeaderName, "Basic "+cred)

	var out shared.LoginResponse
	resp, err := c.send(ctx, http.MethodPost, "/customer/login", h, nil, &out)
	if err != nil {
		return nil, err
	}

	token := resp.Header.Get(common.AccessTokenHeaderName)
	if token == "" {
		return nil, ErrMissingToken
	}
	c.setToken(token)
	return &out, nil
}

// Logout ends the session server side and forgets the token.
func (c *HTTPClient) Logout(ctx context.Context) (*shared.LogoutResponse, error) {
	h, err := c.authHeader()
	if err != nil {
		return nil, err
	}

	var out shared.LogoutResponse
	if err := c.do(ctx, http.MethodPost, "/customer/logout", h, nil, &out); err != nil {
		return nil, err
	}
	c.setToken("")
	return &out, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, firstName, lastName string) (*shared.UpdateCustomerResponse, error) {
	h, err := c.authHeader()
	if err != nil {
		return nil, err
	}

	var out shared.UpdateCustomerResponse
	body := shared.UpdateCustomerRequest{FirstName: firstName, LastName: lastName}
	if err := c.do(ctx, http.MethodPut, "/customer/", h, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdatePassword(ctx context.Context, oldPassword, newPassword string) (*shared.StatusResponse, error) {
	h, err := c.authHeader()
	if err != nil {
		return nil, err
	}

	var out shared.StatusResponse
	body := shared.UpdatePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}
	if err := c.do(ctx, http.MethodPut, "/customer/password", h, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) SaveAddress(ctx context.Context, req shared.SaveAddressRequest) (*shared.StatusResponse, error) {
	h, err := c.authHeader()
	if err != nil {
		return nil, err
	}

	var out shared.StatusResponse
	if err := c.do(ctx, http.MethodPost, "/address/", h, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListAddresses(ctx context.Context) ([]shared.Address, error) {
	h, err := c.authHeader()
	if err != nil {
		return nil, err
	}

	var out shared.AddressListResponse
	if err := c.do(ctx, http.MethodGet, "/address/customer", h, nil, &out); err != nil {
		return nil, err
	}
	return out.Addresses, nil
}

func (c *HTTPClient) DeleteAddress(ctx context.Context, addressID string) (*shared.StatusResponse, error) {
	h, err := c.authHeader()
	if err != nil {
		return nil, err
	}

	var out shared.StatusResponse
	if err := c.do(ctx, http.MethodDelete, "/address/"+url.PathEscape(addressID), h, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListStates needs no login.
func (c *HTTPClient) ListStates(ctx context.Context) ([]shared.State, error) {
	var out shared.StatesListResponse
	if err := c.do(ctx, http.MethodGet, "/states", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.States, nil
}

func (c *HTTPClient) authHeader() (http.Header, error) {
	token := c.Token()
	if token == "" {
		return nil, ErrNotLoggedIn
	}
	h := http.Header{}
	h.Set(common.AuthorizationHeaderName, "Bearer "+token)
	return h, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, h http.Header, body, out any) error {
	_, err := c.send(ctx, method, path, h, body, out)
	if err != nil && h != nil {
		if token, ok := strings.CutPrefix(h.Get(common.AuthorizationHeaderName), "Bearer "); ok {
			c.dropDeadToken(token, err)
		}
	}
	return err
}

// send performs the call and decodes a 2xx body into out. Any other status
// is decoded as shared.ErrorResponse and returned as *APIError.
func (c *HTTPClient) send(ctx context.Context, method, path string, h http.Header, body, out any) (*http.Response, error) {
	req, err := netx.NewJSONRequest(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	for k, v := range h {
		req.Header[k] = v
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var er shared.ErrorResponse
		if err := netx.DecodeJSON(resp, &er); err != nil || er.Code == "" {
			return nil, &APIError{Status: resp.StatusCode, Code: shared.CodeInternal, Message: resp.Status}
		}
		return nil, &APIError{Status: resp.StatusCode, Code: er.Code, Message: er.Message}
	}

	if err := netx.DecodeJSON(resp, out); err != nil {
		return nil, err
	}
	return resp, nil
}
