package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/addrkeeper/internal/common"
	sessiongrpc "github.com/dmitrijs2005/addrkeeper/internal/server/grpc"
	"github.com/dmitrijs2005/addrkeeper/internal/shared"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type sessionAPI interface {
	Ping(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error)
	Introspect(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error)
}

// SessionInfo describes a live session as the server sees it.
type SessionInfo struct {
	SessionID  string
	CustomerID string
	LoginAt    time.Time
	ExpiresAt  time.Time
}

type GRPCClient struct {
	conn *grpc.ClientConn
	api  sessionAPI
}

// NewGRPCClient prepares a lazy connection; nothing is dialed until the
// first call.
func NewGRPCClient(addr string) (*GRPCClient, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	return &GRPCClient{conn: conn, api: sessiongrpc.NewSessionClient(conn)}, nil
}

func (c *GRPCClient) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

func (c *GRPCClient) Ping(ctx context.Context) error {
	resp, err := c.api.Ping(ctx)
	if err != nil {
		return mapGRPCError(err)
	}
	if s := resp.GetFields()["status"].GetStringValue(); s != "OK" {
		return fmt.Errorf("unexpected ping status %q", s)
	}
	return nil
}

// Introspect asks the server to describe the session behind token.
func (c *GRPCClient) Introspect(ctx context.Context, token string) (*SessionInfo, error) {
	if token == "" {
		return nil, ErrNotLoggedIn
	}
	ctx = metadata.AppendToOutgoingContext(ctx, common.AuthorizationHeaderName, "Bearer "+token)

	resp, err := c.api.Introspect(ctx)
	if err != nil {
		return nil, mapGRPCError(err)
	}

	f := resp.GetFields()
	info := &SessionInfo{
		SessionID:  f["session_id"].GetStringValue(),
		CustomerID: f["customer_id"].GetStringValue(),
	}
	if info.LoginAt, err = time.Parse(time.RFC3339, f["login_at"].GetStringValue()); err != nil {
		return nil, fmt.Errorf("login_at: %w", err)
	}
	if info.ExpiresAt, err = time.Parse(time.RFC3339, f["expires_at"].GetStringValue()); err != nil {
		return nil, fmt.Errorf("expires_at: %w", err)
	}
	return info, nil
}

// mapGRPCError turns "CODE: message" Unauthenticated statuses back into
// *APIError and unreachable servers into ErrUnavailable.
func mapGRPCError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return fmt.Errorf("%w: %s", ErrUnavailable, st.Message())
	case codes.Unauthenticated:
		code, msg, found := strings.Cut(st.Message(), ": ")
		if !found {
			return &APIError{Code: shared.CodeInternal, Message: st.Message()}
		}
		return &APIError{Code: code, Message: msg}
	default:
		return &APIError{Code: shared.CodeInternal, Message: st.Message()}
	}
}
