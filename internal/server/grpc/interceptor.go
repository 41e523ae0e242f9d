package grpc

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/addrkeeper/internal/common"
	"github.com/dmitrijs2005/addrkeeper/internal/server/models"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

const sessionKey ctxKey = "session"

// SessionFromContext returns the session the interceptor resolved.
func SessionFromContext(ctx context.Context) (*models.CustomerAuth, bool) {
	s, ok := ctx.Value(sessionKey).(*models.CustomerAuth)
	return s, ok
}

// protected lists the methods that require an active session.
var protected = map[string]bool{
	IntrospectMethod: true,
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	if !protected[info.FullMethod] {
		return handler(ctx, req)
	}

	var token string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AuthorizationHeaderName); len(values) > 0 {
			token = strings.TrimPrefix(values[0], "Bearer ")
		}
	}

	session, err := s.authorizer.Authorize(ctx, token)
	if err != nil {
		if ce, ok := common.AsCoded(err); ok {
			s.logger.Warn(ctx, "rejected session", "method", info.FullMethod, "code", ce.Code)
			return nil, status.Error(codes.Unauthenticated, ce.Code+": "+ce.Message)
		}
		s.logger.Error(ctx, "authorization failed", "method", info.FullMethod, "error", err)
		return nil, status.Error(codes.Internal, common.ErrorInternal.Error())
	}

	return handler(context.WithValue(ctx, sessionKey, session), req)
}
