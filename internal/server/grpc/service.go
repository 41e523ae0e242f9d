package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// The session service is declared by hand over protobuf well-known types,
// so no generated code is needed on either side.
const (
	ServiceName      = "addrkeeper.session.SessionService"
	PingMethod       = "/" + ServiceName + "/Ping"
	IntrospectMethod = "/" + ServiceName + "/Introspect"
)

// SessionServiceServer is implemented by GRPCServer.
type SessionServiceServer interface {
	Ping(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Introspect(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

var sessionServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SessionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: pingHandler},
		{MethodName: "Introspect", Handler: introspectHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "addrkeeper/session.proto",
}

func registerSessionServiceServer(s grpc.ServiceRegistrar, srv SessionServiceServer) {
	s.RegisterService(&sessionServiceDesc, srv)
}

func pingHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SessionServiceServer).Ping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: PingMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SessionServiceServer).Ping(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func introspectHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SessionServiceServer).Introspect(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: IntrospectMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SessionServiceServer).Introspect(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// SessionClient calls the session service over an existing connection.
type SessionClient struct {
	cc grpc.ClientConnInterface
}

func NewSessionClient(cc grpc.ClientConnInterface) *SessionClient {
	return &SessionClient{cc: cc}
}

func (c *SessionClient) Ping(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, PingMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Introspect describes the session behind the token sent in the
// "authorization" metadata of ctx.
func (c *SessionClient) Introspect(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, IntrospectMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
