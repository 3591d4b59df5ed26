package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// The service exchanges google.protobuf.Struct messages, so no generated
// code is needed on either side.
const ServiceName = "baduk.GameService"

type GameServiceServer interface {
	NewGame(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetGame(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PlaceStone(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Pass(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Reset(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(GameServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(method string, call unaryCall) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(GameServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: FullMethod(method),
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(GameServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

var GameServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*GameServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "NewGame", Handler: unaryHandler("NewGame", GameServiceServer.NewGame)},
		{MethodName: "GetGame", Handler: unaryHandler("GetGame", GameServiceServer.GetGame)},
		{MethodName: "PlaceStone", Handler: unaryHandler("PlaceStone", GameServiceServer.PlaceStone)},
		{MethodName: "Pass", Handler: unaryHandler("Pass", GameServiceServer.Pass)},
		{MethodName: "Reset", Handler: unaryHandler("Reset", GameServiceServer.Reset)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "baduk/game.proto",
}

func RegisterGameServiceServer(s grpc.ServiceRegistrar, srv GameServiceServer) {
	s.RegisterService(&GameServiceDesc, srv)
}

// GameServiceClient calls the service over an established connection.
type GameServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewGameServiceClient(cc grpc.ClientConnInterface) *GameServiceClient {
	return &GameServiceClient{cc: cc}
}

func (c *GameServiceClient) call(ctx context.Context, method string, in map[string]any, opts ...grpc.CallOption) (*structpb.Struct, error) {
	req, err := structpb.NewStruct(in)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err = c.cc.Invoke(ctx, FullMethod(method), req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *GameServiceClient) NewGame(ctx context.Context, in map[string]any, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.call(ctx, "NewGame", in, opts...)
}

func (c *GameServiceClient) GetGame(ctx context.Context, in map[string]any, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.call(ctx, "GetGame", in, opts...)
}

func (c *GameServiceClient) PlaceStone(ctx context.Context, in map[string]any, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.call(ctx, "PlaceStone", in, opts...)
}

func (c *GameServiceClient) Pass(ctx context.Context, in map[string]any, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.call(ctx, "Pass", in, opts...)
}

func (c *GameServiceClient) Reset(ctx context.Context, in map[string]any, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.call(ctx, "Reset", in, opts...)
}
