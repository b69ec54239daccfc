package api

import (
	"context"
	"errors"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "directchat.v1.DirectChatService"

const (
	DirectChatService_CreateChat_FullMethodName       = "/directchat.v1.DirectChatService/CreateChat"
	DirectChatService_SendMessage_FullMethodName      = "/directchat.v1.DirectChatService/SendMessage"
	DirectChatService_GetUserLastChats_FullMethodName = "/directchat.v1.DirectChatService/GetUserLastChats"
	DirectChatService_GetChatMessages_FullMethodName  = "/directchat.v1.DirectChatService/GetChatMessages"
	DirectChatService_Connect_FullMethodName          = "/directchat.v1.DirectChatService/Connect"
)

// DirectChatServiceClient is the client API for DirectChatService.
type DirectChatServiceClient interface {
	CreateChat(ctx context.Context, in *CreateChatRequest, opts ...grpc.CallOption) (*CreateChatResponse, error)
	SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*SendMessageResponse, error)
	GetUserLastChats(ctx context.Context, in *GetUserLastChatsRequest, opts ...grpc.CallOption) (*GetUserLastChatsResponse, error)
	GetChatMessages(ctx context.Context, in *GetChatMessagesRequest, opts ...grpc.CallOption) (*GetChatMessagesResponse, error)
	// Connect streams the events addressed to the caller until the context ends.
	Connect(ctx context.Context, in *ConnectRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ServerEvent], error)
}

type directChatServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDirectChatServiceClient(cc grpc.ClientConnInterface) DirectChatServiceClient {
	return &directChatServiceClient{cc}
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
}

func (c *directChatServiceClient) CreateChat(ctx context.Context, in *CreateChatRequest, opts ...grpc.CallOption) (*CreateChatResponse, error) {
	out := new(CreateChatResponse)
	err := c.cc.Invoke(ctx, DirectChatService_CreateChat_FullMethodName, in, out, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *directChatServiceClient) SendMessage(ctx context.Context, in *SendMessageRequest, opts ...grpc.CallOption) (*SendMessageResponse, error) {
	out := new(SendMessageResponse)
	err := c.cc.Invoke(ctx, DirectChatService_SendMessage_FullMethodName, in, out, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *directChatServiceClient) GetUserLastChats(ctx context.Context, in *GetUserLastChatsRequest, opts ...grpc.CallOption) (*GetUserLastChatsResponse, error) {
	out := new(GetUserLastChatsResponse)
	err := c.cc.Invoke(ctx, DirectChatService_GetUserLastChats_FullMethodName, in, out, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *directChatServiceClient) GetChatMessages(ctx context.Context, in *GetChatMessagesRequest, opts ...grpc.CallOption) (*GetChatMessagesResponse, error) {
	out := new(GetChatMessagesResponse)
	err := c.cc.Invoke(ctx, DirectChatService_GetChatMessages_FullMethodName, in, out, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *directChatServiceClient) Connect(ctx context.Context, in *ConnectRequest, opts ...grpc.CallOption) (grpc.ServerStreamingClient[ServerEvent], error) {
	stream, err := c.cc.NewStream(ctx, &DirectChatService_ServiceDesc.Streams[0], DirectChatService_Connect_FullMethodName, withCodec(opts)...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[ConnectRequest, ServerEvent]{ClientStream: stream}
	// io.EOF means the server already ended the stream: its status comes with Recv.
	if err := x.ClientStream.SendMsg(in); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

// DirectChatServiceServer is the server API for DirectChatService.
type DirectChatServiceServer interface {
	CreateChat(context.Context, *CreateChatRequest) (*CreateChatResponse, error)
	SendMessage(context.Context, *SendMessageRequest) (*SendMessageResponse, error)
	GetUserLastChats(context.Context, *GetUserLastChatsRequest) (*GetUserLastChatsResponse, error)
	GetChatMessages(context.Context, *GetChatMessagesRequest) (*GetChatMessagesResponse, error)
	Connect(*ConnectRequest, grpc.ServerStreamingServer[ServerEvent]) error
}

// UnimplementedDirectChatServiceServer can be embedded to have forward compatible implementations.
type UnimplementedDirectChatServiceServer struct{}

func (UnimplementedDirectChatServiceServer) CreateChat(context.Context, *CreateChatRequest) (*CreateChatResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method CreateChat not implemented")
}
func (UnimplementedDirectChatServiceServer) SendMessage(context.Context, *SendMessageRequest) (*SendMessageResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SendMessage not implemented")
}
func (UnimplementedDirectChatServiceServer) GetUserLastChats(context.Context, *GetUserLastChatsRequest) (*GetUserLastChatsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetUserLastChats not implemented")
}
func (UnimplementedDirectChatServiceServer) GetChatMessages(context.Context, *GetChatMessagesRequest) (*GetChatMessagesResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetChatMessages not implemented")
}
func (UnimplementedDirectChatServiceServer) Connect(*ConnectRequest, grpc.ServerStreamingServer[ServerEvent]) error {
	return status.Errorf(codes.Unimplemented, "method Connect not implemented")
}

func RegisterDirectChatServiceServer(s grpc.ServiceRegistrar, srv DirectChatServiceServer) {
	s.RegisterService(&DirectChatService_ServiceDesc, srv)
}

func _DirectChatService_CreateChat_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(CreateChatRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DirectChatServiceServer).CreateChat(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DirectChatService_CreateChat_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DirectChatServiceServer).CreateChat(ctx, req.(*CreateChatRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DirectChatService_SendMessage_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(SendMessageRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DirectChatServiceServer).SendMessage(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DirectChatService_SendMessage_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DirectChatServiceServer).SendMessage(ctx, req.(*SendMessageRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DirectChatService_GetUserLastChats_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetUserLastChatsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DirectChatServiceServer).GetUserLastChats(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DirectChatService_GetUserLastChats_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DirectChatServiceServer).GetUserLastChats(ctx, req.(*GetUserLastChatsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DirectChatService_GetChatMessages_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetChatMessagesRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(DirectChatServiceServer).GetChatMessages(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DirectChatService_GetChatMessages_FullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(DirectChatServiceServer).GetChatMessages(ctx, req.(*GetChatMessagesRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _DirectChatService_Connect_Handler(srv any, stream grpc.ServerStream) error {
	m := new(ConnectRequest)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(DirectChatServiceServer).Connect(m, &grpc.GenericServerStream[ConnectRequest, ServerEvent]{ServerStream: stream})
}

// DirectChatService_ServiceDesc is the grpc.ServiceDesc for DirectChatService.
var DirectChatService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DirectChatServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "CreateChat", Handler: _DirectChatService_CreateChat_Handler},
		{MethodName: "SendMessage", Handler: _DirectChatService_SendMessage_Handler},
		{MethodName: "GetUserLastChats", Handler: _DirectChatService_GetUserLastChats_Handler},
		{MethodName: "GetChatMessages", Handler: _DirectChatService_GetChatMessages_Handler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "Connect", Handler: _DirectChatService_Connect_Handler, ServerStreams: true},
	},
	Metadata: "directchat/v1/direct_chat.json",
}
