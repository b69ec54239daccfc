package server

import (
	"context"
	"direct-chat/auth"
	"direct-chat/contract"
	"direct-chat/domain"
	"direct-chat/errors"
	"direct-chat/infrastructure/grpc/api"
	"direct-chat/services"
	"direct-chat/sink"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type DirectChatServer struct {
	api.UnimplementedDirectChatServiceServer
	log                  *slog.Logger
	service              services.IDirectChatService
	registry             contract.IRegistry
	connectionBufferSize int
}

func NewDirectChatServer(log *slog.Logger, service services.IDirectChatService,
	registry contract.IRegistry, connectionBufferSize int) *DirectChatServer {
	return &DirectChatServer{
		log:                  log,
		service:              service,
		registry:             registry,
		connectionBufferSize: connectionBufferSize,
	}
}

func (s *DirectChatServer) CreateChat(ctx context.Context, req *api.CreateChatRequest) (*api.CreateChatResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	chat, err := s.service.CreateChat(ctx, userID, req.ReceiverID, req.Text)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &api.CreateChatResponse{Chat: chat}, nil
}

func (s *DirectChatServer) SendMessage(ctx context.Context, req *api.SendMessageRequest) (*api.SendMessageResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	message, err := s.service.SendMessage(ctx, userID, req.ChatID, req.Text)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return &api.SendMessageResponse{Message: message}, nil
}

func (s *DirectChatServer) GetUserLastChats(ctx context.Context, req *api.GetUserLastChatsRequest) (*api.GetUserLastChatsResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	chats, err := s.service.GetUserLastChats(ctx, userID, domain.NewPage(req.Page, req.Take))
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	if chats == nil {
		chats = []domain.ChatDto{}
	}
	return &api.GetUserLastChatsResponse{Chats: chats}, nil
}

func (s *DirectChatServer) GetChatMessages(ctx context.Context, req *api.GetChatMessagesRequest) (*api.GetChatMessagesResponse, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	messages, err := s.service.GetChatMessages(ctx, userID, req.ChatID, domain.NewPage(req.Page, req.Take))
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	if messages == nil {
		messages = []domain.MessageDto{}
	}
	return &api.GetChatMessagesResponse{Messages: messages}, nil
}

// Connect registers a dedicated sink for this stream and forwards every event
// addressed to the caller. It blocks until the client goes away.
// Unregistering is deferred so a broken stream never leaks a registry entry.
func (s *DirectChatServer) Connect(_ *api.ConnectRequest, stream grpc.ServerStreamingServer[api.ServerEvent]) error {
	userID, err := callerID(stream.Context())
	if err != nil {
		return err
	}
	connectionSink := sink.NewConnectionSink(s.log, userID, s.connectionBufferSize)
	connID := s.registry.Register(userID, connectionSink)
	defer s.registry.Unregister(userID, connID)
	s.log.Info("Client connected", "user_id", userID, "connection_id", connID)

	for {
		select {
		case <-stream.Context().Done():
			s.log.Info("Client disconnected", "user_id", userID, "connection_id", connID)
			return nil
		case e := <-connectionSink.Events:
			serverEvent, err := api.NewServerEvent(e)
			if err != nil {
				s.log.Error("Failed to encode event", "user_id", userID, "event", e.Name, "error", err)
				continue
			}
			if err = stream.Send(serverEvent); err != nil {
				s.log.Error("Failed to push event to stream",
					"user_id", userID,
					"connection_id", connID,
					"error", err)
				return err
			}
		}
	}
}

func callerID(ctx context.Context) (string, error) {
	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "caller identity is missing")
	}
	return userID, nil
}
