package client

import (
	"context"
	"direct-chat/domain"
	"direct-chat/infrastructure/grpc/api"
	"errors"
	"io"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
)

// DirectChatClient calls DirectChatService on behalf of one authenticated user.
type DirectChatClient struct {
	conn   *grpc.ClientConn
	client api.DirectChatServiceClient
	token  string
}

// NewDirectChatClient connects to address without TLS unless opts say otherwise.
func NewDirectChatClient(address, token string, opts ...grpc.DialOption) (*DirectChatClient, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(address, opts...)
	if err != nil {
		return nil, err
	}
	return &DirectChatClient{conn: conn, client: api.NewDirectChatServiceClient(conn), token: token}, nil
}

func (c *DirectChatClient) Close() error {
	return c.conn.Close()
}

func (c *DirectChatClient) withToken(ctx context.Context) context.Context {
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+c.token)
}

func (c *DirectChatClient) CreateChat(ctx context.Context, receiverID, text string) (domain.ChatDto, error) {
	res, err := c.client.CreateChat(c.withToken(ctx), &api.CreateChatRequest{ReceiverID: receiverID, Text: text})
	if err != nil {
		return domain.ChatDto{}, err
	}
	return res.Chat, nil
}

func (c *DirectChatClient) SendMessage(ctx context.Context, chatID, text string) (domain.MessageDto, error) {
	res, err := c.client.SendMessage(c.withToken(ctx), &api.SendMessageRequest{ChatID: chatID, Text: text})
	if err != nil {
		return domain.MessageDto{}, err
	}
	return res.Message, nil
}

func (c *DirectChatClient) LastChats(ctx context.Context, page, take *int) ([]domain.ChatDto, error) {
	res, err := c.client.GetUserLastChats(c.withToken(ctx), &api.GetUserLastChatsRequest{Page: page, Take: take})
	if err != nil {
		return nil, err
	}
	return res.Chats, nil
}

func (c *DirectChatClient) ChatMessages(ctx context.Context, chatID string, page, take *int) ([]domain.MessageDto, error) {
	res, err := c.client.GetChatMessages(c.withToken(ctx), &api.GetChatMessagesRequest{ChatID: chatID, Page: page, Take: take})
	if err != nil {
		return nil, err
	}
	return res.Messages, nil
}

// Listen opens the event stream and calls handle for each event until ctx
// ends, the server closes the stream or handle returns an error.
func (c *DirectChatClient) Listen(ctx context.Context, handle func(api.ServerEvent) error) error {
	stream, err := c.client.Connect(c.withToken(ctx), &api.ConnectRequest{})
	if err != nil {
		return err
	}
	for {
		e, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if err = handle(*e); err != nil {
			return err
		}
	}
}
