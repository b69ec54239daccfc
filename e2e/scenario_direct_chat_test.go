package e2e

import (
	"context"
	"direct-chat/domain"
	"direct-chat/domain/event"
	"direct-chat/infrastructure/grpc/api"
	"direct-chat/infrastructure/grpc/client"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type testDirectChatSuite struct {
	BaseGrpcSuite
}

func TestDirectChatSuite(t *testing.T) {
	suite.Run(t, &testDirectChatSuite{})
}

func (s *testDirectChatSuite) TestConversationFlow() {
	t := s.T()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	alice := s.Client(t, "alice", s.Config.AliceID)
	bob := s.Client(t, "bob", s.Config.BobID)

	// Given bob listening
	events := make(chan api.ServerEvent, 16)
	listenCtx, stopListening := context.WithCancel(ctx)
	defer stopListening()
	go func() {
		_ = bob.Listen(listenCtx, func(e api.ServerEvent) error {
			events <- e
			return nil
		})
	}()
	time.Sleep(200 * time.Millisecond)

	// When alice opens the chat, or finds it from a previous run
	chatID := s.openChat(ctx, alice)

	// And writes into it
	text := "e2e " + uuid.NewString()
	sent, err := alice.SendMessage(ctx, chatID, text)
	s.Require().NoError(err)
	s.Require().Equal(text, sent.Text)

	// Then bob is notified in clear text
	s.Require().Eventually(func() bool {
		for {
			select {
			case e := <-events:
				if e.Event != event.MessageReceived {
					continue
				}
				message, err := e.Message()
				if err == nil && message.ID == sent.ID {
					return message.Text == text
				}
			default:
				return false
			}
		}
	}, 5*time.Second, 50*time.Millisecond)

	// And the message heads the chat history
	messages, err := bob.ChatMessages(ctx, chatID, nil, lo.ToPtr(1))
	s.Require().NoError(err)
	s.Require().Len(messages, 1)
	s.Require().Equal(sent.ID, messages[0].ID)
}

func (s *testDirectChatSuite) TestStrangerIsRejected() {
	t := s.T()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	chatID := s.openChat(ctx, s.Client(t, "alice", s.Config.AliceID))

	stranger := s.Client(t, "stranger", uuid.NewString())
	_, err := stranger.ChatMessages(ctx, chatID, nil, nil)
	s.Require().Equal(codes.PermissionDenied, status.Code(err))
}

func (s *testDirectChatSuite) openChat(ctx context.Context, alice *client.DirectChatClient) string {
	chat, err := alice.CreateChat(ctx, s.Config.BobID, "hello from e2e")
	if err == nil {
		return chat.ID
	}
	s.Require().Equal(codes.AlreadyExists, status.Code(err))

	chats, err := alice.LastChats(ctx, nil, lo.ToPtr(domain.MaxTake))
	s.Require().NoError(err)
	existing, found := lo.Find(chats, func(c domain.ChatDto) bool {
		return lo.ContainsBy(c.Participants, func(u domain.UserDto) bool { return u.ID == s.Config.BobID })
	})
	s.Require().True(found, "existing chat with bob is missing from alice's inbox")
	return existing.ID
}
