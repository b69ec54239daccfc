package e2e

import (
	"context"
	"direct-chat/auth"
	"direct-chat/infrastructure/grpc/client"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

type BaseGrpcSuite struct {
	suite.Suite
	Config Config
	tokens *auth.TokenManager
}

// SetupSuite loads the environment and skips everything without a server to talk to.
func (s *BaseGrpcSuite) SetupSuite() {
	var err error
	s.Config, err = LoadConfig()
	s.Require().NoError(err)
	if s.Config.DirectChatAddr == "" {
		s.T().Skip("DIRECT_CHAT_ADDR not set")
	}
	s.Require().NotEmpty(s.Config.AliceID, "run cmd/seed and export E2E_ALICE_ID")
	s.Require().NotEmpty(s.Config.BobID, "run cmd/seed and export E2E_BOB_ID")
	s.tokens, err = auth.NewTokenManager(s.Config.JWTSecret, s.Config.JWTIssuer, time.Hour)
	s.Require().NoError(err)
}

// Client connects as userID, logging every unary call of the step.
func (s *BaseGrpcSuite) Client(t *testing.T, name, userID string) *client.DirectChatClient {
	header := fmt.Sprintf("  ====== %s ======", name)
	if s.Config.Colours {
		header = color.New(color.BgBlack, color.FgGreen).Render(header)
	}
	t.Log(header)

	token, err := s.tokens.GenerateToken(userID, []string{"user"})
	s.Require().NoError(err)

	c, err := client.NewDirectChatClient(s.Config.DirectChatAddr, token,
		grpc.WithUnaryInterceptor(func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
			start := time.Now()
			err := invoker(ctx, method, req, reply, cc, opts...)

			logBuilder := strings.Builder{}
			fmt.Fprintf(&logBuilder, "GRPC %s [%s] in %v", method, status.Code(err), time.Since(start))
			if s.Config.DebugJSON {
				fmt.Fprintln(&logBuilder, "\nREQUEST:")
				fmt.Fprintln(&logBuilder, indent(req))
				if err != nil {
					fmt.Fprintln(&logBuilder, "ERROR:", err)
				} else {
					fmt.Fprintln(&logBuilder, "RESPONSE:")
					fmt.Fprintln(&logBuilder, indent(reply))
				}
			}
			t.Log(logBuilder.String())
			return err
		}),
	)
	s.Require().NoError(err, "Failed to connect to gRPC server at "+s.Config.DirectChatAddr)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func indent(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", v)
	}
	return string(data)
}
