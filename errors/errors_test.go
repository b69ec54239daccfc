package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestMapToGRPCError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code codes.Code
	}{
		{"user not found", ErrUserNotFound, codes.NotFound},
		{"chat not found", fmt.Errorf("find chat: %w", ErrChatNotFound), codes.NotFound},
		{"invalid participant", ErrInvalidParticipant, codes.InvalidArgument},
		{"invalid argument", ErrInvalidArgument, codes.InvalidArgument},
		{"conflict", fmt.Errorf("create: %w", ErrChatAlreadyExists), codes.AlreadyExists},
		{"not a participant", ErrNotChatParticipant, codes.PermissionDenied},
		{"unauthenticated", ErrUnauthenticated, codes.Unauthenticated},
		{"payload format", ErrPayloadFormat, codes.DataLoss},
		{"payload integrity", fmt.Errorf("message 42: %w", ErrPayloadIntegrity), codes.DataLoss},
		{"no strategy", ErrNoDecryptionStrategy, codes.Internal},
		{"unknown", fmt.Errorf("disk on fire"), codes.Internal},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := require.New(t)
			st, ok := status.FromError(MapToGRPCError(c.err))
			req.True(ok)
			req.Equal(c.code, st.Code())
		})
	}
}

func TestMapToGRPCError_KeepsExistingStatus(t *testing.T) {
	req := require.New(t)
	original := status.Error(codes.ResourceExhausted, "slow down")
	req.Equal(original, MapToGRPCError(original))
	req.NoError(MapToGRPCError(nil))
}
