package errors

import (
	goerrors "errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	ErrUserNotFound       = fmt.Errorf("user not found")
	ErrChatNotFound       = fmt.Errorf("direct chat not found")
	ErrInvalidParticipant = fmt.Errorf("invalid chat participant")
	ErrChatAlreadyExists  = fmt.Errorf("direct chat already exists for this pair of users")
	ErrNotChatParticipant = fmt.Errorf("user is not a participant of this chat")
	ErrInvalidArgument    = fmt.Errorf("invalid argument")
	ErrUnauthenticated    = fmt.Errorf("unauthenticated")

	// Cipher failures are fatal for a single message only.
	ErrPayloadFormat     = fmt.Errorf("malformed encrypted payload")
	ErrPayloadIntegrity  = fmt.Errorf("encrypted payload failed integrity check")
	ErrInvalidPassphrase = fmt.Errorf("message passphrase must not be empty")

	ErrNoDecryptionStrategy = fmt.Errorf("no decryption strategy registered for shape")
)

// IsCipherError reports whether err comes from decoding or opening a stored payload.
func IsCipherError(err error) bool {
	return goerrors.Is(err, ErrPayloadFormat) || goerrors.Is(err, ErrPayloadIntegrity)
}

// MapToGRPCError converts domain errors into gRPC status errors.
// Anything not recognised becomes codes.Internal without leaking details.
func MapToGRPCError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}
	switch {
	case goerrors.Is(err, ErrUserNotFound), goerrors.Is(err, ErrChatNotFound):
		return status.Error(codes.NotFound, err.Error())
	case goerrors.Is(err, ErrInvalidParticipant), goerrors.Is(err, ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case goerrors.Is(err, ErrChatAlreadyExists):
		return status.Error(codes.AlreadyExists, err.Error())
	case goerrors.Is(err, ErrNotChatParticipant):
		return status.Error(codes.PermissionDenied, err.Error())
	case goerrors.Is(err, ErrUnauthenticated):
		return status.Error(codes.Unauthenticated, err.Error())
	case IsCipherError(err):
		return status.Error(codes.DataLoss, "stored message could not be decrypted")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
