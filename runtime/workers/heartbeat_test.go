package workers

import (
	"context"
	"direct-chat/mocks"
	"log/slog"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHeartbeatWorker_Run(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	registry := mocks.NewMockIRegistry(ctrl)

	// Given two users holding three connections
	registry.EXPECT().OnlineUsers().Return([]string{"u1", "u2"}).MinTimes(1)
	registry.EXPECT().ConnectionCount().Return(3).MinTimes(1)

	w := NewHeartbeatWorker(logs.GetLoggerFromLevel(slog.LevelError), registry, 10*time.Millisecond)
	samples := make(chan Stats, 16)
	w.report = func(s Stats) {
		select {
		case samples <- s:
		default:
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Then a sample reports them with the process memory
	select {
	case s := <-samples:
		req.Equal(2, s.OnlineUsers)
		req.Equal(3, s.Connections)
		req.Positive(s.RSSBytes)
	case <-time.After(time.Second):
		req.Fail("no heartbeat sample")
	}

	cancel()
	req.ErrorIs(<-done, context.Canceled)
}
