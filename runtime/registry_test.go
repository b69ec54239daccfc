package runtime

import (
	"context"
	"direct-chat/contract"
	"direct-chat/domain/event"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type Sink struct {
	name string
}

func (s *Sink) Consume(ctx context.Context, e event.Event) error {
	return nil
}

func TestRegistry_Register_One_User_One_Connection(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	userID := uuid.NewString()
	sink := &Sink{}

	// Given no user is connected
	req.Empty(registry.OnlineUsers())
	req.Nil(registry.SinksFor(userID))

	// When the user connects
	connID := registry.Register(userID, sink)

	// Then
	req.NotEmpty(connID)
	req.Equal([]string{userID}, registry.OnlineUsers())
	req.Equal(1, registry.ConnectionCount())
	req.Len(registry.SinksFor(userID), 1)
	req.Contains(registry.SinksFor(userID), sink)
}

func TestRegistry_Register_One_User_Several_Devices(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	userID := uuid.NewString()
	phone := &Sink{name: "phone"}
	laptop := &Sink{name: "laptop"}

	// When the same user connects twice
	first := registry.Register(userID, phone)
	second := registry.Register(userID, laptop)

	// Then both connections are kept
	req.NotEqual(first, second)
	req.Len(registry.OnlineUsers(), 1)
	req.Equal(2, registry.ConnectionCount())
	req.ElementsMatch(registry.SinksFor(userID), []contract.EventSink{phone, laptop})

	// When one device disconnects
	registry.Unregister(userID, first)

	// Then the other one still receives events
	req.Equal([]contract.EventSink{laptop}, registry.SinksFor(userID))
	req.Equal(1, registry.ConnectionCount())
}

func TestRegistry_Unregister_Last_Connection(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	userID := uuid.NewString()

	// Given a connected user
	connID := registry.Register(userID, &Sink{})

	// When the user disconnects
	registry.Unregister(userID, connID)

	// Then the user is offline
	req.Empty(registry.OnlineUsers())
	req.Nil(registry.SinksFor(userID))
	req.Zero(registry.ConnectionCount())

	// And unregistering again is harmless
	registry.Unregister(userID, connID)
	registry.Unregister(uuid.NewString(), connID)
	req.Zero(registry.ConnectionCount())
}

func TestRegistry_UnregisterUser(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	registry.Register("u1", &Sink{name: "phone"})
	registry.Register("u1", &Sink{name: "laptop"})
	registry.Register("u2", &Sink{})

	// When every connection of u1 is dropped
	registry.UnregisterUser("u1")

	// Then only u2 is left
	req.Equal([]string{"u2"}, registry.OnlineUsers())
	req.Equal(1, registry.ConnectionCount())
	req.Nil(registry.SinksFor("u1"))
}

func TestRegistry_SinksFor_Returns_A_Copy(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	userID := uuid.NewString()
	connID := registry.Register(userID, &Sink{})

	sinks := registry.SinksFor(userID)
	registry.Unregister(userID, connID)

	req.Len(sinks, 1)
}

func TestRegistry_Concurrent_Access(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()
	var wg sync.WaitGroup

	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			userID := fmt.Sprintf("user-%d", i%5)
			connID := registry.Register(userID, &Sink{})
			_ = registry.SinksFor(userID)
			_ = registry.OnlineUsers()
			registry.Unregister(userID, connID)
		}()
	}
	wg.Wait()

	req.Zero(registry.ConnectionCount())
	req.Empty(registry.OnlineUsers())
}
