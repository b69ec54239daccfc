//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"direct-chat/domain/event"
	"reflect"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Stop()
}

// Worker doesn't protect itself.
// The supervisor recovers its panics and restarts it.
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// It is only used for logging, so workers don't have to name themselves.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink is one live connection of one user.
type EventSink interface {
	Consume(ctx context.Context, e event.Event) error
}

type ConnectionID string

// IRegistry keeps track of who is connected and through which sinks.
// A user may hold several connections at once.
type IRegistry interface {
	Register(userID string, sink EventSink) ConnectionID
	Unregister(userID string, connID ConnectionID)
	UnregisterUser(userID string)
	SinksFor(userID string) []EventSink
	OnlineUsers() []string
	ConnectionCount() int
}

// INotifier delivers an event to every live connection of the given users.
// Delivery is best effort: offline users are skipped and failures are logged.
type INotifier interface {
	NotifyAll(ctx context.Context, userIDs []string, name event.Name, payload any)
}
