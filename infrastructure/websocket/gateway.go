package websocket

import (
	"context"
	"direct-chat/contract"
	"direct-chat/sink"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second
	pongWait  = 60 * time.Second
	// Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10
	// Clients only send control frames.
	maxMessageSize = 512
)

// Authenticator turns a bearer token into a user id.
type Authenticator interface {
	Authenticate(token string) (string, error)
}

// HealthCheck reports whether the store still answers.
type HealthCheck func(ctx context.Context) error

// Gateway pushes live events to browsers over websocket.
// It only reads from the registry side: writes go through gRPC.
type Gateway struct {
	log        *slog.Logger
	tokens     Authenticator
	registry   contract.IRegistry
	health     HealthCheck
	bufferSize int
	upgrader   websocket.Upgrader
}

func NewGateway(log *slog.Logger, tokens Authenticator, registry contract.IRegistry,
	health HealthCheck, bufferSize int) *Gateway {
	return &Gateway{
		log:        log,
		tokens:     tokens,
		registry:   registry,
		health:     health,
		bufferSize: bufferSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (g *Gateway) Router() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/ws", g.HandleWebSocket).Methods(http.MethodGet)
	router.HandleFunc("/health", g.HandleHealth).Methods(http.MethodGet)
	return router
}

func (g *Gateway) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if g.health != nil {
		if err := g.health(r.Context()); err != nil {
			g.log.Error("Health check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "unavailable"})
			return
		}
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":      "ok",
		"connections": g.registry.ConnectionCount(),
	})
}

// HandleWebSocket authenticates before upgrading, so a bad token is a plain 401.
func (g *Gateway) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	userID, err := g.tokens.Authenticate(bearerToken(r))
	if err != nil {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Warn("WebSocket upgrade failed", "user_id", userID, "error", err)
		return
	}

	connectionSink := sink.NewConnectionSink(g.log, userID, g.bufferSize)
	connID := g.registry.Register(userID, connectionSink)
	g.log.Info("WebSocket connected", "user_id", userID, "connection_id", connID)

	closed := make(chan struct{})
	go g.readPump(conn, closed)
	g.writePump(conn, connectionSink, closed)

	g.registry.Unregister(userID, connID)
	_ = conn.Close()
	g.log.Info("WebSocket disconnected", "user_id", userID, "connection_id", connID)
}

// readPump only keeps the read deadline alive and notices the close frame.
func (g *Gateway) readPump(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				g.log.Debug("WebSocket read error", "error", err)
			}
			return
		}
	}
}

func (g *Gateway) writePump(conn *websocket.Conn, connectionSink *sink.ConnectionSink, closed <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case e := <-connectionSink.Events:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(e); err != nil {
				g.log.Error("Failed to push event to websocket", "event", e.Name, "error", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// bearerToken accepts ?token= for browsers and the Authorization header for everything else.
func bearerToken(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}
