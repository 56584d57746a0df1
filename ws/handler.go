package ws

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/imanolof29/chat/broker"
	"github.com/imanolof29/chat/observability"
)

// Handler upgrades HTTP requests to WebSocket connections and runs the
// connection lifecycle: authenticate, pump events, reconcile on close.
type Handler struct {
	log      *slog.Logger
	router   *broker.EventRouter
	metrics  *observability.Collector
	upgrader websocket.Upgrader
}

func NewHandler(log *slog.Logger, router *broker.EventRouter, metrics *observability.Collector) *Handler {
	return &Handler{
		log:     log,
		router:  router,
		metrics: metrics,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Tokens, not origins, gate access to this endpoint.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	credential := bearerToken(r)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}

	h.metrics.ConnOpened()
	defer h.metrics.ConnClosed()

	client := NewClient(conn, h.log, h.metrics)
	go client.WritePump()

	if _, err := h.router.Connect(r.Context(), client, credential); err != nil {
		// The error event is queued; the write pump drains it and closes.
		client.Close()
		return
	}

	// Runs inside ServeHTTP so the request context stays alive for the
	// duration of the connection.
	client.ReadPump(r.Context(), h.router)
}

// bearerToken extracts the credential from the upgrade request: the token
// query parameter (the handshake auth field of browser clients) or an
// Authorization: Bearer header. Empty means no credential was presented.
func bearerToken(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}
	header := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}
	return ""
}
