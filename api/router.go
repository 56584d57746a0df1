// Package api is the request/response surface around the broker: account
// sign-up and sign-in, conversation metadata, and paged history. Anything
// real-time goes over the WebSocket endpoint instead.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter wires the REST routes and the WebSocket upgrade endpoint.
func NewRouter(handler *Handler, wsHandler http.Handler) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", handler.Health).Methods("GET")

	r.HandleFunc("/auth/sign-up", handler.SignUp).Methods("POST")
	r.HandleFunc("/auth/sign-in", handler.SignIn).Methods("POST")

	r.HandleFunc("/chats", handler.requireAuth(handler.CreateChat)).Methods("POST")
	r.HandleFunc("/chats/{id}", handler.requireAuth(handler.GetChat)).Methods("GET")
	r.HandleFunc("/chats/{id}/messages", handler.requireAuth(handler.GetMessages)).Methods("GET")

	r.Handle("/chat", wsHandler).Methods("GET")

	return r
}
