package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/samber/lo"

	"github.com/imanolof29/chat/broker"
	"github.com/imanolof29/chat/domain"
	chaterrors "github.com/imanolof29/chat/errors"
	"github.com/imanolof29/chat/services"
)

const defaultPageSize = 50

type Handler struct {
	log      *slog.Logger
	auth     services.IAuthService
	chats    services.IChatService
	verifier broker.TokenVerifier
}

func NewHandler(log *slog.Logger, auth services.IAuthService, chats services.IChatService, verifier broker.TokenVerifier) *Handler {
	return &Handler{log: log, auth: auth, chats: chats, verifier: verifier}
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type signUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.auth.SignUp(r.Context(), req.Username, req.Email, req.Password)
	switch {
	case errors.Is(err, chaterrors.ErrUserAlreadyExists):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, chaterrors.ErrInvalidPassword):
		writeError(w, http.StatusBadRequest, err.Error())
	case err != nil:
		h.log.Error("sign-up failed", "email", req.Email, "err", err)
		writeError(w, http.StatusInternalServerError, "could not create account")
	default:
		writeJSON(w, http.StatusCreated, tokenResponse{AccessToken: string(token)})
	}
}

func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, chaterrors.ErrInvalidCredentials.Error())
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: string(token)})
}

type createChatRequest struct {
	Participants []string `json:"participants"`
}

func (h *Handler) CreateChat(w http.ResponseWriter, r *http.Request) {
	var req createChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	participants := lo.Map(req.Participants, func(id string, _ int) domain.UserID {
		return domain.UserID(id)
	})
	conversation, err := h.chats.CreateChat(r.Context(), participants)
	if err != nil {
		h.log.Error("creating chat", "err", err)
		writeError(w, http.StatusInternalServerError, "could not create chat")
		return
	}
	writeJSON(w, http.StatusCreated, conversation)
}

func (h *Handler) GetChat(w http.ResponseWriter, r *http.Request) {
	id := domain.RoomID(mux.Vars(r)["id"])

	conversation, err := h.chats.GetChat(r.Context(), id)
	if errors.Is(err, chaterrors.ErrRoomNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		h.log.Error("fetching chat", "chat", id, "err", err)
		writeError(w, http.StatusInternalServerError, "could not fetch chat")
		return
	}
	writeJSON(w, http.StatusOK, conversation)
}

func (h *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	id := domain.RoomID(mux.Vars(r)["id"])

	limit := defaultPageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	var cursor *string
	if raw := r.URL.Query().Get("cursor"); raw != "" {
		cursor = &raw
	}

	messages, next, err := h.chats.Messages(r.Context(), id, cursor, limit)
	if err != nil {
		h.log.Error("fetching messages", "chat", id, "err", err)
		writeError(w, http.StatusInternalServerError, "could not fetch messages")
		return
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"messages": messages,
		"cursor":   next,
	})
}

// requireAuth guards a route with the same bearer tokens the WebSocket
// endpoint accepts.
func (h *Handler) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "authorization token is missing")
			return
		}
		if _, err := h.verifier.Verify(token); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
