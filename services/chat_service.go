package services

import (
	"context"

	"github.com/imanolof29/chat/domain"
	"github.com/imanolof29/chat/repositories"
)

type IChatService interface {
	CreateChat(ctx context.Context, participants []domain.UserID) (domain.Conversation, error)
	GetChat(ctx context.Context, id domain.RoomID) (domain.Conversation, error)
	Messages(ctx context.Context, room domain.RoomID, cursor *string, limit int) ([]domain.Message, *string, error)
}

// ChatService serves the request/response side of conversations: durable
// metadata and paged history. Live room traffic never goes through here.
type ChatService struct {
	conversations repositories.IConversationRepository
	messages      repositories.IMessageRepository
}

func NewChatService(conversations repositories.IConversationRepository, messages repositories.IMessageRepository) *ChatService {
	return &ChatService{conversations: conversations, messages: messages}
}

func (s *ChatService) CreateChat(ctx context.Context, participants []domain.UserID) (domain.Conversation, error) {
	return s.conversations.Create(ctx, participants)
}

func (s *ChatService) GetChat(ctx context.Context, id domain.RoomID) (domain.Conversation, error) {
	return s.conversations.Get(ctx, id)
}

func (s *ChatService) Messages(ctx context.Context, room domain.RoomID, cursor *string, limit int) ([]domain.Message, *string, error) {
	return s.messages.Page(ctx, room, cursor, limit)
}
