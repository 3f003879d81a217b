package ports

import (
	"context"

	"github.com/vanguard/directory/internal/core/domain"
)

type ChatService interface {
	List(ctx context.Context, cursor string, limit int) (Page[domain.Chat], error)
	Create(ctx context.Context, title string) (domain.Chat, error)
	Messages(ctx context.Context, chatID string) ([]domain.ChatMessage, error)
	Send(ctx context.Context, chatID, userID, text string) (domain.ChatMessage, error)
}
