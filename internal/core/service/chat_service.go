package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vanguard/directory/internal/api/metrics"
	"github.com/vanguard/directory/internal/core/domain"
	"github.com/vanguard/directory/internal/core/ports"
)

type ChatService struct {
	repo   ports.EntityRepository[domain.ChatBoard]
	logger zerolog.Logger
	now    func() time.Time
	newID  func() string
}

var _ ports.ChatService = (*ChatService)(nil)

func NewChatService(repo ports.EntityRepository[domain.ChatBoard], logger zerolog.Logger) *ChatService {
	return &ChatService{repo: repo, logger: logger, now: time.Now, newID: uuid.NewString}
}

// List returns chat headers without their messages.
func (s *ChatService) List(ctx context.Context, cursor string, limit int) (ports.Page[domain.Chat], error) {
	boards, err := s.repo.List(ctx, cursor, limit)
	if err != nil {
		return ports.Page[domain.Chat]{}, err
	}
	chats := make([]domain.Chat, len(boards.Items))
	for i, b := range boards.Items {
		chats[i] = b.Chat
	}
	return ports.Page[domain.Chat]{Items: chats, Next: boards.Next}, nil
}

func (s *ChatService) Create(ctx context.Context, title string) (domain.Chat, error) {
	if title == "" {
		return domain.Chat{}, domain.NewInputError("Missing required field: title")
	}
	board, err := s.repo.Create(ctx, domain.ChatBoard{
		Chat:     domain.Chat{ID: s.newID(), Title: title},
		Messages: []domain.ChatMessage{},
	})
	if err != nil {
		return domain.Chat{}, err
	}
	s.logger.Info().Str("chat_id", board.ID).Msg("chat created")
	return board.Chat, nil
}

func (s *ChatService) Messages(ctx context.Context, chatID string) ([]domain.ChatMessage, error) {
	board, err := s.repo.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if board.Messages == nil {
		return []domain.ChatMessage{}, nil
	}
	return board.Messages, nil
}

// Send appends a message to the board.
func (s *ChatService) Send(ctx context.Context, chatID, userID, text string) (domain.ChatMessage, error) {
	if userID == "" || text == "" {
		return domain.ChatMessage{}, domain.NewInputError("userId and text required")
	}
	msg := domain.ChatMessage{
		ID:     s.newID(),
		ChatID: chatID,
		UserID: userID,
		Text:   text,
		TS:     s.now().UnixMilli(),
	}
	_, err := s.repo.Mutate(ctx, chatID, func(b domain.ChatBoard) (domain.ChatBoard, error) {
		b.Messages = append(b.Messages, msg)
		return b, nil
	})
	if err != nil {
		return domain.ChatMessage{}, err
	}
	metrics.ChatMessagesTotal.Inc()
	return msg, nil
}
