package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/vanguard/directory/internal/core/domain"
)

func newChatSvc(t *testing.T, seed bool) *ChatService {
	t.Helper()
	repos := newRepos()
	if seed {
		if _, err := repos.Chats.EnsureSeed(context.Background()); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	svc := NewChatService(repos.Chats, zerolog.Nop())
	svc.now = func() time.Time { return fixedNow }
	svc.newID = sequentialIDs("msg")
	return svc
}

func TestChatService_SendAndRead(t *testing.T) {
	svc := newChatSvc(t, true)
	ctx := context.Background()

	msgs, err := svc.Messages(ctx, "c1")
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	if msgs == nil || len(msgs) != 0 {
		t.Fatalf("expected empty non-nil messages, got %#v", msgs)
	}

	for _, text := range []string{"hello", "world"} {
		if _, err := svc.Send(ctx, "c1", "u1", text); err != nil {
			t.Fatalf("send: %v", err)
		}
	}

	msgs, err = svc.Messages(ctx, "c1")
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	if len(msgs) != 2 || msgs[0].Text != "hello" || msgs[1].Text != "world" {
		t.Fatalf("unexpected messages: %+v", msgs)
	}
	if msgs[0].ChatID != "c1" || msgs[0].UserID != "u1" || msgs[0].TS != fixedNow.UnixMilli() {
		t.Fatalf("message fields wrong: %+v", msgs[0])
	}
}

func TestChatService_Send_Validation(t *testing.T) {
	svc := newChatSvc(t, true)

	_, err := svc.Send(context.Background(), "c1", "u1", "")
	wantInputError(t, err, "userId and text required")
	_, err = svc.Send(context.Background(), "c1", "", "hi")
	wantInputError(t, err, "userId and text required")
}

func TestChatService_NotFound(t *testing.T) {
	svc := newChatSvc(t, false)

	if _, err := svc.Messages(context.Background(), "nope"); !errors.Is(err, domain.ErrChatNotFound) {
		t.Fatalf("expected ErrChatNotFound, got %v", err)
	}
	if _, err := svc.Send(context.Background(), "nope", "u1", "hi"); !errors.Is(err, domain.ErrChatNotFound) {
		t.Fatalf("expected ErrChatNotFound, got %v", err)
	}
}

func TestChatService_CreateAndList(t *testing.T) {
	svc := newChatSvc(t, true)
	ctx := context.Background()

	_, err := svc.Create(ctx, "")
	wantInputError(t, err, "Missing required field: title")

	chat, err := svc.Create(ctx, "Random")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	page, err := svc.List(ctx, "", 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 2 || page.Items[0].ID != "c1" || page.Items[1].ID != chat.ID {
		t.Fatalf("unexpected chats: %+v", page.Items)
	}
}
