package ports

import (
	"context"

	"github.com/vanguard/directory/internal/core/domain"
)

type CreateUserInput struct {
	ID        string
	Name      string
	Email     string
	AvatarURL string
	Role      string
}

type UserService interface {
	List(ctx context.Context, cursor string, limit int) (Page[domain.User], error)
	Get(ctx context.Context, id string) (domain.User, error)
	Create(ctx context.Context, in CreateUserInput) (domain.User, error)
}
