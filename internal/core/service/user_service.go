package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vanguard/directory/internal/core/domain"
	"github.com/vanguard/directory/internal/core/ports"
)

type UserService struct {
	repo   ports.EntityRepository[domain.User]
	logger zerolog.Logger
	newID  func() string
}

var _ ports.UserService = (*UserService)(nil)

func NewUserService(repo ports.EntityRepository[domain.User], logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger, newID: uuid.NewString}
}

func (s *UserService) List(ctx context.Context, cursor string, limit int) (ports.Page[domain.User], error) {
	return s.repo.List(ctx, cursor, limit)
}

func (s *UserService) Get(ctx context.Context, id string) (domain.User, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a user. Role defaults to "user"; a supplied id overwrites
// any existing user with that id.
func (s *UserService) Create(ctx context.Context, in ports.CreateUserInput) (domain.User, error) {
	if in.Name == "" {
		return domain.User{}, domain.NewInputError("Missing required field: name")
	}
	role := in.Role
	switch role {
	case "":
		role = domain.RoleUser
	case domain.RoleUser, domain.RoleAdmin:
	default:
		return domain.User{}, domain.NewInputError("role must be one of: user admin")
	}
	id := in.ID
	if id == "" {
		id = s.newID()
	}

	user, err := s.repo.Create(ctx, domain.User{
		ID:        id,
		Name:      in.Name,
		Email:     in.Email,
		AvatarURL: in.AvatarURL,
		Role:      role,
	})
	if err != nil {
		return domain.User{}, err
	}
	s.logger.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user created")
	return user, nil
}
