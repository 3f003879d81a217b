package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/vanguard/directory/internal/api/metrics"
	"github.com/vanguard/directory/internal/core/entity"
)

type seedable interface {
	EnsureSeed(ctx context.Context) (int, error)
}

// Seed writes the fixtures of every kind whose index is empty. It is
// idempotent and meant to run once at startup.
func Seed(ctx context.Context, repos entity.Repositories, log zerolog.Logger) error {
	kinds := []struct {
		name string
		repo seedable
	}{
		{"users", repos.Users},
		{"projects", repos.Projects},
		{"chats", repos.Chats},
	}
	for _, k := range kinds {
		n, err := k.repo.EnsureSeed(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			if k.name == "projects" {
				metrics.ProjectsCreatedTotal.WithLabelValues("seed").Add(float64(n))
			}
			log.Info().Str("kind", k.name).Int("records", n).Msg("seeded empty index")
		}
	}
	return nil
}
