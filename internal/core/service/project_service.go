package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vanguard/directory/internal/api/metrics"
	"github.com/vanguard/directory/internal/core/domain"
	"github.com/vanguard/directory/internal/core/ports"
)

const defaultExportLimit = 1000

// ProjectOptions tunes ProjectService behaviour.
type ProjectOptions struct {
	// ExportLimit caps the number of projects returned by Export.
	ExportLimit int
	// SeedOnList makes List seed an empty directory before reading.
	SeedOnList bool
	// Replay, when set, deduplicates imports carrying an idempotency key.
	Replay ports.ReplayGuard
}

type ProjectService struct {
	repo   ports.EntityRepository[domain.Project]
	opts   ProjectOptions
	logger zerolog.Logger
	now    func() time.Time
	newID  func() string
}

var _ ports.ProjectService = (*ProjectService)(nil)

func NewProjectService(repo ports.EntityRepository[domain.Project], opts ProjectOptions, logger zerolog.Logger) *ProjectService {
	if opts.ExportLimit <= 0 {
		opts.ExportLimit = defaultExportLimit
	}
	return &ProjectService{
		repo:   repo,
		opts:   opts,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// List returns one page of projects. The owner filter is applied to the
// fetched page, so a filtered page may hold fewer than Limit items while
// more matches exist past Next.
func (s *ProjectService) List(ctx context.Context, in ports.ListProjectsInput) (ports.Page[domain.Project], error) {
	if s.opts.SeedOnList {
		if _, err := s.repo.EnsureSeed(ctx); err != nil {
			return ports.Page[domain.Project]{}, err
		}
	}

	page, err := s.repo.List(ctx, in.Cursor, in.Limit)
	if err != nil {
		return page, err
	}
	if in.OwnerID == "" {
		return page, nil
	}

	filtered := make([]domain.Project, 0, len(page.Items))
	for _, p := range page.Items {
		if p.OwnerID == in.OwnerID {
			filtered = append(filtered, p)
		}
	}
	page.Items = filtered
	return page, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (domain.Project, error) {
	return s.repo.Get(ctx, id)
}

// Create stores a new submission. Title, tagline and url are required.
func (s *ProjectService) Create(ctx context.Context, in ports.CreateProjectInput) (domain.Project, error) {
	if in.Title == "" || in.Tagline == "" || in.URL == "" {
		return domain.Project{}, domain.NewInputError("Missing required fields: title, tagline, url")
	}

	owner := in.OwnerID
	if owner == "" {
		owner = domain.OwnerAnonymous
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	project := domain.Project{
		ID:            s.newID(),
		Title:         in.Title,
		Tagline:       in.Tagline,
		Description:   in.Description,
		URL:           in.URL,
		LogoURL:       in.LogoURL,
		ScreenshotURL: in.ScreenshotURL,
		Tags:          tags,
		OwnerID:       owner,
		CreatedAt:     s.now().UnixMilli(),
		Votes:         0,
	}

	created, err := s.repo.Create(ctx, project)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create project")
		return domain.Project{}, err
	}

	metrics.ProjectsCreatedTotal.WithLabelValues("submit").Inc()
	s.logger.Info().Str("project_id", created.ID).Str("owner_id", created.OwnerID).Msg("project created")
	return created, nil
}

// Update applies upd to an existing project. The update type cannot carry
// id, owner or creation time, so those are always preserved.
func (s *ProjectService) Update(ctx context.Context, actor domain.Actor, id string, upd ports.ProjectUpdate) (domain.Project, error) {
	if upd.Votes != nil && *upd.Votes < 0 {
		return domain.Project{}, domain.NewInputError("votes must be a non-negative integer")
	}

	updated, err := s.repo.Mutate(ctx, id, func(cur domain.Project) (domain.Project, error) {
		if !cur.ManageableBy(actor) {
			return cur, domain.ErrForbidden
		}
		return upd.Apply(cur), nil
	})
	if err != nil {
		return domain.Project{}, err
	}

	s.logger.Info().Str("project_id", id).Str("actor", actor.ID).Msg("project updated")
	return updated, nil
}

// Vote increments the vote counter by one.
func (s *ProjectService) Vote(ctx context.Context, id string) (domain.Project, error) {
	updated, err := s.repo.Mutate(ctx, id, func(cur domain.Project) (domain.Project, error) {
		cur.Votes++
		return cur, nil
	})
	if err != nil {
		return domain.Project{}, err
	}

	metrics.VotesTotal.Inc()
	s.logger.Debug().Str("project_id", id).Int64("votes", updated.Votes).Msg("vote recorded")
	return updated, nil
}

// Delete removes a project. Deleting a missing project is not an error.
func (s *ProjectService) Delete(ctx context.Context, actor domain.Actor, id string) (bool, error) {
	cur, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return false, nil
		}
		return false, err
	}
	if !cur.ManageableBy(actor) {
		return false, domain.ErrForbidden
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		metrics.ProjectsDeletedTotal.WithLabelValues("single").Inc()
		s.logger.Info().Str("project_id", id).Str("actor", actor.ID).Msg("project deleted")
	}
	return deleted, nil
}

// BulkDelete removes every listed project and returns how many existed.
func (s *ProjectService) BulkDelete(ctx context.Context, ids []string) (int, error) {
	count, err := s.repo.DeleteMany(ctx, ids)
	if count > 0 {
		metrics.ProjectsDeletedTotal.WithLabelValues("bulk").Add(float64(count))
	}
	if err != nil {
		s.logger.Error().Err(err).Int("deleted", count).Msg("bulk delete aborted")
		return count, err
	}

	s.logger.Info().Int("requested", len(ids)).Int("deleted", count).Msg("bulk delete")
	return count, nil
}

// Export returns up to ExportLimit projects in index order.
func (s *ProjectService) Export(ctx context.Context) ([]domain.Project, error) {
	page, err := s.repo.List(ctx, "", s.opts.ExportLimit)
	if err != nil {
		return nil, err
	}
	return page.Items, nil
}
