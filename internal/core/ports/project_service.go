package ports

import (
	"context"

	"github.com/vanguard/directory/internal/core/domain"
)

// CreateProjectInput carries a new submission. Empty optional fields take defaults.
type CreateProjectInput struct {
	Title         string
	Tagline       string
	Description   string
	URL           string
	LogoURL       string
	ScreenshotURL string
	Tags          []string
	OwnerID       string
}

// ProjectUpdate lists the fields a standard update may change. ID, OwnerID
// and CreatedAt are intentionally absent. Nil pointers leave the field as is.
type ProjectUpdate struct {
	Title         *string
	Tagline       *string
	Description   *string
	URL           *string
	LogoURL       *string
	ScreenshotURL *string
	Tags          *[]string
	Votes         *int64
}

// ListProjectsInput carries list query parameters.
type ListProjectsInput struct {
	Cursor  string
	Limit   int
	OwnerID string // applied to the fetched page only
}

// ImportInput carries a raw import payload.
type ImportInput struct {
	Payload        []byte
	IdempotencyKey string
}

// ImportResult reports an import outcome.
type ImportResult struct {
	Count int
	// Replayed is true when the idempotency key matched an earlier import.
	Replayed bool
}

// ProjectService defines directory use cases.
type ProjectService interface {
	List(ctx context.Context, in ListProjectsInput) (Page[domain.Project], error)
	Get(ctx context.Context, id string) (domain.Project, error)
	Create(ctx context.Context, in CreateProjectInput) (domain.Project, error)
	Update(ctx context.Context, actor domain.Actor, id string, upd ProjectUpdate) (domain.Project, error)
	Vote(ctx context.Context, id string) (domain.Project, error)
	Delete(ctx context.Context, actor domain.Actor, id string) (bool, error)
	BulkDelete(ctx context.Context, ids []string) (int, error)
	Export(ctx context.Context) ([]domain.Project, error)
	Import(ctx context.Context, in ImportInput) (ImportResult, error)
}

// Apply copies every supplied field onto current.
func (u ProjectUpdate) Apply(current domain.Project) domain.Project {
	if u.Title != nil {
		current.Title = *u.Title
	}
	if u.Tagline != nil {
		current.Tagline = *u.Tagline
	}
	if u.Description != nil {
		current.Description = *u.Description
	}
	if u.URL != nil {
		current.URL = *u.URL
	}
	if u.LogoURL != nil {
		current.LogoURL = *u.LogoURL
	}
	if u.ScreenshotURL != nil {
		current.ScreenshotURL = *u.ScreenshotURL
	}
	if u.Tags != nil {
		current.Tags = append([]string{}, (*u.Tags)...)
	}
	if u.Votes != nil {
		current.Votes = *u.Votes
	}
	return current
}
