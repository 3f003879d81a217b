package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/vanguard/directory/internal/api/metrics"
	"github.com/vanguard/directory/internal/core/domain"
	"github.com/vanguard/directory/internal/core/ports"
)

// importItem mirrors domain.Project with tags left raw so that a non-array
// value can be replaced instead of rejecting the item.
type importItem struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Tagline       string          `json:"tagline"`
	Description   string          `json:"description"`
	URL           string          `json:"url"`
	LogoURL       string          `json:"logoUrl"`
	ScreenshotURL string          `json:"screenshotUrl"`
	Tags          json.RawMessage `json:"tags"`
	OwnerID       string          `json:"ownerId"`
	CreatedAt     int64           `json:"createdAt"`
	Votes         int64           `json:"votes"`
}

// Import creates or overwrites projects from a JSON array. Items without a
// title or url, or that do not decode as a project object, are skipped.
func (s *ProjectService) Import(ctx context.Context, in ports.ImportInput) (ports.ImportResult, error) {
	if in.IdempotencyKey != "" && s.opts.Replay != nil {
		n, ok, err := s.opts.Replay.Lookup(ctx, in.IdempotencyKey)
		if err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("replay lookup failed, importing anyway")
		} else if ok {
			s.logger.Info().Str("idempotency_key", in.IdempotencyKey).Int("count", n).Msg("idempotent import replay")
			return ports.ImportResult{Count: n, Replayed: true}, nil
		}
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(in.Payload, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return ports.ImportResult{}, domain.NewInputError("Invalid format: Expected array")
		}
		return ports.ImportResult{}, domain.NewInputError("Import failed: " + err.Error())
	}
	if raw == nil {
		return ports.ImportResult{}, domain.NewInputError("Invalid format: Expected array")
	}

	imported, skipped := 0, 0
	for _, item := range raw {
		project, ok := s.importProject(item)
		if !ok {
			skipped++
			continue
		}
		if _, err := s.repo.Create(ctx, project); err != nil {
			s.logger.Error().Err(err).Int("imported", imported).Msg("import aborted")
			return ports.ImportResult{}, domain.NewInputError("Import failed: " + err.Error())
		}
		imported++
	}

	metrics.ImportItemsTotal.WithLabelValues("imported").Add(float64(imported))
	metrics.ImportItemsTotal.WithLabelValues("skipped").Add(float64(skipped))
	metrics.ProjectsCreatedTotal.WithLabelValues("import").Add(float64(imported))

	if in.IdempotencyKey != "" && s.opts.Replay != nil {
		if err := s.opts.Replay.Remember(ctx, in.IdempotencyKey, imported); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("failed to remember import")
		}
	}

	s.logger.Info().Int("imported", imported).Int("skipped", skipped).Msg("projects imported")
	return ports.ImportResult{Count: imported}, nil
}

// importProject fills the defaults for absent fields.
func (s *ProjectService) importProject(raw json.RawMessage) (domain.Project, bool) {
	var it importItem
	if err := json.Unmarshal(raw, &it); err != nil {
		return domain.Project{}, false
	}
	if it.Title == "" || it.URL == "" {
		return domain.Project{}, false
	}

	p := domain.Project{
		ID:            it.ID,
		Title:         it.Title,
		Tagline:       it.Tagline,
		Description:   it.Description,
		URL:           it.URL,
		LogoURL:       it.LogoURL,
		ScreenshotURL: it.ScreenshotURL,
		Tags:          importTags(it.Tags),
		OwnerID:       it.OwnerID,
		CreatedAt:     it.CreatedAt,
		Votes:         it.Votes,
	}
	if p.ID == "" {
		p.ID = s.newID()
	}
	if p.CreatedAt == 0 {
		p.CreatedAt = s.now().UnixMilli()
	}
	if p.Votes < 0 {
		p.Votes = 0
	}
	if p.OwnerID == "" {
		p.OwnerID = domain.OwnerImported
	}
	return p, true
}

// importTags keeps the string elements of a JSON array; anything else
// yields an empty list.
func importTags(raw json.RawMessage) []string {
	tags := []string{}
	var elems []any
	if len(raw) == 0 || json.Unmarshal(raw, &elems) != nil {
		return tags
	}
	for _, e := range elems {
		if s, ok := e.(string); ok {
			tags = append(tags, s)
		}
	}
	return tags
}
