package service

import (
	"context"
	"errors"
	"testing"

	"github.com/vanguard/directory/internal/core/domain"
	"github.com/vanguard/directory/internal/core/ports"
)

func ptr[T any](v T) *T { return &v }

func TestProjectService_Create_Defaults(t *testing.T) {
	svc, _ := newProjectSvc(t, ProjectOptions{})

	p, err := svc.Create(context.Background(), ports.CreateProjectInput{
		Title: "Lens", Tagline: "See more", URL: "https://lens.dev",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID != "gen-1" {
		t.Fatalf("expected generated id, got %q", p.ID)
	}
	if p.OwnerID != domain.OwnerAnonymous || p.Votes != 0 || p.Description != "" {
		t.Fatalf("unexpected defaults: %+v", p)
	}
	if p.Tags == nil || len(p.Tags) != 0 {
		t.Fatalf("expected empty non-nil tags, got %#v", p.Tags)
	}
	if p.CreatedAt != fixedNow.UnixMilli() {
		t.Fatalf("expected createdAt %d, got %d", fixedNow.UnixMilli(), p.CreatedAt)
	}

	got, err := svc.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Lens" {
		t.Fatalf("stored project mismatch: %+v", got)
	}
}

func TestProjectService_Create_MissingFields(t *testing.T) {
	svc, _ := newProjectSvc(t, ProjectOptions{})

	inputs := []ports.CreateProjectInput{
		{Tagline: "t", URL: "u"},
		{Title: "t", URL: "u"},
		{Title: "t", Tagline: "t"},
	}
	for _, in := range inputs {
		_, err := svc.Create(context.Background(), in)
		wantInputError(t, err, "Missing required fields: title, tagline, url")
	}
}

func TestProjectService_Get_NotFound(t *testing.T) {
	svc, _ := newProjectSvc(t, ProjectOptions{})

	if _, err := svc.Get(context.Background(), "nope"); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestProjectService_List_OwnerFilterAppliesToPage(t *testing.T) {
	svc, repos := newProjectSvc(t, ProjectOptions{})
	seedProjects(t, repos)
	ctx := context.Background()
	if _, err := svc.Create(ctx, ports.CreateProjectInput{Title: "x", Tagline: "y", URL: "z", OwnerID: "u2"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	// The u2 project is sixth; a page of five holds none of it.
	page, err := svc.List(ctx, ports.ListProjectsInput{Limit: 5, OwnerID: "u2"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 0 {
		t.Fatalf("expected empty filtered page, got %d", len(page.Items))
	}
	if page.Next == "" {
		t.Fatalf("expected a next cursor past the filtered page")
	}

	page, err = svc.List(ctx, ports.ListProjectsInput{Cursor: page.Next, Limit: 5, OwnerID: "u2"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 1 || page.Items[0].OwnerID != "u2" {
		t.Fatalf("expected the u2 project, got %+v", page.Items)
	}
}

func TestProjectService_List_SeedOnList(t *testing.T) {
	svc, _ := newProjectSvc(t, ProjectOptions{SeedOnList: true})

	page, err := svc.List(context.Background(), ports.ListProjectsInput{Limit: 100})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != len(domain.SeedProjects()) {
		t.Fatalf("expected seeded projects, got %d", len(page.Items))
	}
}

func TestProjectService_List_NoSeedByDefault(t *testing.T) {
	svc, _ := newProjectSvc(t, ProjectOptions{})

	page, err := svc.List(context.Background(), ports.ListProjectsInput{Limit: 100})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 0 || page.Next != "" {
		t.Fatalf("expected empty page, got %+v", page)
	}
}

func TestProjectService_Update_PreservesImmutableFields(t *testing.T) {
	svc, repos := newProjectSvc(t, ProjectOptions{})
	seedProjects(t, repos)
	ctx := context.Background()

	before, _ := svc.Get(ctx, "p1")
	updated, err := svc.Update(ctx, owner, "p1", ports.ProjectUpdate{
		Title: ptr("AI Analyzer 2"),
		Tags:  ptr([]string{"AI"}),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "AI Analyzer 2" || len(updated.Tags) != 1 {
		t.Fatalf("fields not applied: %+v", updated)
	}
	if updated.ID != before.ID || updated.OwnerID != before.OwnerID || updated.CreatedAt != before.CreatedAt {
		t.Fatalf("immutable fields changed: before %+v after %+v", before, updated)
	}
	if updated.Votes != before.Votes || updated.Tagline != before.Tagline {
		t.Fatalf("unsupplied fields changed")
	}
}

func TestProjectService_Update_Votes(t *testing.T) {
	svc, repos := newProjectSvc(t, ProjectOptions{})
	seedProjects(t, repos)

	updated, err := svc.Update(context.Background(), domain.DemoAdmin, "p1", ports.ProjectUpdate{Votes: ptr(int64(7))})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Votes != 7 {
		t.Fatalf("expected 7 votes, got %d", updated.Votes)
	}

	_, err = svc.Update(context.Background(), domain.DemoAdmin, "p1", ports.ProjectUpdate{Votes: ptr(int64(-1))})
	wantInputError(t, err, "votes must be a non-negative integer")
}

func TestProjectService_Update_Authorization(t *testing.T) {
	svc, repos := newProjectSvc(t, ProjectOptions{})
	seedProjects(t, repos)
	ctx := context.Background()

	tests := []struct {
		name    string
		actor   domain.Actor
		wantErr error
	}{
		{"owner", owner, nil},
		{"admin", domain.DemoAdmin, nil},
		{"stranger", stranger, domain.ErrForbidden},
		{"anonymous", domain.AnonymousActor, domain.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(ctx, tt.actor, "p2", ports.ProjectUpdate{Tagline: ptr("new")})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestProjectService_Update_NotFound(t *testing.T) {
	svc, _ := newProjectSvc(t, ProjectOptions{})

	_, err := svc.Update(context.Background(), domain.DemoAdmin, "missing", ports.ProjectUpdate{Title: ptr("x")})
	if !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestProjectService_Vote(t *testing.T) {
	svc, repos := newProjectSvc(t, ProjectOptions{})
	seedProjects(t, repos)
	ctx := context.Background()

	before, _ := svc.Get(ctx, "p4")
	for i := 0; i < 3; i++ {
		if _, err := svc.Vote(ctx, "p4"); err != nil {
			t.Fatalf("vote: %v", err)
		}
	}
	after, _ := svc.Get(ctx, "p4")
	if after.Votes != before.Votes+3 {
		t.Fatalf("expected %d votes, got %d", before.Votes+3, after.Votes)
	}

	if _, err := svc.Vote(ctx, "missing"); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestProjectService_Delete(t *testing.T) {
	svc, repos := newProjectSvc(t, ProjectOptions{})
	seedProjects(t, repos)
	ctx := context.Background()

	if _, err := svc.Delete(ctx, stranger, "p1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	deleted, err := svc.Delete(ctx, owner, "p1")
	if err != nil || !deleted {
		t.Fatalf("expected deletion, got %v %v", deleted, err)
	}

	// Idempotent: a second delete, even by a stranger, reports false.
	deleted, err = svc.Delete(ctx, stranger, "p1")
	if err != nil || deleted {
		t.Fatalf("expected idempotent false, got %v %v", deleted, err)
	}

	if _, err := svc.Get(ctx, "p1"); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("deleted project still readable: %v", err)
	}
	page, _ := svc.List(ctx, ports.ListProjectsInput{Limit: 100})
	for _, p := range page.Items {
		if p.ID == "p1" {
			t.Fatalf("deleted project still listed")
		}
	}
}

func TestProjectService_BulkDelete_CountsExistingOnly(t *testing.T) {
	svc, repos := newProjectSvc(t, ProjectOptions{})
	seedProjects(t, repos)
	ctx := context.Background()

	n, err := svc.BulkDelete(ctx, []string{"p1", "p2", "missing", "p1"})
	if err != nil {
		t.Fatalf("bulk delete: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 deletions, got %d", n)
	}

	n, err = svc.BulkDelete(ctx, []string{})
	if err != nil || n != 0 {
		t.Fatalf("expected 0 for empty list, got %d %v", n, err)
	}

	count, _ := repos.Projects.Count(ctx)
	if count != 3 {
		t.Fatalf("expected 3 remaining, got %d", count)
	}
}

func TestProjectService_Export(t *testing.T) {
	svc, repos := newProjectSvc(t, ProjectOptions{ExportLimit: 3})
	seedProjects(t, repos)

	items, err := svc.Export(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected export capped at 3, got %d", len(items))
	}
	if items[0].ID != "p1" || items[2].ID != "p3" {
		t.Fatalf("export not in index order: %s..%s", items[0].ID, items[2].ID)
	}
}
