package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/vanguard/directory/internal/core/domain"
)

type stubProvider struct {
	actor domain.Actor
	err   error
}

func (p stubProvider) Resolve(*http.Request) (domain.Actor, error) { return p.actor, p.err }

func TestIdentity_InjectsActor(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	mw := Identity(stubProvider{actor: domain.DemoAdmin})
	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		if got := ActorFrom(c); got.ID != domain.DemoAdmin.ID || !got.IsAdmin() {
			t.Fatalf("unexpected actor: %+v", got)
		}
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestIdentity_Unauthenticated(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Identity(stubProvider{err: domain.ErrUnauthenticated})
	handler := mw(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestActorFrom_DefaultsToAnonymous(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	if got := ActorFrom(c); got != domain.AnonymousActor {
		t.Fatalf("expected anonymous actor, got %+v", got)
	}
}
