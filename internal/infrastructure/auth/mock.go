// Package auth holds the identity providers selected by AUTH_MODE.
package auth

import (
	"net/http"

	"github.com/vanguard/directory/internal/core/domain"
)

// MockProvider resolves every request to the built-in demo admin.
type MockProvider struct{}

func NewMockProvider() MockProvider { return MockProvider{} }

func (MockProvider) Resolve(*http.Request) (domain.Actor, error) {
	return domain.DemoAdmin, nil
}
