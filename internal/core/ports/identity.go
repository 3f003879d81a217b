package ports

import (
	"net/http"

	"github.com/vanguard/directory/internal/core/domain"
)

// IdentityProvider resolves who is acting for a request.
type IdentityProvider interface {
	Resolve(r *http.Request) (domain.Actor, error)
}
