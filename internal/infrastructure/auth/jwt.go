package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vanguard/directory/internal/core/domain"
)

// Claims is the token payload understood by JWTProvider.
type Claims struct {
	Name string `json:"name"`
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTProvider verifies HS256 bearer tokens. Requests without an
// Authorization header resolve to the anonymous actor.
type JWTProvider struct {
	secret []byte
}

func NewJWTProvider(secret string) (*JWTProvider, error) {
	if secret == "" {
		return nil, errors.New("auth: JWT_SECRET is required in jwt mode")
	}
	return &JWTProvider{secret: []byte(secret)}, nil
}

func (p *JWTProvider) Resolve(r *http.Request) (domain.Actor, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return domain.AnonymousActor, nil
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return domain.Actor{}, fmt.Errorf("%w: invalid authorization header", domain.ErrUnauthenticated)
	}

	var claims Claims
	tkn, err := jwt.ParseWithClaims(parts[1], &claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return p.secret, nil
	})
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return domain.Actor{}, fmt.Errorf("%w: invalid token", domain.ErrUnauthenticated)
	}

	role := claims.Role
	if role != domain.RoleAdmin {
		role = domain.RoleUser
	}
	return domain.Actor{
		ID:            claims.Subject,
		Name:          claims.Name,
		Role:          role,
		Authenticated: true,
	}, nil
}

// Sign issues a token for actor valid for ttl. The service only verifies
// tokens; Sign exists for tests and local tooling.
func (p *JWTProvider) Sign(actor domain.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Name: actor.Name,
		Role: actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}
