package domain

// Actor is the identity a request is executed on behalf of.
type Actor struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
	// Authenticated is false for the anonymous fallback actor.
	Authenticated bool `json:"authenticated"`
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// AnonymousActor is used when no credentials accompany a request.
var AnonymousActor = Actor{ID: OwnerAnonymous, Name: "Anonymous", Role: RoleUser}

// DemoAdmin is the built-in development identity.
var DemoAdmin = Actor{
	ID:            "u1",
	Name:          "Admin Demo",
	Email:         "admin@vanguard.tech",
	Role:          RoleAdmin,
	Authenticated: true,
}
