package domain

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User models a directory member.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	Role      string `json:"role"`
}
