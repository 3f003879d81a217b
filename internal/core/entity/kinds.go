package entity

import (
	"github.com/vanguard/directory/internal/core/domain"
	"github.com/vanguard/directory/internal/core/ports"
)

func UserKind() Kind[domain.User] {
	return Kind[domain.User]{
		Name:     "user",
		Index:    "users",
		ID:       func(u domain.User) string { return u.ID },
		SetID:    func(u domain.User, id string) domain.User { u.ID = id; return u },
		NotFound: domain.ErrUserNotFound,
		Seed:     domain.SeedUsers,
	}
}

func ProjectKind() Kind[domain.Project] {
	return Kind[domain.Project]{
		Name:     "project",
		Index:    "projects",
		ID:       func(p domain.Project) string { return p.ID },
		SetID:    func(p domain.Project, id string) domain.Project { p.ID = id; return p },
		NotFound: domain.ErrProjectNotFound,
		Seed:     domain.SeedProjects,
	}
}

func ChatKind() Kind[domain.ChatBoard] {
	return Kind[domain.ChatBoard]{
		Name:     "chat",
		Index:    "chats",
		ID:       func(c domain.ChatBoard) string { return c.ID },
		SetID:    func(c domain.ChatBoard, id string) domain.ChatBoard { c.ID = id; return c },
		NotFound: domain.ErrChatNotFound,
		Seed:     domain.SeedChats,
	}
}

// Repositories bundles the repository of every kind.
type Repositories struct {
	Users    *Indexed[domain.User]
	Projects *Indexed[domain.Project]
	Chats    *Indexed[domain.ChatBoard]
}

// NewRepositories builds the repository of every kind over store. A nil
// serializer leaves mutations unserialized.
func NewRepositories(store ports.EntityStore, serial ports.Serializer) Repositories {
	r := Repositories{
		Users:    New(store, UserKind()),
		Projects: New(store, ProjectKind()),
		Chats:    New(store, ChatKind()),
	}
	if serial != nil {
		r.Users.WithSerializer(serial)
		r.Projects.WithSerializer(serial)
		r.Chats.WithSerializer(serial)
	}
	return r
}
