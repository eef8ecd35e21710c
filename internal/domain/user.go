package domain

import (
	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Avatar       string    `json:"avatar"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Posts        []Post    `json:"posts,omitempty"`
}

// Summary is the author shape embedded in serialized posts.
func (u *User) Summary() *Author {
	return &Author{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Surname:  u.Surname,
	}
}

type Author struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Name     string    `json:"name"`
	Surname  string    `json:"surname"`
}
