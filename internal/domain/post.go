package domain

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        uuid.UUID `json:"id"`
	Image     string    `json:"image"`
	Message   string    `json:"message"`
	Likes     []string  `json:"likes"`
	AuthorID  uuid.UUID `json:"author_id"`
	Author    *Author   `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Location  string    `json:"location"`
	Status    string    `json:"status"`
}
