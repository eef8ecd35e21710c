package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/mpavlov90/snapfeed/internal/domain"
)

// ErrDuplicate is returned by writes that violate a uniqueness constraint.
var ErrDuplicate = errors.New("duplicate key")

// Lookups return (nil, nil) when the entity does not exist.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Post, error)
	// InsertLike records that the user likes the post. It reports whether a
	// new row was inserted; false means the pair already existed.
	InsertLike(ctx context.Context, userID, postID uuid.UUID) (bool, error)
	DeleteLikes(ctx context.Context, postID uuid.UUID) error
	Delete(ctx context.Context, postID uuid.UUID) error
}

// UnitOfWork scopes a group of repository calls to a single transaction.
type UnitOfWork interface {
	Begin(ctx context.Context) (Tx, error)
}

type Tx interface {
	Users() UserRepository
	Posts() PostRepository
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
