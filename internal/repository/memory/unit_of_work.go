package memory

import (
	"context"

	"github.com/mpavlov90/snapfeed/internal/repository"
)

// UnitOfWork hands out the shared in-memory repositories. Writes apply
// immediately; Commit and Rollback are no-ops since the memory stores have no
// transaction semantics to speak of.
type UnitOfWork struct {
	users *UserRepo
	posts *PostRepo
}

func NewUnitOfWork(users *UserRepo, posts *PostRepo) *UnitOfWork {
	return &UnitOfWork{users: users, posts: posts}
}

func (u *UnitOfWork) Begin(ctx context.Context) (repository.Tx, error) {
	return &memTx{users: u.users, posts: u.posts}, nil
}

type memTx struct {
	users *UserRepo
	posts *PostRepo
}

func (t *memTx) Users() repository.UserRepository { return t.users }
func (t *memTx) Posts() repository.PostRepository { return t.posts }
func (t *memTx) Commit(ctx context.Context) error { return nil }

func (t *memTx) Rollback(ctx context.Context) error { return nil }
