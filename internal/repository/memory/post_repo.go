package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/mpavlov90/snapfeed/internal/domain"
)

// PostRepo is an in-memory PostRepository. It resolves liking usernames
// through the user repo it was built with.
type PostRepo struct {
	mu    sync.RWMutex
	posts map[uuid.UUID]*domain.Post
	likes map[uuid.UUID][]uuid.UUID
	users *UserRepo
}

func NewPostRepo(users *UserRepo) *PostRepo {
	return &PostRepo{
		posts: make(map[uuid.UUID]*domain.Post),
		likes: make(map[uuid.UUID][]uuid.UUID),
		users: users,
	}
}

func (r *PostRepo) Create(ctx context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *post
	r.posts[stored.ID] = &stored
	return nil
}

func (r *PostRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	result := *post
	result.Likes = r.likeUsernames(id)
	return &result, nil
}

func (r *PostRepo) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []domain.Post{}
	for _, post := range r.posts {
		if post.AuthorID == authorID {
			p := *post
			p.Likes = r.likeUsernames(p.ID)
			result = append(result, p)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}

func (r *PostRepo) InsertLike(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.likes[postID] {
		if id == userID {
			return false, nil
		}
	}
	r.likes[postID] = append(r.likes[postID], userID)
	return true, nil
}

func (r *PostRepo) DeleteLikes(ctx context.Context, postID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.likes, postID)
	return nil
}

func (r *PostRepo) Delete(ctx context.Context, postID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.posts, postID)
	return nil
}

// LikeCount reports the number of stored like rows for a post.
func (r *PostRepo) LikeCount(postID uuid.UUID) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.likes[postID])
}

// callers must hold r.mu
func (r *PostRepo) likeUsernames(postID uuid.UUID) []string {
	usernames := []string{}
	for _, userID := range r.likes[postID] {
		if username, ok := r.users.usernameOf(userID); ok {
			usernames = append(usernames, username)
		}
	}
	return usernames
}
