package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mpavlov90/snapfeed/internal/domain"
)

type PostRepo struct {
	db Querier
}

func NewPostRepo(db Querier) *PostRepo {
	return &PostRepo{db: db}
}

func (r *PostRepo) Create(ctx context.Context, post *domain.Post) error {
	query := `
		INSERT INTO posts (id, image, message, author_id, created_at, location, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Exec(ctx, query,
		post.ID, post.Image, post.Message, post.AuthorID,
		post.CreatedAt, post.Location, post.Status,
	)
	return err
}

func (r *PostRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	var p domain.Post
	err := r.db.QueryRow(ctx,
		"SELECT id, image, message, author_id, created_at, location, status FROM posts WHERE id = $1", id,
	).Scan(&p.ID, &p.Image, &p.Message, &p.AuthorID, &p.CreatedAt, &p.Location, &p.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	likes, err := r.likesByPost(ctx, []uuid.UUID{p.ID})
	if err != nil {
		return nil, err
	}
	p.Likes = likes[p.ID]
	if p.Likes == nil {
		p.Likes = []string{}
	}

	return &p, nil
}

func (r *PostRepo) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Post, error) {
	query := `
		SELECT id, image, message, author_id, created_at, location, status
		FROM posts
		WHERE author_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []domain.Post
	var ids []uuid.UUID
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.Image, &p.Message, &p.AuthorID, &p.CreatedAt, &p.Location, &p.Status); err != nil {
			return nil, err
		}
		posts = append(posts, p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(posts) == 0 {
		return []domain.Post{}, nil
	}

	likes, err := r.likesByPost(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].Likes = likes[posts[i].ID]
		if posts[i].Likes == nil {
			posts[i].Likes = []string{}
		}
	}

	return posts, nil
}

// likesByPost resolves the liking usernames for a batch of posts in a single
// query.
func (r *PostRepo) likesByPost(ctx context.Context, postIDs []uuid.UUID) (map[uuid.UUID][]string, error) {
	query := `
		SELECT pl.post_id, u.username
		FROM post_likes pl
		JOIN users u ON u.id = pl.user_id
		WHERE pl.post_id = ANY($1)`

	rows, err := r.db.Query(ctx, query, postIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	likes := make(map[uuid.UUID][]string)
	for rows.Next() {
		var postID uuid.UUID
		var username string
		if err := rows.Scan(&postID, &username); err != nil {
			return nil, err
		}
		likes[postID] = append(likes[postID], username)
	}
	return likes, rows.Err()
}

func (r *PostRepo) InsertLike(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	// The composite primary key makes this safe under concurrent identical
	// requests: exactly one insert wins, the rest hit the conflict branch.
	tag, err := r.db.Exec(ctx,
		"INSERT INTO post_likes (user_id, post_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		userID, postID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PostRepo) DeleteLikes(ctx context.Context, postID uuid.UUID) error {
	_, err := r.db.Exec(ctx, "DELETE FROM post_likes WHERE post_id = $1", postID)
	return err
}

func (r *PostRepo) Delete(ctx context.Context, postID uuid.UUID) error {
	_, err := r.db.Exec(ctx, "DELETE FROM posts WHERE id = $1", postID)
	return err
}
