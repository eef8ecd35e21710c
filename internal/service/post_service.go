package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mpavlov90/snapfeed/internal/domain"
	"github.com/mpavlov90/snapfeed/internal/logger"
	"github.com/mpavlov90/snapfeed/internal/repository"
)

var ErrPostNotFound = errors.New("post not found")

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	uow      repository.UnitOfWork
	log      *logger.Logger
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository, uow repository.UnitOfWork, log *logger.Logger) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		uow:      uow,
		log:      log,
	}
}

type CreatePostInput struct {
	AuthorID uuid.UUID
	Image    string
	Message  string
	Location string
	Status   string
}

func (s *PostService) CreatePost(ctx context.Context, input CreatePostInput) (post *domain.Post, err error) {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}

	var committed bool
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.log.Error("rollback failed", slog.String("error", rbErr.Error()))
			}
		}
	}()

	author, err := tx.Users().GetByID(ctx, input.AuthorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrUserNotFound
	}

	post = &domain.Post{
		ID:        uuid.New(),
		Image:     input.Image,
		Message:   input.Message,
		Likes:     []string{},
		AuthorID:  author.ID,
		Author:    author.Summary(),
		CreatedAt: time.Now().UTC(),
		Location:  input.Location,
		Status:    input.Status,
	}

	if err := tx.Posts().Create(ctx, post); err != nil {
		return nil, fmt.Errorf("creating post: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}
	committed = true

	return post, nil
}

// ListByAuthor returns the user's posts, most recent first.
func (s *PostService) ListByAuthor(ctx context.Context, userID uuid.UUID) ([]domain.Post, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	posts, err := s.postRepo.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	author := user.Summary()
	for i := range posts {
		posts[i].Author = author
	}

	return posts, nil
}

// ToggleLike records a like for the (user, post) pair. Repeats are a no-op;
// it reports whether the pair already existed.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uuid.UUID) (alreadyLiked bool, err error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, ErrUserNotFound
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return false, err
	}
	if post == nil {
		return false, ErrPostNotFound
	}

	inserted, err := s.postRepo.InsertLike(ctx, userID, postID)
	if err != nil {
		return false, fmt.Errorf("inserting like: %w", err)
	}

	return !inserted, nil
}

// DeletePost removes the post and its like rows as one unit.
func (s *PostService) DeletePost(ctx context.Context, postID uuid.UUID) (err error) {
	tx, err := s.uow.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	var committed bool
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.log.Error("rollback failed", slog.String("error", rbErr.Error()))
			}
		}
	}()

	post, err := tx.Posts().GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}

	if err := tx.Posts().DeleteLikes(ctx, postID); err != nil {
		return fmt.Errorf("deleting likes: %w", err)
	}
	if err := tx.Posts().Delete(ctx, postID); err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	committed = true

	return nil
}

// GetUser returns the user with their posts loaded for serialization.
func (s *PostService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	posts, err := s.postRepo.ListByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Posts = posts

	return user, nil
}
