package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/mpavlov90/snapfeed/internal/logger"
	"github.com/mpavlov90/snapfeed/internal/service"
	"github.com/mpavlov90/snapfeed/pkg/validator"
)

type PostHandler struct {
	postService *service.PostService
	log         *logger.Logger
}

func NewPostHandler(postService *service.PostService, log *logger.Logger) *PostHandler {
	return &PostHandler{postService: postService, log: log}
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	rawID := r.URL.Query().Get("user_id")
	if rawID == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "user_id is required")
		return
	}

	userID, err := uuid.Parse(rawID)
	if err != nil {
		writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
		return
	}

	posts, err := h.postService.ListByAuthor(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
		} else {
			h.log.Error("list posts failed", slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, posts)
}

type createPostRequest struct {
	AuthorID string `json:"author_id"`
	Image    string `json:"image"`
	Message  string `json:"message"`
	Location string `json:"location"`
	Status   string `json:"status"`
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidatePost(req.Image, req.Message, req.Location, req.Status); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	authorID, err := uuid.Parse(req.AuthorID)
	if err != nil {
		writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "Author not found")
		return
	}

	post, err := h.postService.CreatePost(r.Context(), service.CreatePostInput{
		AuthorID: authorID,
		Image:    req.Image,
		Message:  req.Message,
		Location: req.Location,
		Status:   req.Status,
	})
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "Author not found")
		} else {
			h.log.Error("create post failed", slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

type likeRequest struct {
	UserID string `json:"user_id"`
}

func (h *PostHandler) Like(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "POST_NOT_FOUND", "Post not found")
		return
	}

	var req likeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "user_id is required")
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
		return
	}

	alreadyLiked, err := h.postService.ToggleLike(r.Context(), userID, postID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
		case errors.Is(err, service.ErrPostNotFound):
			writeError(w, http.StatusNotFound, "POST_NOT_FOUND", "Post not found")
		default:
			h.log.Error("like post failed", slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	message := "Post liked"
	if alreadyLiked {
		message = "Post already liked"
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": message})
}

func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "POST_NOT_FOUND", "Post not found")
		return
	}

	if err := h.postService.DeletePost(r.Context(), postID); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			writeError(w, http.StatusNotFound, "POST_NOT_FOUND", "Post not found")
		} else {
			h.log.Error("delete post failed", slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Post deleted successfully"})
}
