package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mpavlov90/snapfeed/internal/logger"
	"github.com/mpavlov90/snapfeed/internal/service"
	"github.com/mpavlov90/snapfeed/internal/transport/http/middleware"
)

type UserHandler struct {
	postService *service.PostService
	log         *logger.Logger
}

func NewUserHandler(postService *service.PostService, log *logger.Logger) *UserHandler {
	return &UserHandler{postService: postService, log: log}
}

// Me returns the authenticated user with their posts.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := middleware.GetIdentity(r.Context())

	user, err := h.postService.GetUser(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
		} else {
			h.log.Error("get user failed", slog.String("error", err.Error()))
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, user)
}
