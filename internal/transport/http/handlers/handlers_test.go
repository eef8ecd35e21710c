package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mpavlov90/snapfeed/internal/logger"
	"github.com/mpavlov90/snapfeed/internal/repository/memory"
	"github.com/mpavlov90/snapfeed/internal/service"
	"github.com/mpavlov90/snapfeed/internal/transport/http/handlers"
	"github.com/mpavlov90/snapfeed/internal/transport/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newAPI wires the full HTTP surface over the in-memory repositories, the
// same way cmd/server does over postgres.
func newAPI() http.Handler {
	log := logger.New("test")

	users := memory.NewUserRepo()
	posts := memory.NewPostRepo(users)
	uow := memory.NewUnitOfWork(users, posts)

	tokenService := service.NewTokenService("test-secret", 0)
	authService := service.NewAuthService(users, tokenService)
	postService := service.NewPostService(posts, users, uow, log)

	authHandler := handlers.NewAuthHandler(authService, log)
	postHandler := handlers.NewPostHandler(postService, log)
	userHandler := handlers.NewUserHandler(postService, log)

	auth := middleware.Auth(tokenService)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /register", authHandler.Register)
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.Handle("GET /posts", auth(http.HandlerFunc(postHandler.List)))
	mux.Handle("POST /posts", auth(http.HandlerFunc(postHandler.Create)))
	mux.Handle("POST /like/{id}", auth(http.HandlerFunc(postHandler.Like)))
	mux.Handle("DELETE /posts/{id}", auth(http.HandlerFunc(postHandler.Delete)))
	mux.Handle("GET /user", auth(http.HandlerFunc(userHandler.Me)))

	return mux
}

func doJSON(t *testing.T, api http.Handler, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(v))
}

func register(t *testing.T, api http.Handler, username string) string {
	t.Helper()
	rec := doJSON(t, api, http.MethodPost, "/register", "", map[string]string{
		"username": username,
		"password": "secret123",
		"name":     "Test",
		"surname":  "User",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var user struct {
		ID string `json:"id"`
	}
	decode(t, rec, &user)
	return user.ID
}

func login(t *testing.T, api http.Handler, username string) string {
	t.Helper()
	rec := doJSON(t, api, http.MethodPost, "/login", "", map[string]string{
		"username": username,
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AuthToken string `json:"auth_token"`
	}
	decode(t, rec, &resp)
	require.NotEmpty(t, resp.AuthToken)
	return resp.AuthToken
}

func createPost(t *testing.T, api http.Handler, token, authorID, message string) string {
	t.Helper()
	rec := doJSON(t, api, http.MethodPost, "/posts", token, map[string]string{
		"author_id": authorID,
		"image":     "https://example.com/cat.jpg",
		"message":   message,
		"location":  "Berlin",
		"status":    "public",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var post struct {
		ID string `json:"id"`
	}
	decode(t, rec, &post)
	return post.ID
}

func TestRegister(t *testing.T) {
	api := newAPI()

	t.Run("missing fields", func(t *testing.T) {
		rec := doJSON(t, api, http.MethodPost, "/register", "", map[string]string{
			"username": "marko",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("created with defaulted avatar", func(t *testing.T) {
		rec := doJSON(t, api, http.MethodPost, "/register", "", map[string]string{
			"username": "marko",
			"password": "secret123",
			"name":     "Marko",
			"surname":  "Pavlov",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var body map[string]any
		decode(t, rec, &body)
		assert.Equal(t, "marko", body["username"])
		assert.Equal(t, "https://i.pravatar.cc/300", body["avatar"])
		assert.NotContains(t, body, "password")
		assert.NotContains(t, body, "password_hash")
	})

	t.Run("duplicate username", func(t *testing.T) {
		rec := doJSON(t, api, http.MethodPost, "/register", "", map[string]string{
			"username": "marko",
			"password": "other456",
			"name":     "Other",
			"surname":  "User",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestLogin(t *testing.T) {
	api := newAPI()
	register(t, api, "marko")

	t.Run("missing fields", func(t *testing.T) {
		rec := doJSON(t, api, http.MethodPost, "/login", "", map[string]string{"username": "marko"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		rec := doJSON(t, api, http.MethodPost, "/login", "", map[string]string{
			"username": "ghost",
			"password": "secret123",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := doJSON(t, api, http.MethodPost, "/login", "", map[string]string{
			"username": "marko",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		login(t, api, "marko")
	})
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newAPI()
	userID := register(t, api, "marko")

	// A token signed with a different secret.
	forged, err := service.NewTokenService("wrong-secret", 0).Issue(service.Identity{Username: "marko"})
	require.NoError(t, err)

	routes := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/posts?user_id=" + userID},
		{http.MethodPost, "/posts"},
		{http.MethodPost, "/like/" + userID},
		{http.MethodGet, "/user"},
		{http.MethodDelete, "/posts/" + userID},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.target, func(t *testing.T) {
			rec := doJSON(t, api, route.method, route.target, "", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, "no token")

			rec = doJSON(t, api, route.method, route.target, "garbage", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, "malformed token")

			rec = doJSON(t, api, route.method, route.target, forged, nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, "forged token")
		})
	}
}

func TestPostLifecycle(t *testing.T) {
	api := newAPI()
	userID := register(t, api, "marko")
	token := login(t, api, "marko")

	t.Run("list requires user_id", func(t *testing.T) {
		rec := doJSON(t, api, http.MethodGet, "/posts", token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("create rejects missing fields", func(t *testing.T) {
		rec := doJSON(t, api, http.MethodPost, "/posts", token, map[string]string{
			"author_id": userID,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("create rejects unknown author", func(t *testing.T) {
		rec := doJSON(t, api, http.MethodPost, "/posts", token, map[string]string{
			"author_id": "2e9b1cb2-26a4-4f44-9af4-6f6d36e870e1",
			"image":     "https://example.com/cat.jpg",
			"message":   "hello",
			"location":  "Berlin",
			"status":    "public",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("list is created_at descending", func(t *testing.T) {
		for _, message := range []string{"A", "B", "C"} {
			createPost(t, api, token, userID, message)
			time.Sleep(2 * time.Millisecond)
		}

		rec := doJSON(t, api, http.MethodGet, "/posts?user_id="+userID, token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var posts []struct {
			Message string   `json:"message"`
			Likes   []string `json:"likes"`
			Author  struct {
				Username string `json:"username"`
			} `json:"author"`
		}
		decode(t, rec, &posts)
		require.Len(t, posts, 3)
		assert.Equal(t, "C", posts[0].Message)
		assert.Equal(t, "B", posts[1].Message)
		assert.Equal(t, "A", posts[2].Message)
		assert.Equal(t, "marko", posts[0].Author.Username)
		assert.NotNil(t, posts[0].Likes)
	})

	t.Run("list for unknown user", func(t *testing.T) {
		rec := doJSON(t, api, http.MethodGet, "/posts?user_id=2e9b1cb2-26a4-4f44-9af4-6f6d36e870e1", token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestLikeEndpoint(t *testing.T) {
	api := newAPI()
	authorID := register(t, api, "marko")
	likerID := register(t, api, "ana")
	token := login(t, api, "ana")

	postID := createPost(t, api, login(t, api, "marko"), authorID, "likeable")

	likeBody := map[string]string{"user_id": likerID}

	t.Run("first like", func(t *testing.T) {
		rec := doJSON(t, api, http.MethodPost, "/like/"+postID, token, likeBody)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]string
		decode(t, rec, &resp)
		assert.Equal(t, "Post liked", resp["message"])
	})

	t.Run("repeat like is a no-op", func(t *testing.T) {
		rec := doJSON(t, api, http.MethodPost, "/like/"+postID, token, likeBody)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]string
		decode(t, rec, &resp)
		assert.Equal(t, "Post already liked", resp["message"])
	})

	t.Run("liker shows up in the post", func(t *testing.T) {
		rec := doJSON(t, api, http.MethodGet, "/posts?user_id="+authorID, token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var posts []struct {
			Likes []string `json:"likes"`
		}
		decode(t, rec, &posts)
		require.Len(t, posts, 1)
		assert.Equal(t, []string{"ana"}, posts[0].Likes)
	})

	t.Run("missing user_id", func(t *testing.T) {
		rec := doJSON(t, api, http.MethodPost, "/like/"+postID, token, map[string]string{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown post", func(t *testing.T) {
		rec := doJSON(t, api, http.MethodPost, "/like/2e9b1cb2-26a4-4f44-9af4-6f6d36e870e1", token, likeBody)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetUser(t *testing.T) {
	api := newAPI()
	userID := register(t, api, "marko")
	token := login(t, api, "marko")

	createPost(t, api, token, userID, "mine")

	rec := doJSON(t, api, http.MethodGet, "/user", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var user struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Posts    []struct {
			Message string `json:"message"`
		} `json:"posts"`
	}
	decode(t, rec, &user)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "marko", user.Username)
	require.Len(t, user.Posts, 1)
	assert.Equal(t, "mine", user.Posts[0].Message)
}

func TestDeletePost(t *testing.T) {
	api := newAPI()
	authorID := register(t, api, "marko")
	likerID := register(t, api, "ana")
	token := login(t, api, "marko")

	postID := createPost(t, api, token, authorID, "short-lived")

	rec := doJSON(t, api, http.MethodPost, "/like/"+postID, token, map[string]string{"user_id": likerID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, api, http.MethodDelete, "/posts/"+postID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, api, http.MethodGet, "/posts?user_id="+authorID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var posts []json.RawMessage
	decode(t, rec, &posts)
	assert.Empty(t, posts)

	rec = doJSON(t, api, http.MethodDelete, "/posts/"+postID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, api, http.MethodDelete, fmt.Sprintf("/posts/%s", "not-a-uuid"), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
