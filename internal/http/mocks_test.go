package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"sociopedia/internal/domain"
	"sociopedia/internal/repository"
	"sociopedia/internal/service"
)

type mockUserRepo struct {
	mu           sync.Mutex
	usersByID    map[string]domain.User
	usersByEmail map[string]string
	friends      map[string][]string
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		usersByID:    make(map[string]domain.User),
		usersByEmail: make(map[string]string),
		friends:      make(map[string][]string),
	}
}

func (m *mockUserRepo) Create(_ context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.usersByEmail[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	m.usersByID[user.ID] = user
	m.usersByEmail[user.Email] = user.ID
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	m.mu.Lock()
	id, ok := m.usersByEmail[email]
	m.mu.Unlock()
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	return m.GetByID(ctx, id)
}

func (m *mockUserRepo) ListFriends(_ context.Context, id string) ([]domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	friends := make([]domain.User, 0)
	for _, fid := range m.friends[id] {
		friends = append(friends, m.usersByID[fid])
	}
	return friends, nil
}

func (m *mockUserRepo) ToggleFriend(_ context.Context, userID, friendID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, fid := range m.friends[userID] {
		if fid == friendID {
			m.friends[userID] = append(m.friends[userID][:i], m.friends[userID][i+1:]...)
			m.friends[friendID] = removeID(m.friends[friendID], userID)
			return false, nil
		}
	}
	m.friends[userID] = append(m.friends[userID], friendID)
	m.friends[friendID] = append(m.friends[friendID], userID)
	return true, nil
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

type mockPostRepo struct {
	mu    sync.Mutex
	posts []domain.Post
}

func (m *mockPostRepo) Create(_ context.Context, post domain.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts = append([]domain.Post{post}, m.posts...)
	return nil
}

func (m *mockPostRepo) GetByID(_ context.Context, id string) (domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.posts {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Post{}, repository.ErrNotFound
}

func (m *mockPostRepo) List(_ context.Context) ([]domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Post{}, m.posts...), nil
}

func (m *mockPostRepo) ListByUserID(_ context.Context, userID string) ([]domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Post, 0)
	for _, p := range m.posts {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockPostRepo) ToggleLike(_ context.Context, postID, userID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.posts {
		if p.ID != postID {
			continue
		}
		if p.LikedBy(userID) {
			m.posts[i].Likes = removeID(append([]string{}, p.Likes...), userID)
			return false, nil
		}
		m.posts[i].Likes = append(append([]string{}, p.Likes...), userID)
		return true, nil
	}
	return false, repository.ErrNotFound
}

type mockImageStore struct {
	saved []string
	err   error
}

func (m *mockImageStore) Save(_ context.Context, filename string, _ io.Reader) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.saved = append(m.saved, filename)
	return "stored-" + filename, nil
}

type testApp struct {
	router *gin.Engine
	users  *mockUserRepo
	posts  *mockPostRepo
	images *mockImageStore
	tokens *service.TokenService
}

func newTestApp() *testApp {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	users := newMockUserRepo()
	posts := &mockPostRepo{}
	images := &mockImageStore{}
	tokens := service.NewTokenService("secret", 24*time.Hour, "test")

	authSvc := service.NewAuthService(logger, users, service.NewPasswordHasher(bcrypt.MinCost), tokens, nil)
	userSvc := service.NewUserService(logger, users)
	postSvc := service.NewPostService(logger, users, posts)

	router := NewRouter(
		logger,
		RouterConfig{CORSAllowedOrigins: []string{"https://app.example.com"}, MaxBodyBytes: 1 << 20},
		nil,
		tokens,
		NewAuthHandler(logger, authSvc, images, CookieConfig{MaxAge: tokens.TTL()}),
		NewUserHandler(logger, userSvc),
		NewPostHandler(logger, postSvc, images),
	)
	return &testApp{router: router, users: users, posts: posts, images: images, tokens: tokens}
}

func performRequest(r http.Handler, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	return nil
}

func decodeJSON(rec *httptest.ResponseRecorder, dst any) error {
	return json.Unmarshal(rec.Body.Bytes(), dst)
}
