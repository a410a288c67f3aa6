package controller_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/vallasmx/campaign-analytics-backend/internal/auth"
	"github.com/vallasmx/campaign-analytics-backend/internal/controller"
	"github.com/vallasmx/campaign-analytics-backend/internal/model"
	"github.com/vallasmx/campaign-analytics-backend/internal/service"
)

type stubUserRepo struct {
	users map[string]*model.User
}

func (m *stubUserRepo) GetByUsername(username string) (*model.User, error) {
	return m.users[username], nil
}

func (m *stubUserRepo) Create(u *model.User) error {
	if m.users == nil {
		m.users = map[string]*model.User{}
	}
	u.ID = len(m.users) + 1
	m.users[u.Username] = u
	return nil
}

func newAuthController(t *testing.T) (*controller.AuthController, *stubUserRepo) {
	t.Helper()
	hash, err := auth.HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	repo := &stubUserRepo{users: map[string]*model.User{
		"admin": {ID: 1, Username: "admin", HashedPassword: hash},
	}}
	svc := &service.AuthService{
		UserRepo: repo,
		Tokens:   auth.NewTokenManager("test-secret", time.Minute),
	}
	return &controller.AuthController{AuthService: svc}, repo
}

func postToken(ctrl *controller.AuthController, username, password string) *httptest.ResponseRecorder {
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest("POST", "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	ctrl.Token(w, req)
	return w
}

func TestTokenEndpointIssuesBearerToken(t *testing.T) {
	ctrl, _ := newAuthController(t)

	w := postToken(ctrl, "admin", "correct-horse")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var res struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.NewDecoder(w.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if res.TokenType != "bearer" || res.AccessToken == "" {
		t.Errorf("unexpected token response: %+v", res)
	}

	// The issued token round-trips through validation.
	tokens := auth.NewTokenManager("test-secret", time.Minute)
	subject, err := tokens.Validate(res.AccessToken)
	if err != nil || subject != "admin" {
		t.Errorf("issued token invalid: subject=%q err=%v", subject, err)
	}
}

func TestTokenEndpointRejectsBadCredentials(t *testing.T) {
	ctrl, _ := newAuthController(t)

	for name, creds := range map[string][2]string{
		"wrong password": {"admin", "wrong"},
		"unknown user":   {"nobody", "correct-horse"},
	} {
		w := postToken(ctrl, creds[0], creds[1])
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", name, w.Code)
		}
		if w.Header().Get("WWW-Authenticate") != "Bearer" {
			t.Errorf("%s: missing WWW-Authenticate header", name)
		}
	}
}
