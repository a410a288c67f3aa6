package service

import (
	"log"

	"github.com/vallasmx/campaign-analytics-backend/internal/auth"
	appErrors "github.com/vallasmx/campaign-analytics-backend/internal/errors"
	"github.com/vallasmx/campaign-analytics-backend/internal/model"
	"github.com/vallasmx/campaign-analytics-backend/internal/repository"
)

type AuthService struct {
	UserRepo repository.UserRepositoryInterface
	Tokens   *auth.TokenManager
}

// Login verifies credentials and returns a signed bearer token. Unknown user
// and wrong password report the same error.
func (s *AuthService) Login(username, password string) (string, error) {
	user, err := s.UserRepo.GetByUsername(username)
	if err != nil {
		return "", err
	}
	if user == nil || !auth.CheckPassword(password, user.HashedPassword) {
		return "", appErrors.ErrInvalidCredentials
	}
	return s.Tokens.Issue(user.Username)
}

// EnsureAdminUser creates the bootstrap account once at startup. It is a
// no-op when the account exists already or when credentials are not
// configured; there is no built-in default password.
func (s *AuthService) EnsureAdminUser(username, password string) error {
	if username == "" || password == "" {
		log.Println("admin bootstrap skipped: ADMIN_USERNAME/ADMIN_PASSWORD not set")
		return nil
	}

	existing, err := s.UserRepo.GetByUsername(username)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	log.Printf("creating bootstrap user %q", username)
	return s.UserRepo.Create(&model.User{Username: username, HashedPassword: hash})
}
