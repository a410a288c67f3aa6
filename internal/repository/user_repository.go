package repository

import (
	"database/sql"
	"fmt"

	"github.com/vallasmx/campaign-analytics-backend/internal/model"
)

// UserRepositoryInterface defines the methods the auth service uses.
type UserRepositoryInterface interface {
	GetByUsername(username string) (*model.User, error)
	Create(u *model.User) error
}

type UserRepository struct {
	DB *sql.DB
}

// GetByUsername returns (nil, nil) when no such user exists.
func (r *UserRepository) GetByUsername(username string) (*model.User, error) {
	row := r.DB.QueryRow(`SELECT id, username, hashed_password FROM users WHERE username=$1`, username)

	var u model.User
	if err := row.Scan(&u.ID, &u.Username, &u.HashedPassword); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) Create(u *model.User) error {
	err := r.DB.QueryRow(`
		INSERT INTO users (username, hashed_password)
		VALUES ($1, $2)
		RETURNING id`, u.Username, u.HashedPassword).Scan(&u.ID)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

var _ UserRepositoryInterface = (*UserRepository)(nil)
