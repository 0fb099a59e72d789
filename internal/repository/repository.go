package repository

import (
	"context"
	"errors"

	"userseed/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
)

// UserRepository stores auth stub accounts keyed by username.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, username, passwordHash string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}
