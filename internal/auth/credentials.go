package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/ayush/mentor-sessions/backend/internal/models"
	"github.com/ayush/mentor-sessions/backend/internal/store"
)

// BcryptCost is the fixed work factor for password hashes.
const BcryptCost = 10

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, email, hashedPw string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Credentials registers users and verifies their passwords.
type Credentials struct {
	users UserStore
}

func NewCredentials(users UserStore) *Credentials {
	return &Credentials{users: users}
}

// Register hashes password and stores a new user. It returns
// store.ErrDuplicateEmail if the email is taken.
func (c *Credentials) Register(ctx context.Context, email, password string) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return c.users.CreateUser(ctx, email, string(hashed))
}

// Verify checks the password for email and returns the user's id.
func (c *Credentials) Verify(ctx context.Context, email, password string) (string, error) {
	user, err := c.users.GetUserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return user.ID, nil
}

// User looks up a user by id.
func (c *Credentials) User(ctx context.Context, id string) (*models.User, error) {
	return c.users.GetUserByID(ctx, id)
}
