package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/louisbranch/lusion/internal/logger"
	"github.com/louisbranch/lusion/internal/models"
	"github.com/louisbranch/lusion/internal/repositories"
)

// Error variables
var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrUserNotFound       = errors.New("user does not exist")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrPasswordMismatch   = errors.New("old password does not match")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, id uuid.UUID, username, password, nickname, avatarURL string) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, nickname, avatarURL *string) (*models.User, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, password string) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

// TokenGenerator defines an interface for generating JWT tokens.
type TokenGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID) (string, error)
}

// UserService handles registration, authentication and profile management.
type UserService struct {
	reader UserReader
	writer UserWriter
	jwt    TokenGenerator
}

// NewUserService creates a new UserService instance.
func NewUserService(reader UserReader, writer UserWriter, jwt TokenGenerator) *UserService {
	return &UserService{
		reader: reader,
		writer: writer,
		jwt:    jwt,
	}
}

// Register creates a new user with a hashed password and a randomly assigned
// avatar.
func (svc *UserService) Register(ctx context.Context, username, password, nickname string) (*models.User, error) {
	existing, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return nil, err
	}
	if existing != nil {
		logger.Log.Errorw("username already exists", "username", username)
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	user, err := svc.writer.Save(ctx, uuid.New(), username, string(hashedPassword), nickname, randomAvatarURL())
	if err != nil {
		// The unique constraint still wins a race against the pre-check.
		if errors.Is(err, repositories.ErrUsernameTaken) {
			return nil, ErrUsernameTaken
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	return user, nil
}

// Login authenticates a user and returns a JWT token.
func (svc *UserService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "username", username)
		return "", ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		logger.Log.Errorw("invalid credentials", "username", username)
		return "", ErrInvalidCredentials
	}

	token, err := svc.jwt.Generate(ctx, user.ID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	return token, nil
}

// GetByID returns the user with the given id.
func (svc *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetByUsername returns the user with the given username.
func (svc *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// List returns every user.
func (svc *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := svc.reader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list users", "err", err)
		return nil, err
	}
	return users, nil
}

// Update applies a partial profile update. Nil fields keep their current
// value; updated_at is refreshed on any successful mutation.
func (svc *UserService) Update(ctx context.Context, id uuid.UUID, nickname, avatarURL *string) (*models.User, error) {
	user, err := svc.writer.Update(ctx, id, nickname, avatarURL)
	if err != nil {
		logger.Log.Errorw("failed to update user", "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ChangePassword verifies the old password and stores a hash of the new one.
func (svc *UserService) ChangePassword(ctx context.Context, id uuid.UUID, oldPassword, newPassword string) error {
	user, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		logger.Log.Errorw("old password does not match", "user_id", id)
		return ErrPasswordMismatch
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	rows, err := svc.writer.UpdatePassword(ctx, id, string(hashedPassword))
	if err != nil {
		logger.Log.Errorw("failed to update password", "err", err)
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

// Delete removes the user with the given id.
func (svc *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := svc.writer.Delete(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to delete user", "err", err)
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

// randomAvatarURL picks one of the bundled avatar images.
func randomAvatarURL() string {
	return fmt.Sprintf("/api/images/avatars/%d.png", rand.IntN(20)+1)
}
