package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/louisbranch/lusion/internal/logger"
	"github.com/louisbranch/lusion/internal/models"
)

// UserReadRepository handles user read operations
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByID returns the user with the given id, or nil when no such row exists.
func (r *UserReadRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const query = `
		SELECT id, username, password, nickname, avatar_url, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, id)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// GetByUsername returns the user with the given username, or nil when no such
// row exists.
func (r *UserReadRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	const query = `
		SELECT id, username, password, nickname, avatar_url, created_at, updated_at
		FROM users
		WHERE username = $1
	`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, username)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// List returns every user.
func (r *UserReadRepository) List(ctx context.Context) ([]models.User, error) {
	const query = `
		SELECT id, username, password, nickname, avatar_url, created_at, updated_at
		FROM users
	`

	users := []models.User{}
	err := r.db.SelectContext(ctx, &users, query)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"result", len(users),
		"error", err,
	)

	return users, err
}

// UserWriteRepository handles user write operations
type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewUserWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

func (r *UserWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a new user and returns the stored row. The username unique
// constraint is surfaced as ErrUsernameTaken.
func (r *UserWriteRepository) Save(ctx context.Context, id uuid.UUID, username, password, nickname, avatarURL string) (*models.User, error) {
	const query = `
		INSERT INTO users (id, username, password, nickname, avatar_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, username, password, nickname, avatar_url, created_at, updated_at
	`
	args := []any{id, username, password, nickname, avatarURL}

	var user models.User
	err := sqlx.GetContext(ctx, r.executor(ctx), &user, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id, username, nickname, avatarURL},
		"error", err,
	)

	if err != nil {
		return nil, mapConstraintError(err)
	}

	return &user, nil
}

// Update applies a partial profile update and refreshes updated_at. Nil fields
// keep their current value. Returns nil when the user does not exist.
func (r *UserWriteRepository) Update(ctx context.Context, id uuid.UUID, nickname, avatarURL *string) (*models.User, error) {
	const query = `
		UPDATE users
		SET nickname = COALESCE($2, nickname),
		    avatar_url = COALESCE($3, avatar_url),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, username, password, nickname, avatar_url, created_at, updated_at
	`
	args := []any{id, nickname, avatarURL}

	var user models.User
	err := sqlx.GetContext(ctx, r.executor(ctx), &user, query, args...)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// UpdatePassword replaces the stored password hash and refreshes updated_at.
// Returns the number of affected rows.
func (r *UserWriteRepository) UpdatePassword(ctx context.Context, id uuid.UUID, password string) (int64, error) {
	const query = `
		UPDATE users
		SET password = $2, updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.executor(ctx).ExecContext(ctx, query, id, password)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"result", rowsAffected,
		"error", err,
	)

	return rowsAffected, err
}

// Delete removes the user and returns the number of affected rows.
func (r *UserWriteRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	const query = `DELETE FROM users WHERE id = $1`

	res, err := r.executor(ctx).ExecContext(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", query,
		"args", []any{id},
		"result", rowsAffected,
		"error", err,
	)

	return rowsAffected, err
}
