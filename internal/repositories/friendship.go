package repositories

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/louisbranch/lusion/internal/logger"
	"github.com/louisbranch/lusion/internal/models"
)

// FriendshipReadRepository handles friendship read operations
type FriendshipReadRepository struct {
	db *sqlx.DB
}

func NewFriendshipReadRepository(db *sqlx.DB) *FriendshipReadRepository {
	return &FriendshipReadRepository{db: db}
}

// ListFriends returns every human the given human has a directed friendship
// edge to. No ordering is guaranteed.
func (r *FriendshipReadRepository) ListFriends(ctx context.Context, humanID uuid.UUID) ([]models.Human, error) {
	const query = `
		SELECT h.id, h.name
		FROM humans h
		JOIN human_friends f ON f.friend_id = h.id
		WHERE f.human_id = $1
	`

	friends := []models.Human{}
	err := r.db.SelectContext(ctx, &friends, query, humanID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{humanID},
		"result", len(friends),
		"error", err,
	)

	return friends, err
}

// FriendshipWriteRepository handles friendship write operations
type FriendshipWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewFriendshipWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *FriendshipWriteRepository {
	return &FriendshipWriteRepository{db: db, txGetter: txGetter}
}

func (r *FriendshipWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a directed friendship edge. A duplicate pair is surfaced as
// ErrFriendshipExists, a missing human on either side as ErrHumanNotFound.
func (r *FriendshipWriteRepository) Save(ctx context.Context, humanID, friendID uuid.UUID) error {
	const query = `
		INSERT INTO human_friends (human_id, friend_id)
		VALUES ($1, $2)
	`

	_, err := r.executor(ctx).ExecContext(ctx, query, humanID, friendID)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{humanID, friendID},
		"error", err,
	)

	if isForeignKeyViolation(err) {
		return ErrHumanNotFound
	}
	return mapConstraintError(err)
}

// Delete removes a single directed edge and returns the number of affected
// rows.
func (r *FriendshipWriteRepository) Delete(ctx context.Context, humanID, friendID uuid.UUID) (int64, error) {
	const query = `
		DELETE FROM human_friends
		WHERE human_id = $1 AND friend_id = $2
	`

	res, err := r.executor(ctx).ExecContext(ctx, query, humanID, friendID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{humanID, friendID},
		"result", rowsAffected,
		"error", err,
	)

	return rowsAffected, err
}

// DeleteByHuman removes every outgoing edge of the given human. Used when a
// human's friend set is replaced wholesale.
func (r *FriendshipWriteRepository) DeleteByHuman(ctx context.Context, humanID uuid.UUID) (int64, error) {
	const query = `DELETE FROM human_friends WHERE human_id = $1`

	res, err := r.executor(ctx).ExecContext(ctx, query, humanID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow(
		"query", query,
		"args", []any{humanID},
		"result", rowsAffected,
		"error", err,
	)

	return rowsAffected, err
}
