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

// HumanReadRepository handles human read operations
type HumanReadRepository struct {
	db *sqlx.DB
}

func NewHumanReadRepository(db *sqlx.DB) *HumanReadRepository {
	return &HumanReadRepository{db: db}
}

// GetByID returns the human with the given id, or nil when no such row exists.
func (r *HumanReadRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Human, error) {
	const query = `SELECT id, name FROM humans WHERE id = $1`

	var human models.Human
	err := r.db.GetContext(ctx, &human, query, id)

	logger.Log.Infow(
		"query", query,
		"args", []any{id},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &human, nil
}

// List returns every human.
func (r *HumanReadRepository) List(ctx context.Context) ([]models.Human, error) {
	const query = `SELECT id, name FROM humans`

	humans := []models.Human{}
	err := r.db.SelectContext(ctx, &humans, query)

	logger.Log.Infow(
		"query", query,
		"result", len(humans),
		"error", err,
	)

	return humans, err
}

// HumanWriteRepository handles human write operations
type HumanWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewHumanWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *HumanWriteRepository {
	return &HumanWriteRepository{db: db, txGetter: txGetter}
}

func (r *HumanWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a new human and returns the stored row.
func (r *HumanWriteRepository) Save(ctx context.Context, id uuid.UUID, name string) (*models.Human, error) {
	const query = `
		INSERT INTO humans (id, name)
		VALUES ($1, $2)
		RETURNING id, name
	`

	var human models.Human
	err := sqlx.GetContext(ctx, r.executor(ctx), &human, query, id, name)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id, name},
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &human, nil
}

// UpdateName renames a human. Returns nil when the human does not exist.
func (r *HumanWriteRepository) UpdateName(ctx context.Context, id uuid.UUID, name string) (*models.Human, error) {
	const query = `
		UPDATE humans
		SET name = $2
		WHERE id = $1
		RETURNING id, name
	`

	var human models.Human
	err := sqlx.GetContext(ctx, r.executor(ctx), &human, query, id, name)

	logger.Log.Infow(
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id, name},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &human, nil
}

// Delete removes a human and returns the number of affected rows. The delete
// is rejected with ErrHumanReferenced while any human_friends row still
// references the human, in either direction.
func (r *HumanWriteRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	const query = `DELETE FROM humans WHERE id = $1`

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

	if isForeignKeyViolation(err) {
		return 0, ErrHumanReferenced
	}
	if err != nil {
		return 0, err
	}

	return rowsAffected, nil
}
