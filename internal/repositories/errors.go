package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors for constraint violations surfaced by Postgres.
var (
	ErrUsernameTaken    = errors.New("username already exists")
	ErrFriendshipExists = errors.New("friendship already exists")
	ErrHumanNotFound    = errors.New("referenced human does not exist")
	ErrHumanReferenced  = errors.New("human is still referenced by friendships")
)

// Postgres error codes, https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// mapConstraintError converts a Postgres constraint violation into one of the
// package sentinel errors. Any other error passes through unchanged.
func mapConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	if pgErr.Code == codeUniqueViolation {
		switch pgErr.ConstraintName {
		case "users_username_key":
			return ErrUsernameTaken
		case "human_friends_pkey":
			return ErrFriendshipExists
		}
	}

	return err
}

// isForeignKeyViolation reports whether err is a Postgres foreign key
// violation. The caller knows which side of the constraint its statement
// touched, so the mapping to a sentinel happens at the call site.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation
}
