package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/louisbranch/lusion/migrations"
)

func setupPostgresContainer(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "5432")

	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	assert.NoError(t, err)

	err = migrations.Apply(context.Background(), db)
	assert.NoError(t, err)

	teardown := func() {
		db.Close()
		container.Terminate(context.Background())
	}

	return db, teardown
}

func TestUserWriteRepository_Save(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	repo := NewUserWriteRepository(db, nil)
	ctx := context.Background()

	id := uuid.New()
	user, err := repo.Save(ctx, id, "alice", "hash123", "Alice", "/api/images/avatars/1.png")
	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "hash123", user.Password)
	assert.Equal(t, "Alice", user.Nickname)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Equal(t, user.CreatedAt, user.UpdatedAt)

	t.Run("DuplicateUsername", func(t *testing.T) {
		_, err := repo.Save(ctx, uuid.New(), "alice", "other", "Other", "/api/images/avatars/2.png")
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})
}

func TestUserReadRepository_Get(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	id := uuid.New()
	_, err := writeRepo.Save(ctx, id, "charlie", "secret", "Charlie", "/api/images/avatars/3.png")
	assert.NoError(t, err)

	t.Run("ByID", func(t *testing.T) {
		user, err := readRepo.GetByID(ctx, id)
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "charlie", user.Username)
	})

	t.Run("ByUsername", func(t *testing.T) {
		user, err := readRepo.GetByUsername(ctx, "charlie")
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, id, user.ID)
	})

	t.Run("NotFound", func(t *testing.T) {
		user, err := readRepo.GetByID(ctx, uuid.New())
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("List", func(t *testing.T) {
		users, err := readRepo.List(ctx)
		assert.NoError(t, err)
		assert.Len(t, users, 1)
	})
}

func TestUserWriteRepository_Update(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	repo := NewUserWriteRepository(db, nil)
	ctx := context.Background()

	id := uuid.New()
	created, err := repo.Save(ctx, id, "dave", "secret", "Dave", "/api/images/avatars/4.png")
	assert.NoError(t, err)

	time.Sleep(50 * time.Millisecond)

	nickname := "David"
	updated, err := repo.Update(ctx, id, &nickname, nil)
	assert.NoError(t, err)
	assert.NotNil(t, updated)
	assert.Equal(t, "David", updated.Nickname)
	assert.Equal(t, created.AvatarURL, updated.AvatarURL)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	t.Run("NotFound", func(t *testing.T) {
		user, err := repo.Update(ctx, uuid.New(), &nickname, nil)
		assert.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestUserWriteRepository_UpdatePassword(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	id := uuid.New()
	_, err := writeRepo.Save(ctx, id, "erin", "oldhash", "Erin", "/api/images/avatars/5.png")
	assert.NoError(t, err)

	rows, err := writeRepo.UpdatePassword(ctx, id, "newhash")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	user, err := readRepo.GetByID(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, "newhash", user.Password)

	t.Run("NotFound", func(t *testing.T) {
		rows, err := writeRepo.UpdatePassword(ctx, uuid.New(), "newhash")
		assert.NoError(t, err)
		assert.Equal(t, int64(0), rows)
	})
}

func TestUserWriteRepository_Delete(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	id := uuid.New()
	_, err := writeRepo.Save(ctx, id, "frank", "secret", "Frank", "/api/images/avatars/6.png")
	assert.NoError(t, err)

	rows, err := writeRepo.Delete(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	user, err := readRepo.GetByID(ctx, id)
	assert.NoError(t, err)
	assert.Nil(t, user)

	rows, err = writeRepo.Delete(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}
