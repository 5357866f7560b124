package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestFriendshipWriteRepository_Save(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	humanRepo := NewHumanWriteRepository(db, nil)
	friendRepo := NewFriendshipWriteRepository(db, nil)
	ctx := context.Background()

	aliceID := uuid.New()
	bobID := uuid.New()
	_, err := humanRepo.Save(ctx, aliceID, "alice")
	assert.NoError(t, err)
	_, err = humanRepo.Save(ctx, bobID, "bob")
	assert.NoError(t, err)

	err = friendRepo.Save(ctx, aliceID, bobID)
	assert.NoError(t, err)

	t.Run("Duplicate", func(t *testing.T) {
		err := friendRepo.Save(ctx, aliceID, bobID)
		assert.ErrorIs(t, err, ErrFriendshipExists)
	})

	t.Run("ReverseDirectionIsDistinct", func(t *testing.T) {
		err := friendRepo.Save(ctx, bobID, aliceID)
		assert.NoError(t, err)
	})

	t.Run("UnknownHuman", func(t *testing.T) {
		err := friendRepo.Save(ctx, uuid.New(), bobID)
		assert.ErrorIs(t, err, ErrHumanNotFound)
	})

	t.Run("UnknownFriend", func(t *testing.T) {
		err := friendRepo.Save(ctx, aliceID, uuid.New())
		assert.ErrorIs(t, err, ErrHumanNotFound)
	})
}

func TestFriendshipReadRepository_ListFriends(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	humanRepo := NewHumanWriteRepository(db, nil)
	friendWriteRepo := NewFriendshipWriteRepository(db, nil)
	friendReadRepo := NewFriendshipReadRepository(db)
	ctx := context.Background()

	aliceID := uuid.New()
	bobID := uuid.New()
	carolID := uuid.New()
	_, err := humanRepo.Save(ctx, aliceID, "alice")
	assert.NoError(t, err)
	_, err = humanRepo.Save(ctx, bobID, "bob")
	assert.NoError(t, err)
	_, err = humanRepo.Save(ctx, carolID, "carol")
	assert.NoError(t, err)

	assert.NoError(t, friendWriteRepo.Save(ctx, aliceID, bobID))
	assert.NoError(t, friendWriteRepo.Save(ctx, aliceID, carolID))

	friends, err := friendReadRepo.ListFriends(ctx, aliceID)
	assert.NoError(t, err)
	assert.Len(t, friends, 2)

	names := []string{friends[0].Name, friends[1].Name}
	assert.ElementsMatch(t, []string{"bob", "carol"}, names)

	t.Run("EdgeIsDirected", func(t *testing.T) {
		friends, err := friendReadRepo.ListFriends(ctx, bobID)
		assert.NoError(t, err)
		assert.Empty(t, friends)
	})
}

func TestFriendshipWriteRepository_Delete(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	humanRepo := NewHumanWriteRepository(db, nil)
	friendRepo := NewFriendshipWriteRepository(db, nil)
	ctx := context.Background()

	aliceID := uuid.New()
	bobID := uuid.New()
	_, err := humanRepo.Save(ctx, aliceID, "alice")
	assert.NoError(t, err)
	_, err = humanRepo.Save(ctx, bobID, "bob")
	assert.NoError(t, err)

	assert.NoError(t, friendRepo.Save(ctx, aliceID, bobID))

	rows, err := friendRepo.Delete(ctx, aliceID, bobID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = friendRepo.Delete(ctx, aliceID, bobID)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

func TestFriendshipWriteRepository_DeleteByHuman(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	humanRepo := NewHumanWriteRepository(db, nil)
	friendWriteRepo := NewFriendshipWriteRepository(db, nil)
	friendReadRepo := NewFriendshipReadRepository(db)
	ctx := context.Background()

	aliceID := uuid.New()
	bobID := uuid.New()
	carolID := uuid.New()
	_, err := humanRepo.Save(ctx, aliceID, "alice")
	assert.NoError(t, err)
	_, err = humanRepo.Save(ctx, bobID, "bob")
	assert.NoError(t, err)
	_, err = humanRepo.Save(ctx, carolID, "carol")
	assert.NoError(t, err)

	assert.NoError(t, friendWriteRepo.Save(ctx, aliceID, bobID))
	assert.NoError(t, friendWriteRepo.Save(ctx, aliceID, carolID))
	assert.NoError(t, friendWriteRepo.Save(ctx, bobID, aliceID))

	rows, err := friendWriteRepo.DeleteByHuman(ctx, aliceID)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), rows)

	friends, err := friendReadRepo.ListFriends(ctx, aliceID)
	assert.NoError(t, err)
	assert.Empty(t, friends)

	// incoming edges are untouched
	friends, err = friendReadRepo.ListFriends(ctx, bobID)
	assert.NoError(t, err)
	assert.Len(t, friends, 1)
}

func TestFriendshipLifecycle(t *testing.T) {
	db, teardown := setupPostgresContainer(t)
	defer teardown()

	humanRepo := NewHumanWriteRepository(db, nil)
	friendWriteRepo := NewFriendshipWriteRepository(db, nil)
	friendReadRepo := NewFriendshipReadRepository(db)
	ctx := context.Background()

	aliceID := uuid.New()
	bobID := uuid.New()
	_, err := humanRepo.Save(ctx, aliceID, "Alice")
	assert.NoError(t, err)
	_, err = humanRepo.Save(ctx, bobID, "Bob")
	assert.NoError(t, err)

	assert.NoError(t, friendWriteRepo.Save(ctx, aliceID, bobID))

	friends, err := friendReadRepo.ListFriends(ctx, aliceID)
	assert.NoError(t, err)
	assert.Len(t, friends, 1)
	assert.Equal(t, "Bob", friends[0].Name)

	_, err = humanRepo.Delete(ctx, aliceID)
	assert.ErrorIs(t, err, ErrHumanReferenced)

	rows, err := friendWriteRepo.Delete(ctx, aliceID, bobID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = humanRepo.Delete(ctx, aliceID)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), rows)
}
