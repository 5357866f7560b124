package services_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/louisbranch/lusion/internal/models"
	"github.com/louisbranch/lusion/internal/repositories"
	"github.com/louisbranch/lusion/internal/services"
)

func newHumanService(ctrl *gomock.Controller) (*services.HumanService, *services.MockHumanReader, *services.MockHumanWriter, *services.MockFriendshipReader, *services.MockFriendshipWriter) {
	reader := services.NewMockHumanReader(ctrl)
	writer := services.NewMockHumanWriter(ctrl)
	friendReader := services.NewMockFriendshipReader(ctrl)
	friendWriter := services.NewMockFriendshipWriter(ctrl)
	svc := services.NewHumanService(reader, writer, friendReader, friendWriter)
	return svc, reader, writer, friendReader, friendWriter
}

func TestHumanService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, writer, _, friendWriter := newHumanService(ctrl)
	ctx := context.Background()

	t.Run("without friends", func(t *testing.T) {
		writer.EXPECT().
			Save(ctx, gomock.Any(), "alice").
			DoAndReturn(func(_ context.Context, id uuid.UUID, name string) (*models.Human, error) {
				return &models.Human{ID: id, Name: name}, nil
			})

		human, err := svc.Create(ctx, "alice", nil)
		assert.NoError(t, err)
		assert.Equal(t, "alice", human.Name)
	})

	t.Run("with initial friends", func(t *testing.T) {
		friendID := uuid.New()

		writer.EXPECT().
			Save(ctx, gomock.Any(), "bob").
			DoAndReturn(func(_ context.Context, id uuid.UUID, name string) (*models.Human, error) {
				return &models.Human{ID: id, Name: name}, nil
			})
		friendWriter.EXPECT().
			Save(ctx, gomock.Any(), friendID).
			Return(nil)

		human, err := svc.Create(ctx, "bob", []uuid.UUID{friendID})
		assert.NoError(t, err)
		assert.Equal(t, "bob", human.Name)
	})

	t.Run("unknown friend", func(t *testing.T) {
		friendID := uuid.New()

		writer.EXPECT().
			Save(ctx, gomock.Any(), "carol").
			DoAndReturn(func(_ context.Context, id uuid.UUID, name string) (*models.Human, error) {
				return &models.Human{ID: id, Name: name}, nil
			})
		friendWriter.EXPECT().
			Save(ctx, gomock.Any(), friendID).
			Return(repositories.ErrHumanNotFound)

		human, err := svc.Create(ctx, "carol", []uuid.UUID{friendID})
		assert.ErrorIs(t, err, services.ErrHumanNotFound)
		assert.Nil(t, human)
	})
}

func TestHumanService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, writer, _, friendWriter := newHumanService(ctrl)
	ctx := context.Background()

	humanID := uuid.New()
	friendID := uuid.New()

	t.Run("rename and replace friend set", func(t *testing.T) {
		writer.EXPECT().
			UpdateName(ctx, humanID, "new name").
			Return(&models.Human{ID: humanID, Name: "new name"}, nil)
		friendWriter.EXPECT().
			DeleteByHuman(ctx, humanID).
			Return(int64(2), nil)
		friendWriter.EXPECT().
			Save(ctx, humanID, friendID).
			Return(nil)

		human, err := svc.Update(ctx, humanID, "new name", []uuid.UUID{friendID})
		assert.NoError(t, err)
		assert.Equal(t, "new name", human.Name)
	})

	t.Run("unknown human", func(t *testing.T) {
		writer.EXPECT().
			UpdateName(ctx, humanID, "new name").
			Return(nil, nil)

		human, err := svc.Update(ctx, humanID, "new name", nil)
		assert.ErrorIs(t, err, services.ErrHumanNotFound)
		assert.Nil(t, human)
	})
}

func TestHumanService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, writer, _, _ := newHumanService(ctrl)
	ctx := context.Background()
	humanID := uuid.New()

	t.Run("successful delete", func(t *testing.T) {
		writer.EXPECT().
			Delete(ctx, humanID).
			Return(int64(1), nil)

		assert.NoError(t, svc.Delete(ctx, humanID))
	})

	t.Run("delete restricted by friendships", func(t *testing.T) {
		writer.EXPECT().
			Delete(ctx, humanID).
			Return(int64(0), repositories.ErrHumanReferenced)

		assert.ErrorIs(t, svc.Delete(ctx, humanID), services.ErrHumanHasFriends)
	})

	t.Run("unknown human", func(t *testing.T) {
		writer.EXPECT().
			Delete(ctx, humanID).
			Return(int64(0), nil)

		assert.ErrorIs(t, svc.Delete(ctx, humanID), services.ErrHumanNotFound)
	})
}

func TestHumanService_Friendships(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, reader, _, friendReader, friendWriter := newHumanService(ctrl)
	ctx := context.Background()

	humanID := uuid.New()
	friendID := uuid.New()

	t.Run("add friend", func(t *testing.T) {
		friendWriter.EXPECT().
			Save(ctx, humanID, friendID).
			Return(nil)

		assert.NoError(t, svc.AddFriend(ctx, humanID, friendID))
	})

	t.Run("duplicate edge", func(t *testing.T) {
		friendWriter.EXPECT().
			Save(ctx, humanID, friendID).
			Return(repositories.ErrFriendshipExists)

		assert.ErrorIs(t, svc.AddFriend(ctx, humanID, friendID), services.ErrFriendshipExists)
	})

	t.Run("edge to unknown human", func(t *testing.T) {
		friendWriter.EXPECT().
			Save(ctx, humanID, friendID).
			Return(repositories.ErrHumanNotFound)

		assert.ErrorIs(t, svc.AddFriend(ctx, humanID, friendID), services.ErrHumanNotFound)
	})

	t.Run("remove friend", func(t *testing.T) {
		friendWriter.EXPECT().
			Delete(ctx, humanID, friendID).
			Return(int64(1), nil)

		assert.NoError(t, svc.RemoveFriend(ctx, humanID, friendID))
	})

	t.Run("remove missing edge", func(t *testing.T) {
		friendWriter.EXPECT().
			Delete(ctx, humanID, friendID).
			Return(int64(0), nil)

		assert.ErrorIs(t, svc.RemoveFriend(ctx, humanID, friendID), services.ErrFriendshipNotFound)
	})

	t.Run("list friends", func(t *testing.T) {
		reader.EXPECT().
			GetByID(ctx, humanID).
			Return(&models.Human{ID: humanID, Name: "alice"}, nil)
		friendReader.EXPECT().
			ListFriends(ctx, humanID).
			Return([]models.Human{{ID: friendID, Name: "bob"}}, nil)

		friends, err := svc.ListFriends(ctx, humanID)
		assert.NoError(t, err)
		assert.Len(t, friends, 1)
		assert.Equal(t, "bob", friends[0].Name)
	})

	t.Run("list friends of unknown human", func(t *testing.T) {
		reader.EXPECT().
			GetByID(ctx, humanID).
			Return(nil, nil)

		friends, err := svc.ListFriends(ctx, humanID)
		assert.ErrorIs(t, err, services.ErrHumanNotFound)
		assert.Nil(t, friends)
	})
}
