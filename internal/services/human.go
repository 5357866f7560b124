package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/louisbranch/lusion/internal/logger"
	"github.com/louisbranch/lusion/internal/models"
	"github.com/louisbranch/lusion/internal/repositories"
)

// Error variables
var (
	ErrHumanNotFound      = errors.New("human does not exist")
	ErrFriendshipExists   = errors.New("friendship already exists")
	ErrFriendshipNotFound = errors.New("friendship does not exist")
	ErrHumanHasFriends    = errors.New("human still has friendships")
)

// HumanReader defines read-only operations for humans.
type HumanReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Human, error)
	List(ctx context.Context) ([]models.Human, error)
}

// HumanWriter defines write operations for humans.
type HumanWriter interface {
	Save(ctx context.Context, id uuid.UUID, name string) (*models.Human, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) (*models.Human, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

// FriendshipReader defines read-only operations for friendship edges.
type FriendshipReader interface {
	ListFriends(ctx context.Context, humanID uuid.UUID) ([]models.Human, error)
}

// FriendshipWriter defines write operations for friendship edges.
type FriendshipWriter interface {
	Save(ctx context.Context, humanID, friendID uuid.UUID) error
	Delete(ctx context.Context, humanID, friendID uuid.UUID) (int64, error)
	DeleteByHuman(ctx context.Context, humanID uuid.UUID) (int64, error)
}

// HumanService manages humans and the directed friendship graph between them.
type HumanService struct {
	reader       HumanReader
	writer       HumanWriter
	friendReader FriendshipReader
	friendWriter FriendshipWriter
}

// NewHumanService creates a new HumanService instance.
func NewHumanService(reader HumanReader, writer HumanWriter, friendReader FriendshipReader, friendWriter FriendshipWriter) *HumanService {
	return &HumanService{
		reader:       reader,
		writer:       writer,
		friendReader: friendReader,
		friendWriter: friendWriter,
	}
}

// Create inserts a new human plus one directed friendship edge per entry in
// friendIDs. Callers wanting atomicity run it under the tx middleware.
func (svc *HumanService) Create(ctx context.Context, name string, friendIDs []uuid.UUID) (*models.Human, error) {
	human, err := svc.writer.Save(ctx, uuid.New(), name)
	if err != nil {
		logger.Log.Errorw("failed to save human", "err", err)
		return nil, err
	}

	for _, friendID := range friendIDs {
		if err := svc.friendWriter.Save(ctx, human.ID, friendID); err != nil {
			return nil, mapFriendshipError(err)
		}
	}

	return human, nil
}

// GetByID returns the human with the given id.
func (svc *HumanService) GetByID(ctx context.Context, id uuid.UUID) (*models.Human, error) {
	human, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get human", "err", err)
		return nil, err
	}
	if human == nil {
		return nil, ErrHumanNotFound
	}
	return human, nil
}

// List returns every human.
func (svc *HumanService) List(ctx context.Context) ([]models.Human, error) {
	humans, err := svc.reader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list humans", "err", err)
		return nil, err
	}
	return humans, nil
}

// Update renames a human and replaces its outgoing friend set wholesale.
func (svc *HumanService) Update(ctx context.Context, id uuid.UUID, name string, friendIDs []uuid.UUID) (*models.Human, error) {
	human, err := svc.writer.UpdateName(ctx, id, name)
	if err != nil {
		logger.Log.Errorw("failed to update human", "err", err)
		return nil, err
	}
	if human == nil {
		return nil, ErrHumanNotFound
	}

	if _, err := svc.friendWriter.DeleteByHuman(ctx, id); err != nil {
		logger.Log.Errorw("failed to clear friendships", "err", err)
		return nil, err
	}
	for _, friendID := range friendIDs {
		if err := svc.friendWriter.Save(ctx, id, friendID); err != nil {
			return nil, mapFriendshipError(err)
		}
	}

	return human, nil
}

// Delete removes a human. The delete is restricted: it fails with
// ErrHumanHasFriends while any friendship edge still references the human.
func (svc *HumanService) Delete(ctx context.Context, id uuid.UUID) error {
	rows, err := svc.writer.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrHumanReferenced) {
			return ErrHumanHasFriends
		}
		logger.Log.Errorw("failed to delete human", "err", err)
		return err
	}
	if rows == 0 {
		return ErrHumanNotFound
	}
	return nil
}

// AddFriend inserts a single directed friendship edge. The reverse edge is a
// separate insert; no reciprocity is implied.
func (svc *HumanService) AddFriend(ctx context.Context, humanID, friendID uuid.UUID) error {
	if err := svc.friendWriter.Save(ctx, humanID, friendID); err != nil {
		return mapFriendshipError(err)
	}
	return nil
}

// RemoveFriend deletes a single directed friendship edge.
func (svc *HumanService) RemoveFriend(ctx context.Context, humanID, friendID uuid.UUID) error {
	rows, err := svc.friendWriter.Delete(ctx, humanID, friendID)
	if err != nil {
		logger.Log.Errorw("failed to remove friendship", "err", err)
		return err
	}
	if rows == 0 {
		return ErrFriendshipNotFound
	}
	return nil
}

// ListFriends returns the humans the given human points a friendship edge at.
func (svc *HumanService) ListFriends(ctx context.Context, humanID uuid.UUID) ([]models.Human, error) {
	human, err := svc.reader.GetByID(ctx, humanID)
	if err != nil {
		logger.Log.Errorw("failed to get human", "err", err)
		return nil, err
	}
	if human == nil {
		return nil, ErrHumanNotFound
	}

	friends, err := svc.friendReader.ListFriends(ctx, humanID)
	if err != nil {
		logger.Log.Errorw("failed to list friends", "err", err)
		return nil, err
	}
	return friends, nil
}

func mapFriendshipError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrFriendshipExists):
		return ErrFriendshipExists
	case errors.Is(err, repositories.ErrHumanNotFound):
		return ErrHumanNotFound
	default:
		logger.Log.Errorw("failed to save friendship", "err", err)
		return err
	}
}
