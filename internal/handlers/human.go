package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/louisbranch/lusion/internal/logger"
	"github.com/louisbranch/lusion/internal/models"
	"github.com/louisbranch/lusion/internal/services"
)

// HumanCreator defines the human create operation.
type HumanCreator interface {
	Create(ctx context.Context, name string, friendIDs []uuid.UUID) (*models.Human, error)
}

// HumanGetter defines read operations needed by the human read handlers.
type HumanGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Human, error)
	List(ctx context.Context) ([]models.Human, error)
}

// HumanUpdater defines the human update operation.
type HumanUpdater interface {
	Update(ctx context.Context, id uuid.UUID, name string, friendIDs []uuid.UUID) (*models.Human, error)
}

// HumanDeleter defines the human delete operation.
type HumanDeleter interface {
	Delete(ctx context.Context, id uuid.UUID) error
}

// HumanRequest represents the JSON body for creating or updating a human
// swagger:model HumanRequest
type HumanRequest struct {
	// Name
	// required: true
	// default: Alice
	Name string `json:"name"`

	// Friend ids the human points an edge at
	FriendIDs []uuid.UUID `json:"friend_ids"`
}

// NewCreateHumanHandler returns an HTTP handler creating a human.
// @Summary Create human
// @Description Creates a human plus one directed friendship edge per friend id.
// @Tags humans
// @Accept json
// @Produce json
// @Param humanRequest body handlers.HumanRequest true "Human to create"
// @Success 201 {object} models.Human
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body"
// @Failure 404 {object} handlers.ErrorResponse "Referenced friend does not exist"
// @Failure 409 {object} handlers.ErrorResponse "Duplicate friendship"
// @Router /humans [post]
func NewCreateHumanHandler(svc HumanCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req HumanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		human, err := svc.Create(r.Context(), req.Name, req.FriendIDs)
		if err != nil {
			writeHumanError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, human)
	}
}

// NewListHumansHandler returns an HTTP handler listing every human.
// @Summary List humans
// @Tags humans
// @Produce json
// @Success 200 {array} models.Human
// @Router /humans [get]
func NewListHumansHandler(svc HumanGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		humans, err := svc.List(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, humans)
	}
}

// NewGetHumanHandler returns an HTTP handler fetching a single human by id.
// @Summary Get human
// @Tags humans
// @Produce json
// @Param humanID path string true "Human ID"
// @Success 200 {object} models.Human
// @Failure 400 {object} handlers.ErrorResponse "Invalid human id"
// @Failure 404 {object} handlers.ErrorResponse "Human not found"
// @Router /humans/{humanID} [get]
func NewGetHumanHandler(svc HumanGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "humanID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid human id")
			return
		}

		human, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeHumanError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, human)
	}
}

// NewUpdateHumanHandler returns an HTTP handler renaming a human and
// replacing its friend set.
// @Summary Update human
// @Tags humans
// @Accept json
// @Produce json
// @Param humanID path string true "Human ID"
// @Param humanRequest body handlers.HumanRequest true "New name and friend set"
// @Success 200 {object} models.Human
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 404 {object} handlers.ErrorResponse "Human not found"
// @Failure 409 {object} handlers.ErrorResponse "Duplicate friendship"
// @Router /humans/{humanID} [put]
func NewUpdateHumanHandler(svc HumanUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "humanID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid human id")
			return
		}

		var req HumanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		human, err := svc.Update(r.Context(), id, req.Name, req.FriendIDs)
		if err != nil {
			writeHumanError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, human)
	}
}

// NewDeleteHumanHandler returns an HTTP handler deleting a human. The delete
// is rejected while friendship edges still reference the human.
// @Summary Delete human
// @Tags humans
// @Param humanID path string true "Human ID"
// @Success 204 "Human deleted"
// @Failure 400 {object} handlers.ErrorResponse "Invalid human id"
// @Failure 404 {object} handlers.ErrorResponse "Human not found"
// @Failure 409 {object} handlers.ErrorResponse "Human still has friendships"
// @Router /humans/{humanID} [delete]
func NewDeleteHumanHandler(svc HumanDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "humanID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid human id")
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			writeHumanError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// writeHumanError maps human service errors onto HTTP status codes.
func writeHumanError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrHumanNotFound):
		writeError(w, http.StatusNotFound, "Not Found")
	case errors.Is(err, services.ErrFriendshipNotFound):
		writeError(w, http.StatusNotFound, "Not Found")
	case errors.Is(err, services.ErrFriendshipExists):
		writeError(w, http.StatusConflict, "Friendship already exists")
	case errors.Is(err, services.ErrHumanHasFriends):
		writeError(w, http.StatusConflict, "Human still has friendships")
	default:
		logger.Log.Errorw("internal server error", "err", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
