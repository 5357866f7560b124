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

// UserGetter defines read operations needed by the user read handlers.
type UserGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

// UserUpdater defines the profile update operation.
type UserUpdater interface {
	Update(ctx context.Context, id uuid.UUID, nickname, avatarURL *string) (*models.User, error)
}

// PasswordChanger defines the password change operation.
type PasswordChanger interface {
	ChangePassword(ctx context.Context, id uuid.UUID, oldPassword, newPassword string) error
}

// UserDeleter defines the user delete operation.
type UserDeleter interface {
	Delete(ctx context.Context, id uuid.UUID) error
}

// NewListUsersHandler returns an HTTP handler listing every user.
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Router /users [get]
func NewListUsersHandler(svc UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.List(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, users)
	}
}

// NewGetUserHandler returns an HTTP handler fetching a single user by id.
// @Summary Get user
// @Tags users
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} models.User
// @Failure 400 {object} handlers.ErrorResponse "Invalid user id"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /users/{userID} [get]
func NewGetUserHandler(svc UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid user id")
			return
		}

		user, err := svc.GetByID(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				writeError(w, http.StatusNotFound, "Not Found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

// UpdateUserRequest represents the JSON body for a profile update
// swagger:model UpdateUserRequest
type UpdateUserRequest struct {
	// Nickname, omitted fields are left unchanged
	Nickname *string `json:"nickname,omitempty"`

	// Avatar URL, omitted fields are left unchanged
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// NewUpdateUserHandler returns an HTTP handler for partial profile updates.
// @Summary Update user profile
// @Tags users
// @Accept json
// @Produce json
// @Param userID path string true "User ID"
// @Param updateUserRequest body handlers.UpdateUserRequest true "Fields to update"
// @Success 200 {object} models.User
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /users/{userID} [put]
func NewUpdateUserHandler(svc UserUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid user id")
			return
		}

		var req UpdateUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user, err := svc.Update(r.Context(), id, req.Nickname, req.AvatarURL)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				writeError(w, http.StatusNotFound, "Not Found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

// ChangePasswordRequest represents the JSON body for a password change
// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	// Current password
	// required: true
	OldPassword string `json:"old_password"`

	// New password
	// required: true
	NewPassword string `json:"new_password"`
}

// NewChangePasswordHandler returns an HTTP handler for password changes.
// @Summary Change user password
// @Description Verifies the old password before storing a hash of the new one.
// @Tags users
// @Accept json
// @Param userID path string true "User ID"
// @Param changePasswordRequest body handlers.ChangePasswordRequest true "Password change request"
// @Success 200 "Password updated"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request or password mismatch"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /users/{userID}/password [put]
func NewChangePasswordHandler(svc PasswordChanger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid user id")
			return
		}

		var req ChangePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		err = svc.ChangePassword(r.Context(), id, req.OldPassword, req.NewPassword)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				writeError(w, http.StatusNotFound, "Not Found")
			case errors.Is(err, services.ErrPasswordMismatch):
				writeError(w, http.StatusBadRequest, "No match password")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

// NewDeleteUserHandler returns an HTTP handler deleting a user.
// @Summary Delete user
// @Tags users
// @Param userID path string true "User ID"
// @Success 204 "User deleted"
// @Failure 400 {object} handlers.ErrorResponse "Invalid user id"
// @Failure 404 {object} handlers.ErrorResponse "User not found"
// @Router /users/{userID} [delete]
func NewDeleteUserHandler(svc UserDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid user id")
			return
		}

		err = svc.Delete(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				writeError(w, http.StatusNotFound, "Not Found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
