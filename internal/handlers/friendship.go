package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/louisbranch/lusion/internal/models"
)

// FriendAdder defines the add-friendship operation.
type FriendAdder interface {
	AddFriend(ctx context.Context, humanID, friendID uuid.UUID) error
}

// FriendRemover defines the remove-friendship operation.
type FriendRemover interface {
	RemoveFriend(ctx context.Context, humanID, friendID uuid.UUID) error
}

// FriendLister defines the list-friends operation.
type FriendLister interface {
	ListFriends(ctx context.Context, humanID uuid.UUID) ([]models.Human, error)
}

// AddFriendRequest represents the JSON body for adding a friendship edge
// swagger:model AddFriendRequest
type AddFriendRequest struct {
	// Friend id the edge points at
	// required: true
	FriendID uuid.UUID `json:"friend_id"`
}

// NewAddFriendHandler returns an HTTP handler inserting a directed friendship
// edge. The reverse edge must be added separately.
// @Summary Add friend
// @Tags humans
// @Accept json
// @Param humanID path string true "Human ID"
// @Param addFriendRequest body handlers.AddFriendRequest true "Friend to add"
// @Success 201 "Friendship created"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request"
// @Failure 404 {object} handlers.ErrorResponse "Human not found"
// @Failure 409 {object} handlers.ErrorResponse "Friendship already exists"
// @Router /humans/{humanID}/friends [post]
func NewAddFriendHandler(svc FriendAdder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		humanID, err := uuid.Parse(chi.URLParam(r, "humanID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid human id")
			return
		}

		var req AddFriendRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.FriendID == uuid.Nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if err := svc.AddFriend(r.Context(), humanID, req.FriendID); err != nil {
			writeHumanError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
	}
}

// NewRemoveFriendHandler returns an HTTP handler deleting a directed
// friendship edge.
// @Summary Remove friend
// @Tags humans
// @Param humanID path string true "Human ID"
// @Param friendID path string true "Friend ID"
// @Success 204 "Friendship removed"
// @Failure 400 {object} handlers.ErrorResponse "Invalid ids"
// @Failure 404 {object} handlers.ErrorResponse "Friendship not found"
// @Router /humans/{humanID}/friends/{friendID} [delete]
func NewRemoveFriendHandler(svc FriendRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		humanID, err := uuid.Parse(chi.URLParam(r, "humanID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid human id")
			return
		}
		friendID, err := uuid.Parse(chi.URLParam(r, "friendID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid friend id")
			return
		}

		if err := svc.RemoveFriend(r.Context(), humanID, friendID); err != nil {
			writeHumanError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// NewListFriendsHandler returns an HTTP handler listing a human's friends.
// @Summary List friends
// @Tags humans
// @Produce json
// @Param humanID path string true "Human ID"
// @Success 200 {array} models.Human
// @Failure 400 {object} handlers.ErrorResponse "Invalid human id"
// @Failure 404 {object} handlers.ErrorResponse "Human not found"
// @Router /humans/{humanID}/friends [get]
func NewListFriendsHandler(svc FriendLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		humanID, err := uuid.Parse(chi.URLParam(r, "humanID"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid human id")
			return
		}

		friends, err := svc.ListFriends(r.Context(), humanID)
		if err != nil {
			writeHumanError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, friends)
	}
}
