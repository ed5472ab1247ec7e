// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/openpoll/middleware"
	"github.com/danielhkuo/openpoll/models"
)

type PollHandler struct {
	db *sql.DB
}

func NewPollHandler(conn *sql.DB) *PollHandler {
	return &PollHandler{db: conn}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	user := requireUser(h.db, w, r)
	if user == nil {
		return
	}

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Expiry.IsZero() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "expiry is required")
		return
	}
	// Expiry is validated at creation only; updates leave it alone
	if !req.Expiry.After(time.Now()) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Expiry date must be in the future.")
		return
	}

	now := time.Now()
	var pollID int64
	err := h.db.QueryRow(`
		INSERT INTO poll (title, user_id, expiry, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, req.Title, user.ID, req.Expiry, now, now).Scan(&pollID)
	if err != nil {
		slog.Error("failed to insert poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	slog.Info("poll created", "poll_id", pollID, "owner", user.Username)

	poll, err := loadPoll(h.db, pollID)
	if err != nil {
		slog.Error("failed to load created poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, poll)
}

// ListPolls handles GET /polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`SELECT id FROM poll ORDER BY id`)
	if err != nil {
		slog.Error("failed to query polls", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			slog.Error("failed to scan poll id", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		ids = append(ids, id)
	}

	polls := []models.Poll{}
	for _, id := range ids {
		poll, err := loadPoll(h.db, id)
		if err != nil {
			slog.Error("failed to load poll", "error", err, "poll_id", id)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		polls = append(polls, poll)
	}

	middleware.JSONResponse(w, http.StatusOK, polls)
}

// GetPoll handles GET /polls/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID, ok := pathID(r)
	if !ok {
		middleware.DetailResponse(w, http.StatusNotFound, "Not found.")
		return
	}

	poll, err := loadPoll(h.db, pollID)
	if err == sql.ErrNoRows {
		middleware.DetailResponse(w, http.StatusNotFound, "Not found.")
		return
	}
	if err != nil {
		slog.Error("failed to load poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// UpdatePoll handles PUT /polls/{id}
func (h *PollHandler) UpdatePoll(w http.ResponseWriter, r *http.Request) {
	user := requireUser(h.db, w, r)
	if user == nil {
		return
	}

	pollID, ok := pathID(r)
	if !ok {
		middleware.DetailResponse(w, http.StatusNotFound, "Not found.")
		return
	}

	ownerID, err := pollOwner(h.db, pollID)
	if err == sql.ErrNoRows {
		middleware.DetailResponse(w, http.StatusNotFound, "Not found.")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if ownerID != user.ID {
		middleware.DetailResponse(w, http.StatusForbidden, "You do not have permission to perform this action.")
		return
	}

	var req models.UpdatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.Expiry.IsZero() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "expiry is required")
		return
	}

	// Note: expiry is not re-validated against the clock here - a poll can
	// be updated to an already-past expiry, which closes it immediately.
	_, err = h.db.Exec(`
		UPDATE poll SET title = $1, expiry = $2, updated_at = $3 WHERE id = $4
	`, req.Title, req.Expiry, time.Now(), pollID)
	if err != nil {
		slog.Error("failed to update poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update poll")
		return
	}

	slog.Info("poll updated", "poll_id", pollID)

	poll, err := loadPoll(h.db, pollID)
	if err != nil {
		slog.Error("failed to load updated poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// DeletePoll handles DELETE /polls/{id}
// Questions, choices, and votes under the poll go with it (FK cascades).
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	user := requireUser(h.db, w, r)
	if user == nil {
		return
	}

	pollID, ok := pathID(r)
	if !ok {
		middleware.DetailResponse(w, http.StatusNotFound, "Not found.")
		return
	}

	ownerID, err := pollOwner(h.db, pollID)
	if err == sql.ErrNoRows {
		middleware.DetailResponse(w, http.StatusNotFound, "Not found.")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if ownerID != user.ID {
		middleware.DetailResponse(w, http.StatusForbidden, "You do not have permission to perform this action.")
		return
	}

	if _, err := h.db.Exec(`DELETE FROM poll WHERE id = $1`, pollID); err != nil {
		slog.Error("failed to delete poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete poll")
		return
	}

	slog.Info("poll deleted", "poll_id", pollID)

	w.WriteHeader(http.StatusNoContent)
}
