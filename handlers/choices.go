// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/openpoll/middleware"
	"github.com/danielhkuo/openpoll/models"
)

type ChoiceHandler struct {
	db *sql.DB
}

func NewChoiceHandler(conn *sql.DB) *ChoiceHandler {
	return &ChoiceHandler{db: conn}
}

// choiceOwner returns the id of the user owning the choice's poll.
func choiceOwner(conn *sql.DB, choiceID int64) (ownerID, questionID int64, err error) {
	err = conn.QueryRow(`
		SELECT p.user_id, q.id
		FROM choice c
		JOIN question q ON q.id = c.question_id
		JOIN poll p ON p.id = q.poll_id
		WHERE c.id = $1
	`, choiceID).Scan(&ownerID, &questionID)
	return ownerID, questionID, err
}

// CreateChoice handles POST /choices
func (h *ChoiceHandler) CreateChoice(w http.ResponseWriter, r *http.Request) {
	user := requireUser(h.db, w, r)
	if user == nil {
		return
	}

	var req models.CreateChoiceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Text == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "text is required")
		return
	}
	if req.Question == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question is required")
		return
	}

	ownerID, _, err := questionOwner(h.db, req.Question)
	if err == sql.ErrNoRows {
		middleware.DetailResponse(w, http.StatusNotFound, "Question not found.")
		return
	}
	if err != nil {
		slog.Error("failed to query question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if ownerID != user.ID {
		middleware.DetailResponse(w, http.StatusForbidden, "You do not have permission to perform this action.")
		return
	}

	var choiceID int64
	err = h.db.QueryRow(`
		INSERT INTO choice (question_id, text) VALUES ($1, $2) RETURNING id
	`, req.Question, req.Text).Scan(&choiceID)
	if err != nil {
		slog.Error("failed to insert choice", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create choice")
		return
	}

	slog.Info("choice created", "choice_id", choiceID, "question_id", req.Question)

	middleware.JSONResponse(w, http.StatusCreated, models.Choice{
		ID:       choiceID,
		Text:     req.Text,
		Question: req.Question,
	})
}

// GetChoice handles GET /choices/{id}
func (h *ChoiceHandler) GetChoice(w http.ResponseWriter, r *http.Request) {
	choiceID, ok := pathID(r)
	if !ok {
		middleware.DetailResponse(w, http.StatusNotFound, "Not found.")
		return
	}

	var c models.Choice
	err := h.db.QueryRow(`
		SELECT id, text, question_id FROM choice WHERE id = $1
	`, choiceID).Scan(&c.ID, &c.Text, &c.Question)
	if err == sql.ErrNoRows {
		middleware.DetailResponse(w, http.StatusNotFound, "Not found.")
		return
	}
	if err != nil {
		slog.Error("failed to query choice", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, c)
}

// UpdateChoice handles PUT /choices/{id}
func (h *ChoiceHandler) UpdateChoice(w http.ResponseWriter, r *http.Request) {
	user := requireUser(h.db, w, r)
	if user == nil {
		return
	}

	choiceID, ok := pathID(r)
	if !ok {
		middleware.DetailResponse(w, http.StatusNotFound, "Not found.")
		return
	}

	ownerID, questionID, err := choiceOwner(h.db, choiceID)
	if err == sql.ErrNoRows {
		middleware.DetailResponse(w, http.StatusNotFound, "Not found.")
		return
	}
	if err != nil {
		slog.Error("failed to query choice", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if ownerID != user.ID {
		middleware.DetailResponse(w, http.StatusForbidden, "You do not have permission to perform this action.")
		return
	}

	var req models.UpdateChoiceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Text == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "text is required")
		return
	}

	if _, err := h.db.Exec(`UPDATE choice SET text = $1 WHERE id = $2`, req.Text, choiceID); err != nil {
		slog.Error("failed to update choice", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update choice")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.Choice{
		ID:       choiceID,
		Text:     req.Text,
		Question: questionID,
	})
}

// DeleteChoice handles DELETE /choices/{id}
// Votes for the choice go with it (FK cascade).
func (h *ChoiceHandler) DeleteChoice(w http.ResponseWriter, r *http.Request) {
	user := requireUser(h.db, w, r)
	if user == nil {
		return
	}

	choiceID, ok := pathID(r)
	if !ok {
		middleware.DetailResponse(w, http.StatusNotFound, "Not found.")
		return
	}

	ownerID, _, err := choiceOwner(h.db, choiceID)
	if err == sql.ErrNoRows {
		middleware.DetailResponse(w, http.StatusNotFound, "Not found.")
		return
	}
	if err != nil {
		slog.Error("failed to query choice", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if ownerID != user.ID {
		middleware.DetailResponse(w, http.StatusForbidden, "You do not have permission to perform this action.")
		return
	}

	if _, err := h.db.Exec(`DELETE FROM choice WHERE id = $1`, choiceID); err != nil {
		slog.Error("failed to delete choice", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete choice")
		return
	}

	slog.Info("choice deleted", "choice_id", choiceID)

	w.WriteHeader(http.StatusNoContent)
}
