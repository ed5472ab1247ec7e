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

type QuestionHandler struct {
	db *sql.DB
}

func NewQuestionHandler(conn *sql.DB) *QuestionHandler {
	return &QuestionHandler{db: conn}
}

// questionOwner returns the id of the user owning the question's poll.
func questionOwner(conn *sql.DB, questionID int64) (ownerID, pollID int64, err error) {
	err = conn.QueryRow(`
		SELECT p.user_id, p.id
		FROM question q
		JOIN poll p ON p.id = q.poll_id
		WHERE q.id = $1
	`, questionID).Scan(&ownerID, &pollID)
	return ownerID, pollID, err
}

// CreateQuestion handles POST /questions
func (h *QuestionHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	user := requireUser(h.db, w, r)
	if user == nil {
		return
	}

	var req models.CreateQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Text == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "text is required")
		return
	}
	if req.Poll == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll is required")
		return
	}

	ownerID, err := pollOwner(h.db, req.Poll)
	if err == sql.ErrNoRows {
		middleware.DetailResponse(w, http.StatusNotFound, "Poll not found.")
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

	var questionID int64
	err = h.db.QueryRow(`
		INSERT INTO question (poll_id, text) VALUES ($1, $2) RETURNING id
	`, req.Poll, req.Text).Scan(&questionID)
	if err != nil {
		slog.Error("failed to insert question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create question")
		return
	}

	slog.Info("question created", "question_id", questionID, "poll_id", req.Poll)

	middleware.JSONResponse(w, http.StatusCreated, models.Question{
		ID:      questionID,
		Text:    req.Text,
		Poll:    req.Poll,
		Choices: []models.Choice{},
	})
}

// GetQuestion handles GET /questions/{id}
func (h *QuestionHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, ok := pathID(r)
	if !ok {
		middleware.DetailResponse(w, http.StatusNotFound, "Not found.")
		return
	}

	var q models.Question
	err := h.db.QueryRow(`
		SELECT id, text, poll_id FROM question WHERE id = $1
	`, questionID).Scan(&q.ID, &q.Text, &q.Poll)
	if err == sql.ErrNoRows {
		middleware.DetailResponse(w, http.StatusNotFound, "Not found.")
		return
	}
	if err != nil {
		slog.Error("failed to query question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	q.Choices, err = loadChoices(h.db, q.ID)
	if err != nil {
		slog.Error("failed to load choices", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, q)
}

// UpdateQuestion handles PUT /questions/{id}
func (h *QuestionHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	user := requireUser(h.db, w, r)
	if user == nil {
		return
	}

	questionID, ok := pathID(r)
	if !ok {
		middleware.DetailResponse(w, http.StatusNotFound, "Not found.")
		return
	}

	ownerID, pollID, err := questionOwner(h.db, questionID)
	if err == sql.ErrNoRows {
		middleware.DetailResponse(w, http.StatusNotFound, "Not found.")
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

	var req models.UpdateQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Text == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "text is required")
		return
	}

	if _, err := h.db.Exec(`UPDATE question SET text = $1 WHERE id = $2`, req.Text, questionID); err != nil {
		slog.Error("failed to update question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update question")
		return
	}

	choices, err := loadChoices(h.db, questionID)
	if err != nil {
		slog.Error("failed to load choices", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.Question{
		ID:      questionID,
		Text:    req.Text,
		Poll:    pollID,
		Choices: choices,
	})
}

// DeleteQuestion handles DELETE /questions/{id}
// Choices and votes under the question go with it (FK cascades).
func (h *QuestionHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	user := requireUser(h.db, w, r)
	if user == nil {
		return
	}

	questionID, ok := pathID(r)
	if !ok {
		middleware.DetailResponse(w, http.StatusNotFound, "Not found.")
		return
	}

	ownerID, _, err := questionOwner(h.db, questionID)
	if err == sql.ErrNoRows {
		middleware.DetailResponse(w, http.StatusNotFound, "Not found.")
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

	if _, err := h.db.Exec(`DELETE FROM question WHERE id = $1`, questionID); err != nil {
		slog.Error("failed to delete question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete question")
		return
	}

	slog.Info("question deleted", "question_id", questionID)

	w.WriteHeader(http.StatusNoContent)
}
