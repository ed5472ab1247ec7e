// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/openpoll/auth"
	"github.com/danielhkuo/openpoll/middleware"
	"github.com/danielhkuo/openpoll/models"
)

// requireUser resolves the authenticated caller or writes the 401 and
// returns nil.
func requireUser(conn *sql.DB, w http.ResponseWriter, r *http.Request) *models.User {
	user, err := auth.UserFromRequest(conn, r)
	switch {
	case errors.Is(err, auth.ErrNoCredentials):
		middleware.DetailResponse(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
		return nil
	case errors.Is(err, auth.ErrInvalidToken):
		middleware.DetailResponse(w, http.StatusUnauthorized, "Invalid token.")
		return nil
	case err != nil:
		slog.Error("failed to resolve caller", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return nil
	}
	return user
}

// pathID parses the {id} path segment. A non-numeric id is treated the same
// as a missing record.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// loadPoll fetches a poll with its owner's username and nested questions.
func loadPoll(conn *sql.DB, pollID int64) (models.Poll, error) {
	var p models.Poll
	err := conn.QueryRow(`
		SELECT p.id, p.title, p.created_at, p.updated_at, u.username, p.expiry
		FROM poll p
		JOIN users u ON u.id = p.user_id
		WHERE p.id = $1
	`, pollID).Scan(&p.ID, &p.Title, &p.CreatedAt, &p.UpdatedAt, &p.User, &p.Expiry)
	if err != nil {
		return p, err
	}
	p.ExpiresIn = humanize.Time(p.Expiry)

	p.Questions, err = loadQuestions(conn, pollID)
	return p, err
}

// loadQuestions fetches a poll's questions with their choices, in stored
// order.
func loadQuestions(conn *sql.DB, pollID int64) ([]models.Question, error) {
	rows, err := conn.Query(`
		SELECT id, text FROM question WHERE poll_id = $1 ORDER BY id
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		q := models.Question{Poll: pollID}
		if err := rows.Scan(&q.ID, &q.Text); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range questions {
		choices, err := loadChoices(conn, questions[i].ID)
		if err != nil {
			return nil, err
		}
		questions[i].Choices = choices
	}
	return questions, nil
}

func loadChoices(conn *sql.DB, questionID int64) ([]models.Choice, error) {
	rows, err := conn.Query(`
		SELECT id, text FROM choice WHERE question_id = $1 ORDER BY id
	`, questionID)
	if err != nil {
		return nil, fmt.Errorf("query choices: %w", err)
	}
	defer rows.Close()

	choices := []models.Choice{}
	for rows.Next() {
		c := models.Choice{Question: questionID}
		if err := rows.Scan(&c.ID, &c.Text); err != nil {
			return nil, fmt.Errorf("scan choice: %w", err)
		}
		choices = append(choices, c)
	}
	return choices, rows.Err()
}

// pollOwner returns the owning user id of a poll, or sql.ErrNoRows.
func pollOwner(conn *sql.DB, pollID int64) (int64, error) {
	var ownerID int64
	err := conn.QueryRow(`SELECT user_id FROM poll WHERE id = $1`, pollID).Scan(&ownerID)
	return ownerID, err
}
