// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/openpoll/auth"
	"github.com/danielhkuo/openpoll/db"
)

// SetupTestDB creates a fresh sqlite database with the full schema. Each
// test gets its own file under t.TempDir, so the suite is hermetic and runs
// without a database server.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "openpoll_test.db")
	conn, err := db.Open("sqlite", "file:"+path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.CreateSchema(conn, "sqlite"); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// CreateTestUser inserts a user and returns its id plus a valid API token
func CreateTestUser(t *testing.T, conn *sql.DB, username string) (userID int64, token string) {
	t.Helper()

	hash, err := auth.HashPassword("pass1234")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	err = conn.QueryRow(`
		INSERT INTO users (username, email, password_hash, is_active, date_joined)
		VALUES ($1, $2, $3, TRUE, $4)
		RETURNING id
	`, username, username+"@example.com", hash, time.Now()).Scan(&userID)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	token, err = auth.IssueToken(conn, userID)
	if err != nil {
		t.Fatalf("Failed to issue test token: %v", err)
	}

	return userID, token
}

// CreateTestPoll inserts a poll owned by userID expiring at expiry
func CreateTestPoll(t *testing.T, conn *sql.DB, userID int64, title string, expiry time.Time) int64 {
	t.Helper()

	var pollID int64
	now := time.Now()
	err := conn.QueryRow(`
		INSERT INTO poll (title, user_id, expiry, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, title, userID, expiry, now, now).Scan(&pollID)
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return pollID
}

// AddTestQuestion adds a question to a poll and returns its id
func AddTestQuestion(t *testing.T, conn *sql.DB, pollID int64, text string) int64 {
	t.Helper()

	var questionID int64
	err := conn.QueryRow(`
		INSERT INTO question (poll_id, text) VALUES ($1, $2) RETURNING id
	`, pollID, text).Scan(&questionID)
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}

	return questionID
}

// AddTestChoice adds a choice to a question and returns its id
func AddTestChoice(t *testing.T, conn *sql.DB, questionID int64, text string) int64 {
	t.Helper()

	var choiceID int64
	err := conn.QueryRow(`
		INSERT INTO choice (question_id, text) VALUES ($1, $2) RETURNING id
	`, questionID, text).Scan(&choiceID)
	if err != nil {
		t.Fatalf("Failed to create test choice: %v", err)
	}

	return choiceID
}

// CastTestVote inserts a vote row directly, bypassing the engine. Empty ip
// and sessionKey become NULL.
func CastTestVote(t *testing.T, conn *sql.DB, questionID, choiceID int64, ip, sessionKey string) int64 {
	t.Helper()

	var ipArg, sessArg any
	if ip != "" {
		ipArg = ip
	}
	if sessionKey != "" {
		sessArg = sessionKey
	}

	var voteID int64
	err := conn.QueryRow(`
		INSERT INTO vote (choice_id, question_id, ip_address, session_key, voted_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, choiceID, questionID, ipArg, sessArg, time.Now()).Scan(&voteID)
	if err != nil {
		t.Fatalf("Failed to cast test vote: %v", err)
	}

	return voteID
}

// CountVotes returns the number of vote rows referencing a question
func CountVotes(t *testing.T, conn *sql.DB, questionID int64) int {
	t.Helper()

	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM vote WHERE question_id = $1`, questionID).Scan(&n); err != nil {
		t.Fatalf("Failed to count votes: %v", err)
	}
	return n
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
