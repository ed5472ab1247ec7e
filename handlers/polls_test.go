// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/openpoll/models"
	"github.com/danielhkuo/openpoll/testutil"
)

func authHeader(token string) map[string]string {
	return map[string]string{"Authorization": "Token " + token}
}

func TestCreatePoll(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	_, token := testutil.CreateTestUser(t, conn, "alice")
	handler := NewPollHandler(conn)

	req := testutil.MakeRequest("POST", "/polls", models.CreatePollRequest{
		Title:  "Favorite Language",
		Expiry: time.Now().Add(24 * time.Hour),
	}, authHeader(token))
	w := httptest.NewRecorder()
	handler.CreatePoll(w, req)

	testutil.AssertStatus(t, w, 201)

	var poll models.Poll
	testutil.AssertJSON(t, w, &poll)
	if poll.Title != "Favorite Language" {
		t.Errorf("Expected title 'Favorite Language', got %q", poll.Title)
	}
	if poll.User != "alice" {
		t.Errorf("Expected owner alice, got %q", poll.User)
	}
	if poll.ExpiresIn == "" {
		t.Error("Expected a human-readable expires_in")
	}
	if poll.Questions == nil {
		t.Error("Expected questions to be an empty array, not null")
	}
}

func TestCreatePoll_PastExpiry(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	_, token := testutil.CreateTestUser(t, conn, "alice")
	handler := NewPollHandler(conn)

	req := testutil.MakeRequest("POST", "/polls", models.CreatePollRequest{
		Title:  "Stale",
		Expiry: time.Now().Add(-time.Hour),
	}, authHeader(token))
	w := httptest.NewRecorder()
	handler.CreatePoll(w, req)

	testutil.AssertStatus(t, w, 400)

	var resp models.ErrorResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Error != "Expiry date must be in the future." {
		t.Errorf("Unexpected error message: %q", resp.Error)
	}
}

func TestCreatePoll_Unauthenticated(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	handler := NewPollHandler(conn)

	req := testutil.MakeRequest("POST", "/polls", models.CreatePollRequest{
		Title:  "No token",
		Expiry: time.Now().Add(time.Hour),
	}, nil)
	w := httptest.NewRecorder()
	handler.CreatePoll(w, req)

	testutil.AssertStatus(t, w, 401)

	var resp models.DetailResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Detail != "Authentication credentials were not provided." {
		t.Errorf("Unexpected detail: %q", resp.Detail)
	}
}

func TestGetPoll(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	userID, _ := testutil.CreateTestUser(t, conn, "alice")
	pollID := testutil.CreateTestPoll(t, conn, userID, "Lunch", time.Now().Add(time.Hour))
	questionID := testutil.AddTestQuestion(t, conn, pollID, "Where to?")
	testutil.AddTestChoice(t, conn, questionID, "Tacos")

	handler := NewPollHandler(conn)

	req := testutil.MakeRequest("GET", fmt.Sprintf("/polls/%d", pollID), nil, nil)
	req.SetPathValue("id", fmt.Sprint(pollID))
	w := httptest.NewRecorder()
	handler.GetPoll(w, req)

	testutil.AssertStatus(t, w, 200)

	var poll models.Poll
	testutil.AssertJSON(t, w, &poll)
	if len(poll.Questions) != 1 {
		t.Fatalf("Expected 1 question, got %d", len(poll.Questions))
	}
	if len(poll.Questions[0].Choices) != 1 {
		t.Errorf("Expected 1 choice, got %d", len(poll.Questions[0].Choices))
	}
}

func TestGetPoll_NotFound(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	handler := NewPollHandler(conn)

	req := testutil.MakeRequest("GET", "/polls/999", nil, nil)
	req.SetPathValue("id", "999")
	w := httptest.NewRecorder()
	handler.GetPoll(w, req)

	testutil.AssertStatus(t, w, 404)
}

func TestListPolls(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	userID, _ := testutil.CreateTestUser(t, conn, "alice")
	testutil.CreateTestPoll(t, conn, userID, "First", time.Now().Add(time.Hour))
	testutil.CreateTestPoll(t, conn, userID, "Second", time.Now().Add(time.Hour))

	handler := NewPollHandler(conn)

	req := testutil.MakeRequest("GET", "/polls", nil, nil)
	w := httptest.NewRecorder()
	handler.ListPolls(w, req)

	testutil.AssertStatus(t, w, 200)

	var polls []models.Poll
	testutil.AssertJSON(t, w, &polls)
	if len(polls) != 2 {
		t.Fatalf("Expected 2 polls, got %d", len(polls))
	}
	if polls[0].Title != "First" || polls[1].Title != "Second" {
		t.Errorf("Polls out of order: %q, %q", polls[0].Title, polls[1].Title)
	}
}

func TestUpdatePoll(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	userID, token := testutil.CreateTestUser(t, conn, "alice")
	pollID := testutil.CreateTestPoll(t, conn, userID, "Old title", time.Now().Add(time.Hour))

	handler := NewPollHandler(conn)

	// Updates may set an expiry that already passed; only creation
	// validates against the clock.
	past := time.Now().Add(-time.Hour)
	req := testutil.MakeRequest("PUT", fmt.Sprintf("/polls/%d", pollID), models.UpdatePollRequest{
		Title:  "New title",
		Expiry: past,
	}, authHeader(token))
	req.SetPathValue("id", fmt.Sprint(pollID))
	w := httptest.NewRecorder()
	handler.UpdatePoll(w, req)

	testutil.AssertStatus(t, w, 200)

	var poll models.Poll
	testutil.AssertJSON(t, w, &poll)
	if poll.Title != "New title" {
		t.Errorf("Expected updated title, got %q", poll.Title)
	}
	if !poll.Expiry.Before(time.Now()) {
		t.Error("Expected the past expiry to be stored as-is")
	}
}

func TestUpdatePoll_NotOwner(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	userID, _ := testutil.CreateTestUser(t, conn, "alice")
	_, bobToken := testutil.CreateTestUser(t, conn, "bob")
	pollID := testutil.CreateTestPoll(t, conn, userID, "Alice's poll", time.Now().Add(time.Hour))

	handler := NewPollHandler(conn)

	req := testutil.MakeRequest("PUT", fmt.Sprintf("/polls/%d", pollID), models.UpdatePollRequest{
		Title:  "Hijacked",
		Expiry: time.Now().Add(time.Hour),
	}, authHeader(bobToken))
	req.SetPathValue("id", fmt.Sprint(pollID))
	w := httptest.NewRecorder()
	handler.UpdatePoll(w, req)

	testutil.AssertStatus(t, w, 403)

	var resp models.DetailResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Detail != "You do not have permission to perform this action." {
		t.Errorf("Unexpected detail: %q", resp.Detail)
	}
}

func TestDeletePoll_Cascades(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	userID, token := testutil.CreateTestUser(t, conn, "alice")
	pollID := testutil.CreateTestPoll(t, conn, userID, "Doomed", time.Now().Add(time.Hour))
	questionID := testutil.AddTestQuestion(t, conn, pollID, "Q")
	choiceID := testutil.AddTestChoice(t, conn, questionID, "C")
	testutil.CastTestVote(t, conn, questionID, choiceID, "10.0.0.1", "")

	handler := NewPollHandler(conn)

	req := testutil.MakeRequest("DELETE", fmt.Sprintf("/polls/%d", pollID), nil, authHeader(token))
	req.SetPathValue("id", fmt.Sprint(pollID))
	w := httptest.NewRecorder()
	handler.DeletePoll(w, req)

	testutil.AssertStatus(t, w, 204)

	for _, table := range []string{"poll", "question", "choice", "vote"} {
		var n int
		if err := conn.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
			t.Fatalf("Failed to count %s rows: %v", table, err)
		}
		if n != 0 {
			t.Errorf("Expected %s to be empty after delete, found %d rows", table, n)
		}
	}
}
