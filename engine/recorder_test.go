// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/danielhkuo/openpoll/db"
	"github.com/danielhkuo/openpoll/testutil"
)

func TestRecord(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	eng := New(conn)

	userID, _ := testutil.CreateTestUser(t, conn, "alice")
	pollID := testutil.CreateTestPoll(t, conn, userID, "Election", time.Now().Add(24*time.Hour))
	questionID := testutil.AddTestQuestion(t, conn, pollID, "Who should win?")
	choiceA := testutil.AddTestChoice(t, conn, questionID, "Candidate A")
	choiceB := testutil.AddTestChoice(t, conn, questionID, "Candidate B")

	voteID, err := eng.Record(questionID, choiceA, Identity{IP: "1.1.1.1", SessionKey: "sess-1"})
	if err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if voteID == 0 {
		t.Error("Record() returned zero vote id")
	}

	if got := testutil.CountVotes(t, conn, questionID); got != 1 {
		t.Errorf("Expected 1 vote row, got %d", got)
	}

	// The session is flagged once the vote is durable
	if !eng.Sessions().HasVoted("sess-1", questionID) {
		t.Error("Expected session to be flagged after recording")
	}

	// Same session again fails fast with the session reason, even for a
	// different choice, and writes nothing
	if _, err := eng.Record(questionID, choiceB, Identity{IP: "5.5.5.5", SessionKey: "sess-1"}); !errors.Is(err, ErrDuplicateSession) {
		t.Errorf("Record() = %v, want ErrDuplicateSession", err)
	}

	// Same IP under a fresh session is caught by the IP channel
	if _, err := eng.Record(questionID, choiceB, Identity{IP: "1.1.1.1", SessionKey: "sess-2"}); !errors.Is(err, ErrDuplicateIP) {
		t.Errorf("Record() = %v, want ErrDuplicateIP", err)
	}

	if got := testutil.CountVotes(t, conn, questionID); got != 1 {
		t.Errorf("Rejections must not write rows: expected 1 vote, got %d", got)
	}
}

func TestRecord_ExpiredPoll(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	eng := New(conn)

	userID, _ := testutil.CreateTestUser(t, conn, "alice")
	pollID := testutil.CreateTestPoll(t, conn, userID, "Old Poll", time.Now().Add(-time.Hour))
	questionID := testutil.AddTestQuestion(t, conn, pollID, "Q")
	choiceID := testutil.AddTestChoice(t, conn, questionID, "A")

	// Expiry wins regardless of identity or prior votes
	identities := []Identity{
		{IP: "1.1.1.1"},
		{SessionKey: "sess-1"},
		{IP: "1.1.1.1", SessionKey: "sess-1"},
	}
	for _, id := range identities {
		if _, err := eng.Record(questionID, choiceID, id); !errors.Is(err, ErrPollExpired) {
			t.Errorf("Record(%+v) = %v, want ErrPollExpired", id, err)
		}
	}

	if got := testutil.CountVotes(t, conn, questionID); got != 0 {
		t.Errorf("Expected no votes on expired poll, got %d", got)
	}
}

func TestRecord_ForeignChoice(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	eng := New(conn)

	userID, _ := testutil.CreateTestUser(t, conn, "alice")
	pollID := testutil.CreateTestPoll(t, conn, userID, "Poll", time.Now().Add(time.Hour))
	questionID := testutil.AddTestQuestion(t, conn, pollID, "Q1")
	testutil.AddTestChoice(t, conn, questionID, "A")

	otherQuestion := testutil.AddTestQuestion(t, conn, pollID, "Q2")
	foreignChoice := testutil.AddTestChoice(t, conn, otherQuestion, "B")

	if _, err := eng.Record(questionID, foreignChoice, Identity{IP: "1.1.1.1"}); !errors.Is(err, ErrChoiceNotFound) {
		t.Errorf("Record() = %v, want ErrChoiceNotFound", err)
	}
	if got := testutil.CountVotes(t, conn, questionID); got != 0 {
		t.Errorf("Cross-question vote must never be recorded, got %d rows", got)
	}
}

func TestRecord_AnonymousAndAccountChannels(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	eng := New(conn)

	ownerID, _ := testutil.CreateTestUser(t, conn, "owner")
	voterID, _ := testutil.CreateTestUser(t, conn, "voter")
	pollID := testutil.CreateTestPoll(t, conn, ownerID, "Poll", time.Now().Add(time.Hour))
	questionID := testutil.AddTestQuestion(t, conn, pollID, "Q")
	choiceID := testutil.AddTestChoice(t, conn, questionID, "A")

	// Authenticated vote
	if _, err := eng.Record(questionID, choiceID, Identity{UserID: &voterID, IP: "1.1.1.1", SessionKey: "s1"}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	// Same account from a different address and session
	if _, err := eng.Record(questionID, choiceID, Identity{UserID: &voterID, IP: "2.2.2.2", SessionKey: "s2"}); !errors.Is(err, ErrDuplicateAccount) {
		t.Errorf("Record() = %v, want ErrDuplicateAccount", err)
	}

	// A fully distinct anonymous identity still gets through
	if _, err := eng.Record(questionID, choiceID, Identity{IP: "3.3.3.3", SessionKey: "s3"}); err != nil {
		t.Errorf("Record() error = %v", err)
	}

	if got := testutil.CountVotes(t, conn, questionID); got != 2 {
		t.Errorf("Expected 2 votes, got %d", got)
	}
}

func TestDuplicateFor(t *testing.T) {
	tests := []struct {
		constraint string
		want       error
	}{
		{db.ConstraintVoteUser, ErrDuplicateAccount},
		{db.ConstraintVoteIP, ErrDuplicateIP},
		{db.ConstraintVoteSession, ErrDuplicateSession},
	}

	for _, tt := range tests {
		if got := duplicateFor(tt.constraint); !errors.Is(got, tt.want) {
			t.Errorf("duplicateFor(%s) = %v, want %v", tt.constraint, got, tt.want)
		}
	}

	if err := duplicateFor("something_else"); IsRejection(err) {
		t.Error("unknown constraint must not map to a rejection")
	}
}
