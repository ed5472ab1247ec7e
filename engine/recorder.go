// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/openpoll/db"
)

// Record validates and persists a vote as one atomic unit. Admission is
// re-checked inside the transaction, and a unique-constraint violation on
// insert - the signature of losing a race against a concurrent submission
// with the same identity - is translated into the matching duplicate
// rejection. Returns the new vote id on success.
func (e *Engine) Record(questionID, choiceID int64, id Identity) (int64, error) {
	if e.sessions.HasVoted(id.SessionKey, questionID) {
		return 0, ErrDuplicateSession
	}

	tx, err := e.store.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := admit(tx, questionID, choiceID, id); err != nil {
		return 0, err
	}

	var voteID int64
	err = tx.QueryRow(`
		INSERT INTO vote (user_id, choice_id, question_id, ip_address, session_key, voted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, id.UserID, choiceID, questionID, nullable(id.IP), nullable(id.SessionKey), time.Now()).Scan(&voteID)
	if err != nil {
		if constraint, ok := db.UniqueViolation(err); ok {
			return 0, duplicateFor(constraint)
		}
		return 0, fmt.Errorf("insert vote: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit vote: %w", err)
	}

	// Flag the session only after the vote is durable.
	e.sessions.Mark(id.SessionKey, questionID)

	slog.Info("vote recorded", "vote_id", voteID, "question_id", questionID, "choice_id", choiceID)

	return voteID, nil
}

// duplicateFor maps a violated unique constraint to the channel-specific
// rejection a losing racer should see.
func duplicateFor(constraint string) error {
	switch constraint {
	case db.ConstraintVoteUser:
		return ErrDuplicateAccount
	case db.ConstraintVoteIP:
		return ErrDuplicateIP
	case db.ConstraintVoteSession:
		return ErrDuplicateSession
	default:
		return fmt.Errorf("unexpected unique violation: %s", constraint)
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
