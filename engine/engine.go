// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"database/sql"
	"fmt"
	"time"
)

// Engine is the vote admission and tallying core. It owns no state beyond
// the store handle and the advisory session flag set; all correctness
// guarantees live in the store's constraints.
type Engine struct {
	store    *sql.DB
	sessions *SessionVotes
}

func New(store *sql.DB) *Engine {
	return &Engine{
		store:    store,
		sessions: NewSessionVotes(),
	}
}

// Sessions exposes the fast-path flag set, primarily for tests.
func (e *Engine) Sessions() *SessionVotes {
	return e.sessions
}

// Check runs the admission rules for a vote attempt without writing
// anything. A nil return is advisory only - time passes between check and
// record, so Record re-validates inside its transaction.
func (e *Engine) Check(questionID, choiceID int64, id Identity) error {
	// Flagged sessions fail before any store round trip.
	if e.sessions.HasVoted(id.SessionKey, questionID) {
		return ErrDuplicateSession
	}
	return admit(e.store, questionID, choiceID, id)
}

// QuestionInPoll resolves the question a choice belongs to, scoped to a
// poll. Used by the poll-level vote route, where the client names the poll
// and the choice but not the question.
func (e *Engine) QuestionInPoll(pollID, choiceID int64) (int64, error) {
	var exists bool
	err := e.store.QueryRow(`SELECT EXISTS(SELECT 1 FROM poll WHERE id = $1)`, pollID).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("query poll: %w", err)
	}
	if !exists {
		return 0, ErrPollNotFound
	}

	var questionID int64
	err = e.store.QueryRow(`
		SELECT q.id
		FROM choice c
		JOIN question q ON q.id = c.question_id
		WHERE c.id = $1 AND q.poll_id = $2
	`, choiceID, pollID).Scan(&questionID)
	if err == sql.ErrNoRows {
		return 0, ErrChoiceNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("query choice: %w", err)
	}

	return questionID, nil
}

// querier abstracts *sql.DB and *sql.Tx so the same admission rules run for
// the friendly pre-check and for the transactional re-check.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
}

func admit(q querier, questionID, choiceID int64, id Identity) error {
	// 1. The question's poll must exist and not be expired.
	var expiry time.Time
	err := q.QueryRow(`
		SELECT p.expiry
		FROM question qu
		JOIN poll p ON p.id = qu.poll_id
		WHERE qu.id = $1
	`, questionID).Scan(&expiry)
	if err == sql.ErrNoRows {
		return ErrQuestionNotFound
	}
	if err != nil {
		return fmt.Errorf("query poll expiry: %w", err)
	}
	if expiry.Before(time.Now()) {
		return ErrPollExpired
	}

	// 2. The choice must exist under this question. A choice belonging to a
	// different question is indistinguishable from a missing one.
	var ok bool
	err = q.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM choice WHERE id = $1 AND question_id = $2)
	`, choiceID, questionID).Scan(&ok)
	if err != nil {
		return fmt.Errorf("query choice: %w", err)
	}
	if !ok {
		return ErrChoiceNotFound
	}

	// 3-5. One duplicate channel at a time; the fixed order makes the
	// reported reason deterministic when several channels collide.
	if id.UserID != nil {
		if voted, err := hasVote(q, `user_id = $1`, *id.UserID, questionID); err != nil {
			return err
		} else if voted {
			return ErrDuplicateAccount
		}
	}
	if id.IP != "" {
		if voted, err := hasVote(q, `ip_address = $1`, id.IP, questionID); err != nil {
			return err
		} else if voted {
			return ErrDuplicateIP
		}
	}
	if id.SessionKey != "" {
		if voted, err := hasVote(q, `session_key = $1`, id.SessionKey, questionID); err != nil {
			return err
		} else if voted {
			return ErrDuplicateSession
		}
	}

	return nil
}

func hasVote(q querier, channel string, value any, questionID int64) (bool, error) {
	var exists bool
	err := q.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM vote WHERE `+channel+` AND question_id = $2)`,
		value, questionID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("query votes: %w", err)
	}
	return exists, nil
}
