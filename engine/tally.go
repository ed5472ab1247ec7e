// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"database/sql"
	"fmt"

	"github.com/danielhkuo/openpoll/models"
)

// Tally computes per-choice vote counts and the winner for every question of
// a poll. All reads happen in one transaction so counts reflect a consistent
// snapshot, never a vote caught mid-commit.
//
// Counts are ordered by votes descending, then choice id ascending (creation
// order) so ties break deterministically. The winner is the top entry; it is
// nil only when the question has no choices - a choice with zero votes still
// wins an empty question.
func (e *Engine) Tally(pollID int64) (models.PollResults, error) {
	var results models.PollResults

	tx, err := e.store.Begin()
	if err != nil {
		return results, fmt.Errorf("begin tally transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRow(`SELECT title FROM poll WHERE id = $1`, pollID).Scan(&results.Poll)
	if err == sql.ErrNoRows {
		return results, ErrPollNotFound
	}
	if err != nil {
		return results, fmt.Errorf("query poll: %w", err)
	}

	questions, err := pollQuestions(tx, pollID)
	if err != nil {
		return results, err
	}

	results.Results = make([]models.QuestionResult, 0, len(questions))
	for _, q := range questions {
		counts, err := questionCounts(tx, q.ID)
		if err != nil {
			return results, err
		}

		qr := models.QuestionResult{
			Question: q.Text,
			Choices:  counts,
		}
		if len(counts) > 0 {
			top := counts[0]
			qr.Winner = &top
		}
		results.Results = append(results.Results, qr)
	}

	if err := tx.Commit(); err != nil {
		return results, fmt.Errorf("commit tally transaction: %w", err)
	}

	return results, nil
}

type questionRow struct {
	ID   int64
	Text string
}

// pollQuestions returns the poll's questions in stored (id) order. Collected
// eagerly because a sql.Tx cannot interleave a second query with open rows.
func pollQuestions(tx *sql.Tx, pollID int64) ([]questionRow, error) {
	rows, err := tx.Query(`
		SELECT id, text FROM question WHERE poll_id = $1 ORDER BY id
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var questions []questionRow
	for rows.Next() {
		var q questionRow
		if err := rows.Scan(&q.ID, &q.Text); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// questionCounts counts committed votes per choice. The LEFT JOIN keeps
// zero-vote choices in the result.
func questionCounts(tx *sql.Tx, questionID int64) ([]models.ChoiceCount, error) {
	rows, err := tx.Query(`
		SELECT c.text, COUNT(v.id)
		FROM choice c
		LEFT JOIN vote v ON v.choice_id = c.id
		WHERE c.question_id = $1
		GROUP BY c.id, c.text
		ORDER BY COUNT(v.id) DESC, c.id ASC
	`, questionID)
	if err != nil {
		return nil, fmt.Errorf("query counts: %w", err)
	}
	defer rows.Close()

	counts := []models.ChoiceCount{}
	for rows.Next() {
		var cc models.ChoiceCount
		if err := rows.Scan(&cc.Choice, &cc.Votes); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts = append(counts, cc)
	}
	return counts, rows.Err()
}
