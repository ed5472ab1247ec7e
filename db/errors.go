// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

// Unique constraint names as declared in the schema. Both dialects are
// normalized to these so callers can switch on a single vocabulary.
const (
	ConstraintVoteUser    = "vote_user_question_key"
	ConstraintVoteIP      = "vote_ip_question_key"
	ConstraintVoteSession = "vote_session_question_key"
	ConstraintUsername    = "users_username_key"
	ConstraintEmail       = "users_email_key"
)

// sqlite reports violations by column list rather than constraint name.
var sqliteConstraints = map[string]string{
	"vote.user_id":     ConstraintVoteUser,
	"vote.ip_address":  ConstraintVoteIP,
	"vote.session_key": ConstraintVoteSession,
	"users.username":   ConstraintUsername,
	"users.email":      ConstraintEmail,
}

// UniqueViolation reports whether err is a unique-constraint violation and,
// if so, which named constraint was hit. Postgres carries the constraint name
// on the error (class 23505); sqlite is matched on its message.
func UniqueViolation(err error) (constraint string, ok bool) {
	if err == nil {
		return "", false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "23505" {
			return pqErr.Constraint, true
		}
		return "", false
	}

	msg := err.Error()
	if !strings.Contains(msg, "UNIQUE constraint failed") {
		return "", false
	}
	for column, name := range sqliteConstraints {
		if strings.Contains(msg, column) {
			return name, true
		}
	}
	return "", true
}
