// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(conn *sql.DB, databaseType string) error {
	ddl := schemaPostgres
	if databaseType == "sqlite" {
		ddl = schemaSQLite
	}

	if _, err := conn.Exec(ddl); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The three named unique constraints on vote are the backbone of duplicate
// prevention: one row per question per user, per IP, and per session key.
// NULLs are distinct under UNIQUE in both dialects, so absent channels never
// collide.
const schemaPostgres = `
-- Users
CREATE TABLE IF NOT EXISTS users (
    id SERIAL PRIMARY KEY,
    username TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    date_joined TIMESTAMP NOT NULL DEFAULT NOW()
);

-- API tokens
CREATE TABLE IF NOT EXISTS auth_token (
    token TEXT PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_auth_token_user_id ON auth_token(user_id);

-- Polls
CREATE TABLE IF NOT EXISTS poll (
    id SERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    expiry TIMESTAMP NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_poll_user_id ON poll(user_id);

-- Questions
CREATE TABLE IF NOT EXISTS question (
    id SERIAL PRIMARY KEY,
    poll_id INTEGER NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    text TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_question_poll_id ON question(poll_id);

-- Choices
CREATE TABLE IF NOT EXISTS choice (
    id SERIAL PRIMARY KEY,
    question_id INTEGER NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    text TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_choice_question_id ON choice(question_id);

-- Votes
CREATE TABLE IF NOT EXISTS vote (
    id SERIAL PRIMARY KEY,
    user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
    choice_id INTEGER NOT NULL REFERENCES choice(id) ON DELETE CASCADE,
    question_id INTEGER NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    ip_address TEXT,
    session_key TEXT,
    voted_at TIMESTAMP NOT NULL DEFAULT NOW(),
    CONSTRAINT vote_user_question_key UNIQUE (user_id, question_id),
    CONSTRAINT vote_ip_question_key UNIQUE (ip_address, question_id),
    CONSTRAINT vote_session_question_key UNIQUE (session_key, question_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_question_id ON vote(question_id);
CREATE INDEX IF NOT EXISTS idx_vote_choice_id ON vote(choice_id);
`

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS users (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT NOT NULL UNIQUE,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    date_joined TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS auth_token (
    token TEXT PRIMARY KEY,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_auth_token_user_id ON auth_token(user_id);

CREATE TABLE IF NOT EXISTS poll (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    expiry TIMESTAMP NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_poll_user_id ON poll(user_id);

CREATE TABLE IF NOT EXISTS question (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    poll_id INTEGER NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    text TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_question_poll_id ON question(poll_id);

CREATE TABLE IF NOT EXISTS choice (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    question_id INTEGER NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    text TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_choice_question_id ON choice(question_id);

CREATE TABLE IF NOT EXISTS vote (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER REFERENCES users(id) ON DELETE CASCADE,
    choice_id INTEGER NOT NULL REFERENCES choice(id) ON DELETE CASCADE,
    question_id INTEGER NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    ip_address TEXT,
    session_key TEXT,
    voted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    CONSTRAINT vote_user_question_key UNIQUE (user_id, question_id),
    CONSTRAINT vote_ip_question_key UNIQUE (ip_address, question_id),
    CONSTRAINT vote_session_question_key UNIQUE (session_key, question_id)
);

CREATE INDEX IF NOT EXISTS idx_vote_question_id ON vote(question_id);
CREATE INDEX IF NOT EXISTS idx_vote_choice_id ON vote(choice_id);
`
