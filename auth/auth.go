// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/danielhkuo/openpoll/models"
)

var (
	ErrNoCredentials = errors.New("no credentials provided")
	ErrInvalidToken  = errors.New("invalid token")
)

// HashPassword creates a bcrypt hash of the given password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored bcrypt hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// NewSessionKey mints an opaque session token for anonymous voter tracking
func NewSessionKey() string {
	return uuid.NewString()
}

// IssueToken creates and stores a fresh API token for the user
func IssueToken(conn *sql.DB, userID int64) (string, error) {
	token := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO auth_token (token, user_id, created_at)
		VALUES ($1, $2, $3)
	`, token, userID, time.Now())
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return token, nil
}

// UserFromRequest resolves the authenticated caller from the Authorization
// header ("Token <t>" or "Bearer <t>"). Returns ErrNoCredentials when the
// header is absent and ErrInvalidToken when it matches no active account.
func UserFromRequest(conn *sql.DB, r *http.Request) (*models.User, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, ErrNoCredentials
	}

	token := header
	for _, scheme := range []string{"Token ", "Bearer "} {
		if rest, ok := strings.CutPrefix(header, scheme); ok {
			token = rest
			break
		}
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}

	var user models.User
	err := conn.QueryRow(`
		SELECT u.id, u.username, u.email, u.password_hash, u.is_active, u.date_joined
		FROM auth_token t
		JOIN users u ON u.id = t.user_id
		WHERE t.token = $1 AND u.is_active
	`, token).Scan(
		&user.ID, &user.Username, &user.Email,
		&user.PasswordHash, &user.IsActive, &user.DateJoined,
	)
	if err == sql.ErrNoRows {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}

	return &user, nil
}
