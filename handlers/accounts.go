// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/openpoll/auth"
	"github.com/danielhkuo/openpoll/db"
	"github.com/danielhkuo/openpoll/middleware"
	"github.com/danielhkuo/openpoll/models"
)

type AccountHandler struct {
	db *sql.DB
}

func NewAccountHandler(conn *sql.DB) *AccountHandler {
	return &AccountHandler{db: conn}
}

// Register handles POST /auth/register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Username == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username is required")
		return
	}
	if req.Email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "email is required")
		return
	}
	if len(req.Password) < 8 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	joined := time.Now()
	var userID int64
	err = h.db.QueryRow(`
		INSERT INTO users (username, email, password_hash, is_active, date_joined)
		VALUES ($1, $2, $3, TRUE, $4)
		RETURNING id
	`, req.Username, req.Email, hash, joined).Scan(&userID)
	if err != nil {
		if constraint, ok := db.UniqueViolation(err); ok {
			message := "A user with that username already exists."
			if constraint == db.ConstraintEmail {
				message = "A user with that email already exists."
			}
			middleware.ErrorResponse(w, http.StatusBadRequest, message)
			return
		}
		slog.Error("failed to insert user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	slog.Info("account created", "user_id", userID, "username", req.Username)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		ID:         userID,
		Username:   req.Username,
		Email:      req.Email,
		DateJoined: joined,
	})
}

// Login handles POST /auth/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	var (
		userID   int64
		hash     string
		isActive bool
	)
	err := h.db.QueryRow(`
		SELECT id, password_hash, is_active FROM users WHERE username = $1
	`, req.Username).Scan(&userID, &hash, &isActive)

	// One message for every failure mode - do not leak which field was wrong
	if err == sql.ErrNoRows || (err == nil && (!isActive || !auth.CheckPassword(hash, req.Password))) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Unable to log in with provided credentials.")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	token, err := auth.IssueToken(h.db, userID)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	slog.Info("login", "user_id", userID)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{Token: token})
}
