// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/openpoll/auth"
	"github.com/danielhkuo/openpoll/middleware"
)

// SessionCookie carries the anonymous voter session key.
const SessionCookie = "pollsession"

// Identity is the three-channel voter descriptor. Any field may be absent;
// each present field is an independent axis for duplicate detection.
type Identity struct {
	UserID     *int64
	IP         string
	SessionKey string
}

// ResolveIdentity builds the voter identity for a request. Never fails: an
// unauthenticated caller simply has no account channel. If the client has no
// session cookie yet, one is minted and attached to the response so later
// requests from the same client carry it.
func ResolveIdentity(conn *sql.DB, w http.ResponseWriter, r *http.Request) Identity {
	id := Identity{IP: middleware.GetClientIP(r)}

	if user, err := auth.UserFromRequest(conn, r); err == nil {
		id.UserID = &user.ID
	}

	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		id.SessionKey = c.Value
	} else {
		id.SessionKey = auth.NewSessionKey()
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookie,
			Value:    id.SessionKey,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	return id
}
