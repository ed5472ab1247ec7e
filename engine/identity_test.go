// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/openpoll/testutil"
)

func TestResolveIdentity_MintsSession(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	req := httptest.NewRequest("POST", "/questions/1/vote", nil)
	req.RemoteAddr = "192.0.2.10:4242"
	w := httptest.NewRecorder()

	id := ResolveIdentity(conn, w, req)

	if id.IP != "192.0.2.10" {
		t.Errorf("IP = %q, want 192.0.2.10", id.IP)
	}
	if id.UserID != nil {
		t.Error("Anonymous request must have no account channel")
	}
	if id.SessionKey == "" {
		t.Fatal("Expected a minted session key")
	}

	// The key must be attached to the response for the client to replay
	cookies := w.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == SessionCookie && c.Value == id.SessionKey {
			found = true
		}
	}
	if !found {
		t.Error("Minted session key was not set as a cookie")
	}
}

func TestResolveIdentity_ReusesCookie(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	req := httptest.NewRequest("POST", "/questions/1/vote", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "existing-session"})
	w := httptest.NewRecorder()

	id := ResolveIdentity(conn, w, req)

	if id.SessionKey != "existing-session" {
		t.Errorf("SessionKey = %q, want existing-session", id.SessionKey)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Error("No new cookie should be set when one exists")
	}
}

func TestResolveIdentity_AuthenticatedCaller(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	defer conn.Close()

	userID, token := testutil.CreateTestUser(t, conn, "alice")

	req := httptest.NewRequest("POST", "/questions/1/vote", nil)
	req.Header.Set("Authorization", "Token "+token)
	req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	w := httptest.NewRecorder()

	id := ResolveIdentity(conn, w, req)

	if id.UserID == nil || *id.UserID != userID {
		t.Errorf("UserID = %v, want %d", id.UserID, userID)
	}
	if id.IP != "203.0.113.5" {
		t.Errorf("IP = %q, want first forwarded entry", id.IP)
	}
}
