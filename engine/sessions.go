// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import "sync"

type sessionVote struct {
	key        string
	questionID int64
}

// SessionVotes is the fast-path flag set for sessions that already voted on
// a question. Advisory only: a hit saves a store round trip, but a miss
// proves nothing and absence of a flag never authorizes a vote - the
// store-level unique constraint does.
type SessionVotes struct {
	mu    sync.RWMutex
	voted map[sessionVote]struct{}
}

func NewSessionVotes() *SessionVotes {
	return &SessionVotes{
		voted: make(map[sessionVote]struct{}),
	}
}

// Mark flags the session as having voted on the question.
func (s *SessionVotes) Mark(key string, questionID int64) {
	if key == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voted[sessionVote{key, questionID}] = struct{}{}
}

// HasVoted reports whether the session is flagged for the question.
func (s *SessionVotes) HasVoted(key string, questionID int64) bool {
	if key == "" {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.voted[sessionVote{key, questionID}]
	return ok
}
