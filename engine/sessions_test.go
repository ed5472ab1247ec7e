// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"sync"
	"testing"
)

func TestSessionVotes(t *testing.T) {
	s := NewSessionVotes()

	if s.HasVoted("key", 1) {
		t.Error("Fresh set should have no flags")
	}

	s.Mark("key", 1)
	if !s.HasVoted("key", 1) {
		t.Error("Expected flag after Mark")
	}
	if s.HasVoted("key", 2) {
		t.Error("Flag must be scoped to the question")
	}
	if s.HasVoted("other", 1) {
		t.Error("Flag must be scoped to the session key")
	}
}

func TestSessionVotes_EmptyKey(t *testing.T) {
	s := NewSessionVotes()

	// An absent session channel never flags and never matches
	s.Mark("", 1)
	if s.HasVoted("", 1) {
		t.Error("Empty session key must never be flagged")
	}
}

func TestSessionVotes_Concurrent(t *testing.T) {
	s := NewSessionVotes()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Mark("key", int64(n))
			s.HasVoted("key", int64(n))
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		if !s.HasVoted("key", int64(i)) {
			t.Errorf("Missing flag for question %d", i)
		}
	}
}
