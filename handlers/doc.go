// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the OpenPoll API.

# Handler Types

Each handler is a struct holding its dependencies:

  - AccountHandler: Registration and login
  - PollHandler: Poll CRUD
  - QuestionHandler: Question CRUD
  - ChoiceHandler: Choice CRUD
  - VoteHandler: Ballot submission
  - ResultsHandler: Tally retrieval

Handlers are created via constructor functions:

	pollHandler := handlers.NewPollHandler(db)
	voteHandler := handlers.NewVoteHandler(db, eng)

# Authentication

Mutating poll, question, and choice operations require a token:

	POST /auth/register → Register (returns id, username)
	POST /auth/login    → Login (returns token)

Clients send the token in the Authorization header, either
"Token <key>" or "Bearer <key>". Only a poll's creator may modify
the poll or anything under it.

# Poll Structure

A poll owns questions; a question owns choices:

	POST /polls     → CreatePoll (expiry must be in the future)
	POST /questions → CreateQuestion (names its poll)
	POST /choices   → CreateChoice (names its question)

Deleting a poll cascades through its questions, choices, and votes.

# Voting Flow

Voting is open to anonymous callers. Two routes submit the same ballot:

	POST /questions/{id}/vote → VoteQuestion
	POST /polls/{id}/vote     → VotePoll (choice must live in the poll)

The engine package admits or rejects each ballot; rejections come
back as 400s with the reason ("This poll has expired.", duplicate
account, IP, or session) and unknown targets as 404s.

# Results

	GET /polls/{id}/results → GetResults

Returns per-question counts ordered best-first with a winner for
each question, computed by engine.Tally.
*/
package handlers
