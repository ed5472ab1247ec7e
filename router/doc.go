// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the OpenPoll API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db)

# Endpoints

Health:

	GET /health

Accounts:

	POST /auth/register - Create account
	POST /auth/login    - Obtain API token

Poll management (token required for mutation, owner only):

	POST   /polls      - Create poll
	GET    /polls      - List polls
	GET    /polls/{id} - Get poll with questions and choices
	PUT    /polls/{id} - Update title and expiry
	DELETE /polls/{id} - Delete poll and everything under it

	POST   /questions      - Add question to a poll
	GET    /questions/{id} - Get question with choices
	PUT    /questions/{id} - Update question text
	DELETE /questions/{id} - Delete question

	POST   /choices      - Add choice to a question
	GET    /choices/{id} - Get choice
	PUT    /choices/{id} - Update choice text
	DELETE /choices/{id} - Delete choice

Voting (public, anonymous allowed):

	POST /questions/{id}/vote - Vote on a question
	POST /polls/{id}/vote     - Vote via the poll (choice must be in the poll)

Results (public):

	GET /polls/{id}/results - Per-question counts and winners

# Handler Initialization

The router creates handler instances with dependency injection. A single
engine.Engine is shared by the vote and results handlers so they see the
same session flag set:

	eng := engine.New(db)
	voteHandler := handlers.NewVoteHandler(db, eng)
	resultsHandler := handlers.NewResultsHandler(eng)
*/
package router
