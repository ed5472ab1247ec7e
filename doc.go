// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the OpenPoll API server.

OpenPoll is an online polling backend. Registered users create polls with
an expiry date, attach questions and choices, and anyone, logged in or
not, votes on them. Each question accepts one vote per account, per
client IP, and per browser session, and results report per-choice counts
with a winner for every question.

# Starting the Server

The server reads configuration from the environment (a .env file is
honored) or CLI flags:

	DATABASE_URL=postgres://... go run main.go

Or with flags:

	go run main.go -p 8642 -d "postgres://..." -t postgres

# Configuration

Required settings:

  - DATABASE_URL (-d): Database connection string

Optional settings:

  - PORT (-p): Server port (default: 8642)
  - DATABASE_TYPE (-t): "postgres" (default) or "sqlite"

The sqlite backend needs no server and is what the test suite runs on.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (accounts, polls, questions, choices, voting, results)
  - engine: Vote admission, atomic recording, and tallying
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Passwords, API tokens, session keys
  - db: Connection setup, schema creation, constraint error mapping
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
