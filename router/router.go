// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/openpoll/engine"
	"github.com/danielhkuo/openpoll/handlers"
	"github.com/danielhkuo/openpoll/middleware"
)

func NewRouter(db *sql.DB) *http.ServeMux {
	mux := http.NewServeMux()

	eng := engine.New(db)

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(db)
	pollHandler := handlers.NewPollHandler(db)
	questionHandler := handlers.NewQuestionHandler(db)
	choiceHandler := handlers.NewChoiceHandler(db)
	voteHandler := handlers.NewVoteHandler(db, eng)
	resultsHandler := handlers.NewResultsHandler(eng)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts
	mux.HandleFunc("POST /auth/register", middleware.WithLogging(accountHandler.Register))
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(accountHandler.Login))

	// Poll management (owner operations)
	mux.HandleFunc("POST /polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /polls", middleware.WithLogging(pollHandler.ListPolls))
	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(pollHandler.GetPoll))
	mux.HandleFunc("PUT /polls/{id}", middleware.WithLogging(pollHandler.UpdatePoll))
	mux.HandleFunc("DELETE /polls/{id}", middleware.WithLogging(pollHandler.DeletePoll))

	mux.HandleFunc("POST /questions", middleware.WithLogging(questionHandler.CreateQuestion))
	mux.HandleFunc("GET /questions/{id}", middleware.WithLogging(questionHandler.GetQuestion))
	mux.HandleFunc("PUT /questions/{id}", middleware.WithLogging(questionHandler.UpdateQuestion))
	mux.HandleFunc("DELETE /questions/{id}", middleware.WithLogging(questionHandler.DeleteQuestion))

	mux.HandleFunc("POST /choices", middleware.WithLogging(choiceHandler.CreateChoice))
	mux.HandleFunc("GET /choices/{id}", middleware.WithLogging(choiceHandler.GetChoice))
	mux.HandleFunc("PUT /choices/{id}", middleware.WithLogging(choiceHandler.UpdateChoice))
	mux.HandleFunc("DELETE /choices/{id}", middleware.WithLogging(choiceHandler.DeleteChoice))

	// Voting (public)
	mux.HandleFunc("POST /questions/{id}/vote", middleware.WithLogging(voteHandler.VoteQuestion))
	mux.HandleFunc("POST /polls/{id}/vote", middleware.WithLogging(voteHandler.VotePoll))

	// Results retrieval (public)
	mux.HandleFunc("GET /polls/{id}/results", middleware.WithLogging(resultsHandler.GetResults))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("openpoll API v1"))
	})

	return mux
}
