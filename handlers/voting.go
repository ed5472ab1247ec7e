// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/openpoll/engine"
	"github.com/danielhkuo/openpoll/middleware"
	"github.com/danielhkuo/openpoll/models"
)

type VoteHandler struct {
	db     *sql.DB
	engine *engine.Engine
}

func NewVoteHandler(conn *sql.DB, eng *engine.Engine) *VoteHandler {
	return &VoteHandler{db: conn, engine: eng}
}

// VoteQuestion handles POST /questions/{id}/vote
func (h *VoteHandler) VoteQuestion(w http.ResponseWriter, r *http.Request) {
	questionID, ok := pathID(r)
	if !ok {
		middleware.DetailResponse(w, http.StatusNotFound, "Question not found.")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Choice == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "choice is required")
		return
	}

	id := engine.ResolveIdentity(h.db, w, r)
	h.vote(w, questionID, req.Choice, id)
}

// VotePoll handles POST /polls/{id}/vote
// The choice alone names the question; the poll id in the path just has
// to agree with where the choice lives.
func (h *VoteHandler) VotePoll(w http.ResponseWriter, r *http.Request) {
	pollID, ok := pathID(r)
	if !ok {
		middleware.DetailResponse(w, http.StatusNotFound, "Poll not found.")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Choice == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "choice is required")
		return
	}

	questionID, err := h.engine.QuestionInPoll(pollID, req.Choice)
	if err != nil {
		respondVoteError(w, err)
		return
	}

	id := engine.ResolveIdentity(h.db, w, r)
	h.vote(w, questionID, req.Choice, id)
}

func (h *VoteHandler) vote(w http.ResponseWriter, questionID, choiceID int64, id engine.Identity) {
	voteID, err := h.engine.Record(questionID, choiceID, id)
	if err != nil {
		respondVoteError(w, err)
		return
	}

	slog.Info("vote accepted", "vote_id", voteID, "question_id", questionID, "choice_id", choiceID)

	middleware.JSONResponse(w, http.StatusCreated, models.VoteResponse{
		Message: "Vote recorded successfully.",
	})
}

// respondVoteError maps engine rejections onto the API's error bodies.
func respondVoteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrPollNotFound):
		middleware.DetailResponse(w, http.StatusNotFound, "Poll not found.")
	case errors.Is(err, engine.ErrQuestionNotFound):
		middleware.DetailResponse(w, http.StatusNotFound, "Question not found.")
	case errors.Is(err, engine.ErrChoiceNotFound):
		middleware.DetailResponse(w, http.StatusNotFound, "Choice not found.")
	case errors.Is(err, engine.ErrPollExpired):
		middleware.ErrorResponse(w, http.StatusBadRequest, "This poll has expired.")
	case errors.Is(err, engine.ErrDuplicateAccount):
		middleware.ErrorResponse(w, http.StatusBadRequest, "You have already voted in this poll.")
	case errors.Is(err, engine.ErrDuplicateIP):
		middleware.ErrorResponse(w, http.StatusBadRequest, "You have already voted from this IP.")
	case errors.Is(err, engine.ErrDuplicateSession):
		middleware.ErrorResponse(w, http.StatusBadRequest, "You have already voted in this session.")
	default:
		slog.Error("vote failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
	}
}
