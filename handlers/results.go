// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/openpoll/engine"
	"github.com/danielhkuo/openpoll/middleware"
)

type ResultsHandler struct {
	engine *engine.Engine
}

func NewResultsHandler(eng *engine.Engine) *ResultsHandler {
	return &ResultsHandler{engine: eng}
}

// GetResults handles GET /polls/{id}/results
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	pollID, ok := pathID(r)
	if !ok {
		middleware.DetailResponse(w, http.StatusNotFound, "Poll not found.")
		return
	}

	results, err := h.engine.Tally(pollID)
	if err != nil {
		if errors.Is(err, engine.ErrPollNotFound) {
			middleware.DetailResponse(w, http.StatusNotFound, "Poll not found.")
			return
		}
		slog.Error("failed to tally poll", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to tally poll")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}
