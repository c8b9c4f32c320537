package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"cinegraph-backend/application/queries"
	querybus "cinegraph-backend/application/queries/bus"
	"cinegraph-backend/pkg/common"
)

// MovieHandler serves catalog listings
type MovieHandler struct {
	queryBus *querybus.QueryBus
	logger   *zap.Logger
}

// NewMovieHandler creates a new movie handler
func NewMovieHandler(queryBus *querybus.QueryBus, logger *zap.Logger) *MovieHandler {
	return &MovieHandler{
		queryBus: queryBus,
		logger:   logger,
	}
}

// ListMovies handles GET /movies?genre=&search=
func (h *MovieHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.ListMoviesQuery{
		Genre:  r.URL.Query().Get("genre"),
		Search: r.URL.Query().Get("search"),
	})
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// ListGenres handles GET /genres
func (h *MovieHandler) ListGenres(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.ListGenresQuery{})
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
