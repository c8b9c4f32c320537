package handlers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"cinegraph-backend/application/queries"
	querybus "cinegraph-backend/application/queries/bus"
	"cinegraph-backend/pkg/common"
)

// RecommendationHandler serves the personalized ranking and homepage feed
type RecommendationHandler struct {
	queryBus *querybus.QueryBus
	logger   *zap.Logger
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(queryBus *querybus.QueryBus, logger *zap.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		queryBus: queryBus,
		logger:   logger,
	}
}

// GetRecommendations handles GET /recommendations/{username}
func (h *RecommendationHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	username := pathParam(r, "username")

	result, err := h.queryBus.Ask(r.Context(), queries.GetRecommendationsQuery{Username: username})
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// GetHomepageFeed handles GET /homepage/{username}
func (h *RecommendationHandler) GetHomepageFeed(w http.ResponseWriter, r *http.Request) {
	username := pathParam(r, "username")

	result, err := h.queryBus.Ask(r.Context(), queries.GetHomepageFeedQuery{Username: username})
	if err != nil {
		respondAppError(w, h.logger, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// pathParam returns a chi URL parameter with percent-encoding undone;
// movie names carry spaces and punctuation.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return decoded
}
