package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"cinegraph-backend/application/queries"
	"cinegraph-backend/application/queries/bus"
	"cinegraph-backend/application/services"
	"cinegraph-backend/domain/catalog"
	"cinegraph-backend/domain/recommend"
)

// GetRecommendationsHandler handles personalized ranking queries
type GetRecommendationsHandler struct {
	recService *services.RecommendationService
	logger     *zap.Logger
}

// NewGetRecommendationsHandler creates a new handler instance
func NewGetRecommendationsHandler(recService *services.RecommendationService, logger *zap.Logger) *GetRecommendationsHandler {
	return &GetRecommendationsHandler{
		recService: recService,
		logger:     logger,
	}
}

// Handle executes the recommendations query
func (h *GetRecommendationsHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetRecommendationsQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	username, err := catalog.NewUsername(q.Username)
	if err != nil {
		return nil, err
	}

	result, err := h.recService.GetRecommendations(ctx, username)
	if err != nil {
		return nil, err
	}

	out := &queries.GetRecommendationsResult{
		Movies:     make([]queries.MovieResult, 0, len(result.Movies)),
		Provenance: string(result.Provenance),
	}
	for _, sm := range result.Movies {
		out.Movies = append(out.Movies, toMovieResult(sm))
	}
	return out, nil
}

// GetHomepageFeedHandler handles blended homepage queries
type GetHomepageFeedHandler struct {
	recService *services.RecommendationService
	logger     *zap.Logger
}

// NewGetHomepageFeedHandler creates a new handler instance
func NewGetHomepageFeedHandler(recService *services.RecommendationService, logger *zap.Logger) *GetHomepageFeedHandler {
	return &GetHomepageFeedHandler{
		recService: recService,
		logger:     logger,
	}
}

// Handle executes the homepage feed query
func (h *GetHomepageFeedHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.GetHomepageFeedQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	username, err := catalog.NewUsername(q.Username)
	if err != nil {
		return nil, err
	}

	feed, err := h.recService.GetHomepageFeed(ctx, username)
	if err != nil {
		return nil, err
	}

	out := &queries.GetHomepageFeedResult{
		Movies: make([]queries.FeedMovieResult, 0, len(feed.Entries)),
		Stats:  feed.Stats,
	}
	for _, entry := range feed.Entries {
		out.Movies = append(out.Movies, queries.FeedMovieResult{
			MovieResult: toMovieResult(entry.Movie),
			Provenance:  string(entry.Provenance),
		})
	}
	return out, nil
}

func toMovieResult(sm recommend.ScoredMovie) queries.MovieResult {
	return queries.MovieResult{
		Name:     sm.Movie.Name,
		Genre:    sm.Movie.Genre,
		Director: sm.Movie.Director,
		Company:  sm.Movie.Company,
		Star:     sm.Movie.Star,
		Year:     sm.Movie.Year,
		Quality:  sm.Movie.Quality,
		Runtime:  sm.Movie.Runtime,
		Score:    sm.Score,
	}
}
