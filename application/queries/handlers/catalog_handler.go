package handlers

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"cinegraph-backend/application/ports"
	"cinegraph-backend/application/queries"
	"cinegraph-backend/application/queries/bus"
)

// ListMoviesHandler serves catalog listings with optional genre and
// substring filters
type ListMoviesHandler struct {
	catalogRepo ports.CatalogRepository
	logger      *zap.Logger
}

// NewListMoviesHandler creates a new handler instance
func NewListMoviesHandler(catalogRepo ports.CatalogRepository, logger *zap.Logger) *ListMoviesHandler {
	return &ListMoviesHandler{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// Handle executes the list movies query
func (h *ListMoviesHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	q, ok := query.(queries.ListMoviesQuery)
	if !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	movies, err := h.catalogRepo.GetAllMovies(ctx)
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(q.Search)
	result := &queries.ListMoviesResult{
		Movies: make([]queries.MovieResult, 0, len(movies)),
	}
	for _, movie := range movies {
		if q.Genre != "" && !strings.EqualFold(movie.Genre, q.Genre) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(movie.Name), search) {
			continue
		}
		result.Movies = append(result.Movies, queries.MovieResult{
			Name:     movie.Name,
			Genre:    movie.Genre,
			Director: movie.Director,
			Company:  movie.Company,
			Star:     movie.Star,
			Year:     movie.Year,
			Quality:  movie.Quality,
			Runtime:  movie.Runtime,
		})
	}
	result.Total = len(result.Movies)

	return result, nil
}

// ListGenresHandler serves the distinct genre listing
type ListGenresHandler struct {
	catalogRepo ports.CatalogRepository
	logger      *zap.Logger
}

// NewListGenresHandler creates a new handler instance
func NewListGenresHandler(catalogRepo ports.CatalogRepository, logger *zap.Logger) *ListGenresHandler {
	return &ListGenresHandler{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// Handle executes the list genres query
func (h *ListGenresHandler) Handle(ctx context.Context, query bus.Query) (interface{}, error) {
	if _, ok := query.(queries.ListGenresQuery); !ok {
		return nil, fmt.Errorf("unexpected query type %T", query)
	}

	genres, err := h.catalogRepo.GetGenres(ctx)
	if err != nil {
		return nil, err
	}

	return &queries.ListGenresResult{Genres: genres}, nil
}
