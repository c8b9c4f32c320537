package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"cinegraph-backend/application/ports"
	"cinegraph-backend/domain/catalog"
	"cinegraph-backend/domain/preference"
	"cinegraph-backend/domain/recommend"
	"cinegraph-backend/pkg/observability"
)

// RecommendationService runs the scoring pipeline: affinity extraction,
// candidate scoring, ranking with fallback, and the homepage blend. Each
// call works against one catalog snapshot; nothing is cached between
// requests.
type RecommendationService struct {
	catalogRepo ports.CatalogRepository
	prefRepo    ports.PreferenceRepository
	tracer      *observability.Tracer
	logger      *zap.Logger
	now         func() time.Time
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(
	catalogRepo ports.CatalogRepository,
	prefRepo ports.PreferenceRepository,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *RecommendationService {
	return &RecommendationService{
		catalogRepo: catalogRepo,
		prefRepo:    prefRepo,
		tracer:      tracer,
		logger:      logger,
		now:         time.Now,
	}
}

// snapshot is the per-request view of the catalog split by judgment
type snapshot struct {
	liked      []catalog.Movie
	candidates []catalog.Movie
}

// loadSnapshot reads the catalog once and partitions it against the user's
// judged set. An unknown user simply has no judged movies; read paths never
// hard-fail on identity.
func (s *RecommendationService) loadSnapshot(ctx context.Context, username catalog.Username) (*snapshot, error) {
	var movies []catalog.Movie
	err := s.tracer.TraceFunction(ctx, "catalog.snapshot", func(ctx context.Context) error {
		var err error
		movies, err = s.catalogRepo.GetAllMovies(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	states, err := s.prefRepo.ListStates(ctx, username)
	if err != nil {
		return nil, err
	}

	snap := &snapshot{
		liked:      make([]catalog.Movie, 0, len(states)),
		candidates: make([]catalog.Movie, 0, len(movies)),
	}
	for _, movie := range movies {
		switch states[movie.Name] {
		case preference.StateLiked:
			snap.liked = append(snap.liked, movie)
		case preference.StateDisliked:
			// judged, never a candidate
		default:
			snap.candidates = append(snap.candidates, movie)
		}
	}
	return snap, nil
}

// GetRecommendations returns the ranked personalized list for a user, or
// the popularity fallback when no candidate carries an affinity signal.
func (s *RecommendationService) GetRecommendations(ctx context.Context, username catalog.Username) (recommend.RankedResult, error) {
	snap, err := s.loadSnapshot(ctx, username)
	if err != nil {
		return recommend.RankedResult{}, err
	}

	profile := recommend.BuildAffinityProfile(snap.liked)
	currentYear := s.now().Year()

	var result recommend.RankedResult
	_ = s.tracer.TraceFunction(ctx, "recommend.rank", func(ctx context.Context) error {
		result = recommend.RankWithFallback(snap.candidates, profile, currentYear)
		return nil
	})

	s.logger.Debug("recommendation pass complete",
		zap.String("username", username.String()),
		zap.Int("liked", profile.LikedCount),
		zap.Int("candidates", len(snap.candidates)),
		zap.Int("returned", len(result.Movies)),
		zap.String("provenance", string(result.Provenance)),
	)

	return result, nil
}

// GetHomepageFeed returns the blended feed: the personalized list merged
// with the popularity list, deduplicated with the personalized entry
// winning.
func (s *RecommendationService) GetHomepageFeed(ctx context.Context, username catalog.Username) (recommend.Feed, error) {
	snap, err := s.loadSnapshot(ctx, username)
	if err != nil {
		return recommend.Feed{}, err
	}

	profile := recommend.BuildAffinityProfile(snap.liked)
	currentYear := s.now().Year()

	var feed recommend.Feed
	_ = s.tracer.TraceFunction(ctx, "recommend.blend", func(ctx context.Context) error {
		personalized := recommend.RankWithFallback(snap.candidates, profile, currentYear)

		popular := recommend.PopularityOrder(snap.candidates, recommend.PopularityLimit)
		popularScored := make([]recommend.ScoredMovie, 0, len(popular))
		for _, movie := range popular {
			popularScored = append(popularScored, recommend.ScoredMovie{Movie: movie})
		}

		feed = recommend.BlendFeed(personalized, popularScored)
		return nil
	})

	s.logger.Debug("homepage blend complete",
		zap.String("username", username.String()),
		zap.Int("personalized", feed.Stats.PersonalizedCount),
		zap.Int("popular", feed.Stats.PopularCount),
	)

	return feed, nil
}

// WithClock overrides the time source; used by tests to pin the recency
// window.
func (s *RecommendationService) WithClock(now func() time.Time) *RecommendationService {
	s.now = now
	return s
}
