package catalog

import (
	pkgerrors "cinegraph-backend/pkg/errors"
)

// Movie is a catalog entry. Movies are owned by the ingest subsystem and are
// immutable here; the engine only reads their attributes for scoring.
type Movie struct {
	Name     string   `json:"name"`
	Genre    string   `json:"genre"`
	Director string   `json:"director"`
	Company  string   `json:"company"`
	Star     string   `json:"star"`
	Year     int      `json:"year"`
	Quality  *float64 `json:"quality,omitempty"`
	Runtime  int      `json:"runtime,omitempty"`
}

// QualityOrZero returns the quality score, treating a missing value as 0.
func (m Movie) QualityOrZero() float64 {
	if m.Quality == nil {
		return 0
	}
	return *m.Quality
}

// HasQuality reports whether the catalog recorded a quality score
func (m Movie) HasQuality() bool {
	return m.Quality != nil
}

// IsRecent reports whether the movie was released within the last decade
// relative to the given year.
func (m Movie) IsRecent(currentYear int) bool {
	return m.Year >= currentYear-10
}

// Validate checks catalog entry invariants
func (m Movie) Validate() error {
	if m.Name == "" {
		return pkgerrors.NewValidationError("movie name cannot be empty")
	}
	if m.Quality != nil && (*m.Quality < 0 || *m.Quality > 10) {
		return pkgerrors.NewValidationError("movie quality must be between 0 and 10")
	}
	return nil
}

// QualityValue returns a pointer to v, for building catalog entries in one line.
func QualityValue(v float64) *float64 {
	return &v
}
