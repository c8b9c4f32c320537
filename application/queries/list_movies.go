package queries

// ListMoviesQuery requests catalog entries, optionally filtered
type ListMoviesQuery struct {
	Genre  string `json:"genre,omitempty"`
	Search string `json:"search,omitempty"`
}

// Validate validates the query
func (q ListMoviesQuery) Validate() error {
	return nil
}

// ListMoviesResult is the catalog listing
type ListMoviesResult struct {
	Movies []MovieResult `json:"movies"`
	Total  int           `json:"total"`
}

// ListGenresQuery requests the distinct genres in the catalog
type ListGenresQuery struct{}

// Validate validates the query
func (q ListGenresQuery) Validate() error {
	return nil
}

// ListGenresResult is the distinct genre listing
type ListGenresResult struct {
	Genres []string `json:"genres"`
}
