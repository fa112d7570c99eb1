package scrapers

import "context"

// Scraper fetches the upcoming concerts of a single venue.
type Scraper interface {
	Venue() string
	Scrape(ctx context.Context) ([]Concert, error)
}
