//nolint:exhaustruct,revive //ignore
package mocks

import (
	"context"
	"time"

	"concerts.xdoubleu.com/apps/concerts/pkg/scrapers"
)

type MockScraper struct {
	now time.Time
}

func NewMockScraper(now time.Time) scrapers.Scraper {
	return MockScraper{now: now}
}

func (scraper MockScraper) Venue() string {
	return "Mock"
}

func (scraper MockScraper) Scrape(ctx context.Context) ([]scrapers.Concert, error) {
	today := time.Date(
		scraper.now.Year(),
		scraper.now.Month(),
		scraper.now.Day(),
		0,
		0,
		0,
		0,
		scraper.now.Location(),
	)
	price := 250.0

	return []scrapers.Concert{
		{
			Title: "Jazz Night",
			Venue: scraper.Venue(),
			Date:  today.AddDate(0, 0, 3).Add(20 * time.Hour),
			Price: &price,
			URL:   "https://example.com/jazz-night",
		},
		{
			Title:   "Rock Fest",
			Venue:   scraper.Venue(),
			Date:    today.AddDate(0, 0, 10),
			SoldOut: true,
			URL:     "https://example.com/rock-fest",
		},
		{
			Title: "Old Jazz Classics",
			Venue: scraper.Venue(),
			Date:  today.AddDate(0, 0, -2).Add(19 * time.Hour),
			URL:   "https://example.com/old-jazz",
		},
	}, nil
}
