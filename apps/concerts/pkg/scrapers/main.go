package scrapers

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"concerts.xdoubleu.com/apps/concerts/pkg/visibility"
	"concerts.xdoubleu.com/internal/clock"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
	"github.com/xdoubleu/essentia/v2/pkg/threading"
)

// Default returns a scraper for every supported venue plus the manually
// entered concerts at extraPath.
func Default(logger *slog.Logger, c clock.Clock, extraPath string) []Scraper {
	opts := Options{Logger: logger, Clock: c, BaseURL: ""}

	return []Scraper{
		NewStorms(opts),
		NewPosten(opts),
		NewDexter(opts),
		NewKulturmaskinen(opts),
		NewLiveCulture(opts),
		NewOdeon(opts),
		NewGrandHotel(opts),
		NewTCBUnderground(opts),
		NewVaerket(opts),
		NewStudenterhuset(opts),
		NewExtra(opts, extraPath),
	}
}

// All runs every scraper concurrently and returns their concerts sorted.
// A venue that fails is logged and left out. Concerts that already took
// place are kept but logged.
func All(
	ctx context.Context,
	logger *slog.Logger,
	c clock.Clock,
	scrapers []Scraper,
) []Concert {
	concerts := []Concert{}
	for _, fromSource := range AllBySource(ctx, logger, c, scrapers) {
		concerts = append(concerts, fromSource...)
	}

	SortConcerts(concerts)

	return concerts
}

// AllBySource runs every scraper concurrently and returns the concerts of
// each scraper that succeeded, keyed by Scraper.Venue. Failed scrapers
// have no entry.
func AllBySource(
	ctx context.Context,
	logger *slog.Logger,
	c clock.Clock,
	scrapers []Scraper,
) map[string][]Concert {
	logger.Info("fetching concerts")

	//nolint:mnd //no magic number
	amountWorkers := (len(scrapers) / 2) + 1
	workerPool := threading.NewWorkerPool(logger, amountWorkers, max(1, len(scrapers)))

	mu := sync.Mutex{}
	bySource := map[string][]Concert{}
	for _, scraper := range scrapers {
		workerPool.EnqueueWork(func(_ context.Context, logger *slog.Logger) error {
			logger.Debug(fmt.Sprintf("... from %s", scraper.Venue()))

			fromVenue, err := scraper.Scrape(ctx)
			if err != nil {
				logger.Error(
					fmt.Sprintf("failed to scrape %s", scraper.Venue()),
					logging.ErrAttr(err),
				)
				return nil
			}

			mu.Lock()
			bySource[scraper.Venue()] = append(bySource[scraper.Venue()], fromVenue...)
			mu.Unlock()

			return nil
		})
	}

	workerPool.WaitUntilDone()

	now := c.Now()
	total := 0
	for _, concerts := range bySource {
		total += len(concerts)
		for _, concert := range concerts {
			if visibility.IsPast(concert.Date, now) {
				logger.Warn(fmt.Sprintf("%s is an outdated concert", concert.Title))
			}
		}
	}

	logger.Info(fmt.Sprintf("fetched all concerts (%d)", total))

	return bySource
}
