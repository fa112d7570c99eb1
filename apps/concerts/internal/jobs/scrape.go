package jobs

import (
	"context"
	"log/slog"
	"time"

	"concerts.xdoubleu.com/apps/concerts/internal/services"
	"github.com/xhit/go-str2duration/v2"
)

const ScrapeJobID = "scrape"

//nolint:mnd //no magic number
var defaultInterval = 12 * time.Hour

type ScrapeJob struct {
	concertService *services.ConcertService
	interval       time.Duration
}

// NewScrapeJob accepts intervals like "12h" or "1d". Invalid intervals
// fall back to twice a day.
func NewScrapeJob(
	logger *slog.Logger,
	concertService *services.ConcertService,
	interval string,
) ScrapeJob {
	duration, err := str2duration.ParseDuration(interval)
	if err != nil || duration <= 0 {
		logger.Warn("invalid scrape interval, using default", slog.String("interval", interval))
		duration = defaultInterval
	}

	return ScrapeJob{
		concertService: concertService,
		interval:       duration,
	}
}

func (j ScrapeJob) ID() string {
	return ScrapeJobID
}

func (j ScrapeJob) RunEvery() time.Duration {
	return j.interval
}

func (j ScrapeJob) Run(ctx context.Context, logger *slog.Logger) error {
	logger.Debug("importing concerts")
	return j.concertService.ImportAll(ctx)
}
