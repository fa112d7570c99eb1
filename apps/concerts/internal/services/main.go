package services

import (
	"log/slog"
	"net/url"

	"concerts.xdoubleu.com/apps/concerts/internal/repositories"
	"concerts.xdoubleu.com/apps/concerts/pkg/scrapers"
	"concerts.xdoubleu.com/internal/clock"
	"concerts.xdoubleu.com/internal/config"
	"github.com/xdoubleu/essentia/v2/pkg/threading"
)

// ImagesPrefix is the path thumbnails are served under.
const ImagesPrefix = "/concerts/images/"

type Services struct {
	Concerts   *ConcertService
	Thumbnails *ThumbnailService
	Calendar   *CalendarService
	WebSocket  *WebSocketService
}

func New(
	logger *slog.Logger,
	config config.Config,
	c clock.Clock,
	jobQueue *threading.JobQueue,
	repositories *repositories.Repositories,
	concertScrapers []scrapers.Scraper,
) *Services {
	thumbnails := NewThumbnailService(logger, config.ImagesDir, config.ThumbnailSize)
	concerts := &ConcertService{
		logger:       logger,
		clock:        c,
		location:     config.Location(),
		imagesPrefix: ImagesPrefix,
		scrapers:     concertScrapers,
		concerts:     repositories.Concerts,
		thumbnails:   thumbnails,
	}
	calendar := &CalendarService{
		domain:   domain(config.WebURL),
		concerts: concerts,
	}

	return &Services{
		Concerts:   concerts,
		Thumbnails: thumbnails,
		Calendar:   calendar,
		WebSocket:  NewWebSocketService(logger, []string{config.WebURL}, jobQueue),
	}
}

func domain(webURL string) string {
	parsed, err := url.Parse(webURL)
	if err != nil || parsed.Hostname() == "" {
		return "localhost"
	}
	return parsed.Hostname()
}
