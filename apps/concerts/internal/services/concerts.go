package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"concerts.xdoubleu.com/apps/concerts/internal/dtos"
	"concerts.xdoubleu.com/apps/concerts/internal/models"
	"concerts.xdoubleu.com/apps/concerts/internal/repositories"
	"concerts.xdoubleu.com/apps/concerts/pkg/scrapers"
	"concerts.xdoubleu.com/apps/concerts/pkg/visibility"
	"concerts.xdoubleu.com/internal/clock"
)

// Concerts older than this are removed after every import.
const retentionDays = 30

type ConcertService struct {
	logger       *slog.Logger
	clock        clock.Clock
	location     *time.Location
	imagesPrefix string
	scrapers     []scrapers.Scraper
	concerts     *repositories.ConcertRepository
	thumbnails   *ThumbnailService
}

// ImportAll scrapes every venue and makes the stored upcoming program of
// each venue that succeeded match what it returned, with fresh thumbnails.
// Concerts that are long gone are removed.
func (service *ConcertService) ImportAll(ctx context.Context) error {
	bySource := scrapers.AllBySource(ctx, service.logger, service.clock, service.scrapers)

	sources := make([]string, 0, len(bySource))
	scraped := []scrapers.Concert{}
	concerts := []models.Concert{}
	for source, fromSource := range bySource {
		sources = append(sources, source)
		scraped = append(scraped, fromSource...)
		for _, concert := range fromSource {
			concerts = append(concerts, models.Concert{
				ID:        "",
				Source:    source,
				Thumbnail: "",
				Concert:   concert,
			})
		}
	}

	names := service.thumbnails.MakeThumbnails(ctx, scraped)
	for i := range concerts {
		concerts[i].Thumbnail = names[i]
	}

	today := visibility.MidnightToday(service.clock.Now())

	err := service.concerts.ReplaceConcerts(ctx, sources, today, concerts)
	if err != nil {
		return err
	}

	deleted, err := service.concerts.DeleteConcertsBefore(
		ctx,
		today.AddDate(0, 0, -retentionDays),
	)
	if err != nil {
		return err
	}

	service.logger.Info(
		fmt.Sprintf("imported %d concerts, removed %d old ones", len(concerts), deleted),
	)

	return nil
}

func (service *ConcertService) GetAll(ctx context.Context) ([]models.Concert, error) {
	concerts, err := service.concerts.GetAllConcerts(ctx)
	if err != nil {
		return nil, err
	}

	return service.localize(concerts), nil
}

func (service *ConcertService) GetUpcoming(ctx context.Context) ([]models.Concert, error) {
	from := visibility.MidnightToday(service.clock.Now())

	concerts, err := service.concerts.GetUpcomingConcerts(ctx, from)
	if err != nil {
		return nil, err
	}

	return service.localize(concerts), nil
}

// Cards returns every stored concert as a card with both filters applied:
// cards not matching the text from source are hidden, and so is every
// concert that took place before today.
func (service *ConcertService) Cards(
	ctx context.Context,
	source visibility.TextSource,
) ([]*models.ConcertCard, string, error) {
	concerts, err := service.GetAll(ctx)
	if err != nil {
		return nil, "", err
	}

	cards := models.NewConcertCards(concerts, service.imagesPrefix)

	text, err := visibility.Apply(cards, source)
	if err != nil {
		return nil, "", err
	}

	visibility.HidePast(cards, service.clock.Now())

	return cards, text, nil
}

// Search splits the ids of all stored concerts by their visibility for text.
func (service *ConcertService) Search(
	ctx context.Context,
	text string,
) (dtos.SearchResultDto, error) {
	result := dtos.SearchResultDto{
		Visible: []string{},
		Hidden:  []string{},
	}

	cards, _, err := service.Cards(ctx, visibility.StaticText(text))
	if err != nil {
		return result, err
	}

	for _, card := range cards {
		if card.Hidden {
			result.Hidden = append(result.Hidden, card.ID)
		} else {
			result.Visible = append(result.Visible, card.ID)
		}
	}

	return result, nil
}

func (service *ConcertService) localize(concerts []models.Concert) []models.Concert {
	for i := range concerts {
		concerts[i].Date = concerts[i].Date.In(service.location)
	}
	return concerts
}
