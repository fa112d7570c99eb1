package scrapers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gocolly/colly/v2"
)

type tcbUnderground struct {
	base
	ticketAPIURL string
}

func NewTCBUnderground(opts Options) Scraper {
	return &tcbUnderground{
		base:         newBase(opts, "TCB Underground", "https://tcbunderground.com"),
		ticketAPIURL: opts.urlOr("https://checkoutapi.ticketbutler.io"),
	}
}

type ticketButlerEvent struct {
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	Images    []struct {
		Image string `json:"image"`
	} `json:"images"`
	TicketTypes []struct {
		Price float64 `json:"price"`
	} `json:"ticket_types"`
}

func (s *tcbUnderground) Scrape(ctx context.Context) ([]Concert, error) {
	urls := []string{}
	err := s.visit(ctx, s.baseURL+"/arrangementer", "tbody tr", func(h *colly.HTMLElement) {
		if url := h.ChildAttr("a", "href"); url != "" {
			urls = append(urls, url)
		}
	})
	if err != nil {
		return nil, err
	}

	concerts := []Concert{}
	var errs []error
	for _, url := range urls {
		// price and image live on the ticket page, which needs JS,
		// so the data is read from its API instead
		concert, errIn := s.fetchEvent(ctx, url)
		if errIn != nil {
			errs = append(errs, errIn)
			continue
		}

		concerts = append(concerts, *concert)
	}

	return concerts, errors.Join(errs...)
}

func (s *tcbUnderground) fetchEvent(ctx context.Context, url string) (*Concert, error) {
	parts := strings.Split(strings.TrimSuffix(url, "/"), "/")
	name := parts[len(parts)-1]

	headers := http.Header{}
	headers.Set("Origin", "https://tcbunderground.ticketbutler.io")
	headers.Set("Referer", "https://tcbunderground.ticketbutler.io/")

	var info ticketButlerEvent
	err := s.fetchJSON(
		ctx,
		http.MethodGet,
		fmt.Sprintf("%s/api/events/title/%s/", s.ticketAPIURL, name),
		nil,
		headers,
		&info,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	date, err := parseISO(info.StartDate, s.location())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", info.Title, err)
	}

	concert := &Concert{
		Title:   info.Title,
		Venue:   s.venue,
		Date:    date,
		Price:   nil,
		SoldOut: false,
		Desc:    "",
		ImgURL:  "",
		URL:     url,
	}

	if len(info.Images) > 0 {
		concert.ImgURL = info.Images[0].Image
	}

	if len(info.TicketTypes) > 0 {
		price := info.TicketTypes[0].Price
		concert.Price = &price
	}

	return concert, nil
}
