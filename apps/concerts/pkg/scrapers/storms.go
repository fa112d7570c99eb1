package scrapers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gocolly/colly/v2"
)

type storms struct {
	base
}

func NewStorms(opts Options) Scraper {
	return &storms{base: newBase(opts, "Storms Pakhus", "https://stormspakhus.dk")}
}

func (s *storms) Scrape(ctx context.Context) ([]Concert, error) {
	now := s.clock.Now()
	concerts := []Concert{}
	var errs []error

	err := s.visit(ctx, s.baseURL+"/events/", ".fl-post-feed-post", func(h *colly.HTMLElement) {
		titleLink := h.DOM.Find(".fl-post-feed-title a").First()
		title, _ := titleLink.Attr("title")
		if !strings.Contains(strings.ToLower(title), "koncert") {
			return
		}
		title = strings.TrimSuffix(title, " // Gratis Koncert")

		dateStr := trimmed(h.DOM.Find(".fl-post-grid-event-calendar-date span"))
		date, err := ParseDanishDate(
			fmt.Sprintf("%s %d", dateStr, now.Year()),
			"January 2 @ 15:04 2006",
			s.location(),
		)
		if err != nil {
			errs = append(errs, err)
			return
		}

		url, _ := titleLink.Attr("href")
		free := 0.0

		concerts = append(concerts, Concert{
			Title:   title,
			Venue:   s.venue,
			Date:    withInferredYear(date, now),
			Price:   &free,
			SoldOut: false,
			Desc:    trimmed(h.DOM.Find(".fl-post-feed-content p")),
			ImgURL:  BestFromImg(h.DOM.Find(".fl-post-feed-image a img").First()),
			URL:     url,
		})
	})
	if err != nil {
		return nil, err
	}

	return concerts, errors.Join(errs...)
}
