package scrapers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gocolly/colly/v2"
)

type odeon struct {
	base
}

func NewOdeon(opts Options) Scraper {
	return &odeon{base: newBase(opts, "ODEON", "https://odeonodense.dk")}
}

func (s *odeon) Scrape(ctx context.Context) ([]Concert, error) {
	concerts := []Concert{}
	var errs []error

	err := s.visit(
		ctx,
		s.baseURL+"/kalender",
		`a[data-js-filter-item*="koncert"]`,
		func(h *colly.HTMLElement) {
			title := strings.TrimSpace(h.ChildText("h2"))

			links := h.DOM.Find(".text-link")
			dates := strings.Split(strings.TrimSpace(links.Last().Text()), " - ")
			lastDate := dates[len(dates)-1]

			date, err := ParseDanishDate(lastDate, "Monday 2. January 2006", s.location())
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", title, err))
				return
			}

			srcset, _ := h.DOM.Find("source").First().Attr("data-srcset")
			url := s.baseURL + h.Attr("href")

			// the price is only listed on the concert page
			priceTag, err := s.fetchPriceTag(ctx, url)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", title, err))
				return
			}
			price, soldOut := priceOrWarn(&s.base, title, priceTag)

			concerts = append(concerts, Concert{
				Title:   title,
				Venue:   s.venue,
				Date:    date,
				Price:   price,
				SoldOut: soldOut,
				Desc:    trimmed(h.DOM.Find(".mt-6 > span")),
				ImgURL:  s.baseURL + BestFromSrcset(srcset),
				URL:     url,
			})
		},
	)
	if err != nil {
		return nil, err
	}

	return concerts, errors.Join(errs...)
}

func (s *odeon) fetchPriceTag(ctx context.Context, url string) (string, error) {
	doc, err := s.fetchDocument(ctx, url)
	if err != nil {
		return "", err
	}

	return firstText(doc.Find(".mt-8").First()), nil
}
