package scrapers

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gocolly/colly/v2"
)

//nolint:gochecknoglobals //compiled once
var (
	reGrandDate  = regexp.MustCompile(`\d+\. \pL+ \d+`)
	reGrandPrice = regexp.MustCompile(`\d+,-`)
)

type grandHotel struct {
	base
}

func NewGrandHotel(opts Options) Scraper {
	return &grandHotel{base: newBase(opts, "Grand Hotel", "https://www.grandodense.dk")}
}

func (s *grandHotel) Scrape(ctx context.Context) ([]Concert, error) {
	concerts := []Concert{}
	var errs []error

	err := s.visit(
		ctx,
		s.baseURL+"/event-koncert/",
		".Preview_block__16Zmu .Preview_block__16Zmu",
		func(h *colly.HTMLElement) {
			href, _ := h.DOM.Find("a").First().Attr("href")
			// skip restaurant events
			if !strings.HasPrefix(href, "/event-koncert/") {
				return
			}

			title := strings.TrimSpace(h.ChildText("h1"))

			// only the first date counts
			dateStr := reGrandDate.FindString(findTextMatching(h.DOM, reGrandDate))
			date, err := ParseDanishDate(dateStr, "2. January 2006", s.location())
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", title, err))
				return
			}

			img := h.DOM.Find("img").First()
			if img.Length() == 0 {
				s.logger.Warn(fmt.Sprintf("no image for %s, it will not be added", title))
				return
			}

			price, soldOut := priceOrWarn(&s.base, title, findTextMatching(h.DOM, reGrandPrice))

			concerts = append(concerts, Concert{
				Title:   title,
				Venue:   s.venue,
				Date:    date,
				Price:   price,
				SoldOut: soldOut,
				Desc:    "",
				ImgURL:  BestFromImg(img),
				URL:     s.baseURL + href,
			})
		},
	)
	if err != nil {
		return nil, err
	}

	return concerts, errors.Join(errs...)
}
