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
var reVaerketDate = regexp.MustCompile(`^(\d+)(?:-\d+)?\.?\s+(\pL+)`)

type vaerket struct {
	base
}

func NewVaerket(opts Options) Scraper {
	return &vaerket{base: newBase(opts, "Odense Værket", "https://odensevaerket.dk")}
}

func (s *vaerket) Scrape(ctx context.Context) ([]Concert, error) {
	now := s.clock.Now()
	concerts := []Concert{}
	var errs []error

	err := s.visit(ctx, s.baseURL+"/kultur-musikhus/", ".products > li", func(h *colly.HTMLElement) {
		heading := strings.TrimSpace(h.ChildText("h2"))
		dateStr, title, ok := strings.Cut(
			strings.TrimSuffix(heading, " – Entrébillet"),
			" – ",
		)
		if !ok {
			errs = append(errs, fmt.Errorf("unexpected heading %q", heading))
			return
		}

		match := reVaerketDate.FindStringSubmatch(dateStr)
		if match == nil {
			errs = append(errs, fmt.Errorf("%s: unexpected date %q", title, dateStr))
			return
		}

		date, err := ParseDanishDate(
			fmt.Sprintf("%s. %s %d", match[1], match[2], now.Year()),
			"2. January 2006",
			s.location(),
		)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", title, err))
			return
		}

		price, soldOut := priceOrWarn(&s.base, title, strings.TrimSpace(h.ChildText(".price")))

		concerts = append(concerts, Concert{
			Title:   title,
			Venue:   s.venue,
			Date:    withInferredYear(date, now),
			Price:   price,
			SoldOut: soldOut,
			Desc:    "",
			ImgURL:  BestFromImg(h.DOM.Find("img").First()),
			URL:     h.ChildAttr(".woocommerce-LoopProduct-link", "href"),
		})
	})
	if err != nil {
		return nil, err
	}

	return concerts, errors.Join(errs...)
}
