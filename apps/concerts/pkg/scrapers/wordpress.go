package scrapers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"
)

// Posten and Dexter share a WordPress theme that paginates its event list
// through admin-ajax.php.
type wordpress struct {
	base
	// position of the date, price and description blocks inside an event box
	dateIdx  int
	priceIdx int
	descIdx  int
}

func NewPosten(opts Options) Scraper {
	return &wordpress{
		base:     newBase(opts, "Posten", "https://postenlive.dk"),
		dateIdx:  3,
		priceIdx: 4,
		descIdx:  2,
	}
}

func NewDexter(opts Options) Scraper {
	return &wordpress{
		base:     newBase(opts, "Dexter", "https://dexter.dk"),
		dateIdx:  2,
		priceIdx: 3,
		descIdx:  1,
	}
}

type paginationResponse struct {
	Data struct {
		TotalPages int    `json:"total_pages"`
		HTML       string `json:"html"`
	} `json:"data"`
}

func (s *wordpress) fetchPage(ctx context.Context, page int) (*paginationResponse, error) {
	headers := http.Header{}
	headers.Set("Content-Type", "application/x-www-form-urlencoded")

	body := fmt.Sprintf(
		"action=nkt_event_pagination&page=%d&posts_per_page=27&view=box",
		page,
	)

	var response paginationResponse
	err := s.fetchJSON(
		ctx,
		http.MethodPost,
		s.baseURL+"/wp-admin/admin-ajax.php",
		[]byte(body),
		headers,
		&response,
	)
	if err != nil {
		return nil, err
	}

	return &response, nil
}

func (s *wordpress) fetchPages(ctx context.Context) ([]string, error) {
	first, err := s.fetchPage(ctx, 1)
	if err != nil {
		return nil, err
	}

	pages := []string{first.Data.HTML}
	for i := 2; i <= first.Data.TotalPages; i++ {
		s.logger.Debug(fmt.Sprintf("fetching page %d of %d", i, first.Data.TotalPages))

		var page *paginationResponse
		page, err = s.fetchPage(ctx, i)
		if err != nil {
			return nil, err
		}

		pages = append(pages, page.Data.HTML)
	}

	return pages, nil
}

func (s *wordpress) Scrape(ctx context.Context) ([]Concert, error) {
	pages, err := s.fetchPages(ctx)
	if err != nil {
		return nil, err
	}

	concerts := []Concert{}
	for _, page := range pages {
		var doc *goquery.Document
		doc, err = goquery.NewDocumentFromReader(bytes.NewReader([]byte(page)))
		if err != nil {
			return nil, err
		}

		var pageErr error
		doc.Find(".event-box").EachWithBreak(func(_ int, event *goquery.Selection) bool {
			var concert *Concert
			concert, pageErr = s.parseEvent(event)
			if pageErr != nil {
				return false
			}

			concerts = append(concerts, *concert)
			return true
		})
		if pageErr != nil {
			return nil, pageErr
		}
	}

	return concerts, nil
}

func (s *wordpress) parseEvent(event *goquery.Selection) (*Concert, error) {
	goop := event.Find("div > div > div").First()
	title := trimmed(goop.Find(".bde-heading"))

	nth := func(idx int) string {
		return fmt.Sprintf("div div:nth-of-type(%d)", idx)
	}

	date, err := ParseDanishDate(
		trimmed(goop.Find(nth(s.dateIdx)+" div")),
		"2. January 2006",
		s.location(),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", title, err)
	}

	price, soldOut := priceOrWarn(&s.base, title, trimmed(goop.Find(nth(s.priceIdx)+" span")))
	url, _ := event.ChildrenFiltered("div").First().Find("a").First().Attr("href")

	return &Concert{
		Title:   title,
		Venue:   s.venue,
		Date:    date,
		Price:   price,
		SoldOut: soldOut,
		Desc:    trimmed(goop.Find(nth(s.descIdx))),
		ImgURL:  BestFromImg(event.Find(".breakdance-image-object").First()),
		URL:     url,
	}, nil
}
