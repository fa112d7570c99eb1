package scrapers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Concerts at these venues are scraped from their own sites.
//
//nolint:gochecknoglobals //lookup table
var liveCultureSkipVenues = map[string]bool{
	"Magasinet": true,
	"ODEON":     true,
}

type liveCulture struct {
	base
}

func NewLiveCulture(opts Options) Scraper {
	return &liveCulture{base: newBase(opts, "Live Culture", "https://liveculture.dk")}
}

func (s *liveCulture) Scrape(ctx context.Context) ([]Concert, error) {
	doc, err := s.fetchDocument(ctx, s.baseURL+"/")
	if err != nil {
		return nil, err
	}

	comedy := s.comedyTitles(doc)
	listed := s.listedTitles(doc)

	concerts := []Concert{}
	var errs []error

	doc.Find(".card").Each(func(_ int, event *goquery.Selection) {
		title := trimmed(event.Find(".singleBoxTitle span"))
		if title == "Gavekort" {
			return
		}

		venue := trimmed(event.Find(".heroLabels__single--venue"))
		if liveCultureSkipVenues[venue] {
			return
		}

		if !listed[title] || comedy[title] {
			return
		}

		dateStr := trimmed(event.Find(".heroLabels__single--date"))
		firstDate, _, _ := strings.Cut(dateStr, " - ")
		date, errIn := ParseDanishDate(firstDate, "2.1.06", s.location())
		if errIn != nil {
			errs = append(errs, fmt.Errorf("%s: %w", title, errIn))
			return
		}

		priceTag := trimmed(event.Find(".ticketButton__time"))
		// concerts with several time slots keep the price elsewhere
		if strings.Contains(priceTag, ":") {
			priceTag = trimmed(event.Find(".boxtitle__pricing__amount"))
		}
		price, soldOut := priceOrWarn(&s.base, title, priceTag)

		srcset, _ := event.Find("a > .cover").First().Attr("data-srcset")
		url, _ := event.Find("a").First().Attr("href")

		concerts = append(concerts, Concert{
			Title:   title,
			Venue:   venue,
			Date:    date,
			Price:   price,
			SoldOut: soldOut,
			Desc:    trimmed(event.Find(".singleBoxCity")),
			ImgURL:  BestFromSrcset(srcset),
			URL:     url,
		})
	})

	return concerts, errors.Join(errs...)
}

// listedTitles returns the titles present in the search index; cards
// missing from it are not shown by the site either.
func (s *liveCulture) listedTitles(doc *goquery.Document) map[string]bool {
	titles := map[string]bool{}
	doc.Find(".searchItem").Each(func(_ int, item *goquery.Selection) {
		titles[trimmed(item.Find("div div"))] = true
	})
	return titles
}

func (s *liveCulture) comedyTitles(doc *goquery.Document) map[string]bool {
	titles := map[string]bool{}
	doc.Find(".searchItem").Each(func(_ int, item *goquery.Selection) {
		item.Find(".searchTag").Each(func(_ int, tag *goquery.Selection) {
			if strings.TrimSpace(tag.Text()) == "Comedy" {
				titles[trimmed(item.Find("div div"))] = true
			}
		})
	})
	return titles
}
