package scrapers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

type studenterhuset struct {
	base
	siteURL string
}

func NewStudenterhuset(opts Options) Scraper {
	return &studenterhuset{
		base:    newBase(opts, "Studenterhus Odense", "https://publicapi.yourticket.dk"),
		siteURL: opts.urlOr("https://www.yourticket.dk"),
	}
}

type yourTicketQuery struct {
	PageNum          int    `json:"pagenum"`
	FilterCategories string `json:"ytfiltercategories"`
	FilterCity       string `json:"ytfiltercity"`
	FilterDate       string `json:"ytfilterdate"`
	FilterSearch     string `json:"ytfiltersearch"`
	FilterArrID      string `json:"ytfilterarrid"`
}

type yourTicketEvent struct {
	Name             string   `json:"Name"`
	StartDate        string   `json:"StartDate"`
	ShortDescription string   `json:"ShortDescription"`
	Image            string   `json:"Image"`
	YTRoute          string   `json:"YTRoute"`
	FromPrice        *float64 `json:"FromPrice"`
}

func (s *studenterhuset) Scrape(ctx context.Context) ([]Concert, error) {
	// organiser 671 is Studenterhus Odense, category 2 is music
	body, err := json.Marshal(yourTicketQuery{
		PageNum:          0,
		FilterCategories: "2",
		FilterCity:       "",
		FilterDate:       "",
		FilterSearch:     "",
		FilterArrID:      "671",
	})
	if err != nil {
		return nil, err
	}

	// the API ignores requests without these headers
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("Origin", "https://www.yourticket.dk")
	headers.Set("Referer", "https://www.yourtickets.dk")
	headers.Set("Key", "3-9D8DC9C1-576A-4727-890C-5F140E4D03F5")

	var events []yourTicketEvent
	err = s.fetchJSON(
		ctx,
		http.MethodPost,
		s.baseURL+"/Events/GetEventsForOverview",
		body,
		headers,
		&events,
	)
	if err != nil {
		return nil, err
	}

	concerts := []Concert{}
	for _, event := range events {
		title := strings.TrimSuffix(event.Name, " // Studenterhus Odense")

		date, errIn := ParseDanishDate(
			event.StartDate,
			"2. January 2006 kl. 15:04",
			s.location(),
		)
		if errIn != nil {
			return nil, fmt.Errorf("%s: %w", title, errIn)
		}

		concerts = append(concerts, Concert{
			Title:   title,
			Venue:   s.venue,
			Date:    date,
			Price:   event.FromPrice,
			SoldOut: false,
			Desc:    event.ShortDescription,
			ImgURL:  event.Image,
			URL:     s.siteURL + event.YTRoute,
		})
	}

	return concerts, nil
}
