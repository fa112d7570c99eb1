package scrapers

import (
	"context"
	"fmt"
	"net/http"
)

const kulturmaskinenQuery = "/api?token=6dc733b1-53a0-4c6a-b469-8ae912316dc4&depth=6&lang=en-us" +
	"&postdata=JTdCJTIybGltaXQlMjIlM0E5OTk5OSUyQyUyMnF1ZXJ5JTIyJTNB" +
	"JTdCJTIyY29udGVudFR5cGVBbGlhcyUyMiUzQSUyMmJpbGxldHRlbkV2ZW50JT" +
	"IyJTJDJTIycGFyZW50SWQlMjIlM0ElN0IlMjJuZSUyMiUzQTEyMDQlN0QlMkMl" +
	"MjJwcm9wZXJ0aWVzLmJpbGxldHRlbl9kYXRhLnNob3dzLjAlMjIlM0ElN0IlMj" +
	"JleGlzdHMlMjIlM0ExJTdEJTdEJTJDJTIyc29ydEJ5JTIyJTNBJTIycHJvcGVy" +
	"dGllcy5iaWxsZXR0ZW5fZGF0YS5zaG93cy4wLnNob3dfdGltZSUyMiUyQyUyMn" +
	"NvcnQlMjIlM0ElMjJhc2MlMjIlN0Q"

type kulturmaskinen struct {
	base
	siteURL string
}

func NewKulturmaskinen(opts Options) Scraper {
	return &kulturmaskinen{
		base:    newBase(opts, "Kulturmaskinen", "https://api.uheadless.com"),
		siteURL: opts.urlOr("https://kulturmaskinen.dk"),
	}
}

type kulturmaskinenEvent struct {
	URLSegment string `json:"urlSegment"`
	Properties struct {
		CategoryValue string `json:"category_value"`
		EventName     string `json:"event_name"`
		Promoter      struct {
			NodeName string `json:"nodeName"`
		} `json:"promoter"`
		BillettenData struct {
			EventNotes  string `json:"event_notes"`
			EventImages struct {
				Large string `json:"large"`
			} `json:"event_images"`
			Shows []struct {
				ShowTime string `json:"show_time"`
				Prices   []struct {
					MinPrice float64 `json:"min_price"`
				} `json:"prices"`
			} `json:"shows"`
		} `json:"billetten_data"`
	} `json:"properties"`
}

func (s *kulturmaskinen) Scrape(ctx context.Context) ([]Concert, error) {
	var events []kulturmaskinenEvent
	err := s.fetchJSON(ctx, http.MethodGet, s.baseURL+kulturmaskinenQuery, nil, nil, &events)
	if err != nil {
		return nil, err
	}

	concerts := []Concert{}
	for _, event := range events {
		props := event.Properties
		if props.CategoryValue != "MUSIK" {
			continue
		}

		shows := props.BillettenData.Shows
		if len(shows) == 0 {
			s.logger.Warn(fmt.Sprintf("%s has no shows", props.EventName))
			continue
		}
		if len(shows) != 1 {
			s.logger.Warn(fmt.Sprintf("%s has multiple shows", props.EventName))
		}

		date, err := parseISO(shows[0].ShowTime, s.location())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", props.EventName, err)
		}

		var price *float64
		if len(shows[0].Prices) > 0 {
			minPrice := shows[0].Prices[0].MinPrice
			price = &minPrice
		}

		concerts = append(concerts, Concert{
			Title:   props.EventName,
			Venue:   props.Promoter.NodeName,
			Date:    date,
			Price:   price,
			SoldOut: false,
			Desc:    props.BillettenData.EventNotes,
			ImgURL:  props.BillettenData.EventImages.Large,
			URL:     s.siteURL + "/events/" + event.URLSegment,
		})
	}

	return concerts, nil
}
