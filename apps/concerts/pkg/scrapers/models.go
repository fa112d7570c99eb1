package scrapers

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"
)

// DateFormat is the ISO-8601 layout concerts use in JSON and in date markers.
const DateFormat = "2006-01-02T15:04:05"

type Concert struct {
	Title   string
	Venue   string
	Date    time.Time
	Price   *float64
	SoldOut bool
	Desc    string
	ImgURL  string
	URL     string
}

type concertJSON struct {
	Title   string   `json:"title"`
	Venue   string   `json:"venue"`
	Date    string   `json:"date"`
	Price   *float64 `json:"price"`
	SoldOut bool     `json:"sold_out"`
	Desc    string   `json:"desc"`
	ImgURL  string   `json:"img_url"`
	URL     string   `json:"url"`
}

func (concert Concert) MarshalJSON() ([]byte, error) {
	return json.Marshal(concertJSON{
		Title:   concert.Title,
		Venue:   concert.Venue,
		Date:    concert.Date.Format(DateFormat),
		Price:   concert.Price,
		SoldOut: concert.SoldOut,
		Desc:    concert.Desc,
		ImgURL:  concert.ImgURL,
		URL:     concert.URL,
	})
}

// LoadConcerts reads a JSON array of concerts. Dates without an offset are
// read in loc.
func LoadConcerts(r io.Reader, loc *time.Location) ([]Concert, error) {
	raw := []concertJSON{}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, err
	}

	concerts := make([]Concert, 0, len(raw))
	for _, c := range raw {
		date, err := parseISO(c.Date, loc)
		if err != nil {
			return nil, fmt.Errorf("concert %q: %w", c.Title, err)
		}

		concerts = append(concerts, Concert{
			Title:   c.Title,
			Venue:   c.Venue,
			Date:    date,
			Price:   c.Price,
			SoldOut: c.SoldOut,
			Desc:    c.Desc,
			ImgURL:  c.ImgURL,
			URL:     c.URL,
		})
	}

	return concerts, nil
}

// DumpConcerts writes concerts as a JSON array.
func DumpConcerts(w io.Writer, concerts []Concert) error {
	if concerts == nil {
		concerts = []Concert{}
	}

	return json.NewEncoder(w).Encode(concerts)
}

// SortConcerts orders concerts chronologically, then by venue and title.
func SortConcerts(concerts []Concert) {
	sort.SliceStable(concerts, func(i, j int) bool {
		a, b := concerts[i], concerts[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		if a.Venue != b.Venue {
			return a.Venue < b.Venue
		}
		return a.Title < b.Title
	})
}
