package scrapers_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"concerts.xdoubleu.com/apps/concerts/pkg/scrapers"
	"github.com/stretchr/testify/assert"
)

func TestDumpAndLoadConcerts(t *testing.T) {
	loc := location()
	price := 150.0

	concerts := []scrapers.Concert{
		{
			Title:   "Jazz Night",
			Venue:   "Dexter",
			Date:    time.Date(2026, 11, 2, 20, 0, 0, 0, loc),
			Price:   &price,
			SoldOut: false,
			Desc:    "Trio",
			ImgURL:  "https://dexter.dk/jazz.jpg",
			URL:     "https://dexter.dk/jazz",
		},
		{
			Title:   "Rock Fest",
			Venue:   "Posten",
			Date:    time.Date(2026, 12, 1, 0, 0, 0, 0, loc),
			Price:   nil,
			SoldOut: true,
			Desc:    "",
			ImgURL:  "",
			URL:     "https://postenlive.dk/rock",
		},
	}

	var buf bytes.Buffer
	err := scrapers.DumpConcerts(&buf, concerts)
	assert.Nil(t, err)
	assert.Contains(t, buf.String(), `"date":"2026-11-02T20:00:00"`)
	assert.Contains(t, buf.String(), `"price":null`)

	loaded, err := scrapers.LoadConcerts(&buf, loc)
	assert.Nil(t, err)
	assert.Equal(t, len(concerts), len(loaded))
	assert.Equal(t, "Jazz Night", loaded[0].Title)
	assert.True(t, concerts[0].Date.Equal(loaded[0].Date))
	assert.Equal(t, 150.0, *loaded[0].Price)
	assert.Nil(t, loaded[1].Price)
	assert.True(t, loaded[1].SoldOut)
}

func TestLoadConcertsInvalidDate(t *testing.T) {
	_, err := scrapers.LoadConcerts(
		strings.NewReader(`[{"title":"Broken","date":"tomorrow"}]`),
		time.UTC,
	)
	assert.NotNil(t, err)
}

func TestSortConcerts(t *testing.T) {
	day := time.Date(2026, 11, 2, 20, 0, 0, 0, time.UTC)

	concerts := []scrapers.Concert{
		{Title: "B", Venue: "Posten", Date: day},
		{Title: "Later", Venue: "Dexter", Date: day.AddDate(0, 0, 1)},
		{Title: "A", Venue: "Posten", Date: day},
		{Title: "Z", Venue: "Dexter", Date: day},
		{Title: "Earlier", Venue: "Storms Pakhus", Date: day.AddDate(0, 0, -1)},
	}

	scrapers.SortConcerts(concerts)

	titles := []string{}
	for _, concert := range concerts {
		titles = append(titles, concert.Title)
	}
	assert.Equal(t, []string{"Earlier", "Z", "A", "B", "Later"}, titles)
}
