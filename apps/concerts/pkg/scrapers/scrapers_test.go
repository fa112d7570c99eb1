package scrapers_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"concerts.xdoubleu.com/apps/concerts/pkg/scrapers"
	"concerts.xdoubleu.com/internal/clock"
	"github.com/stretchr/testify/assert"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
)

//nolint:gochecknoglobals //needed for tests
var copenhagen = mustLoadLocation("Europe/Copenhagen")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func location() *time.Location {
	return copenhagen
}

func testClock() clock.Clock {
	return clock.NewFixed(time.Date(2026, 10, 19, 12, 0, 0, 0, location()))
}

func newServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	for pattern, body := range routes {
		mux.HandleFunc(pattern, func(w http.ResponseWriter, _ *http.Request) {
			if body != "" && (body[0] == '[' || body[0] == '{') {
				w.Header().Set("Content-Type", "application/json")
			} else {
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
			}
			_, _ = w.Write([]byte(body))
		})
	}

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func options(server *httptest.Server) scrapers.Options {
	return scrapers.Options{
		Logger:  logging.NewNopLogger(),
		Clock:   testClock(),
		BaseURL: server.URL,
	}
}

const stormsPage = `<html><body>
<div class="fl-post-feed-post">
  <h2 class="fl-post-feed-title">
    <a href="https://stormspakhus.dk/events/jazz" title="Koncert: Jazz Night // Gratis Koncert">Jazz</a>
  </h2>
  <div class="fl-post-grid-event-calendar-date"><span>november 2 @ 20:00</span></div>
  <div class="fl-post-feed-content"><p>Live jazz</p></div>
  <div class="fl-post-feed-image"><a href="#"><img src="/a.jpg" srcset="/a.jpg 300w, /b.jpg 1024w"></a></div>
</div>
<div class="fl-post-feed-post">
  <h2 class="fl-post-feed-title"><a href="https://stormspakhus.dk/events/quiz" title="Pubquiz">Quiz</a></h2>
  <div class="fl-post-grid-event-calendar-date"><span>november 3 @ 19:00</span></div>
</div>
</body></html>`

func TestStorms(t *testing.T) {
	server := newServer(t, map[string]string{"GET /events/": stormsPage})

	concerts, err := scrapers.NewStorms(options(server)).Scrape(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, 1, len(concerts))

	concert := concerts[0]
	assert.Equal(t, "Koncert: Jazz Night", concert.Title)
	assert.Equal(t, "Storms Pakhus", concert.Venue)
	assert.Equal(t, time.Date(2026, 11, 2, 20, 0, 0, 0, location()), concert.Date)
	assert.Equal(t, 0.0, *concert.Price)
	assert.Equal(t, "Live jazz", concert.Desc)
	assert.Equal(t, "/b.jpg", concert.ImgURL)
	assert.Equal(t, "https://stormspakhus.dk/events/jazz", concert.URL)
}

const postenBox = `<div class="event-box">
  <div>
    <a href="https://postenlive.dk/event/%[1]s"><img class="breakdance-image-object" src="/%[1]s.jpg" srcset="/%[1]s.jpg 400w, /%[1]s-big.jpg 1200w"></a>
    <div>
      <h3 class="bde-heading"> %[2]s </h3>
      <div>
        <div>Headliner</div>
        <div>%[3]s</div>
        <div><div>%[4]s</div></div>
        <div><span>%[5]s</span></div>
      </div>
    </div>
  </div>
</div>`

func TestPosten(t *testing.T) {
	pages := map[string]string{
		"1": fmt.Sprintf(postenBox, "rock", "Rock Fest", "Heavy riffs", "12. november 2026", "1.295,00 kr"),
		"2": fmt.Sprintf(postenBox, "pop", "Pop Party", "Hits", "1. december 2026", "Udsolgt"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /wp-admin/admin-ajax.php", func(w http.ResponseWriter, r *http.Request) {
		assert.Nil(t, r.ParseForm())
		assert.Equal(t, "nkt_event_pagination", r.PostForm.Get("action"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(
			w,
			`{"data":{"total_pages":2,"html":%q}}`,
			pages[r.PostForm.Get("page")],
		)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	concerts, err := scrapers.NewPosten(options(server)).Scrape(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, 2, len(concerts))

	rock := concerts[0]
	assert.Equal(t, "Rock Fest", rock.Title)
	assert.Equal(t, "Posten", rock.Venue)
	assert.Equal(t, time.Date(2026, 11, 12, 0, 0, 0, 0, location()), rock.Date)
	assert.Equal(t, 1295.0, *rock.Price)
	assert.Equal(t, "Heavy riffs", rock.Desc)
	assert.Equal(t, "/rock-big.jpg", rock.ImgURL)
	assert.Equal(t, "https://postenlive.dk/event/rock", rock.URL)

	pop := concerts[1]
	assert.Equal(t, "Pop Party", pop.Title)
	assert.True(t, pop.SoldOut)
	assert.Nil(t, pop.Price)
}

const dexterBox = `<div class="event-box">
  <div>
    <a href="https://dexter.dk/event/%[1]s"><img class="breakdance-image-object" src="/%[1]s.jpg"></a>
    <div>
      <h3 class="bde-heading">%[2]s</h3>
      <div>
        <div>%[3]s</div>
        <div><div>%[4]s</div></div>
        <div><span>%[5]s</span></div>
      </div>
    </div>
  </div>
</div>`

func TestDexter(t *testing.T) {
	html := fmt.Sprintf(dexterBox, "trio", "Jazz Trio", "Standards", "7. november 2026", "Gratis")

	mux := http.NewServeMux()
	mux.HandleFunc("POST /wp-admin/admin-ajax.php", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"data":{"total_pages":1,"html":%q}}`, html)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	concerts, err := scrapers.NewDexter(options(server)).Scrape(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, 1, len(concerts))

	trio := concerts[0]
	assert.Equal(t, "Jazz Trio", trio.Title)
	assert.Equal(t, "Dexter", trio.Venue)
	assert.Equal(t, time.Date(2026, 11, 7, 0, 0, 0, 0, location()), trio.Date)
	assert.Equal(t, 0.0, *trio.Price)
	assert.False(t, trio.SoldOut)
	assert.Equal(t, "Standards", trio.Desc)
	assert.Equal(t, "/trio.jpg", trio.ImgURL)
	assert.Equal(t, "https://dexter.dk/event/trio", trio.URL)
}

const kulturmaskinenJSON = `[
  {"urlSegment": "band-x", "properties": {
    "category_value": "MUSIK", "event_name": "Band X",
    "promoter": {"nodeName": "Magasinet"},
    "billetten_data": {"event_notes": "Indie", "event_images": {"large": "https://img/x.jpg"},
      "shows": [{"show_time": "2026-11-05T20:00:00", "prices": [{"min_price": 180}]}]}}},
  {"urlSegment": "play", "properties": {
    "category_value": "TEATER", "event_name": "A Play",
    "billetten_data": {"shows": [{"show_time": "2026-11-06T20:00:00"}]}}}
]`

func TestKulturmaskinen(t *testing.T) {
	server := newServer(t, map[string]string{"GET /api": kulturmaskinenJSON})

	concerts, err := scrapers.NewKulturmaskinen(options(server)).Scrape(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, 1, len(concerts))

	concert := concerts[0]
	assert.Equal(t, "Band X", concert.Title)
	assert.Equal(t, "Magasinet", concert.Venue)
	assert.Equal(t, time.Date(2026, 11, 5, 20, 0, 0, 0, location()), concert.Date)
	assert.Equal(t, 180.0, *concert.Price)
	assert.Equal(t, "https://img/x.jpg", concert.ImgURL)
	assert.Equal(t, server.URL+"/events/band-x", concert.URL)
}

const liveCulturePage = `<html><body>
<div class="searchItem"><div><div> Band A </div></div><span class="searchTag">Rock</span></div>
<div class="searchItem"><div><div>Funny Guy</div></div><span class="searchTag">Comedy</span></div>
<div class="searchItem"><div><div>Odeon Band</div></div></div>
<div class="card">
  <a href="https://liveculture.dk/a"><div class="cover" data-srcset="/a.jpg 500w, /a2.jpg 1000w"></div></a>
  <div class="singleBoxTitle"><span>Band A</span></div>
  <span class="heroLabels__single--date">07.11.26 - 08.11.26</span>
  <span class="heroLabels__single--venue">Musikhuset</span>
  <span class="ticketButton__time">245,00 kr</span>
  <span class="singleBoxCity">Odense</span>
</div>
<div class="card">
  <a href="https://liveculture.dk/funny"></a>
  <div class="singleBoxTitle"><span>Funny Guy</span></div>
  <span class="heroLabels__single--date">09.11.26</span>
  <span class="heroLabels__single--venue">Musikhuset</span>
</div>
<div class="card">
  <a href="https://liveculture.dk/odeon"></a>
  <div class="singleBoxTitle"><span>Odeon Band</span></div>
  <span class="heroLabels__single--date">10.11.26</span>
  <span class="heroLabels__single--venue">ODEON</span>
</div>
<div class="card">
  <a href="https://liveculture.dk/gift"></a>
  <div class="singleBoxTitle"><span>Gavekort</span></div>
</div>
<div class="card">
  <a href="https://liveculture.dk/unlisted"></a>
  <div class="singleBoxTitle"><span>Unlisted</span></div>
  <span class="heroLabels__single--date">11.11.26</span>
  <span class="heroLabels__single--venue">Musikhuset</span>
</div>
</body></html>`

func TestLiveCulture(t *testing.T) {
	server := newServer(t, map[string]string{"GET /{$}": liveCulturePage})

	concerts, err := scrapers.NewLiveCulture(options(server)).Scrape(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, 1, len(concerts))

	concert := concerts[0]
	assert.Equal(t, "Band A", concert.Title)
	assert.Equal(t, "Musikhuset", concert.Venue)
	assert.Equal(t, time.Date(2026, 11, 7, 0, 0, 0, 0, location()), concert.Date)
	assert.Equal(t, 245.0, *concert.Price)
	assert.Equal(t, "Odense", concert.Desc)
	assert.Equal(t, "/a2.jpg", concert.ImgURL)
	assert.Equal(t, "https://liveculture.dk/a", concert.URL)
}

const odeonPage = `<html><body>
<a data-js-filter-item="koncert rock" href="/kalender/band">
  <h2>Band</h2>
  <picture><source data-srcset="/img/s.jpg 400w, /img/l.jpg 1600w"></picture>
  <span class="text-link">fredag 23. okt. 2026 - lørdag 24. okt. 2026</span>
  <div class="mt-6"><span>Store sal</span></div>
</a>
<a data-js-filter-item="teater" href="/kalender/play"><h2>Play</h2></a>
</body></html>`

func TestOdeon(t *testing.T) {
	server := newServer(t, map[string]string{
		"GET /kalender":      odeonPage,
		"GET /kalender/band": `<html><body><div class="mt-8">Fra 325 kr.<span>+ gebyr</span></div></body></html>`,
	})

	concerts, err := scrapers.NewOdeon(options(server)).Scrape(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, 1, len(concerts))

	concert := concerts[0]
	assert.Equal(t, "Band", concert.Title)
	assert.Equal(t, "ODEON", concert.Venue)
	assert.Equal(t, time.Date(2026, 10, 24, 0, 0, 0, 0, location()), concert.Date)
	assert.Equal(t, 325.0, *concert.Price)
	assert.Equal(t, "Store sal", concert.Desc)
	assert.Equal(t, server.URL+"/img/l.jpg", concert.ImgURL)
	assert.Equal(t, server.URL+"/kalender/band", concert.URL)
}

const grandHotelPage = `<html><body>
<div class="Preview_block__16Zmu">
  <div class="Preview_block__16Zmu">
    <a href="/event-koncert/band">Læs mere</a>
    <h1>Band</h1>
    <p>Fredag 6. november 2026 kl. 20</p>
    <p>Billet: 295,-</p>
    <img src="/g.jpg">
  </div>
  <div class="Preview_block__16Zmu">
    <a href="/restaurant/brunch">Brunch</a>
    <h1>Brunch</h1>
  </div>
  <div class="Preview_block__16Zmu">
    <a href="/event-koncert/video">Læs mere</a>
    <h1>Video only</h1>
    <p>7. november 2026</p>
  </div>
</div>
</body></html>`

func TestGrandHotel(t *testing.T) {
	server := newServer(t, map[string]string{"GET /event-koncert/": grandHotelPage})

	concerts, err := scrapers.NewGrandHotel(options(server)).Scrape(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, 1, len(concerts))

	concert := concerts[0]
	assert.Equal(t, "Band", concert.Title)
	assert.Equal(t, time.Date(2026, 11, 6, 0, 0, 0, 0, location()), concert.Date)
	assert.Equal(t, 295.0, *concert.Price)
	assert.Equal(t, "/g.jpg", concert.ImgURL)
	assert.Equal(t, server.URL+"/event-koncert/band", concert.URL)
}

func TestTCBUnderground(t *testing.T) {
	server := newServer(t, map[string]string{
		"GET /arrangementer": `<html><body><table><tbody>
			<tr><td><a href="https://tcbunderground.ticketbutler.io/da/e/some-band/">Some Band</a></td></tr>
		</tbody></table></body></html>`,
		"GET /api/events/title/some-band/": `{"title": "Some Band",
			"start_date": "2026-11-20T19:00:00+01:00",
			"images": [{"image": "https://img/band.jpg"}],
			"ticket_types": [{"price": 120}]}`,
	})

	concerts, err := scrapers.NewTCBUnderground(options(server)).Scrape(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, 1, len(concerts))

	concert := concerts[0]
	assert.Equal(t, "Some Band", concert.Title)
	assert.Equal(t, "TCB Underground", concert.Venue)
	assert.True(t, time.Date(2026, 11, 20, 19, 0, 0, 0, location()).Equal(concert.Date))
	assert.Equal(t, 120.0, *concert.Price)
	assert.Equal(t, "https://img/band.jpg", concert.ImgURL)
}

const vaerketPage = `<html><body><ul class="products">
<li><a class="woocommerce-LoopProduct-link" href="https://odensevaerket.dk/p/band">
  <img src="/v.jpg"><h2>6-7. november – Band Name – Entrébillet</h2>
  <span class="price">200,00 kr.</span></a></li>
<li><a class="woocommerce-LoopProduct-link" href="https://odensevaerket.dk/p/nytaar">
  <img src="/n.jpg"><h2>2. januar – Nytårskoncert</h2>
  <span class="price">Udsolgt</span></a></li>
</ul></body></html>`

func TestVaerket(t *testing.T) {
	server := newServer(t, map[string]string{"GET /kultur-musikhus/": vaerketPage})

	concerts, err := scrapers.NewVaerket(options(server)).Scrape(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, 2, len(concerts))

	assert.Equal(t, "Band Name", concerts[0].Title)
	assert.Equal(t, time.Date(2026, 11, 6, 0, 0, 0, 0, location()), concerts[0].Date)
	assert.Equal(t, 200.0, *concerts[0].Price)
	assert.Equal(t, "https://odensevaerket.dk/p/band", concerts[0].URL)

	assert.Equal(t, "Nytårskoncert", concerts[1].Title)
	assert.Equal(t, time.Date(2027, 1, 2, 0, 0, 0, 0, location()), concerts[1].Date)
	assert.True(t, concerts[1].SoldOut)
}

func TestStudenterhuset(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /Events/GetEventsForOverview", func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("Key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"Name": "Band // Studenterhus Odense",
			"StartDate": "14. november 2026 kl. 21:00",
			"ShortDescription": "Punk", "Image": "https://img/s.jpg",
			"YTRoute": "/event/band", "FromPrice": 90}]`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	concerts, err := scrapers.NewStudenterhuset(options(server)).Scrape(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, 1, len(concerts))

	concert := concerts[0]
	assert.Equal(t, "Band", concert.Title)
	assert.Equal(t, "Studenterhus Odense", concert.Venue)
	assert.Equal(t, time.Date(2026, 11, 14, 21, 0, 0, 0, location()), concert.Date)
	assert.Equal(t, 90.0, *concert.Price)
	assert.Equal(t, server.URL+"/event/band", concert.URL)
}

func TestExtra(t *testing.T) {
	path := filepath.Join(t.TempDir(), "extra.json")
	err := os.WriteFile(path, []byte(`[
		{"title": "Old", "venue": "Kirken", "date": "2026-01-01T20:00:00", "price": null},
		{"title": "New", "venue": "Kirken", "date": "2026-12-24T16:00:00", "price": 0}
	]`), 0o600)
	assert.Nil(t, err)

	//nolint:exhaustruct //base url is unused
	opts := scrapers.Options{Logger: logging.NewNopLogger(), Clock: testClock()}

	concerts, err := scrapers.NewExtra(opts, path).Scrape(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, 1, len(concerts))
	assert.Equal(t, "New", concerts[0].Title)

	concerts, err = scrapers.NewExtra(opts, filepath.Join(t.TempDir(), "missing.json")).
		Scrape(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, 0, len(concerts))
}

type failingScraper struct{}

func (failingScraper) Venue() string { return "Broken" }

func (failingScraper) Scrape(_ context.Context) ([]scrapers.Concert, error) {
	return nil, errors.New("boom")
}

func TestAll(t *testing.T) {
	server := newServer(t, map[string]string{
		"GET /events/":          stormsPage,
		"GET /kultur-musikhus/": vaerketPage,
	})

	all := scrapers.All(
		context.Background(),
		logging.NewNopLogger(),
		testClock(),
		[]scrapers.Scraper{
			scrapers.NewStorms(options(server)),
			scrapers.NewVaerket(options(server)),
			failingScraper{},
		},
	)

	assert.Equal(t, 3, len(all))
	assert.Equal(t, "Koncert: Jazz Night", all[0].Title)
	assert.Equal(t, "Band Name", all[1].Title)
	assert.Equal(t, "Nytårskoncert", all[2].Title)
}

func TestAllBySource(t *testing.T) {
	server := newServer(t, map[string]string{"GET /events/": stormsPage})

	bySource := scrapers.AllBySource(
		context.Background(),
		logging.NewNopLogger(),
		testClock(),
		[]scrapers.Scraper{
			scrapers.NewStorms(options(server)),
			failingScraper{},
		},
	)

	assert.Len(t, bySource, 1)
	assert.Len(t, bySource["Storms Pakhus"], 1)
	_, ok := bySource["Broken"]
	assert.False(t, ok)
}
