package concerts

import (
	"fmt"
	"net/http"

	"concerts.xdoubleu.com/apps/concerts/internal/jobs"
	"github.com/xdoubleu/essentia/v2/pkg/communication/httptools"
	"github.com/xdoubleu/essentia/v2/pkg/logging"
)

func (app *Concerts) concertsRoutes(prefix string, mux *http.ServeMux) {
	mux.HandleFunc(
		fmt.Sprintf("GET %s/concerts", prefix),
		app.getUpcomingConcertsHandler,
	)
	mux.HandleFunc(
		fmt.Sprintf("GET %s/search", prefix),
		app.searchHandler,
	)
}

func (app *Concerts) progressRoutes(prefix string, mux *http.ServeMux) {
	mux.HandleFunc(
		fmt.Sprintf("GET %s/progress", prefix),
		app.Services.WebSocket.Handler(),
	)
	mux.HandleFunc(
		fmt.Sprintf("GET %s/refresh", prefix),
		app.refreshHandler,
	)
}

func (app *Concerts) getUpcomingConcertsHandler(w http.ResponseWriter, r *http.Request) {
	concerts, err := app.Services.Concerts.GetUpcoming(r.Context())
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	err = httptools.WriteJSON(w, http.StatusOK, concerts, nil)
	if err != nil {
		httptools.ServerErrorResponse(w, r, err)
	}
}

// searchHandler backs the live search: it is called with the current value
// of the search input on every keystroke.
func (app *Concerts) searchHandler(w http.ResponseWriter, r *http.Request) {
	result, err := app.Services.Concerts.Search(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	err = httptools.WriteJSON(w, http.StatusOK, result, nil)
	if err != nil {
		httptools.ServerErrorResponse(w, r, err)
	}
}

func (app *Concerts) calendarHandler(w http.ResponseWriter, r *http.Request) {
	feed, err := app.Services.Calendar.Feed(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		httptools.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	_, err = w.Write([]byte(feed))
	if err != nil {
		app.logger.Error("failed to write calendar", logging.ErrAttr(err))
	}
}

func (app *Concerts) refreshHandler(w http.ResponseWriter, _ *http.Request) {
	_, lastRunTime := app.jobQueue.FetchState(jobs.ScrapeJobID)
	app.Services.WebSocket.UpdateState(jobs.ScrapeJobID, true, lastRunTime)

	app.jobQueue.ForceRun(jobs.ScrapeJobID)

	w.WriteHeader(http.StatusAccepted)
}
