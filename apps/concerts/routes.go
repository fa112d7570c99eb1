package concerts

import (
	"fmt"
	"net/http"
)

func (app *Concerts) apiRoutes(prefix string, mux *http.ServeMux) {
	apiPrefix := fmt.Sprintf("/%s/api", prefix)
	app.concertsRoutes(apiPrefix, mux)
	app.progressRoutes(apiPrefix, mux)
}

func (app *Concerts) Routes(prefix string, mux *http.ServeMux) {
	app.templateRoutes(prefix, mux)
	app.apiRoutes(prefix, mux)
	mux.HandleFunc(
		fmt.Sprintf("GET /%s/calendar.ics", prefix),
		app.calendarHandler,
	)
}
