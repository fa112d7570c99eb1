package concerts

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"

	"concerts.xdoubleu.com/apps/concerts/internal/models"
	"concerts.xdoubleu.com/apps/concerts/pkg/visibility"
	tpltools "github.com/xdoubleu/essentia/v2/pkg/tpl"
)

type pageData struct {
	Cards     []*models.ConcertCard
	Query     string
	StaticURL string
}

func parseTemplates() *template.Template {
	return template.Must(template.ParseFS(htmlTemplates, "templates/html/**/*.html"))
}

func (app *Concerts) templateRoutes(prefix string, mux *http.ServeMux) {
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}

	mux.Handle(
		fmt.Sprintf("GET /%s/static/", prefix),
		http.StripPrefix(fmt.Sprintf("/%s/static/", prefix), http.FileServerFS(static)),
	)
	mux.Handle(
		fmt.Sprintf("GET /%s/images/", prefix),
		http.StripPrefix(
			fmt.Sprintf("/%s/images/", prefix),
			http.FileServerFS(os.DirFS(app.Config.ImagesDir)),
		),
	)
	mux.HandleFunc(
		fmt.Sprintf("GET /%s/{$}", prefix),
		app.rootHandler,
	)
}

// rootHandler renders every stored concert. A submitted search form filters
// the cards by the value of its first field.
func (app *Concerts) rootHandler(w http.ResponseWriter, r *http.Request) {
	cards, text, err := app.Services.Concerts.Cards(r.Context(), firstFormField(r))
	if err != nil {
		panic(err)
	}

	tpltools.RenderWithPanic(app.tpl, w, "index.html", pageData{
		Cards:     cards,
		Query:     text,
		StaticURL: fmt.Sprintf("/%s/static/", app.GetName()),
	})
}

// firstFormField reads the value of the first field in the query string,
// whatever its name. url.Values loses the order the form sent them in.
func firstFormField(r *http.Request) visibility.TextSource {
	return visibility.TextSourceFunc(func() (string, error) {
		if r.URL.RawQuery == "" {
			return "", nil
		}

		field, _, _ := strings.Cut(r.URL.RawQuery, "&")
		_, value, _ := strings.Cut(field, "=")

		text, err := url.QueryUnescape(value)
		if err != nil {
			return value, nil //nolint:nilerr //malformed escapes are searched as typed
		}

		return text, nil
	})
}

func renderPage(w io.Writer, tpl *template.Template, data pageData) error {
	return tpl.ExecuteTemplate(w, "index.html", data)
}
