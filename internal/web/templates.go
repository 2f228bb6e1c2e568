package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/eld-logbook/internal/units"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"trips", "trip", "add_trip", "profile", "log_sheet", "error"}

var funcs = template.FuncMap{
	"km":   units.KM,
	"hm":   units.HoursAndMinutes,
	"date": func(t time.Time) string { return t.Format("Jan 2, 2006 15:04") },
}

// parsePages parses each page together with the shared layout and map widget.
func parsePages() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/map.html", "templates/"+name+".html")
		if err != nil {
			return nil, err
		}
		pages[name] = t
	}
	return pages, nil
}

// pageData is the root value of every template.
type pageData struct {
	Title string
	Nav   string
	Error string
	Data  any
}

// render executes page into a buffer first so a template error never leaves
// a half-written response.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, d pageData) {
	var buf bytes.Buffer
	if err := s.pages[page].Execute(&buf, d); err != nil {
		s.logger.ErrorContext(r.Context(), "render page",
			"page", page,
			"request_id", chimiddleware.GetReqID(r.Context()),
			"error", err,
		)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.render(w, r, status, "error", pageData{Title: http.StatusText(status), Error: message})
}
