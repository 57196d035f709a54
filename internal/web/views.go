package web

import (
	"embed"
	"html/template"
	"net/http"

	"ovs/storefront/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"stores", "store", "search", "cart",
	"login", "register", "admin_login", "admin",
}

var pages = func() map[string]*template.Template {
	m := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		m[name] = template.Must(template.ParseFS(templateFS,
			"templates/layout.html", "templates/"+name+".html"))
	}
	return m
}()

// Page carries the fields every view needs; screens embed it. Exported
// because html/template cannot reach fields promoted through an
// unexported embedded struct.
type Page struct {
	Session session.Session
	Message string
}

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages[name].ExecuteTemplate(w, "layout", data); err != nil {
		h.log.WithError(err).WithField("template", name).Error("render failed")
	}
}
