package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates
var files embed.FS

const (
	layoutAuth      = "auth"
	layoutDashboard = "dashboard"
)

var pageLayouts = map[string]string{
	"login":    layoutAuth,
	"signup":   layoutAuth,
	"error":    layoutAuth,
	"booking":  layoutDashboard,
	"orders":   layoutDashboard,
	"order":    layoutDashboard,
	"sprayers": layoutDashboard,
	"confirm":  layoutDashboard,
}

// Renderer отрисовывает страницы приложения из встроенных шаблонов. Каждая страница
// разбирается вместе со своим макетом и общими фрагментами.
type Renderer struct {
	pages map[string]*template.Template
}

func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageLayouts))}
	for name := range pageLayouts {
		t, err := template.New(name).Funcs(Funcs()).ParseFS(
			files,
			"templates/layout/*.gohtml",
			"templates/partials/*.gohtml",
			"templates/pages/"+name+".gohtml",
		)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		r.pages[name] = t
	}

	return r, nil
}

// Render отрисовывает страницу name с кодом ответа status. Страница полностью
// формируется до записи ответа, поэтому при ошибке шаблона ответ не изменяется.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, p Page) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %s", name)
	}

	buf := &bytes.Buffer{}
	if err := t.ExecuteTemplate(buf, pageLayouts[name], p); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)

	return err
}
