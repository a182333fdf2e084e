package response

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"github.com/mrCamelCode/potami/core/handler"
)

// ErrNilTemplate is returned when a template response is built without a
// template.
var ErrNilTemplate = errors.New("response: nil template")

// Template renders tmpl with data as a 200 text/html response. Output is
// buffered so a failing template surfaces as an error instead of a
// half-written page.
func Template(tmpl *template.Template, data any) handler.Response {
	return renderTemplate(tmpl, "", data, http.StatusOK)
}

// TemplateWithStatus is Template with a custom status code.
func TemplateWithStatus(tmpl *template.Template, data any, status int) handler.Response {
	return renderTemplate(tmpl, "", data, status)
}

// TemplateName renders the named template from a parsed collection, as
// produced by ParseFiles or ParseGlob.
func TemplateName(tmpl *template.Template, name string, data any) handler.Response {
	return renderTemplate(tmpl, name, data, http.StatusOK)
}

// TemplateNameWithStatus is TemplateName with a custom status code.
func TemplateNameWithStatus(tmpl *template.Template, name string, data any, status int) handler.Response {
	return renderTemplate(tmpl, name, data, status)
}

func renderTemplate(tmpl *template.Template, name string, data any, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if tmpl == nil {
			return ErrNilTemplate
		}

		var buf bytes.Buffer
		var err error
		if name != "" {
			err = tmpl.ExecuteTemplate(&buf, name, data)
		} else {
			err = tmpl.Execute(&buf, data)
		}
		if err != nil {
			return err
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		_, err = w.Write(buf.Bytes())
		return err
	}
}

// TemplateStream renders tmpl straight to the connection without
// buffering. Cheaper for large pages, but a template error mid-render
// leaves the client with a truncated 200 response.
func TemplateStream(tmpl *template.Template, data any) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if tmpl == nil {
			return ErrNilTemplate
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		w.WriteHeader(http.StatusOK)
		return tmpl.Execute(w, data)
	}
}
