package response

import (
	"net/http"

	"github.com/mrCamelCode/potami/core/handler"
)

const (
	contentTypeText = "text/plain; charset=utf-8"
	contentTypeHTML = "text/html; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"
)

// Render executes the given response with the provided context. If the
// response fails to render, it degrades to a plain 500 so the connection is
// never left without an answer.
func Render(ctx handler.Context, resp handler.Response) {
	if err := resp(ctx.ResponseWriter(), ctx.Request()); err != nil {
		http.Error(ctx.ResponseWriter(), err.Error(), http.StatusInternalServerError)
	}
}

// write builds a response emitting the given content type, status and body.
// A zero status defaults to 200 OK.
func write(contentType string, status int, body []byte) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		if status == 0 {
			status = http.StatusOK
		}
		w.WriteHeader(status)
		if len(body) > 0 {
			_, err := w.Write(body)
			return err
		}
		return nil
	}
}

// String creates a text/plain response with 200 OK status.
func String(content string) handler.Response {
	return write(contentTypeText, http.StatusOK, []byte(content))
}

// StringWithStatus creates a text/plain response with a custom status code.
func StringWithStatus(content string, status int) handler.Response {
	return write(contentTypeText, status, []byte(content))
}

// HTML creates a text/html response with 200 OK status.
func HTML(content string) handler.Response {
	return write(contentTypeHTML, http.StatusOK, []byte(content))
}

// HTMLWithStatus creates a text/html response with a custom status code.
func HTMLWithStatus(content string, status int) handler.Response {
	return write(contentTypeHTML, status, []byte(content))
}

// Bytes creates a response with a custom content type and 200 OK status.
func Bytes(content []byte, contentType string) handler.Response {
	return write(contentType, http.StatusOK, content)
}

// BytesWithStatus creates a response with a custom content type and status code.
func BytesWithStatus(content []byte, contentType string, status int) handler.Response {
	return write(contentType, status, content)
}

// NoContent creates a 204 No Content response.
func NoContent() handler.Response {
	return write("", http.StatusNoContent, nil)
}

// Status creates an empty response with the specified status code.
func Status(code int) handler.Response {
	return write("", code, nil)
}
