package response

import (
	"net/http"

	"github.com/mrCamelCode/potami/core/handler"
)

// Error returns a response that propagates the given error to the router's
// error handler instead of writing anything itself. Use it to surface errors
// from handlers and middleware through the regular error rendering path.
func Error(err error) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		return err
	}
}
