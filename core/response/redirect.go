package response

import (
	"net/http"

	"github.com/mrCamelCode/potami/core/handler"
)

// redirect builds a response delegating to http.Redirect. Statuses outside
// the 3xx range fall back to 302 Found.
func redirect(url string, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if status < 300 || status >= 400 {
			status = http.StatusFound
		}
		http.Redirect(w, r, url, status)
		return nil
	}
}

// Redirect creates a 302 Found response, the common temporary redirect.
func Redirect(url string) handler.Response {
	return redirect(url, http.StatusFound)
}

// RedirectPermanent creates a 301 Moved Permanently response.
func RedirectPermanent(url string) handler.Response {
	return redirect(url, http.StatusMovedPermanently)
}

// RedirectSeeOther creates a 303 See Other response, typically used after a
// POST to send the client to a GET location.
func RedirectSeeOther(url string) handler.Response {
	return redirect(url, http.StatusSeeOther)
}

// RedirectTemporary creates a 307 Temporary Redirect response. Unlike 302 it
// preserves the request method.
func RedirectTemporary(url string) handler.Response {
	return redirect(url, http.StatusTemporaryRedirect)
}

// RedirectPermanentPreserve creates a 308 Permanent Redirect response. Like
// 301 but preserves the request method.
func RedirectPermanentPreserve(url string) handler.Response {
	return redirect(url, http.StatusPermanentRedirect)
}

// RedirectWithStatus creates a redirect with a custom 3xx status code.
func RedirectWithStatus(url string, status int) handler.Response {
	return redirect(url, status)
}
