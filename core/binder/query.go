package binder

import "net/http"

// Query binds URL query parameters via the `query` tag. Untagged fields
// default to their lowercased name; `query:"-"` skips a field.
//
//	type SearchRequest struct {
//		Query string   `query:"q"`
//		Page  int      `query:"page"`
//		Tags  []string `query:"tags"` // ?tags=go&tags=web or ?tags=go,web
//	}
func Query() Binder {
	return func(r *http.Request, v any) error {
		return bindToStruct(v, "query", r.URL.Query(), ErrFailedToParseQuery)
	}
}
