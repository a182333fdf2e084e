package middleware

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/mrCamelCode/potami/core/handler"
	"github.com/mrCamelCode/potami/core/reqctx"
)

// maxAcceptLanguageLength caps header parsing; anything longer is not a
// browser.
const maxAcceptLanguageLength = 4096

var languageKey = reqctx.NewKey("")

// LanguageConfig configures language negotiation.
type LanguageConfig struct {
	// Skip bypasses the middleware for matching requests.
	Skip func(ctx handler.Context) bool

	// Available lists the language tags the application can serve. The
	// first entry is the fallback when nothing matches. Required.
	Available []string

	// Extractor overrides where the preference comes from, returning an
	// Accept-Language style value or a single tag. Use it to honor a
	// query parameter or a saved profile setting. Defaults to the
	// Accept-Language request header.
	Extractor func(ctx handler.Context) string
}

// Language negotiates the request language from Accept-Language against
// the available tags and exposes the winner through LanguageFromContext.
// The first available tag is the fallback.
func Language(available ...string) handler.Middleware {
	return LanguageWithConfig(LanguageConfig{Available: available})
}

// LanguageWithConfig is Language with custom settings. It panics when no
// available languages are configured.
func LanguageWithConfig(cfg LanguageConfig) handler.Middleware {
	if len(cfg.Available) == 0 {
		panic("middleware: language negotiation requires available languages")
	}

	return func(ctx handler.Context, set reqctx.Setter) handler.Response {
		if cfg.Skip != nil && cfg.Skip(ctx) {
			return nil
		}

		var preference string
		if cfg.Extractor != nil {
			preference = cfg.Extractor(ctx)
		} else {
			preference = ctx.Request().Header.Get("Accept-Language")
			ctx.ResponseWriter().Header().Add("Vary", "Accept-Language")
		}

		reqctx.Set(set, languageKey, negotiateLanguage(preference, cfg.Available))
		return nil
	}
}

// LanguageFromContext returns the negotiated language tag, or "" when
// the middleware did not run for this route.
func LanguageFromContext(ctx handler.Context) string {
	return reqctx.Value(ctx.Values(), languageKey)
}

type languageTag struct {
	code    string
	quality float64
}

// negotiateLanguage picks the best available tag for a preference string.
// Exact matches win over base matches ("en" against "en-US") across all
// quality tiers, and available order breaks ties.
func negotiateLanguage(preference string, available []string) string {
	tags := parseLanguageTags(preference)

	for _, tag := range tags {
		for _, lang := range available {
			if normalizeLanguageTag(lang) == tag.code {
				return lang
			}
		}
	}
	for _, tag := range tags {
		for _, lang := range available {
			if partialLanguageMatch(normalizeLanguageTag(lang), tag.code) {
				return lang
			}
		}
	}
	return available[0]
}

// parseLanguageTags splits an Accept-Language value into normalized tags
// sorted by quality, highest first and client order preserved on ties.
// Wildcards, malformed entries, and q=0 rejections are dropped.
func parseLanguageTags(header string) []languageTag {
	if header == "" {
		return nil
	}
	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	parts := strings.Split(header, ",")
	tags := make([]languageTag, 0, len(parts))
	for _, part := range parts {
		code, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		code = normalizeLanguageTag(code)
		if code == "" || code == "*" {
			continue
		}

		quality := 1.0
		if params != "" {
			qparam, _, _ := strings.Cut(params, ";")
			value, ok := strings.CutPrefix(strings.TrimSpace(qparam), "q=")
			if !ok {
				continue
			}
			q, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err != nil || q < 0 || q > 1 {
				continue
			}
			quality = q
		}
		if quality == 0 {
			continue
		}
		tags = append(tags, languageTag{code: code, quality: quality})
	}

	slices.SortStableFunc(tags, func(a, b languageTag) int {
		return cmp.Compare(b.quality, a.quality)
	})
	return tags
}

func normalizeLanguageTag(tag string) string {
	return strings.ToLower(strings.TrimSpace(tag))
}

// partialLanguageMatch reports whether one tag is a base of the other,
// so "en" covers "en-us" and the reverse.
func partialLanguageMatch(a, b string) bool {
	return strings.HasPrefix(a, b+"-") || strings.HasPrefix(b, a+"-")
}
