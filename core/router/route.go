package router

import (
	"fmt"
	"strings"

	"github.com/mrCamelCode/potami/core/handler"
)

// segment is one compiled element of a route pattern: a literal that
// must match exactly, or a named parameter that captures a single path
// segment.
type segment struct {
	literal string
	param   string
}

// route is a registered method and pattern pair together with the group
// chain that owns it.
type route struct {
	method    string
	pattern   string
	segments  []segment
	wildcard  bool
	hasParams bool
	handler   handler.HandlerFunc
	groups    []*group
}

// scope returns the value scope the route's handler reads from: the
// identity path of its innermost group, or the root scope for routes
// registered directly on the mux.
func (rt *route) scope() []string {
	if len(rt.groups) == 0 {
		return nil
	}
	return rt.groups[len(rt.groups)-1].scope
}

// matches reports whether the compiled pattern accepts the request path
// segments. Parameters match any single non-empty segment; a wildcard
// accepts any remainder, including an empty one.
func (rt *route) matches(segs []string) bool {
	if rt.wildcard {
		if len(segs) < len(rt.segments) {
			return false
		}
	} else if len(segs) != len(rt.segments) {
		return false
	}
	for i, s := range rt.segments {
		if s.param != "" {
			if segs[i] == "" {
				return false
			}
			continue
		}
		if s.literal != segs[i] {
			return false
		}
	}
	return true
}

// capture extracts named parameters from a matching path, plus the "*"
// remainder for wildcard routes. Returns nil when the route captures
// nothing.
func (rt *route) capture(segs []string) map[string]string {
	if !rt.hasParams && !rt.wildcard {
		return nil
	}
	params := make(map[string]string, len(rt.segments)+1)
	for i, s := range rt.segments {
		if s.param != "" {
			params[s.param] = segs[i]
		}
	}
	if rt.wildcard {
		params["*"] = strings.Join(segs[len(rt.segments):], "/")
	}
	return params
}

// compilePattern parses a registration pattern into match segments.
// Patterns start with "/" and consist of literal segments, {name}
// parameters, and an optional trailing "*" capturing the rest of the
// path. Registration happens at startup, so invalid patterns panic.
func compilePattern(pattern string) (segments []segment, wildcard bool) {
	if pattern == "" || pattern[0] != '/' {
		panic(fmt.Errorf("%w: %q must start with /", ErrInvalidPattern, pattern))
	}

	parts := splitPath(pattern)
	seen := make(map[string]struct{})
	for i, part := range parts {
		switch {
		case part == "*":
			if i != len(parts)-1 {
				panic(fmt.Errorf("%w: wildcard in %q must be the final segment", ErrInvalidPattern, pattern))
			}
			wildcard = true
		case strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}"):
			name := part[1 : len(part)-1]
			if name == "" || strings.ContainsAny(name, "{}") {
				panic(fmt.Errorf("%w: bad parameter segment %q in %q", ErrInvalidPattern, part, pattern))
			}
			if _, dup := seen[name]; dup {
				panic(fmt.Errorf("%w: parameter %q repeats in %q", ErrInvalidPattern, name, pattern))
			}
			seen[name] = struct{}{}
			segments = append(segments, segment{param: name})
		case part == "":
			panic(fmt.Errorf("%w: empty segment in %q", ErrInvalidPattern, pattern))
		case strings.ContainsAny(part, "{}*"):
			panic(fmt.Errorf("%w: segment %q in %q mixes literal text with markers", ErrInvalidPattern, part, pattern))
		default:
			segments = append(segments, segment{literal: part})
		}
	}
	return segments, wildcard
}

// canonical renders compiled segments back into a normalized pattern
// string with parameter names preserved.
func canonical(segments []segment, wildcard bool) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		if s.param != "" {
			b.WriteString("{")
			b.WriteString(s.param)
			b.WriteString("}")
		} else {
			b.WriteString(s.literal)
		}
	}
	if wildcard {
		b.WriteString("/*")
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

// dupKey renders a pattern shape for duplicate detection. Parameter
// names are erased so "/users/{id}" and "/users/{uid}" collide, since
// they would accept exactly the same requests.
func dupKey(segments []segment, wildcard bool) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		if s.param != "" {
			b.WriteString("{}")
		} else {
			b.WriteString(s.literal)
		}
	}
	if wildcard {
		b.WriteString("/*")
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

// splitPath breaks a URL path into segments. The root path yields no
// segments, and a trailing slash is ignored so "/users" and "/users/"
// behave identically.
func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func hasParams(segments []segment) bool {
	for _, s := range segments {
		if s.param != "" {
			return true
		}
	}
	return false
}
