package router

import (
	"github.com/mrCamelCode/potami/core/handler"
)

// Router is the registration surface shared by the mux and its groups.
type Router interface {
	// Get registers a handler for GET requests matching pattern.
	Get(pattern string, h handler.HandlerFunc)
	// Post registers a handler for POST requests matching pattern.
	Post(pattern string, h handler.HandlerFunc)
	// Put registers a handler for PUT requests matching pattern.
	Put(pattern string, h handler.HandlerFunc)
	// Delete registers a handler for DELETE requests matching pattern.
	Delete(pattern string, h handler.HandlerFunc)
	// Patch registers a handler for PATCH requests matching pattern.
	Patch(pattern string, h handler.HandlerFunc)
	// Head registers a handler for HEAD requests matching pattern.
	Head(pattern string, h handler.HandlerFunc)
	// Options registers a handler for OPTIONS requests matching pattern.
	Options(pattern string, h handler.HandlerFunc)
	// Connect registers a handler for CONNECT requests matching pattern.
	Connect(pattern string, h handler.HandlerFunc)
	// Trace registers a handler for TRACE requests matching pattern.
	Trace(pattern string, h handler.HandlerFunc)

	// Handle registers a handler for every HTTP method on pattern.
	Handle(pattern string, h handler.HandlerFunc)
	// Method registers a handler for a single explicit method on pattern.
	Method(method, pattern string, h handler.HandlerFunc)

	// Use appends middleware to this registration surface. On the mux the
	// middleware become entry middleware and observe every request; on a
	// group they run only for routes registered through that group, with
	// values scoped to the group.
	Use(mw ...handler.Middleware)

	// Group creates a nested registration surface under prefix with its
	// own identity, middleware, and value scope. The prefix may be empty
	// for a group that only adds middleware and scoping.
	Group(prefix string, fn func(r Router)) Router

	// Routes lists the routes registered through this surface.
	Routes() []Route
}

// Route describes a registered route.
type Route struct {
	Method  string
	Pattern string
}
