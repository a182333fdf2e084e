package router

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mrCamelCode/potami/core/handler"
	"github.com/mrCamelCode/potami/core/reqctx"
)

// methodSet lists every HTTP method accepted at registration.
var methodSet = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodDelete:  {},
	http.MethodPatch:   {},
	http.MethodHead:    {},
	http.MethodOptions: {},
	http.MethodConnect: {},
	http.MethodTrace:   {},
}

// allMethods is the stable registration order used by Handle.
var allMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodPatch,
	http.MethodHead,
	http.MethodOptions,
	http.MethodConnect,
	http.MethodTrace,
}

// Mux routes requests through a flat middleware pipeline to a terminal
// handler. Each request gets a private value registry; pipeline stages
// write to it through scoped setters and handlers read from it through a
// scoped getter, so the registry needs no locking.
//
// Registration is not safe for concurrent use and must finish before the
// mux starts serving. Serving is safe for concurrent use.
type Mux struct {
	routes   []*route
	routeSet map[string]struct{}
	entry    []handler.Middleware

	errorHandler handler.ErrorHandler
	logger       *slog.Logger

	beforeRespond []BeforeRespondHook
	afterRespond  []AfterRespondHook
	onError       []ErrorHook
}

// New creates an empty Mux ready for route registration.
func New(opts ...Option) *Mux {
	m := &Mux{
		routeSet:     make(map[string]struct{}),
		errorHandler: defaultErrorHandler,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get registers a handler for GET requests matching pattern.
func (m *Mux) Get(pattern string, h handler.HandlerFunc) {
	m.register(http.MethodGet, pattern, h, nil)
}

// Post registers a handler for POST requests matching pattern.
func (m *Mux) Post(pattern string, h handler.HandlerFunc) {
	m.register(http.MethodPost, pattern, h, nil)
}

// Put registers a handler for PUT requests matching pattern.
func (m *Mux) Put(pattern string, h handler.HandlerFunc) {
	m.register(http.MethodPut, pattern, h, nil)
}

// Delete registers a handler for DELETE requests matching pattern.
func (m *Mux) Delete(pattern string, h handler.HandlerFunc) {
	m.register(http.MethodDelete, pattern, h, nil)
}

// Patch registers a handler for PATCH requests matching pattern.
func (m *Mux) Patch(pattern string, h handler.HandlerFunc) {
	m.register(http.MethodPatch, pattern, h, nil)
}

// Head registers a handler for HEAD requests matching pattern.
func (m *Mux) Head(pattern string, h handler.HandlerFunc) {
	m.register(http.MethodHead, pattern, h, nil)
}

// Options registers a handler for OPTIONS requests matching pattern.
func (m *Mux) Options(pattern string, h handler.HandlerFunc) {
	m.register(http.MethodOptions, pattern, h, nil)
}

// Connect registers a handler for CONNECT requests matching pattern.
func (m *Mux) Connect(pattern string, h handler.HandlerFunc) {
	m.register(http.MethodConnect, pattern, h, nil)
}

// Trace registers a handler for TRACE requests matching pattern.
func (m *Mux) Trace(pattern string, h handler.HandlerFunc) {
	m.register(http.MethodTrace, pattern, h, nil)
}

// Handle registers a handler for every HTTP method on pattern.
func (m *Mux) Handle(pattern string, h handler.HandlerFunc) {
	for _, method := range allMethods {
		m.register(method, pattern, h, nil)
	}
}

// Method registers a handler for a single explicit method on pattern.
// The method name is case-insensitive.
func (m *Mux) Method(method, pattern string, h handler.HandlerFunc) {
	m.register(strings.ToUpper(strings.TrimSpace(method)), pattern, h, nil)
}

// Use appends entry middleware. Entry middleware observe every request,
// before route resolution, and write values at the root scope.
func (m *Mux) Use(mw ...handler.Middleware) {
	m.entry = append(m.entry, mw...)
}

// Group creates a handler group under prefix. The group receives a fresh
// identity, so values written by its middleware stay invisible to
// sibling groups. The prefix may be empty for a group that only adds
// middleware and scoping.
func (m *Mux) Group(prefix string, fn func(r Router)) Router {
	return m.newGroup(nil, prefix, fn)
}

// Routes returns every registered route in registration order.
func (m *Mux) Routes() []Route {
	out := make([]Route, len(m.routes))
	for i, rt := range m.routes {
		out[i] = Route{Method: rt.method, Pattern: rt.pattern}
	}
	return out
}

// OnBeforeRespond registers a hook invoked after the pipeline produced a
// response and before it is written.
func (m *Mux) OnBeforeRespond(hook BeforeRespondHook) {
	if hook != nil {
		m.beforeRespond = append(m.beforeRespond, hook)
	}
}

// OnAfterRespond registers a hook invoked once the response has been
// written, with a summary of what was sent.
func (m *Mux) OnAfterRespond(hook AfterRespondHook) {
	if hook != nil {
		m.afterRespond = append(m.afterRespond, hook)
	}
}

// OnError registers a hook observing every error routed to the error
// handler, including recovered panics.
func (m *Mux) OnError(hook ErrorHook) {
	if hook != nil {
		m.onError = append(m.onError, hook)
	}
}

// register validates and stores a single route.
func (m *Mux) register(method, pattern string, h handler.HandlerFunc, g *group) {
	if _, ok := methodSet[method]; !ok {
		panic(fmt.Errorf("%w: %q", ErrInvalidMethod, method))
	}
	if h == nil {
		panic(fmt.Errorf("%w: %s %s", ErrNilHandler, method, pattern))
	}

	var chain []*group
	full := pattern
	if g != nil {
		chain = g.chain
		full = joinPattern(g.prefix, pattern)
	}

	segments, wildcard := compilePattern(full)
	key := method + " " + dupKey(segments, wildcard)
	if _, ok := m.routeSet[key]; ok {
		panic(fmt.Errorf("%w: %s %s", ErrDuplicateRoute, method, full))
	}
	m.routeSet[key] = struct{}{}

	m.routes = append(m.routes, &route{
		method:    method,
		pattern:   canonical(segments, wildcard),
		segments:  segments,
		wildcard:  wildcard,
		hasParams: hasParams(segments),
		handler:   h,
		groups:    chain,
	})
}

func (m *Mux) newGroup(parent *group, prefix string, fn func(Router)) *group {
	if fn == nil {
		panic(ErrNilGroup)
	}
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix != "" && prefix[0] != '/' {
		panic(fmt.Errorf("%w: group prefix %q must be empty or start with /", ErrInvalidPattern, prefix))
	}

	g := &group{
		mux: m,
		id:  uuid.NewString(),
	}
	if parent != nil {
		g.prefix = parent.prefix + prefix
		g.scope = append(append([]string(nil), parent.scope...), g.id)
		g.chain = append(append([]*group(nil), parent.chain...), g)
	} else {
		g.prefix = prefix
		g.scope = []string{g.id}
		g.chain = []*group{g}
	}
	fn(g)
	return g
}

// joinPattern prepends a group prefix to a route pattern. A root pattern
// collapses onto the prefix so Group("/api").Get("/") serves "/api".
func joinPattern(prefix, pattern string) string {
	if pattern == "" || pattern[0] != '/' {
		panic(fmt.Errorf("%w: %q must start with /", ErrInvalidPattern, pattern))
	}
	switch {
	case prefix == "":
		return pattern
	case pattern == "/":
		return prefix
	default:
		return prefix + pattern
	}
}

// match finds the first registered route accepting the request, in
// registration order. When patterns match but no method does, it returns
// the sorted set of allowed methods for a 405 response.
func (m *Mux) match(method string, segs []string) (*route, []string) {
	var allowed []string
	for _, rt := range m.routes {
		if !rt.matches(segs) {
			continue
		}
		if rt.method == method {
			return rt, nil
		}
		allowed = append(allowed, rt.method)
	}
	if len(allowed) > 1 {
		slices.Sort(allowed)
		allowed = slices.Compact(allowed)
	}
	return nil, allowed
}

// ServeHTTP drives the request pipeline: entry middleware, route
// resolution, group middleware from outermost to innermost, the terminal
// handler, and finally response rendering with its surrounding hooks.
func (m *Mux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := newResponseWriter(w)
	reg := reqctx.New()
	ctx := NewContext(ww, r, nil, reg.Getter())

	p := &pipeline{
		mux:   m,
		reg:   reg,
		ctx:   ctx,
		ww:    ww,
		req:   r,
		start: time.Now(),
	}
	defer p.finish()

	defer func() {
		v := recover()
		if v == nil {
			return
		}
		perr := &panicError{value: v, stack: debug.Stack()}
		if ww.Written() {
			// Too late to render an error response; surface it in logs.
			m.logger.ErrorContext(r.Context(), "panic after response was written",
				slog.Any("panic", perr.Value()),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.String("stack", string(perr.Stack())),
			)
			return
		}
		p.fail(perr)
	}()

	path := r.URL.Path
	if path == "" {
		path = "/"
	}
	segs := splitPath(path)

	// Entry middleware observe every request, whichever handler ends up
	// serving it.
	if resp := p.runStage(m.entry, nil); resp != nil {
		p.render(resp)
		return
	}

	rt, allowed := m.match(r.Method, segs)
	switch {
	case rt == nil && len(allowed) > 0:
		if !ww.Written() {
			ww.Header().Set("Allow", strings.Join(allowed, ", "))
		}
		p.fail(ErrMethodNotAllowed)
		return
	case rt == nil:
		p.fail(ErrNotFound)
		return
	}

	ctx.params = rt.capture(segs)

	// Group middleware run from the outermost group to the innermost,
	// each stage writing at its own scope.
	for _, g := range rt.groups {
		if resp := p.runStage(g.middlewares, g.scope); resp != nil {
			p.render(resp)
			return
		}
	}

	// The terminal handler gets a read-only view at the innermost scope.
	ctx.values = reg.Getter(rt.scope()...)
	resp := rt.handler(ctx)
	if resp == nil {
		p.fail(ErrNilResponse)
		return
	}
	p.render(resp)
}

// pipeline carries the per-request state ServeHTTP threads through its
// stages.
type pipeline struct {
	mux   *Mux
	reg   *reqctx.Registry
	ctx   *Context
	ww    *responseWriter
	req   *http.Request
	start time.Time

	beforeRan bool
}

// runStage executes one middleware list with a setter bound to scope.
// The context's read view is rebound to the same scope first, so the
// stage resolves values exactly where it writes them. A non-nil response
// short-circuits the rest of the pipeline.
func (p *pipeline) runStage(mws []handler.Middleware, scope []string) handler.Response {
	set := p.reg.Setter(scope...)
	p.ctx.values = set.Getter()
	for _, mw := range mws {
		if resp := mw(p.ctx, set); resp != nil {
			return resp
		}
	}
	return nil
}

// render writes a response, running before-respond hooks first and
// routing render failures through the error path.
func (p *pipeline) render(resp handler.Response) {
	p.before()
	if err := resp(p.ww, p.req); err != nil {
		p.fail(err)
	}
}

// fail notifies error hooks and lets the error handler render. The
// before-respond hooks still run so response-coupled state, such as a
// dirty session, is persisted even on error responses.
func (p *pipeline) fail(err error) {
	for _, hook := range p.mux.onError {
		hook(p.ctx, err)
	}
	p.before()
	p.mux.errorHandler(p.ctx, err)
}

// before runs the before-respond hooks exactly once per request.
func (p *pipeline) before() {
	if p.beforeRan {
		return
	}
	p.beforeRan = true
	for _, hook := range p.mux.beforeRespond {
		hook(p.ctx)
	}
}

// finish runs the after-respond hooks with the final request summary.
func (p *pipeline) finish() {
	if len(p.mux.afterRespond) == 0 {
		return
	}
	stat := RequestStat{
		Status:       p.ww.Status(),
		BytesWritten: p.ww.BytesWritten(),
		Duration:     time.Since(p.start),
	}
	for _, hook := range p.mux.afterRespond {
		hook(p.ctx, stat)
	}
}

// group is a nested registration surface with its own identity. Routes
// registered through it belong to its chain, and middleware attached to
// it write values at the group's scope.
type group struct {
	mux         *Mux
	id          string
	prefix      string
	scope       []string
	chain       []*group
	middlewares []handler.Middleware
}

// Get registers a handler for GET requests under the group prefix.
func (g *group) Get(pattern string, h handler.HandlerFunc) {
	g.mux.register(http.MethodGet, pattern, h, g)
}

// Post registers a handler for POST requests under the group prefix.
func (g *group) Post(pattern string, h handler.HandlerFunc) {
	g.mux.register(http.MethodPost, pattern, h, g)
}

// Put registers a handler for PUT requests under the group prefix.
func (g *group) Put(pattern string, h handler.HandlerFunc) {
	g.mux.register(http.MethodPut, pattern, h, g)
}

// Delete registers a handler for DELETE requests under the group prefix.
func (g *group) Delete(pattern string, h handler.HandlerFunc) {
	g.mux.register(http.MethodDelete, pattern, h, g)
}

// Patch registers a handler for PATCH requests under the group prefix.
func (g *group) Patch(pattern string, h handler.HandlerFunc) {
	g.mux.register(http.MethodPatch, pattern, h, g)
}

// Head registers a handler for HEAD requests under the group prefix.
func (g *group) Head(pattern string, h handler.HandlerFunc) {
	g.mux.register(http.MethodHead, pattern, h, g)
}

// Options registers a handler for OPTIONS requests under the group prefix.
func (g *group) Options(pattern string, h handler.HandlerFunc) {
	g.mux.register(http.MethodOptions, pattern, h, g)
}

// Connect registers a handler for CONNECT requests under the group prefix.
func (g *group) Connect(pattern string, h handler.HandlerFunc) {
	g.mux.register(http.MethodConnect, pattern, h, g)
}

// Trace registers a handler for TRACE requests under the group prefix.
func (g *group) Trace(pattern string, h handler.HandlerFunc) {
	g.mux.register(http.MethodTrace, pattern, h, g)
}

// Handle registers a handler for every HTTP method under the group prefix.
func (g *group) Handle(pattern string, h handler.HandlerFunc) {
	for _, method := range allMethods {
		g.mux.register(method, pattern, h, g)
	}
}

// Method registers a handler for a single explicit method under the
// group prefix. The method name is case-insensitive.
func (g *group) Method(method, pattern string, h handler.HandlerFunc) {
	g.mux.register(strings.ToUpper(strings.TrimSpace(method)), pattern, h, g)
}

// Use appends middleware to the group. Group middleware run only for
// routes registered through this group or its children, after the entry
// middleware and any ancestor group middleware.
func (g *group) Use(mw ...handler.Middleware) {
	g.middlewares = append(g.middlewares, mw...)
}

// Group creates a child group nested under this one.
func (g *group) Group(prefix string, fn func(r Router)) Router {
	return g.mux.newGroup(g, prefix, fn)
}

// Routes lists the routes registered through this group and its children.
func (g *group) Routes() []Route {
	var out []Route
	for _, rt := range g.mux.routes {
		if slices.Contains(rt.groups, g) {
			out = append(out, Route{Method: rt.method, Pattern: rt.pattern})
		}
	}
	return out
}
