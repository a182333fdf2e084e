// Package response provides constructors for the handler.Response closures
// handlers return: plain text, HTML, JSON, templates, files, redirects,
// streaming bodies, WebSocket upgrades, and structured HTTP errors, plus
// the error handlers the router uses to render failures.
//
// # Basic Responses
//
//	func health(ctx handler.Context) handler.Response {
//		return response.String("ok")
//	}
//
//	func create(ctx handler.Context) handler.Response {
//		return response.JSONWithStatus(item, http.StatusCreated)
//	}
//
// Constructors exist in pairs: the plain form answers 200 OK, the WithStatus
// form takes an explicit code. NoContent and Status cover bodyless replies,
// Bytes covers custom content types.
//
// # Errors
//
// Error propagates an error to the router's error handler instead of writing
// anything itself:
//
//	func show(ctx handler.Context) handler.Response {
//		item, err := load(ctx.Param("id"))
//		if err != nil {
//			return response.Error(response.ErrNotFound.WithError(err))
//		}
//		return response.JSON(item)
//	}
//
// HTTPError carries a status, a machine-readable code, a message, and
// optional details. The predefined values (ErrBadRequest, ErrNotFound, ...)
// cover the common statuses; WithMessage, WithDetails, and WithError derive
// customized copies. ErrorHandler renders errors as plain text,
// JSONErrorHandler as structured JSON; both convert arbitrary errors through
// the predefined set, honoring a StatusCode() int method when the error
// provides one.
//
// # Redirects
//
//	return response.RedirectSeeOther("/login")
//
// Redirect (302), RedirectPermanent (301), RedirectSeeOther (303),
// RedirectTemporary (307), and RedirectPermanentPreserve (308) delegate to
// http.Redirect; RedirectWithStatus accepts any 3xx code.
//
// # Templates and Files
//
// Template and TemplateName render html/template values, buffered so a
// failing template becomes an error instead of a torn page; TemplateStream
// trades that safety for unbuffered output. File and Download serve from
// disk through http.ServeFile, Attachment and FileReader serve generated
// content, CSV encodes records on the fly:
//
//	return response.Download("/var/exports/report.pdf", "report.pdf")
//
// # Streaming
//
// Stream hands the body writer to a callback, StreamJSON emits
// newline-delimited JSON from a channel, and SSE speaks the
// text/event-stream protocol with keep-alive and reconnection directives:
//
//	return response.SSE(events, response.WithSSEEventName("update"))
//
// # WebSockets
//
// WebSocket upgrades the request and runs a message loop on the connection:
//
//	func ws(ctx handler.Context) handler.Response {
//		return response.WebSocket(func(ctx context.Context, conn *websocket.Conn) error {
//			for {
//				mt, msg, err := conn.ReadMessage()
//				if err != nil {
//					return nil
//				}
//				if err := conn.WriteMessage(mt, process(msg)); err != nil {
//					return err
//				}
//			}
//		}, response.WithWSAllowAnyOrigin())
//	}
//
// # Decorators
//
// WithHeaders, WithCookie, and WithCache wrap an existing response with
// headers applied before it renders:
//
//	return response.WithCache(response.JSON(catalog), 5*time.Minute)
package response
