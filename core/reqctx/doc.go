// Package reqctx implements the request-scoped context propagation engine:
// typed keys, per-request registries of scoped values, and the bound
// getter/setter views the request pipeline hands to middleware and handlers.
//
// Every incoming request owns exactly one Registry. Middleware running at
// different pipeline stages write values at different scope paths, and reads
// resolve from the deepest scope toward the root, so a handler group can
// override a value set globally without affecting sibling groups.
//
// # Keys
//
// A Key pairs a process-unique identity with a default value. Keys are
// created once at startup and shared across requests:
//
//	var currentUser = reqctx.NewKey[*User](nil)
//	var requestID = reqctx.NewKey("")
//
// Two keys never alias, even when constructed with identical defaults, so
// packages can declare private keys without coordinating names.
//
// # Scopes
//
// Scope paths are ordered lists of opaque string identifiers. The empty path
// is the root scope shared by the whole request; each additional segment
// addresses a nested scope. The router uses one segment per handler group,
// nesting groups into multi-segment paths, but the engine itself attaches no
// meaning to the identifiers.
//
//	reqctx.Register(r, requestID, "abc-123")            // root scope
//	reqctx.Register(r, currentUser, u, groupID)         // one group deep
//	reqctx.Register(r, currentUser, v, outerID, innerID) // nested group
//
// # Resolution
//
// Get walks the scope path from the root and returns the value at the deepest
// reachable node, falling back to the nearest ancestor that holds a value and
// finally to the key's default:
//
//	reqctx.Register(r, limit, 100)
//	reqctx.Register(r, limit, 10, "admin")
//
//	reqctx.Get(r, limit)                    // 100
//	reqctx.Get(r, limit, "admin")           // 10
//	reqctx.Get(r, limit, "billing")         // 100 (no value there, root wins)
//	reqctx.Get(r, limit, "admin", "nested") // 10 (nearest ancestor)
//
// Unknown keys resolve to their default and unknown path segments simply stop
// the walk early; reads never fail.
//
// # Removal
//
// RemoveScope discards a scope and everything nested beneath it. Ancestors
// and siblings are untouched, and removing a path that was never written is
// a no-op:
//
//	reqctx.RemoveScope(r, limit, "admin") // "admin" subtree gone
//	reqctx.RemoveScope(r, limit)          // forget the key entirely
//
// # Bound views
//
// The pipeline does not expose the registry directly. Each stage receives a
// view bound to its scope path: middleware get a Setter (and can derive the
// matching Getter), terminal handlers get only a Getter. Writing is therefore
// impossible from a handler by construction rather than by runtime checks.
//
//	func authMiddleware(ctx handler.Context, set reqctx.Setter) handler.Response {
//		user, err := lookup(ctx.Request())
//		if err != nil {
//			return response.Error(err)
//		}
//		reqctx.Set(set, currentUser, user)
//		return nil
//	}
//
//	func profileHandler(ctx handler.Context) handler.Response {
//		user := reqctx.Value(ctx.Values(), currentUser)
//		return response.JSON(user)
//	}
//
// # Concurrency
//
// A registry belongs to one request and pipeline stages within a request run
// strictly sequentially, so the registry performs no locking. Keys carry no
// mutable state and are safe to share between any number of concurrent
// requests.
package reqctx
