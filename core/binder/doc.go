// Package binder decodes HTTP request data into Go structs.
//
// Each binder extracts one source of request data: JSON bodies, form
// bodies (urlencoded and multipart), query strings, and route
// parameters. Binders compose, so a single call populates a struct
// from several sources at once:
//
//	type updateProfileRequest struct {
//		ID     string                `path:"id"`
//		Notify bool                  `query:"notify"`
//		Name   string                `json:"name"`
//		Avatar *multipart.FileHeader `file:"avatar"`
//	}
//
//	func updateProfile(ctx handler.Context) handler.Response {
//		var req updateProfileRequest
//		if err := binder.Bind(ctx.Request(), &req,
//			binder.Path(ctx.Param),
//			binder.Query(),
//			binder.JSON(),
//		); err != nil {
//			return response.Error(err)
//		}
//		// ...
//	}
//
// Binders run in order and binding stops at the first error.
//
// # Tags
//
// Query and path binding fall back to the lowercased field name when no
// tag is present; use `query:"-"` or `path:"-"` to skip a field. Form
// and file binding only touch explicitly tagged fields, since form
// bodies routinely carry CSRF tokens and other fields the handler never
// wants materialized.
//
// Struct fields may be strings, booleans, any integer or float type,
// pointers to those, or slices of them. Slice fields accept repeated
// parameters as well as comma-separated values. Boolean fields accept
// the strconv spellings plus "on"/"yes" and "off"/"no", so checkboxes
// bind without special handling.
//
// # Body limits
//
// JSON reads at most one megabyte by default and rejects unknown
// fields. Both are tunable:
//
//	binder.JSON(
//		binder.WithMaxBodySize(64<<10),
//		binder.WithAllowUnknownFields(),
//	)
//
// Multipart forms buffer up to 10 MB in memory before spilling to disk.
// Uploaded file names are reduced to a safe base name before binding;
// pair file fields with the bodylimit middleware to cap the overall
// request size.
package binder
