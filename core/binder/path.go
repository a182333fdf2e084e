package binder

import (
	"fmt"
	"net/http"
	"reflect"
)

// Path binds route parameters via the `path` tag using a lookup
// function, typically the Param method of the request's handler context:
//
//	type ProfileRequest struct {
//		UserID string `path:"id"`
//		Expand bool   `query:"expand"`
//	}
//
//	var req ProfileRequest
//	err := binder.Bind(ctx.Request(), &req,
//		binder.Path(ctx.Param),
//		binder.Query(),
//	)
//
// Untagged fields default to their lowercased name; missing parameters
// leave the field at its zero value.
func Path(param func(name string) string) Binder {
	return func(r *http.Request, v any) error {
		if param == nil {
			return fmt.Errorf("%w: nil param lookup", ErrFailedToParsePath)
		}

		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Pointer || rv.IsNil() {
			return fmt.Errorf("%w: target must be a non-nil pointer", ErrFailedToParsePath)
		}
		rv = rv.Elem()
		if rv.Kind() != reflect.Struct {
			return fmt.Errorf("%w: target must be a pointer to struct", ErrFailedToParsePath)
		}

		rt := rv.Type()
		for i := range rv.NumField() {
			field := rv.Field(i)
			fieldType := rt.Field(i)
			if !field.CanSet() {
				continue
			}

			name, skip := parseFieldTag(fieldType, "path")
			if skip {
				continue
			}

			value := param(name)
			if value == "" {
				continue
			}

			if err := setFieldValue(field, fieldType.Type, []string{value}); err != nil {
				return fmt.Errorf("%w: field %s: %v", ErrFailedToParsePath, fieldType.Name, err)
			}
		}
		return nil
	}
}
