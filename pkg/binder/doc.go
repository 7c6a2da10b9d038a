// Package binder decodes HTTP request bodies into structs.
//
// Form binds application/x-www-form-urlencoded and multipart/form-data values
// using `form:"name"` tags. JSON decodes application/json bodies strictly:
// unknown fields and trailing data are rejected.
//
// Form fields may be strings, integers, floats, bools, slices and pointers of
// those, or any type implementing encoding.TextUnmarshaler, which lets
// secret.String receive passwords without an intermediate plain string field.
//
//	type LoginForm struct {
//		Username string        `form:"username"`
//		Password secret.String `form:"password"`
//	}
//
// Both binders have the signature func(*http.Request, any) error and plug into
// handler.WithBinders.
package binder
