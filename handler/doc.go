// Package handler turns typed request handlers into http.HandlerFunc.
//
// A HandlerFunc receives a Context and a request value populated by the
// configured binders, and returns a Response that renders itself:
//
//	type loginRequest struct {
//		Username string        `form:"username"`
//		Password secret.String `form:"password"`
//	}
//
//	r.Post("/login", handler.Wrap(
//		func(ctx handler.Context, req loginRequest) handler.Response {
//			return handler.Redirect("/admin/dashboard")
//		},
//		handler.WithBinders[loginRequest](binder.Form()),
//		handler.WithErrorHandler[loginRequest](handler.NewErrorHandler(log)),
//	))
//
// Binding and rendering failures go to the ErrorHandler. HTTPError values
// decide the status code; any other error becomes a 500 without its cause
// being exposed to the client.
package handler
