// Package validator builds declarative validation out of small Rule values.
//
// Each rule pairs a Check func with the ValidationError reported when the
// check fails. Apply evaluates every rule and returns the failures as a
// ValidationErrors value, which implements error:
//
//	err := validator.Apply(
//		validator.RequiredString("name", name),
//		validator.MaxLenString("name", name, 256),
//		validator.ValidEmail("email", email),
//	)
//	if errs := validator.ExtractValidationErrors(err); errs != nil {
//		// errs.Get("email") ...
//	}
//
// Rules are stateless and safe for concurrent use.
package validator
