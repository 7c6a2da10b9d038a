// Package sanitizer holds small string transforms applied to user input
// before it is validated or stored, and to personal data before it is logged.
//
// Transforms are plain func(string) string values, so they combine with
// Apply and Compose:
//
//	clean := sanitizer.Compose(
//		sanitizer.RemoveControlChars,
//		sanitizer.RemoveExtraWhitespace,
//	)
//	name := clean(raw)
package sanitizer
