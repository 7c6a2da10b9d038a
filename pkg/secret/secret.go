package secret

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// Redacted is rendered in place of the payload.
const Redacted = "[REDACTED]"

// String holds a sensitive string value.
type String struct {
	value string
}

// New wraps v.
func New(v string) String {
	return String{value: v}
}

// Expose returns the wrapped value.
func (s String) Expose() string {
	return s.value
}

// IsEmpty reports whether the wrapped value is empty.
func (s String) IsEmpty() bool {
	return s.value == ""
}

// String implements fmt.Stringer.
func (s String) String() string {
	return Redacted
}

// GoString implements fmt.GoStringer so %#v stays redacted.
func (s String) GoString() string {
	return "secret.String{" + Redacted + "}"
}

// Format keeps every fmt verb redacted, including %x and %q.
func (s String) Format(f fmt.State, verb rune) {
	switch verb {
	case 'v':
		if f.Flag('#') {
			_, _ = fmt.Fprint(f, s.GoString())
			return
		}
		_, _ = fmt.Fprint(f, Redacted)
	case 'q':
		_, _ = fmt.Fprintf(f, "%q", Redacted)
	default:
		_, _ = fmt.Fprint(f, Redacted)
	}
}

// LogValue implements slog.LogValuer.
func (s String) LogValue() slog.Value {
	return slog.StringValue(Redacted)
}

// MarshalJSON implements json.Marshaler.
func (s String) MarshalJSON() ([]byte, error) {
	return json.Marshal(Redacted)
}

// UnmarshalJSON accepts a plain JSON string.
func (s *String) UnmarshalJSON(data []byte) error {
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	s.value = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s String) MarshalText() ([]byte, error) {
	return []byte(Redacted), nil
}

// UnmarshalText lets form binders populate a String.
func (s *String) UnmarshalText(text []byte) error {
	s.value = string(text)
	return nil
}
