package binder

import (
	"fmt"
	"net/http"
)

// DefaultMaxMemory bounds in-memory parsing of multipart forms.
const DefaultMaxMemory = 10 << 20

const formMediaTypes = "application/x-www-form-urlencoded or multipart/form-data"

// Form binds form values into the struct pointed to by v.
func Form() func(r *http.Request, v any) error {
	return func(r *http.Request, v any) error {
		mt, err := mediaType(r, formMediaTypes)
		if err != nil {
			return err
		}

		var values map[string][]string
		switch mt {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
			}
			values = r.PostForm
		case "multipart/form-data":
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
			}
			values = r.MultipartForm.Value
		default:
			return fmt.Errorf("%w: got %s, expected %s", ErrUnsupportedMediaType, mt, formMediaTypes)
		}

		return bindToStruct(v, "form", values, ErrFailedToParseForm)
	}
}
