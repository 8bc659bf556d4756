package query

import (
	"strings"

	"moviedb/errs"
)

// FieldError is a single constraint violation on an input field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// FieldErrors renders as one "field: message" line per violation, each line
// terminated by a newline.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	var b strings.Builder
	for _, e := range fe {
		b.WriteString(e.Error())
		b.WriteByte('\n')
	}
	return b.String()
}

func (fe FieldErrors) Has(field string) bool {
	for _, e := range fe {
		if e.Field == field {
			return true
		}
	}
	return false
}

// Err converts the violations into an invalid application error, or nil.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return errs.Errorf(errs.EINVALID, "%s", fe.Error())
}
