package query

import (
	"fmt"
	"net/url"
)

// Values reads loosely typed query parameters into typed values, collecting
// every coercion failure instead of stopping at the first one. Absent keys
// yield nil; present but malformed keys always produce an error.
type Values struct {
	values url.Values
	errs   FieldErrors
}

func NewValues(v url.Values) *Values {
	return &Values{values: v}
}

func (v *Values) has(field string) bool {
	_, ok := v.values[field]
	return ok
}

func (v *Values) String(field string) *string {
	if !v.has(field) {
		return nil
	}
	s := v.values.Get(field)
	return &s
}

// Strings returns every value of a repeated key, so "genre=a" and
// "genre=a&genre=b" both normalize to a slice.
func (v *Values) Strings(field string) []string {
	if !v.has(field) {
		return nil
	}
	out := make([]string, 0, len(v.values[field]))
	out = append(out, v.values[field]...)
	return out
}

func (v *Values) Int(field string) *int {
	if !v.has(field) {
		return nil
	}
	n, fe := ParseInt(field, v.values.Get(field))
	if fe != nil {
		v.errs = append(v.errs, *fe)
		return nil
	}
	return &n
}

func (v *Values) Bool(field string) *bool {
	if !v.has(field) {
		return nil
	}
	b, fe := ParseBool(field, v.values.Get(field))
	if fe != nil {
		v.errs = append(v.errs, *fe)
		return nil
	}
	return &b
}

// Required records a violation when field is absent.
func (v *Values) Required(field string) {
	if !v.has(field) {
		v.errs = append(v.errs, FieldError{Field: field, Message: MsgRequired})
	}
}

// Page reads page/limit. Defaults only apply when a key is absent.
func (v *Values) Page() Page {
	p := Page{Page: DefaultPage, Limit: DefaultLimit}
	if n := v.Int("page"); n != nil {
		p.Page = *n
		if p.Page < 1 {
			v.errs = append(v.errs, FieldError{Field: "page", Message: "must be at least 1"})
		}
	}
	if n := v.Int("limit"); n != nil {
		p.Limit = *n
		switch {
		case p.Limit < 1:
			v.errs = append(v.errs, FieldError{Field: "limit", Message: "must be at least 1"})
		case p.Limit > MaxLimit:
			v.errs = append(v.errs, FieldError{Field: "limit", Message: fmt.Sprintf("must be at most %d", MaxLimit)})
		}
	}
	return p
}

func (v *Values) Sort(allowed ...string) []SortField {
	if !v.has("sort") {
		return nil
	}
	sort, fe := ParseSort("sort", v.values["sort"], allowed...)
	if fe != nil {
		v.errs = append(v.errs, *fe)
		return nil
	}
	return sort
}

// Add records an externally detected violation.
func (v *Values) Add(field, message string) {
	v.errs = append(v.errs, FieldError{Field: field, Message: message})
}

func (v *Values) Errors() FieldErrors {
	return v.errs
}
