package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"reflect"
	"strings"

	"github.com/labstack/echo/v4"

	"moviedb/errs"
	"moviedb/pkg/query"
)

var errInvalidJSON = query.FieldErrors{{Field: "body", Message: "must be valid JSON"}}.Err()

// JSONBinder decodes request bodies. An empty body decodes as {} so that
// required fields are reported by the validator instead of as a syntax
// error. Type mismatches are returned as query.FieldErrors, one per
// offending field, while the remaining fields still decode.
type JSONBinder struct{}

func (JSONBinder) Bind(i interface{}, c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return errs.Errorf(errs.EINVALID, "body: %s\n", err.Error())
	}
	if len(bytes.TrimSpace(body)) == 0 {
		body = []byte("{}")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return query.FieldErrors{{Field: "body", Message: "must be " + typeName(typeErr.Type) + " type"}}
		}
		return errInvalidJSON
	}

	// A failing Unmarshaler aborts the whole decode, so each offending key
	// is dropped and the body decoded again.
	var fe query.FieldErrors
	for {
		reset(i)
		err := json.Unmarshal(body, i)
		if err == nil {
			break
		}
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return errInvalidJSON
		}
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		fe = append(fe, query.FieldError{Field: field, Message: "must be " + typeName(typeErr.Type) + " type"})

		key, ok := topLevelKey(fields, field)
		if !ok {
			break
		}
		delete(fields, key)
		if body, err = json.Marshal(fields); err != nil {
			return errInvalidJSON
		}
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// topLevelKey finds the body key a decode error path starts with. Keys
// match case-insensitively, as encoding/json matches them.
func topLevelKey(fields map[string]json.RawMessage, path string) (string, bool) {
	head := strings.SplitN(path, ".", 2)[0]
	if i := strings.IndexByte(head, '['); i >= 0 {
		head = head[:i]
	}
	if _, ok := fields[head]; ok {
		return head, true
	}
	for k := range fields {
		if strings.EqualFold(k, head) {
			return k, true
		}
	}
	return "", false
}

func reset(i interface{}) {
	v := reflect.ValueOf(i)
	if v.Kind() == reflect.Ptr && !v.IsNil() {
		v.Elem().Set(reflect.Zero(v.Elem().Type()))
	}
}

var stringListType = reflect.TypeOf(StringList{})

func typeName(t reflect.Type) string {
	if t == nil {
		return "a valid"
	}
	if t == stringListType {
		return "a string or array"
	}
	switch t.Kind() {
	case reflect.Ptr:
		return typeName(t.Elem())
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Slice, reflect.Array:
		return "an array"
	case reflect.Map, reflect.Struct:
		return "an object"
	}
	return "a valid"
}

// StringList accepts either a single string or an array of strings.
type StringList []string

func (l *StringList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var one string
	if err := json.Unmarshal(b, &one); err == nil {
		*l = StringList{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(b, &many); err != nil {
		return &json.UnmarshalTypeError{Value: "value", Type: stringListType}
	}
	*l = many
	return nil
}

// bindBody decodes and validates the request body, reporting type and
// constraint violations together. A field with a type error is not
// reported twice.
func (s *Server) bindBody(c echo.Context, dst interface{}) error {
	var fe query.FieldErrors
	if err := c.Bind(dst); err != nil {
		if !errors.As(err, &fe) {
			return err
		}
	}
	return merge(fe, s.validator.FieldErrors(dst)).Err()
}

func merge(first, second query.FieldErrors) query.FieldErrors {
	out := first
	for _, e := range second {
		if !first.Has(e.Field) {
			out = append(out, e)
		}
	}
	return out
}
