package errs

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	ECONFLICT       = "conflict"
	EINTERNAL       = "internal"
	EINVALID        = "invalid"
	ENOTFOUND       = "not_found"
	ENOTIMPLEMENTED = "not_implemented"
	EUNAUTHORIZED   = "unauthorized"
	EUNAVAILABLE    = "unavailable"
)

// Error represents an application-specific error. Message is safe to show to clients.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("application error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode returns the code of the root application error, if available.
// Otherwise returns EINTERNAL.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the message of the application error, if available.
// Otherwise returns a generic message.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// NotFound builds the not_found error used across resources: "<Entity> not found: k1=v1, k2=v2".
func NotFound(entity string, keys ...interface{}) *Error {
	return Errorf(ENOTFOUND, "%s not found: %s", entity, Pairs(keys...))
}

// Pairs renders alternating key/value arguments as "k1=v1, k2=v2".
func Pairs(keys ...interface{}) string {
	out := ""
	for i := 0; i+1 < len(keys); i += 2 {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%v=%v", keys[i], keys[i+1])
	}
	return out
}
