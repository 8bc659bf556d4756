package query

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	MsgRequired = "must be provided"
	MsgInteger  = "must be a valid integer"
	MsgBoolean  = "must be a valid boolean"
)

// ParseInt coerces a query string value into an int.
func ParseInt(field, raw string) (int, *FieldError) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &FieldError{Field: field, Message: MsgInteger}
	}
	return n, nil
}

// ParseBool accepts true/false and 1/0, case-insensitive.
func ParseBool(field, raw string) (bool, *FieldError) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, &FieldError{Field: field, Message: MsgBoolean}
}

// SortField is one sort key. Desc is set by a leading "-" on the token.
type SortField struct {
	Field string
	Desc  bool
}

// ParseSort turns tokens such as "-startYear,primaryTitle" into sort keys.
// Tokens may be comma separated or repeated. Only allowed fields are accepted.
func ParseSort(field string, tokens []string, allowed ...string) ([]SortField, *FieldError) {
	var out []SortField
	for _, token := range tokens {
		for _, part := range strings.Split(token, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			sf := SortField{Field: part}
			if strings.HasPrefix(part, "-") {
				sf = SortField{Field: part[1:], Desc: true}
			} else if strings.HasPrefix(part, "+") {
				sf.Field = part[1:]
			}
			if !contains(allowed, sf.Field) {
				return nil, &FieldError{
					Field:   field,
					Message: fmt.Sprintf("must be one of [%s] optionally prefixed with -", strings.Join(allowed, " ")),
				}
			}
			out = append(out, sf)
		}
	}
	return out, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
