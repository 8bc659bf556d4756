package httpserver

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"moviedb/pkg/query"
	"moviedb/principal"
	"moviedb/title"
)

var (
	tconstPattern = regexp.MustCompile(`^tt[0-9]{7,}$`)
	nconstPattern = regexp.MustCompile(`^nm[0-9]{7,}$`)
)

type CustomValidator struct {
	validate *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("tconst", matches(tconstPattern))
	_ = v.RegisterValidation("nconst", matches(nconstPattern))
	v.RegisterAlias("titletype", "oneof="+strings.Join(title.Types, " "))
	v.RegisterAlias("category", "oneof="+strings.Join(principal.Categories, " "))
	registerRangeRules(v)
	return &CustomValidator{validate: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.FieldErrors(i).Err()
}

// FieldErrors reports every violation as a "path: message" pair. Paths use
// the json names, without the root struct.
func (cv *CustomValidator) FieldErrors(i interface{}) query.FieldErrors {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}
	ves, ok := err.(validator.ValidationErrors)
	if !ok {
		return query.FieldErrors{{Field: "body", Message: err.Error()}}
	}
	out := make(query.FieldErrors, 0, len(ves))
	for _, fe := range ves {
		out = append(out, query.FieldError{Field: fieldPath(fe), Message: message(fe)})
	}
	return out
}

func matches(re *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		if fl.Field().Kind() != reflect.String {
			return false
		}
		return re.MatchString(fl.Field().String())
	}
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.ActualTag() {
	case "required":
		return query.MsgRequired
	case "notblank":
		return "must not be blank"
	case "min":
		return sized(fe, "at least")
	case "max":
		return sized(fe, "at most")
	case "len":
		return sized(fe, "exactly")
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	case "excludes":
		return fmt.Sprintf("must not contain %q", fe.Param())
	case "gtefield":
		return "must be greater than or equal to " + fe.Param()
	case "tconst", "nconst":
		return "must be a valid " + fe.ActualTag()
	}
	return "failed on " + fe.Tag()
}

// sized words a size bound for the kind of the field.
func sized(fe validator.FieldError, bound string) string {
	switch fe.Kind() {
	case reflect.String:
		return fmt.Sprintf("must be %s %s characters long", bound, fe.Param())
	case reflect.Slice, reflect.Array, reflect.Map:
		if fe.Param() == "1" {
			return fmt.Sprintf("must contain %s 1 item", bound)
		}
		return fmt.Sprintf("must contain %s %s items", bound, fe.Param())
	}
	return fmt.Sprintf("must be %s %s", bound, fe.Param())
}

// yearRange is one "hi must not be below lo" rule between two *int fields.
type yearRange struct {
	lo, hi         func(v reflect.Value) *int
	hiName, loName string
	hiField        string
}

func intField(name string) func(v reflect.Value) *int {
	return func(v reflect.Value) *int {
		f := v.FieldByName(name)
		if !f.IsValid() || f.IsNil() {
			return nil
		}
		n := int(f.Elem().Int())
		return &n
	}
}

func rangeRule(loField, loName, hiField, hiName string) yearRange {
	return yearRange{
		lo:      intField(loField),
		hi:      intField(hiField),
		loName:  loName,
		hiName:  hiName,
		hiField: hiField,
	}
}

// registerRangeRules attaches cross-field rules. A violation is reported on
// the dependent field.
func registerRangeRules(v *validator.Validate) {
	rules := []struct {
		typ   interface{}
		rules []yearRange
	}{
		{TitleQuery{}, []yearRange{
			rangeRule("Since", "since", "Until", "until"),
			rangeRule("MinRuntime", "minRuntime", "MaxRuntime", "maxRuntime"),
		}},
		{PersonQuery{}, []yearRange{rangeRule("BornSince", "bornSince", "BornUntil", "bornUntil")}},
		{CreateTitleRequest{}, []yearRange{rangeRule("StartYear", "startYear", "EndYear", "endYear")}},
		{UpdateTitleRequest{}, []yearRange{rangeRule("StartYear", "startYear", "EndYear", "endYear")}},
		{CreatePersonRequest{}, []yearRange{rangeRule("BirthYear", "birthYear", "DeathYear", "deathYear")}},
		{UpdatePersonRequest{}, []yearRange{rangeRule("BirthYear", "birthYear", "DeathYear", "deathYear")}},
	}
	for _, entry := range rules {
		rs := entry.rules
		v.RegisterStructValidation(func(sl validator.StructLevel) {
			cur := sl.Current()
			for _, r := range rs {
				lo, hi := r.lo(cur), r.hi(cur)
				if lo != nil && hi != nil && *hi < *lo {
					sl.ReportError(*hi, r.hiName, r.hiField, "gtefield", r.loName)
				}
			}
		}, entry.typ)
	}
}
