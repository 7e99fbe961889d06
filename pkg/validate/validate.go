// Package validate provides struct-tag validation for request payloads.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required            field must not be zero/empty
//	nullable            if empty, skip all remaining rules for this field
//	email               valid email address
//	numeric             any number
//	integer             whole number
//	min=N               string: min char length | number: min value
//	max=N               string: max char length | number: max value
//	gt=N                number > N
//	gte=N               number >= N
//	lt=N                number < N
//	lte=N               number <= N
//	in=a,b,c            value must be one of the listed items
//	alpha_dash          letters, digits, hyphens, underscores
//
// Example:
//
//	type Input struct {
//	    Name     string  `json:"name"     validate:"required,min=1,max=200"`
//	    Price    float64 `json:"price"    validate:"gte=0"`
//	    Quantity int     `json:"quantity" validate:"required,gt=0"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
)

var (
	emailRe     = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	alphaDashRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// Struct validates all exported fields of v that carry a `validate` tag.
// Returns a map of fieldName → error message; empty map means no errors.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return errs
	}

	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" || !field.IsExported() {
			continue
		}

		name := jsonName(field)
		value := rv.Field(i)

		if msg := checkField(value, tag); msg != "" {
			errs[name] = msg
		}
	}

	return errs
}

// HasErrors reports whether errs contains any validation failure.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

func jsonName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if tag == "" || tag == "-" {
		return field.Name
	}
	if idx := strings.IndexByte(tag, ','); idx >= 0 {
		tag = tag[:idx]
	}
	if tag == "" {
		return field.Name
	}
	return tag
}

func checkField(v reflect.Value, tag string) string {
	rules := strings.Split(tag, ",")

	for i, rule := range rules {
		rule = strings.TrimSpace(rule)
		key, arg, _ := strings.Cut(rule, "=")

		switch key {
		case "nullable":
			if isZero(v) {
				return "" // empty and nullable: skip everything else
			}
		case "required":
			if isZero(v) {
				return "is required"
			}
		case "email":
			if s, ok := asString(v); !ok || !emailRe.MatchString(s) {
				return "must be a valid email address"
			}
		case "alpha_dash":
			if s, ok := asString(v); !ok || !alphaDashRe.MatchString(s) {
				return "may only contain letters, numbers, dashes and underscores"
			}
		case "numeric", "integer":
			if _, ok := asNumber(v); !ok {
				return "must be a number"
			}
		case "in":
			// "in" consumes the rest of the rule list as its choices.
			choices := append([]string{arg}, rules[i+1:]...)
			if !inList(v, choices) {
				return "must be one of: " + strings.Join(choices, ", ")
			}
			return ""
		case "min", "max", "gt", "gte", "lt", "lte":
			if msg := checkBound(v, key, arg); msg != "" {
				return msg
			}
		}
	}

	return ""
}

func checkBound(v reflect.Value, op, arg string) string {
	bound, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return ""
	}

	// min/max apply to string length for strings, numeric value otherwise.
	if s, ok := asString(v); ok && (op == "min" || op == "max") {
		n := float64(len([]rune(s)))
		if op == "min" && n < bound {
			return fmt.Sprintf("must be at least %s characters", arg)
		}
		if op == "max" && n > bound {
			return fmt.Sprintf("must be at most %s characters", arg)
		}
		return ""
	}

	n, ok := asNumber(v)
	if !ok {
		return "must be a number"
	}

	switch op {
	case "min", "gte":
		if n < bound {
			return "must be at least " + arg
		}
	case "max", "lte":
		if n > bound {
			return "must be at most " + arg
		}
	case "gt":
		if n <= bound {
			return "must be greater than " + arg
		}
	case "lt":
		if n >= bound {
			return "must be less than " + arg
		}
	}
	return ""
}

func inList(v reflect.Value, choices []string) bool {
	s, ok := asString(v)
	if !ok {
		if n, isNum := asNumber(v); isNum {
			s = strconv.FormatFloat(n, 'f', -1, 64)
		} else {
			return false
		}
	}
	for _, c := range choices {
		if strings.TrimSpace(c) == s {
			return true
		}
	}
	return false
}

func asString(v reflect.Value) (string, bool) {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return "", false
		}
		v = v.Elem()
	}
	if v.Kind() == reflect.String {
		return v.String(), true
	}
	return "", false
}

func asNumber(v reflect.Value) (float64, bool) {
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return 0, false
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.String:
		n, err := strconv.ParseFloat(v.String(), 64)
		return n, err == nil
	}
	return 0, false
}

func isZero(v reflect.Value) bool {
	if v.Kind() == reflect.Ptr {
		return v.IsNil()
	}
	return v.IsZero()
}
