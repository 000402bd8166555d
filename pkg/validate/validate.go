// Package validate checks request structs against their `validate` tags.
//
// Rules are comma separated and checked in order; the first failure is the
// field's message.
//
//	required     not zero, not blank
//	nullable     an empty value skips every other rule
//	email        an email address
//	url          an absolute http or https URL
//	objectid     a 24-char hex document id; on a slice, every element
//	min=N max=N  length of a string or slice, or the value of a number
//	gt=N gte=N lte=N
//	in=a|b|c     one of the listed values
//
//	type CartInput struct {
//	    MenuID string  `json:"menuId" validate:"required,objectid"`
//	    Price  float64 `json:"price"  validate:"gte=0"`
//	}
package validate

import (
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Struct validates the tagged fields of v, which must be a struct or a
// pointer to one. The result maps JSON field names to messages and is empty
// when v is valid. Anything that is not a struct passes.
func Struct(v any) map[string]string {
	errs := map[string]string{}
	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		return errs
	}

	for _, f := range plan(rv.Type()) {
		value := rv.Field(f.index)
		if f.nullable && blank(value) {
			continue
		}
		for _, r := range f.rules {
			if msg := r.check(value); msg != "" {
				errs[f.name] = fmt.Sprintf("The %s %s.", f.name, msg)
				break
			}
		}
	}
	return errs
}

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

// ─── Plans ────────────────────────────────────────────────────────────────────

type rule struct {
	check func(reflect.Value) string
}

type fieldPlan struct {
	index    int
	name     string
	nullable bool
	rules    []rule
}

// plans caches the parsed tags of each struct type.
var plans sync.Map // reflect.Type → []fieldPlan

func plan(t reflect.Type) []fieldPlan {
	if p, ok := plans.Load(t); ok {
		return p.([]fieldPlan)
	}

	var out []fieldPlan
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag := sf.Tag.Get("validate")
		if tag == "" || !sf.IsExported() {
			continue
		}
		fp := fieldPlan{index: i, name: jsonName(sf)}
		for _, token := range strings.Split(tag, ",") {
			key, param, _ := strings.Cut(strings.TrimSpace(token), "=")
			if key == "nullable" {
				fp.nullable = true
				continue
			}
			fp.rules = append(fp.rules, compile(key, param))
		}
		out = append(out, fp)
	}

	p, _ := plans.LoadOrStore(t, out)
	return p.([]fieldPlan)
}

// compile panics on an unknown rule: tags are fixed at build time.
func compile(key, param string) rule {
	switch key {
	case "required":
		return rule{func(v reflect.Value) string {
			if blank(v) {
				return "field is required"
			}
			return ""
		}}
	case "email":
		return textRule(func(s string) bool { return emailRE.MatchString(s) }, "must be a valid email address")
	case "url":
		return textRule(func(s string) bool {
			u, err := url.ParseRequestURI(s)
			return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
		}, "must be a valid URL")
	case "objectid":
		return rule{func(v reflect.Value) string {
			if v.Kind() == reflect.Slice {
				for i := 0; i < v.Len(); i++ {
					if !primitive.IsValidObjectID(fmt.Sprint(v.Index(i).Interface())) {
						return "must contain only valid ids"
					}
				}
				return ""
			}
			if !primitive.IsValidObjectID(fmt.Sprint(v.Interface())) {
				return "must be a valid id"
			}
			return ""
		}}
	case "min", "max":
		n := number(key, param)
		return rule{func(v reflect.Value) string {
			size, unit := measure(v)
			if key == "min" && size < n {
				return "must be at least " + param + unit
			}
			if key == "max" && size > n {
				return "must not exceed " + param + unit
			}
			return ""
		}}
	case "gt":
		return boundRule(number(key, param), func(x, n float64) bool { return x > n }, "must be greater than "+param)
	case "gte":
		return boundRule(number(key, param), func(x, n float64) bool { return x >= n }, "must be at least "+param)
	case "lte":
		return boundRule(number(key, param), func(x, n float64) bool { return x <= n }, "must not be greater than "+param)
	case "in":
		allowed := strings.Split(param, "|")
		return textRule(func(s string) bool {
			for _, a := range allowed {
				if s == a {
					return true
				}
			}
			return false
		}, "must be one of "+strings.Join(allowed, ", "))
	}
	panic(fmt.Sprintf("validate: unknown rule %q", key))
}

func textRule(ok func(string) bool, msg string) rule {
	return rule{func(v reflect.Value) string {
		if !ok(fmt.Sprint(reflect.Indirect(v).Interface())) {
			return msg
		}
		return ""
	}}
}

func boundRule(n float64, ok func(x, n float64) bool, msg string) rule {
	return rule{func(v reflect.Value) string {
		if !ok(toFloat(v), n) {
			return msg
		}
		return ""
	}}
}

// ─── Helpers ──────────────────────────────────────────────────────────────────

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func blank(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Bool:
		return false
	}
	return v.IsZero()
}

// measure returns the quantity min and max compare against, with the unit
// used in messages.
func measure(v reflect.Value) (float64, string) {
	switch v.Kind() {
	case reflect.String:
		return float64(utf8.RuneCountInString(v.String())), " characters"
	case reflect.Slice, reflect.Map:
		return float64(v.Len()), " items"
	}
	return toFloat(v), ""
}

func toFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	case reflect.Float32, reflect.Float64:
		return v.Float()
	}
	return 0
}

func number(key, param string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(param), 64)
	if err != nil {
		panic(fmt.Sprintf("validate: %s needs a number, got %q", key, param))
	}
	return f
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return strings.ToLower(f.Name)
	}
	return name
}
