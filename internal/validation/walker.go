package validation

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// walker accumulates structural issues while decoding a generic JSON value.
// Every primitive reports at most one issue per path.
type walker struct {
	issues []Issue
}

func (w *walker) fail(p path, reason string) {
	w.issues = append(w.issues, Issue{Kind: Structural, Path: p.String(), Message: reason})
}

// normalize turns the input into the generic shape produced by
// encoding/json (map[string]any, []any, float64, string, bool, nil).
func normalize(input any) (any, error) {
	switch v := input.(type) {
	case json.RawMessage:
		return decodeJSON(v)
	case []byte:
		return decodeJSON(v)
	case nil, string, bool, float64:
		return v, nil
	}
	data, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}
	return decodeJSON(data)
}

func decodeJSON(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return "unknown"
	}
}

func expected(want string, got any) string {
	return fmt.Sprintf("Expected %s, received %s", want, typeName(got))
}

func formatNum(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// fields is one object being decoded, with the path it lives at.
type fields struct {
	w    *walker
	obj  map[string]any
	path path
}

// object asserts v is an object and returns a decoder over its fields.
func (w *walker) object(p path, v any) (fields, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		w.fail(p, expected("object", v))
		return fields{}, false
	}
	return fields{w: w, obj: m, path: p}, true
}

// required returns the value at key, recording "Required" when absent.
func (f fields) required(key string) (any, path, bool) {
	p := f.path.key(key)
	v, ok := f.obj[key]
	if !ok {
		f.w.fail(p, "Required")
		return nil, p, false
	}
	return v, p, true
}

// optional returns the value at key and whether it is present.
func (f fields) optional(key string) (any, path, bool) {
	v, ok := f.obj[key]
	return v, f.path.key(key), ok
}

type strCheck func(string) string

func nonEmpty(s string) string {
	if s == "" {
		return "must contain at least 1 character(s)"
	}
	return ""
}

func uuidFormat(s string) string {
	if !IsUUID(s) {
		return "Invalid uuid"
	}
	return ""
}

func datetime(s string) string {
	if _, err := time.Parse(time.RFC3339, s); err != nil {
		return "Invalid datetime"
	}
	return ""
}

// IsUUID reports whether s is a UUID in canonical 8-4-4-4-12 hex form.
func IsUUID(s string) bool {
	// uuid.Parse also accepts urn:, braced and unhyphenated forms.
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

func (w *walker) str(p path, v any, checks ...strCheck) (string, bool) {
	s, ok := v.(string)
	if !ok {
		w.fail(p, expected("string", v))
		return "", false
	}
	for _, c := range checks {
		if reason := c(s); reason != "" {
			w.fail(p, reason)
			return "", false
		}
	}
	return s, true
}

func (w *walker) timestamp(p path, v any) (time.Time, bool) {
	s, ok := w.str(p, v, datetime)
	if !ok {
		return time.Time{}, false
	}
	t, _ := time.Parse(time.RFC3339, s)
	return t, true
}

type numCheck func(float64) string

func gte(n float64) numCheck {
	return func(v float64) string {
		if v < n {
			return "must be >= " + formatNum(n)
		}
		return ""
	}
}

func lte(n float64) numCheck {
	return func(v float64) string {
		if v > n {
			return "must be <= " + formatNum(n)
		}
		return ""
	}
}

func positive(v float64) string {
	if v <= 0 {
		return "must be > 0"
	}
	return ""
}

// maxSafeInteger is the largest integer a float64 holds exactly.
const maxSafeInteger = 1<<53 - 1

// integer accepts whole numbers that survive conversion to int unchanged.
func integer(v float64) string {
	switch {
	case v != math.Trunc(v):
		return "Expected integer, received float"
	case v > maxSafeInteger:
		return "must be <= 9007199254740991"
	case v < -maxSafeInteger:
		return "must be >= -9007199254740991"
	}
	return ""
}

func (w *walker) num(p path, v any, checks ...numCheck) (float64, bool) {
	n, ok := v.(float64)
	if !ok {
		w.fail(p, expected("number", v))
		return 0, false
	}
	for _, c := range checks {
		if reason := c(n); reason != "" {
			w.fail(p, reason)
			return 0, false
		}
	}
	return n, true
}

func (w *walker) optNum(f fields, key string, checks ...numCheck) (*float64, bool) {
	v, p, present := f.optional(key)
	if !present {
		return nil, true
	}
	n, ok := w.num(p, v, checks...)
	if !ok {
		return nil, false
	}
	return &n, true
}

func (w *walker) optInt(f fields, key string, checks ...numCheck) (*int, bool) {
	n, ok := w.optNum(f, key, append([]numCheck{integer}, checks...)...)
	if !ok || n == nil {
		return nil, ok
	}
	i := int(*n)
	return &i, true
}

func (w *walker) optStr(f fields, key string, checks ...strCheck) (*string, bool) {
	v, p, present := f.optional(key)
	if !present {
		return nil, true
	}
	s, ok := w.str(p, v, checks...)
	if !ok {
		return nil, false
	}
	return &s, true
}

// enum decodes one of allowed. The message lists the allowed values.
func (w *walker) enum(p path, v any, allowed []string) (string, bool) {
	quoted := make([]string, len(allowed))
	for i, a := range allowed {
		quoted[i] = "'" + a + "'"
	}
	options := strings.Join(quoted, " | ")

	s, ok := v.(string)
	if !ok {
		w.fail(p, fmt.Sprintf("Expected %s, received %s", options, typeName(v)))
		return "", false
	}
	for _, a := range allowed {
		if s == a {
			return s, true
		}
	}
	w.fail(p, fmt.Sprintf("Invalid enum value. Expected %s, received '%s'", options, s))
	return "", false
}

func (w *walker) array(p path, v any, minLen int) ([]any, bool) {
	a, ok := v.([]any)
	if !ok {
		w.fail(p, expected("array", v))
		return nil, false
	}
	if len(a) < minLen {
		w.fail(p, fmt.Sprintf("must contain at least %d element(s)", minLen))
		return nil, false
	}
	return a, true
}

// strList decodes an array of strings. Element failures are reported at
// their own index path.
func (w *walker) strList(p path, v any, minLen int, checks ...strCheck) ([]string, bool) {
	a, ok := w.array(p, v, minLen)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(a))
	valid := true
	for i, el := range a {
		s, ok := w.str(p.index(i), el, checks...)
		if !ok {
			valid = false
			continue
		}
		out = append(out, s)
	}
	return out, valid
}

func enumValues[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}
