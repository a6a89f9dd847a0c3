// Package document handles the wire form of the tournament document:
// converting ISO date strings to time.Time and back, deep-copying, and
// structural comparison. It operates on the generic JSON tree
// (map[string]any / []any) so it works on any document the API accepts.
package document

import (
	"fmt"
	"time"
)

// ISOFormat is the canonical wire form for every date field: UTC with
// millisecond precision, the JavaScript toISOString shape.
const ISOFormat = "2006-01-02T15:04:05.000Z07:00"

// DateFields is the declared set of date-bearing field names. Only these
// keys are normalized; a field that merely happens to contain "date" or
// "time" in its name is left alone.
var DateFields = map[string]bool{
	"startDate":     true,
	"endDate":       true,
	"date":          true,
	"scheduledTime": true,
	"startTime":     true,
	"endTime":       true,
}

// Warning records a recoverable problem found while normalizing, one per
// malformed field.
type Warning struct {
	Field   string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Field, w.Message)
}

// Normalize walks the document and replaces string values at recognized
// date fields with time.Time. A string that does not parse is replaced
// with the current instant and reported as a warning; Normalize never
// fails. The input is not mutated.
func Normalize(v any) (any, []Warning) {
	var warns []Warning
	out := normalize(v, &warns)
	return out, warns
}

func normalize(v any, warns *[]Warning) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			if DateFields[k] {
				if s, ok := child.(string); ok {
					t, err := ParseDate(s)
					if err != nil {
						*warns = append(*warns, Warning{
							Field:   k,
							Message: fmt.Sprintf("invalid date %q, using current time", s),
						})
						t = time.Now()
					}
					out[k] = t
					continue
				}
			}
			out[k] = normalize(child, warns)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = normalize(child, warns)
		}
		return out
	default:
		return v
	}
}

// Denormalize is the inverse of Normalize: every time.Time in the tree
// becomes its canonical ISO-8601 string. For documents whose date fields
// were already canonical strings, Denormalize(Normalize(x)) reproduces
// them exactly.
func Denormalize(v any) any {
	switch val := v.(type) {
	case time.Time:
		return FormatDate(val)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[k] = Denormalize(child)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = Denormalize(child)
		}
		return out
	default:
		return v
	}
}

// ParseDate accepts the canonical form plus the laxer shapes admins have
// historically typed: RFC 3339 with any precision, a zone-less timestamp,
// or a bare calendar date.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// FormatDate renders a time in the canonical ISO form.
func FormatDate(t time.Time) string {
	return t.UTC().Format(ISOFormat)
}
