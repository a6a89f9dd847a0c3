package tournament

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/monashcoding/tourneysite/internal/document"
)

// numericFields are the keys admins may have edited as strings; sanitize
// coerces them back to integers before a document reaches the store.
var numericFields = map[string]bool{
	"team1Score": true,
	"team2Score": true,
	"duration":   true,
	"number":     true,
	"dayNumber":  true,
	"currentDay": true,
	"rank":       true,
	"wins":       true,
	"losses":     true,
	"score":      true,
	"roundsWon":  true,
	"roundsLost": true,
	"mapWins":    true,
	"mapLosses":  true,
}

// SanitizeDocument returns a store-ready deep copy of a document: every
// recognized date field becomes a canonical ISO string (invalid values
// become the current instant), every recognized numeric field becomes an
// integer (parse failures become 0), and no part of the result aliases
// the input. Each substitution produces one warning.
func SanitizeDocument(doc map[string]any) (map[string]any, []string) {
	var warns []string
	out := sanitizeValue(doc, &warns).(map[string]any)
	return out, warns
}

func sanitizeValue(v any, warns *[]string) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			switch {
			case document.DateFields[k]:
				out[k] = sanitizeDate(k, child, warns)
			case numericFields[k]:
				out[k] = sanitizeNumber(k, child, warns)
			default:
				out[k] = sanitizeValue(child, warns)
			}
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = sanitizeValue(child, warns)
		}
		return out
	default:
		return v
	}
}

func sanitizeDate(field string, v any, warns *[]string) string {
	switch d := v.(type) {
	case time.Time:
		if d.IsZero() {
			*warns = append(*warns, fmt.Sprintf("%s: unset date, using current time", field))
			return document.FormatDate(time.Now())
		}
		return document.FormatDate(d)
	case string:
		t, err := document.ParseDate(d)
		if err != nil || t.IsZero() {
			*warns = append(*warns, fmt.Sprintf("%s: invalid date %q, using current time", field, d))
			return document.FormatDate(time.Now())
		}
		return document.FormatDate(t)
	default:
		*warns = append(*warns, fmt.Sprintf("%s: not a date, using current time", field))
		return document.FormatDate(time.Now())
	}
}

func sanitizeNumber(field string, v any, warns *[]string) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			*warns = append(*warns, fmt.Sprintf("%s: invalid number %q, using 0", field, n))
			return 0
		}
		return i
	default:
		*warns = append(*warns, fmt.Sprintf("%s: not a number, using 0", field))
		return 0
	}
}

// FromDocument builds a typed tournament from a fetched document. A nil,
// empty, or malformed document falls back to the skeleton, keeping
// whatever top-level fields were still usable; problems are reported as
// warnings, never as a failure.
func FromDocument(doc map[string]any) (*Tournament, []string) {
	if len(doc) == 0 {
		return Skeleton(), []string{"no tournament data found, starting from a default tournament"}
	}

	sanitized, warns := SanitizeDocument(doc)

	name, hasName := sanitized["name"].(string)
	_, hasDays := sanitized["days"].([]any)
	if !hasName || name == "" || !hasDays {
		sanitized = mergeIntoSkeleton(sanitized)
		warns = append(warns, "tournament data is missing required fields, merged into a default tournament")
	}

	raw, err := json.Marshal(sanitized)
	if err != nil {
		return Skeleton(), append(warns, "tournament data could not be read, using a default tournament")
	}
	var t Tournament
	if err := json.Unmarshal(raw, &t); err != nil {
		return Skeleton(), append(warns, "tournament data could not be read, using a default tournament")
	}

	if t.Days == nil {
		t.Days = []Day{}
	}
	if t.QualifiedTeams == nil {
		t.QualifiedTeams = []Team{}
	}
	return &t, warns
}

// mergeIntoSkeleton lays the recoverable top-level fields of a malformed
// document over the skeleton. Only fields of the expected shape survive.
func mergeIntoSkeleton(doc map[string]any) map[string]any {
	out := ToDocument(Skeleton())
	for k, v := range doc {
		switch k {
		case "id", "name", "status", "startDate", "endDate":
			if s, ok := v.(string); ok && s != "" {
				out[k] = s
			}
		case "days", "qualifiedTeams", "winners":
			if arr, ok := v.([]any); ok {
				out[k] = arr
			}
		case "currentDay":
			switch v.(type) {
			case float64, int:
				out[k] = v
			}
		}
	}
	return out
}

// ToDocument converts a typed tournament to the generic document form
// with canonical ISO date strings.
func ToDocument(t *Tournament) map[string]any {
	raw, err := json.Marshal(t)
	if err != nil {
		return map[string]any{}
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return map[string]any{}
	}
	return doc
}

// Clone deep-copies a tournament through its wire form.
func (t *Tournament) Clone() *Tournament {
	raw, _ := json.Marshal(t)
	var out Tournament
	_ = json.Unmarshal(raw, &out)
	return &out
}
