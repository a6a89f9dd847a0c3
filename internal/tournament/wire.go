package tournament

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/monashcoding/tourneysite/internal/document"
)

// Time is a time.Time that marshals to the canonical ISO form and
// tolerates malformed input: an unparseable value decodes to the current
// instant instead of failing the whole document. SanitizeDocument reports
// the warning before the value ever reaches this type.
type Time struct {
	time.Time
}

func NewTime(t time.Time) Time { return Time{t} }

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(document.FormatDate(t.Time))
}

func (t *Time) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		t.Time = time.Now()
		return nil
	}
	parsed, err := document.ParseDate(s)
	if err != nil {
		t.Time = time.Now()
		return nil
	}
	t.Time = parsed
	return nil
}

// FlexInt is an int that additionally accepts its string form on the
// wire. Admin form fields round-trip numbers as strings; a value that
// parses as neither decodes to zero.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		*n = 0
		return nil
	}
	switch v := raw.(type) {
	case float64:
		*n = FlexInt(v)
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			i = 0
		}
		*n = FlexInt(i)
	default:
		*n = 0
	}
	return nil
}

func (n FlexInt) Int() int { return int(n) }
