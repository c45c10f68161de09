package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// NotAvailable marks a month that exists in the feed but was not measured.
// It is distinct from zero and from a missing metric.
const NotAvailable = "N/A"

// Value is a metric reading as the feed supplies it: a bare number, a
// formatted string such as "1,450" or "2.5%", or NotAvailable.
type Value struct {
	text    string
	numeric bool
}

// Number wraps a numeric reading.
func Number(f float64) Value {
	return Value{text: strconv.FormatFloat(f, 'f', -1, 64), numeric: true}
}

// Text wraps a formatted reading.
func Text(s string) Value {
	return Value{text: s}
}

// NA is the not-measured sentinel.
func NA() Value {
	return Value{text: NotAvailable}
}

func (v Value) String() string {
	return v.text
}

// IsNA reports whether v is the sentinel. The zero Value counts as
// not measured too.
func (v Value) IsNA() bool {
	if v.numeric {
		return false
	}
	t := strings.TrimSpace(v.text)
	return t == "" || t == NotAvailable
}

// Number is the single numeric coercion used by every aggregation.
//
// The sentinel and empty readings are not numbers. Bare numbers, including
// exponent forms such as 1.5e3, are taken as they are. Formatted strings
// are stripped down to digits, '.' and '-', and the longest leading numeric
// prefix of what remains is parsed, so "1,450" is 1450, "2.5%" is 2.5 and
// "$12.50/hr" is 12.5. ok is false when no digits survive.
func (v Value) Number() (float64, bool) {
	if v.IsNA() {
		return 0, false
	}
	if v.numeric {
		f, err := strconv.ParseFloat(v.text, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return parseNumber(v.text)
}

// Float is Number with the degrade-to-zero fallback.
func (v Value) Float() float64 {
	f, _ := v.Number()
	return f
}

func parseNumber(s string) (float64, bool) {
	cleaned := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= '0' && c <= '9') || c == '.' || c == '-' {
			cleaned = append(cleaned, c)
		}
	}

	end := 0
	seenDigit, seenDot := false, false
scan:
	for i, c := range cleaned {
		switch {
		case c >= '0' && c <= '9':
			seenDigit = true
		case c == '.' && !seenDot:
			seenDot = true
		case c == '-' && i == 0:
		default:
			break scan
		}
		end = i + 1
	}
	if !seenDigit {
		return 0, false
	}

	prefix := strings.TrimSuffix(string(cleaned[:end]), ".")
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.numeric {
		return []byte(v.text), nil
	}
	return json.Marshal(v.text)
}

func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*v = NA()
		return nil
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = Text(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("metric value must be a number or string: %w", err)
	}
	*v = Value{text: n.String(), numeric: true}
	return nil
}
