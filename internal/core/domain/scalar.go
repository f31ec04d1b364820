package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// =============================================================================
// Scalar
// =============================================================================

// Scalar is a loosely typed JSON value that content authors may write either
// as a string or as a number (service ids and prices).
//
// Booleans are kept in their textual form. Objects and arrays are treated as
// absent. A missing or null value has Present == false and an empty Text, so
// stringifying a missing id never produces a placeholder word.
type Scalar struct {
	Text    string
	Numeric bool
	Present bool
}

// StringScalar returns a present, textual Scalar.
func StringScalar(s string) Scalar {
	return Scalar{Text: s, Present: true}
}

// NumberScalar returns a present, numeric Scalar.
func NumberScalar(f float64) Scalar {
	return Scalar{Text: formatNumber(f), Numeric: true, Present: true}
}

// String returns the textual form, or "" when the value is absent.
func (s Scalar) String() string {
	return s.Text
}

// Float returns the numeric value of the scalar. Numeric scalars always
// convert; strings convert when they are non-blank and parse as a finite
// number. "NaN" and "Infinity" are not prices.
func (s Scalar) Float() (float64, bool) {
	if !s.Present {
		return 0, false
	}
	text := strings.TrimSpace(s.Text)
	if text == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*s = Scalar{}
	if len(data) == 0 || string(data) == "null" {
		return nil
	}

	switch data[0] {
	case '"':
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*s = StringScalar(text)
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		*s = StringScalar(strconv.FormatBool(b))
	case '{', '[':
		// Structured values cannot serve as an id or a price.
	default:
		// Out of range numbers such as 1e400 are treated as absent.
		f, err := strconv.ParseFloat(string(data), 64)
		if err != nil || math.IsInf(f, 0) {
			return nil
		}
		*s = NumberScalar(f)
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (s Scalar) MarshalJSON() ([]byte, error) {
	if !s.Present {
		return []byte("null"), nil
	}
	if s.Numeric {
		return []byte(s.Text), nil
	}
	return json.Marshal(s.Text)
}

// formatNumber renders a float the way a browser would stringify it for
// ordinary ids: integers without a fractional part.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// =============================================================================
// StringList
// =============================================================================

// StringList is a list of strings decoded leniently: non-string entries are
// dropped instead of failing the whole document.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	*l = nil
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// Not a list at all; treat as absent.
		return nil
	}
	out := make(StringList, 0, len(raw))
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			out = append(out, s)
		}
	}
	*l = out
	return nil
}
