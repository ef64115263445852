package common

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// ToFloat converts an arbitrary provider-returned value to a float64,
// returning def when the value is missing or not numeric. Provider payloads
// mix numbers, numeric strings, and nulls for the same field, so every
// boundary crossing goes through here.
func ToFloat(v interface{}, def float64) float64 {
	switch val := v.(type) {
	case nil:
		return def
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return def
		}
		return f
	case string:
		s := strings.TrimSpace(val)
		if s == "" || s == "N/A" {
			return def
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return def
		}
		return f
	default:
		return def
	}
}

// ToInt converts an arbitrary provider-returned value to an int64 with a default.
func ToInt(v interface{}, def int64) int64 {
	switch val := v.(type) {
	case nil:
		return def
	case int:
		return int64(val)
	case int64:
		return val
	case float64:
		return int64(val)
	case json.Number:
		i, err := val.Int64()
		if err != nil {
			return int64(ToFloat(v, float64(def)))
		}
		return i
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return def
		}
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return def
		}
		return i
	default:
		return def
	}
}

// ErrInvalidCapital indicates a capital amount that did not parse to a positive number.
var ErrInvalidCapital = errors.New("capital must be a number greater than zero")

// ParseCapital parses an investable-capital amount. A lone comma is accepted
// as the decimal separator ("1234,56"); mixed thousands and decimal
// separators ("1.234,56") are rejected. The value must be greater than zero.
func ParseCapital(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ErrInvalidCapital
	}

	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, ErrInvalidCapital
	}
	return v, nil
}

// NormalizeTicker trims and uppercases a ticker symbol. Returns "" for
// blank input, which callers treat as a validation failure.
func NormalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
