package tools

import (
	"fmt"
	"math"
	"strings"

	"github.com/desertthunder/spotify-mcp/internal/shared"
)

// Args are the decoded arguments of one tool call.
//
// Values are not coerced: a number sent as a string is rejected.
type Args map[string]any

// String returns the trimmed string at key. ok is false when the key is missing or null.
func (a Args) String(key string) (value string, ok bool, err error) {
	v, present := a[key]
	if !present || v == nil {
		return "", false, nil
	}
	s, isString := v.(string)
	if !isString {
		return "", false, fmt.Errorf("%w: %s must be a string", shared.ErrInvalidArgument, key)
	}
	return strings.TrimSpace(s), true, nil
}

// RequireString returns the string at key, failing when it is missing or blank.
func (a Args) RequireString(key string) (string, error) {
	s, ok, err := a.String(key)
	if err != nil {
		return "", err
	}
	if !ok || s == "" {
		return "", fmt.Errorf("%w: %s is required", shared.ErrMissingArgument, key)
	}
	return s, nil
}

// OptionalString returns nil when key is missing.
func (a Args) OptionalString(key string) (*string, error) {
	s, ok, err := a.String(key)
	if err != nil || !ok {
		return nil, err
	}
	return &s, nil
}

// Int returns the integer at key, or def when missing.
//
// JSON numbers arrive as float64; fractional values are rejected.
func (a Args) Int(key string, def int) (int, error) {
	v, present := a[key]
	if !present || v == nil {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.IsNaN(n) {
			return 0, fmt.Errorf("%w: %s must be an integer, got %v", shared.ErrInvalidArgument, key, n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("%w: %s must be an integer", shared.ErrInvalidArgument, key)
	}
}

// RequireInt returns the integer at key, failing when it is missing.
func (a Args) RequireInt(key string) (int, error) {
	if v, present := a[key]; !present || v == nil {
		return 0, fmt.Errorf("%w: %s is required", shared.ErrMissingArgument, key)
	}
	return a.Int(key, 0)
}

// OptionalInt returns nil when key is missing.
func (a Args) OptionalInt(key string) (*int, error) {
	if v, present := a[key]; !present || v == nil {
		return nil, nil
	}
	n, err := a.Int(key, 0)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Bool returns the boolean at key, or def when missing.
func (a Args) Bool(key string, def bool) (bool, error) {
	v, present := a[key]
	if !present || v == nil {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %s must be a boolean", shared.ErrInvalidArgument, key)
	}
	return b, nil
}

// StringSlice returns the array of strings at key. A missing key yields nil.
func (a Args) StringSlice(key string) ([]string, error) {
	v, present := a[key]
	if !present || v == nil {
		return nil, nil
	}
	switch list := v.(type) {
	case []string:
		return list, nil
	case []any:
		out := make([]string, 0, len(list))
		for i, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s[%d] must be a string", shared.ErrInvalidArgument, key, i)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s must be an array of strings", shared.ErrInvalidArgument, key)
	}
}
