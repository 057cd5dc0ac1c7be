package node

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// params wraps Parameters with typed accessors for one item
type params struct {
	source Parameters
	index  int
}

func (p params) raw(name string) (any, bool) {
	v, ok := p.source.Param(name, p.index)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// requiredString returns a non-empty string parameter
func (p params) requiredString(name string) (string, error) {
	v, ok := p.raw(name)
	if !ok {
		return "", NewConfigurationError("parameter %q is required", name)
	}
	s, err := toString(v)
	if err != nil {
		return "", NewConfigurationError("parameter %q: %v", name, err)
	}
	if strings.TrimSpace(s) == "" {
		return "", NewConfigurationError("parameter %q must not be empty", name)
	}
	return s, nil
}

// optionalString returns the string parameter or "" when absent
func (p params) optionalString(name string) (string, error) {
	v, ok := p.raw(name)
	if !ok {
		return "", nil
	}
	s, err := toString(v)
	if err != nil {
		return "", NewConfigurationError("parameter %q: %v", name, err)
	}
	return s, nil
}

func (p params) boolean(name string) (bool, error) {
	v, ok := p.raw(name)
	if !ok {
		return false, nil
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(b)
		if err != nil {
			return false, NewConfigurationError("parameter %q: %q is not a boolean", name, b)
		}
		return parsed, nil
	default:
		return false, NewConfigurationError("parameter %q: expected boolean, got %T", name, v)
	}
}

// integer returns the integer parameter or def when absent
func (p params) integer(name string, def int) (int, error) {
	v, ok := p.raw(name)
	if !ok {
		return def, nil
	}
	n, err := toInt(v)
	if err != nil {
		return 0, NewConfigurationError("parameter %q: %v", name, err)
	}
	return n, nil
}

// collection returns a nested key/value parameter, empty when absent
func (p params) collection(name string) (map[string]any, error) {
	v, ok := p.raw(name)
	if !ok {
		return map[string]any{}, nil
	}
	m, ok := toMap(v)
	if !ok {
		return nil, NewConfigurationError("parameter %q: expected an object, got %T", name, v)
	}
	return m, nil
}

func toString(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case json.Number:
		return s.String(), nil
	case int, int32, int64, uint, uint32, uint64:
		return fmt.Sprintf("%d", s), nil
	case float64:
		if s == math.Trunc(s) {
			return strconv.FormatInt(int64(s), 10), nil
		}
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(s), nil
	default:
		return "", fmt.Errorf("expected a string, got %T", v)
	}
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%v is not an integer", n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		return int(i), err
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, fmt.Errorf("%q is not an integer", n)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("expected an integer, got %T", v)
	}
}

func toMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// flattenValues turns [{field: "a"}, {field: "b"}] into ["a", "b"]
func flattenValues(v any, field string) ([]string, error) {
	if v == nil {
		return []string{}, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list of {%s} entries, got %T", field, v)
	}

	out := make([]string, 0, len(list))
	for i, entry := range list {
		var raw any = entry
		if m, isMap := toMap(entry); isMap {
			value, found := m[field]
			if !found {
				return nil, fmt.Errorf("entry %d has no %q field", i, field)
			}
			raw = value
		}
		s, err := toString(raw)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out = append(out, s)
	}
	return out, nil
}
