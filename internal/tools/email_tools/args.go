package email_tools

import "fmt"

// requiredString extracts a non-empty string argument or reports which
// field is missing. Validation happens before any provider call.
func requiredString(args map[string]any, name string) (string, error) {
	val, ok := args[name].(string)
	if !ok || val == "" {
		return "", fmt.Errorf("%s is required", name)
	}
	return val, nil
}

// optionalNumber extracts a numeric argument, falling back to def when
// absent. JSON numbers arrive as float64.
func optionalNumber(args map[string]any, name string, def int64) (int64, error) {
	val, ok := args[name]
	if !ok || val == nil {
		return def, nil
	}
	f, ok := val.(float64)
	if !ok {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	return int64(f), nil
}

// optionalString extracts a string argument, empty when absent.
func optionalString(args map[string]any, name string) (string, error) {
	val, ok := args[name]
	if !ok || val == nil {
		return "", nil
	}
	s, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", name)
	}
	return s, nil
}

// stringList extracts a string-array argument. A missing or nil value is
// an error only when required; a present value of the wrong shape is
// always an error.
func stringList(args map[string]any, name string, required bool) ([]string, error) {
	val, ok := args[name]
	if !ok || val == nil {
		if required {
			return nil, fmt.Errorf("%s is required", name)
		}
		return nil, nil
	}

	items, ok := val.([]any)
	if !ok {
		return nil, fmt.Errorf("%s must be an array of strings", name)
	}
	if required && len(items) == 0 {
		return nil, fmt.Errorf("%s is required", name)
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s must be an array of strings", name)
		}
		out = append(out, s)
	}
	return out, nil
}
