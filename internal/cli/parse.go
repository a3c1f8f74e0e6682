package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/adamwoolhether/xfer/option"
)

// resolveName finds an option by exact name, falling back to the
// CURLOPT_ prefixed upper case form so "maxredirs" works.
func resolveName(reg *option.Registry, name string) (option.ID, error) {
	if id, ok := reg.Lookup(name); ok {
		return id, nil
	}

	upper := strings.ToUpper(name)
	if !strings.HasPrefix(upper, "CURL") {
		upper = "CURLOPT_" + upper
	}
	if id, ok := reg.Lookup(upper); ok {
		return id, nil
	}

	return 0, fmt.Errorf("%w: unknown option name %q", option.ErrInvalidOption, name)
}

func parseAssignments(reg *option.Registry, assignments []string) (option.Values, error) {
	opts := make(option.Values, len(assignments))
	for _, a := range assignments {
		name, raw, ok := strings.Cut(a, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: %q is not NAME=VALUE", option.ErrInvalidOption, a)
		}

		id, err := resolveName(reg, strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		opts[id] = parseValue(raw)
	}

	return opts, nil
}

// parseValue types a flag value as a bool, an int, a float64 or, failing
// those, a string.
func parseValue(raw string) any {
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	}

	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}

	return raw
}

func parseFields(data []string) (map[string]string, error) {
	fields := make(map[string]string, len(data))
	for _, d := range data {
		k, v, ok := strings.Cut(d, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid form field %q, want key=value", d)
		}
		fields[k] = v
	}

	return fields, nil
}
