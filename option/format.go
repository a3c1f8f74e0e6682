package option

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

// FormatValue renders an option value for diagnostics. Sinks are shown by
// type only since their contents are not meaningful in a dump.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "<nil>"
	case string:
		return fmt.Sprintf("%q", val)
	case []string:
		quoted := make([]string, len(val))
		for i, s := range val {
			quoted[i] = fmt.Sprintf("%q", s)
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	case map[string]string:
		keys := slices.Sorted(maps.Keys(val))
		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = fmt.Sprintf("%s: %q", k, val[k])
		}
		return "{" + strings.Join(pairs, ", ") + "}"
	case io.Writer:
		return fmt.Sprintf("sink(%T)", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
