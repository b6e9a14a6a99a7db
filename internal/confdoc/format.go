package confdoc

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// normalizePath rewrites backslash separators to forward slashes. Applied
// to plain string values before quoting so Windows paths round-trip
// without double-escaping.
func normalizePath(s string) string {
	return strings.ReplaceAll(s, `\`, "/")
}

// formatString renders a basic (double-quoted) string. Path separators
// are normalized first, so the only escape needed is the quote itself.
func formatString(s string) string {
	s = normalizePath(s)
	r := strings.NewReplacer(`"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)
	return `"` + r.Replace(s) + `"`
}

// formatEnvValue renders an env-table value as a literal (single-quoted)
// string so embedded path separators survive verbatim. Values containing
// a single quote cannot be literal strings and fall back to the basic
// form.
func formatEnvValue(s string) string {
	if strings.Contains(s, "'") {
		return formatString(s)
	}
	return "'" + s + "'"
}

// formatValue renders any parsed value back into source syntax. Every
// shape the generic parser can produce has a case; arrays and inline
// tables recurse. Nil renders as the empty string and the caller omits
// the key entirely.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return formatString(x)
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return formatFloat(x)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	case toml.LocalDate:
		return x.String()
	case toml.LocalTime:
		return x.String()
	case toml.LocalDateTime:
		return x.String()
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = formatValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = bareKey(k) + " = " + formatValue(x[k])
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		// Unreachable for values produced by Parse; kept so Render stays
		// total.
		return formatString(fmt.Sprint(x))
	}
}

// formatFloat keeps whole floats distinguishable from integers so a
// re-parse yields the same type.
func formatFloat(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) && math.Abs(f) < 1e15 {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// bareKey quotes a key when it cannot be written bare.
func bareKey(k string) string {
	for _, r := range k {
		ok := r == '-' || r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9')
		if !ok {
			return `"` + strings.ReplaceAll(k, `"`, `\"`) + `"`
		}
	}
	if k == "" {
		return `""`
	}
	return k
}
