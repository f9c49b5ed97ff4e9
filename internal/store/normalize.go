package store

import (
	"strconv"
	"strings"
)

// NormalizeBool converts the boolean representations seen in legacy documents
// (true, "true", "TRUE", "1", 1, "yes", "on") into a bool. Anything else is false.
func NormalizeBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case *bool:
		return b != nil && *b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "t", "1", "yes", "y", "on":
			return true
		}
		return false
	case []byte:
		return NormalizeBool(string(b))
	case int:
		return b != 0
	case int32:
		return b != 0
	case int64:
		return b != 0
	case uint:
		return b != 0
	case uint32:
		return b != 0
	case uint64:
		return b != 0
	case float32:
		return b != 0
	case float64:
		return b != 0
	}
	return false
}

func formatBool(b bool) string {
	return strconv.FormatBool(b)
}
