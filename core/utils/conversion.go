package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ToInt converts decoded JSON values and flag strings to int.
// Pulp responses decode numbers as float64, so that case comes first.
func ToInt(val any) int {
	switch v := val.(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	case int32:
		return int(v)
	case float32:
		return int(v)
	case string:
		i, _ := strconv.Atoi(strings.TrimSpace(v))
		return i
	case nil:
		return 0
	default:
		i, _ := strconv.Atoi(fmt.Sprintf("%v", v))
		return i
	}
}

// ToString converts a field value to string. Nil becomes the empty string
// so missing hrefs compare as absent.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToBool converts various types to bool.
// It handles bool, numbers (non-zero is true) and strings ("1", "true", "yes").
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case float64, int, int64, int32:
		return ToInt(v) != 0
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		return s == "1" || s == "true" || s == "yes"
	default:
		return false
	}
}

// ToStrings converts a decoded JSON list into a string slice.
// A single string is treated as a one element list.
func ToStrings(val any) []string {
	switch v := val.(type) {
	case nil:
		return nil
	case []string:
		return v
	case string:
		return []string{v}
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, ToString(item))
		}
		return out
	default:
		return []string{ToString(v)}
	}
}

// FirstString returns the first element of a decoded JSON list as a string,
// or "" when the list is empty or not a list.
func FirstString(val any) string {
	items := ToStrings(val)
	if len(items) == 0 {
		return ""
	}
	return items[0]
}

// Deref returns *p, or an untyped nil when p is nil. Natural keys and
// desired attributes rely on nil meaning "not given".
func Deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}
