package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// The upstream API is inconsistent about field casing: the same attribute can
// arrive as "name", "BranchName", "branchName" or "Name" depending on which
// endpoint produced it. Every entity therefore carries an ordered key table
// and resolution picks the first defined value.

// DecodeObject unmarshals one list element into a generic object. Malformed
// elements resolve to (nil, false) and are skipped by callers.
func DecodeObject(raw json.RawMessage) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// StringField probes keys in order and returns the first defined, non-empty
// value. Numeric values are formatted, since some endpoints send codes and
// ids as numbers.
func StringField(obj map[string]any, keys []string, fallback string) string {
	for _, k := range keys {
		v, present := obj[k]
		if !present || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			if s != "" {
				return s
			}
		case float64:
			return strconv.FormatFloat(s, 'f', -1, 64)
		case bool:
			return strconv.FormatBool(s)
		}
	}
	return fallback
}

// NumberField probes keys in order and returns the first value that coerces
// to a valid number. Missing and unparseable values contribute 0, never NaN.
func NumberField(obj map[string]any, keys []string) float64 {
	for _, k := range keys {
		v, present := obj[k]
		if !present || v == nil {
			continue
		}
		if n, ok := ToNumber(v); ok {
			return n
		}
	}
	return 0
}

// IntField is NumberField truncated to an int, used for counts and postal
// codes (parseInt semantics, falling back to 0).
func IntField(obj map[string]any, keys []string) int {
	return int(NumberField(obj, keys))
}

// ToNumber coerces a decoded JSON value to a float64. NaN and infinities
// collapse to invalid so they can never leak into totals.
func ToNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// ID resolves an entity identity, preferring the normalized "id" over the
// server-side "_id".
func ID(obj map[string]any) string {
	return StringField(obj, []string{"id", "_id"}, "")
}

// MatchesID reports whether an object answers to the given identity through
// either its "id" or "_id" field. Deletions must try both because the
// normalized and raw shapes coexist in the snapshot.
func MatchesID(obj map[string]any, id string) bool {
	if id == "" || obj == nil {
		return false
	}
	return StringField(obj, []string{"id"}, "") == id ||
		StringField(obj, []string{"_id"}, "") == id
}
