package yahoo

import (
	"sort"
	"strconv"
	"strings"
)

// Yahoo's fantasy API has no stable envelope. The same entity arrives as a
// bare object, as a one-element array, as a [meta, data] tuple, or as an
// object keyed by numeric strings plus a "count" field. Teams go further and
// encode a single record as an array of partial objects that must be merged.
// The helpers here normalize all of those forms so the per-entity converters
// can read plain maps.

// asMap returns v as an object when it is one.
func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// probe normalizes a polymorphic value to a single object. Arrays of partial
// objects collapse into one merged map.
func probe(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case []any:
		if len(t) == 0 {
			return nil, false
		}
		if len(t) == 1 {
			return probe(t[0])
		}
		return mergedSegments(t)
	}
	return nil, false
}

// segmentList normalizes a polymorphic list container to a slice of items.
// Collection objects keyed "0", "1", ... are ordered by index; a bare object
// becomes a one-element list.
func segmentList(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case map[string]any:
		indexed := make([]int, 0, len(t))
		for key := range t {
			if key == "count" {
				continue
			}
			idx, err := strconv.Atoi(key)
			if err != nil {
				// Not a collection object, treat as a single item.
				return []any{t}
			}
			indexed = append(indexed, idx)
		}
		sort.Ints(indexed)
		out := make([]any, 0, len(indexed))
		for _, idx := range indexed {
			out = append(out, t[strconv.Itoa(idx)])
		}
		return out
	}
	return nil
}

// mergedSegments flattens an array of partial objects into one map. Nested
// arrays of partials, as in team encodings, are merged through one level.
func mergedSegments(segments []any) (map[string]any, bool) {
	merged := make(map[string]any)
	found := false
	for _, segment := range segments {
		switch s := segment.(type) {
		case map[string]any:
			for key, value := range s {
				merged[key] = value
			}
			found = true
		case []any:
			for _, inner := range s {
				if m, ok := asMap(inner); ok {
					for key, value := range m {
						merged[key] = value
					}
					found = true
				}
			}
		}
	}
	if !found {
		return nil, false
	}
	return merged, true
}

// fieldMap probes a nested field.
func fieldMap(m map[string]any, key string) (map[string]any, bool) {
	v, ok := m[key]
	if !ok {
		return nil, false
	}
	return probe(v)
}

// fieldList returns a nested field as a normalized list.
func fieldList(m map[string]any, key string) []any {
	v, ok := m[key]
	if !ok {
		return nil
	}
	return segmentList(v)
}

func strField(m map[string]any, key string) string {
	switch t := m[key].(type) {
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}

// intField reads an integer that Yahoo may encode as a number or a string.
func intField(m map[string]any, key string) int {
	switch t := m[key].(type) {
	case float64:
		return int(t)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}

func floatField(m map[string]any, key string) float64 {
	switch t := m[key].(type) {
	case float64:
		return t
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

// boolField treats Yahoo's "1" flags and real booleans as true.
func boolField(m map[string]any, key string) bool {
	switch t := m[key].(type) {
	case bool:
		return t
	case string:
		return t == "1"
	case float64:
		return t == 1
	}
	return false
}
