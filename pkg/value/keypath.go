package value

import (
	"strconv"
	"strings"
)

// Resolve walks a dotted key-path from root and returns the value it lands
// on. Segments that parse as base-10 integers index arrays (negative indexes
// are rejected, never wrapped); all other segments look up object keys. The
// second return is false when any step misses; a path that lands on an
// explicit null returns (Null(), true).
//
// Resolve is pure: it never mutates root and has no I/O.
func Resolve(root *Object, path string) (Value, bool) {
	if root == nil || path == "" {
		return Value{}, false
	}

	segments := strings.Split(path, ".")

	// The first segment is always an object key in root.
	current, ok := root.Get(segments[0])
	if !ok {
		return Value{}, false
	}

	for _, segment := range segments[1:] {
		idx, err := strconv.Atoi(segment)
		if err == nil {
			// Integer segment: current must be an array and the index
			// must be in range.
			items, isArray := current.AsArray()
			if !isArray || idx < 0 || idx >= len(items) {
				return Value{}, false
			}
			current = items[idx]
			continue
		}

		obj, isObject := current.AsObject()
		if !isObject {
			return Value{}, false
		}
		current, ok = obj.Get(segment)
		if !ok {
			return Value{}, false
		}
	}

	return current, true
}
