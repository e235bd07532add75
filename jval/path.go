// Copyright (C) 2024 The jot authors. All Rights Reserved.

package jval

import "fmt"

// Path traverses a sequence of keys and indices from v and returns the value
// reached, or an error describing where the traversal failed.
//
// A string element selects the corresponding member of an object; an int
// element selects the element at that offset of an array, with negative
// offsets counting backward from the end. Any other element type is an
// error.
func Path(v Value, path ...any) (Value, error) {
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			obj, ok := v.(Object)
			if !ok {
				return nil, fmt.Errorf("cannot traverse %s with %q", kindName(v), t)
			}
			next, ok := obj[t]
			if !ok {
				return nil, fmt.Errorf("key %q not found", t)
			}
			v = next

		case int:
			arr, ok := v.(Array)
			if !ok {
				return nil, fmt.Errorf("cannot traverse %s with index %d", kindName(v), t)
			}
			i, ok := fixArrayBound(len(arr), t)
			if !ok {
				return nil, fmt.Errorf("array index %d out of bounds (n=%d)", t, len(arr))
			}
			v = arr[i]

		default:
			return nil, fmt.Errorf("invalid path element %T", elt)
		}
	}
	return v, nil
}

// fixArrayBound resolves a possibly-negative array offset against length n.
func fixArrayBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
