package merge

import "reflect"

// nodeRef identifies a value by the storage it references, not by structural
// equality. Two interface values get the same nodeRef exactly when writing
// through one would be visible through the other.
type nodeRef struct {
	ptr uintptr
	typ reflect.Type
	// Slices sharing a backing array but differing in length are distinct
	// nodes; a bare data pointer would conflate s[:1] with s[:2].
	len int
}

// refOf extracts an identity for reference-like values. ok is false for
// plain values (numbers, strings, structs) and for nils, which have no
// meaningful identity.
func refOf(v any) (nodeRef, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		if rv.IsNil() {
			return nodeRef{}, false
		}
		return nodeRef{ptr: rv.Pointer(), typ: rv.Type()}, true
	case reflect.Slice:
		if rv.IsNil() {
			return nodeRef{}, false
		}
		return nodeRef{ptr: rv.Pointer(), typ: rv.Type(), len: rv.Len()}, true
	}
	return nodeRef{}, false
}

// sameRef reports whether a and b are the same node: identical references
// for reference-like values, equal values for comparable leaves. A
// non-comparable leaf is never the same as anything.
func sameRef(a, b any) bool {
	ra, aok := refOf(a)
	rb, bok := refOf(b)
	if aok || bok {
		return aok && bok && ra == rb
	}
	ta := reflect.TypeOf(a)
	tb := reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta == nil {
		// Both untyped nil.
		return true
	}
	if !ta.Comparable() {
		return false
	}
	return a == b
}
