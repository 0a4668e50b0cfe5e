package merge

import "fmt"

// Kind tags a container's shape class. Two containers are merged key-by-key
// only when their kinds are equal; any other pairing replaces the source
// subtree with the revision wholesale.
type Kind string

const (
	KindMap          Kind = "map"
	KindSlice        Kind = "slice"
	KindSequencedMap Kind = "seqmap"
	KindYAMLMapping  Kind = "yaml-mapping"
	KindYAMLSequence Kind = "yaml-sequence"
)

// Step is one key on the path from the root to the current node.
// Key is a string for map-like containers and an int for sequence containers.
type Step struct {
	Key any
}

func (s Step) String() string {
	switch k := s.Key.(type) {
	case string:
		return k
	case int:
		return fmt.Sprintf("[%d]", k)
	default:
		return fmt.Sprint(s.Key)
	}
}

// Adapter teaches the engine how to walk one family of container values.
// All methods must be pure with respect to their inputs: Keys, Get and Kind
// never mutate the node, and Clone copies one level only, leaving children
// shared with the original.
type Adapter interface {
	// Kind classifies v. ok is false when v is not a container this adapter
	// handles; the engine then asks the next adapter, and treats v as an
	// opaque leaf if none claims it.
	Kind(v any) (kind Kind, ok bool)

	// Keys returns the container's keys in its natural enumeration order.
	Keys(node any) []Step

	// Get looks up one key. ok is false when the key is absent, which the
	// engine treats as a deletion request for that key.
	Get(node any, s Step) (v any, ok bool)

	// Clone returns a shallow copy of node ready for mutation. Children are
	// carried over by reference.
	Clone(node any) Mutable
}

// LeafEqualer is an optional Adapter extension for container families whose
// leaves are boxed primitives (pointer values that stand for plain scalars,
// like *yaml.Node). When two leaves are reported equal the engine keeps the
// source's leaf, the same way it keeps an identical primitive.
type LeafEqualer interface {
	// LeafEqual compares two leaf values. handled is false when this
	// adapter has no opinion about the pair.
	LeafEqual(a, b any) (equal, handled bool)
}

// Mutable is a shallowly cloned container being written by the engine.
// The engine writes keys in a single ascending pass over the source's key
// order followed by revision-only keys, and never touches a key twice.
type Mutable interface {
	// Set writes v at s. Sequence containers must accept the append position
	// (index == Len) during the insert phase.
	Set(s Step, v any)

	// Delete removes s from the key set. For sequence containers the engine
	// only ever deletes a contiguous tail, in ascending index order.
	Delete(s Step)

	// Len reports the current number of keys.
	Len() int

	// Node unwraps the finished container value.
	Node() any
}
