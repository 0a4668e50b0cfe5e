package merge

import "sort"

// builtinAdapters are consulted after any caller-registered adapters.
var builtinAdapters = []Adapter{
	mapAdapter{},
	sliceAdapter{},
	SequencedMapAdapter{},
	YAMLNodeAdapter{},
}

// mapAdapter walks map[string]any containers.
type mapAdapter struct{}

func (mapAdapter) Kind(v any) (Kind, bool) {
	if _, ok := v.(map[string]any); ok {
		return KindMap, true
	}
	return "", false
}

// Keys sorts for determinism; Go map order would make merge results (and the
// coarse cycle fallback, which depends on which key trips first) flap
// between runs.
func (mapAdapter) Keys(node any) []Step {
	m := node.(map[string]any)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	steps := make([]Step, len(keys))
	for i, k := range keys {
		steps[i] = Step{Key: k}
	}
	return steps
}

func (mapAdapter) Get(node any, s Step) (any, bool) {
	k, ok := s.Key.(string)
	if !ok {
		return nil, false
	}
	v, ok := node.(map[string]any)[k]
	return v, ok
}

func (mapAdapter) Clone(node any) Mutable {
	m := node.(map[string]any)
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return mutableMap(out)
}

type mutableMap map[string]any

func (m mutableMap) Set(s Step, v any) { m[s.Key.(string)] = v }
func (m mutableMap) Delete(s Step)     { delete(m, s.Key.(string)) }
func (m mutableMap) Len() int          { return len(m) }
func (m mutableMap) Node() any         { return map[string]any(m) }

// sliceAdapter walks []any containers, with int indices as keys.
type sliceAdapter struct{}

func (sliceAdapter) Kind(v any) (Kind, bool) {
	if _, ok := v.([]any); ok {
		return KindSlice, true
	}
	return "", false
}

func (sliceAdapter) Keys(node any) []Step {
	s := node.([]any)
	steps := make([]Step, len(s))
	for i := range s {
		steps[i] = Step{Key: i}
	}
	return steps
}

func (sliceAdapter) Get(node any, st Step) (any, bool) {
	i, ok := st.Key.(int)
	if !ok {
		return nil, false
	}
	s := node.([]any)
	if i < 0 || i >= len(s) {
		return nil, false
	}
	return s[i], true
}

func (sliceAdapter) Clone(node any) Mutable {
	s := node.([]any)
	out := make([]any, len(s))
	copy(out, s)
	return &mutableSlice{elems: out}
}

type mutableSlice struct {
	elems []any
}

func (m *mutableSlice) Set(s Step, v any) {
	i := s.Key.(int)
	switch {
	case i < len(m.elems):
		m.elems[i] = v
	case i == len(m.elems):
		m.elems = append(m.elems, v)
	default:
		// The engine writes ascending so this branch is unreachable; pad
		// with nils rather than panic if a custom adapter misroutes a key.
		for len(m.elems) < i {
			m.elems = append(m.elems, nil)
		}
		m.elems = append(m.elems, v)
	}
}

// Delete truncates at i. The engine deletes sequence tails in ascending
// order, so dropping everything from i onward removes exactly the indices
// absent from the revision.
func (m *mutableSlice) Delete(s Step) {
	i := s.Key.(int)
	if i >= 0 && i < len(m.elems) {
		m.elems = m.elems[:i]
	}
}

func (m *mutableSlice) Len() int  { return len(m.elems) }
func (m *mutableSlice) Node() any { return m.elems }
