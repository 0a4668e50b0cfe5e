package merge

import "github.com/speakeasy-api/openapi/sequencedmap"

// SequencedMapAdapter walks *sequencedmap.Map[string, any] containers,
// preserving insertion order across clones. Revision-only keys land after
// the surviving source keys, in the revision's own order.
type SequencedMapAdapter struct{}

func (SequencedMapAdapter) Kind(v any) (Kind, bool) {
	if _, ok := v.(*sequencedmap.Map[string, any]); ok {
		return KindSequencedMap, true
	}
	return "", false
}

func (SequencedMapAdapter) Keys(node any) []Step {
	m := node.(*sequencedmap.Map[string, any])
	steps := make([]Step, 0, m.Len())
	for k := range m.Keys() {
		steps = append(steps, Step{Key: k})
	}
	return steps
}

func (SequencedMapAdapter) Get(node any, s Step) (any, bool) {
	k, ok := s.Key.(string)
	if !ok {
		return nil, false
	}
	return node.(*sequencedmap.Map[string, any]).Get(k)
}

func (SequencedMapAdapter) Clone(node any) Mutable {
	m := node.(*sequencedmap.Map[string, any])
	out := sequencedmap.New[string, any]()
	for k, v := range m.All() {
		out.Set(k, v)
	}
	return mutableSequencedMap{m: out}
}

type mutableSequencedMap struct {
	m *sequencedmap.Map[string, any]
}

func (m mutableSequencedMap) Set(s Step, v any) { m.m.Set(s.Key.(string), v) }
func (m mutableSequencedMap) Delete(s Step)     { m.m.Delete(s.Key.(string)) }
func (m mutableSequencedMap) Len() int          { return m.m.Len() }
func (m mutableSequencedMap) Node() any         { return m.m }
