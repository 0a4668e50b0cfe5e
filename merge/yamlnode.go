package merge

import "gopkg.in/yaml.v3"

// YAMLNodeAdapter walks *yaml.Node trees without decoding them, so merging
// two parsed documents keeps comments, styles and anchors on every shared
// subtree. Mapping and sequence nodes are containers; scalars, aliases and
// document nodes are leaves.
type YAMLNodeAdapter struct{}

func (YAMLNodeAdapter) Kind(v any) (Kind, bool) {
	n, ok := v.(*yaml.Node)
	if !ok || n == nil {
		return "", false
	}
	switch n.Kind {
	case yaml.MappingNode:
		return KindYAMLMapping, true
	case yaml.SequenceNode:
		return KindYAMLSequence, true
	}
	return "", false
}

// LeafEqual treats two scalar nodes with the same tag and text as the same
// leaf, so re-parsing a document does not defeat sharing just because every
// scalar landed at a fresh pointer. Anchored or aliased nodes are never
// equal to anything.
func (YAMLNodeAdapter) LeafEqual(a, b any) (bool, bool) {
	an, aok := a.(*yaml.Node)
	bn, bok := b.(*yaml.Node)
	if !aok || !bok || an == nil || bn == nil {
		return false, false
	}
	if an.Kind != yaml.ScalarNode || bn.Kind != yaml.ScalarNode {
		return false, true
	}
	if an.Anchor != "" || bn.Anchor != "" || an.Alias != nil || bn.Alias != nil {
		return false, true
	}
	return an.Tag == bn.Tag && an.Value == bn.Value, true
}

func (YAMLNodeAdapter) Keys(node any) []Step {
	n := node.(*yaml.Node)
	if n.Kind == yaml.SequenceNode {
		steps := make([]Step, len(n.Content))
		for i := range n.Content {
			steps[i] = Step{Key: i}
		}
		return steps
	}
	// Mapping content alternates key/value nodes.
	steps := make([]Step, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		steps = append(steps, Step{Key: n.Content[i].Value})
	}
	return steps
}

func (YAMLNodeAdapter) Get(node any, s Step) (any, bool) {
	n := node.(*yaml.Node)
	switch k := s.Key.(type) {
	case int:
		if n.Kind != yaml.SequenceNode || k < 0 || k >= len(n.Content) {
			return nil, false
		}
		return n.Content[k], true
	case string:
		if n.Kind != yaml.MappingNode {
			return nil, false
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			if n.Content[i].Value == k {
				return n.Content[i+1], true
			}
		}
	}
	return nil, false
}

func (YAMLNodeAdapter) Clone(node any) Mutable {
	n := node.(*yaml.Node)
	out := *n
	out.Content = make([]*yaml.Node, len(n.Content))
	copy(out.Content, n.Content)
	return &mutableYAMLNode{n: &out}
}

type mutableYAMLNode struct {
	n *yaml.Node
}

func (m *mutableYAMLNode) Set(s Step, v any) {
	val := v.(*yaml.Node)
	switch k := s.Key.(type) {
	case int:
		if k < len(m.n.Content) {
			m.n.Content[k] = val
		} else {
			m.n.Content = append(m.n.Content, val)
		}
	case string:
		for i := 0; i+1 < len(m.n.Content); i += 2 {
			if m.n.Content[i].Value == k {
				m.n.Content[i+1] = val
				return
			}
		}
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		m.n.Content = append(m.n.Content, key, val)
	}
}

func (m *mutableYAMLNode) Delete(s Step) {
	switch k := s.Key.(type) {
	case int:
		if k >= 0 && k < len(m.n.Content) {
			m.n.Content = m.n.Content[:k]
		}
	case string:
		for i := 0; i+1 < len(m.n.Content); i += 2 {
			if m.n.Content[i].Value == k {
				m.n.Content = append(m.n.Content[:i], m.n.Content[i+2:]...)
				return
			}
		}
	}
}

func (m *mutableYAMLNode) Len() int {
	if m.n.Kind == yaml.MappingNode {
		return len(m.n.Content) / 2
	}
	return len(m.n.Content)
}

func (m *mutableYAMLNode) Node() any { return m.n }
