package merge

import (
	"fmt"
	"strings"
)

// escapeSignal propagates "cycle detected" up exactly one frame. It is an
// unexported struct type, so no legitimate tree value can collide with it.
type escapeSignal struct{}

// absentMarker stands in for a key the revision does not have. It flows
// through the recursion like a value (the child merge sees it, fails the
// container check, and hands it straight back), and the parent turns it into
// a key deletion. Never visible outside the package.
type absentMarker struct{}

var absent = absentMarker{}

// env is the per-call state of one merge traversal. Nothing in it is shared
// across calls; concurrent merges each build their own.
type env struct {
	opts     Options
	log      Logger
	adapters []Adapter
	track    *ancestorSet
	path     []Step
	maxDepth int
	stats    Stats
}

func newEnv(opts Options) *env {
	adapters := make([]Adapter, 0, len(opts.Adapters)+len(builtinAdapters))
	adapters = append(adapters, opts.Adapters...)
	adapters = append(adapters, builtinAdapters...)

	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultOptions().MaxDepth
	}

	return &env{
		opts:     opts,
		log:      opts.logger(),
		adapters: adapters,
		track:    newAncestorSet(),
		path:     make([]Step, 0, 16),
		maxDepth: maxDepth,
	}
}

// classify finds the adapter claiming v. ok is false for leaves.
func (e *env) classify(v any) (Kind, Adapter, bool) {
	if v == nil {
		return "", nil, false
	}
	if _, isAbsent := v.(absentMarker); isAbsent {
		return "", nil, false
	}
	for _, ad := range e.adapters {
		if kind, ok := ad.Kind(v); ok {
			return kind, ad, true
		}
	}
	return "", nil, false
}

// merge resolves one source/revision pair. The return value is either a
// regular tree value or an escapeSignal telling the caller its current node
// sits inside a cycle.
func (e *env) merge(source, revision any) any {
	e.stats.Visited++

	// Same node on both sides: nothing to do at any depth below it.
	if sameRef(source, revision) || e.leafEquivalent(source, revision) {
		e.stats.Shared++
		return source
	}

	if e.opts.Prefilter != nil && e.opts.Prefilter(e.path, source, exported(revision)) {
		e.stats.Shared++
		if e.debugEnabled() {
			e.log.Debugf("prefilter kept source subtree path=%s", e.pathString())
		}
		return source
	}

	srcKind, ad, srcOK := e.classify(source)
	revKind, _, revOK := e.classify(revision)
	if !srcOK || !revOK || srcKind != revKind {
		// Leaf on either side, or incompatible container kinds: the revision
		// replaces the subtree wholesale, children unexamined. A key the
		// revision dropped takes the same route, carrying the absent marker
		// back for the parent to delete.
		if isAbsent(revision) {
			e.stats.Deleted++
		} else {
			e.stats.Replaced++
		}
		return revision
	}

	if len(e.path) >= e.maxDepth {
		e.stats.Replaced++
		e.log.Warnf("max depth reached, taking revision subtree path=%s depth=%d", e.pathString(), len(e.path))
		return revision
	}

	ref, hasRef := refOf(revision)
	if hasRef {
		if e.track.contains(ref) {
			e.stats.Cycles++
			if e.debugEnabled() {
				e.log.Debugf("cycle detected path=%s", e.pathString())
			}
			return escapeSignal{}
		}
		e.track.enter(ref)
		// Leave on every return path, including when a child's escape makes
		// this node bail out with the revision value.
		defer e.track.leave(ref)
	}

	return e.mergeKeys(ad, source, revision)
}

// mergeKeys walks a compatible container pair key by key. The clone is
// taken lazily on the first mutation and at most once; if nothing below
// changed the source node itself is returned.
func (e *env) mergeKeys(ad Adapter, source, revision any) any {
	srcKeys := ad.Keys(source)

	var out Mutable
	ensure := func() Mutable {
		if out == nil {
			out = ad.Clone(source)
			e.stats.Cloned++
			if e.debugEnabled() {
				e.log.Debugf("cloned node path=%s keys=%d", e.pathString(), len(srcKeys))
			}
		}
		return out
	}

	deleted := 0
	for _, k := range srcKeys {
		srcVal, _ := ad.Get(source, k)
		revVal, present := ad.Get(revision, k)
		if !present {
			revVal = absent
		}

		e.path = append(e.path, k)
		res := e.merge(srcVal, revVal)
		e.path = e.path[:len(e.path)-1]

		if _, cyclic := res.(escapeSignal); cyclic {
			// Coarse bail-out: the first cyclic key resolves the WHOLE node
			// to the revision's value at that key, discarding the per-key
			// work done so far.
			return revVal
		}

		switch {
		case isAbsent(res):
			ensure().Delete(k)
			deleted++
		case sameRef(res, srcVal):
			// Unchanged below; the source child rides along by reference.
		default:
			ensure().Set(k, res)
		}
	}

	// Insert phase: keys the revision has and the source does not, copied in
	// by reference without recursive merging.
	revKeys := ad.Keys(revision)
	if len(revKeys) != len(srcKeys)-deleted {
		for _, k := range revKeys {
			if _, ok := ad.Get(source, k); ok {
				continue
			}
			v, _ := ad.Get(revision, k)
			ensure().Set(k, v)
		}
	}

	if out == nil {
		e.stats.Shared++
		return source
	}
	return out.Node()
}

// leafEquivalent asks adapters with boxed-primitive leaves whether two leaf
// values stand for the same scalar.
func (e *env) leafEquivalent(a, b any) bool {
	for _, ad := range e.adapters {
		if le, ok := ad.(LeafEqualer); ok {
			if equal, handled := le.LeafEqual(a, b); handled {
				return equal
			}
		}
	}
	return false
}

func isAbsent(v any) bool {
	_, ok := v.(absentMarker)
	return ok
}

// exported maps the internal absent marker to nil before a value crosses
// into caller code.
func exported(v any) any {
	if isAbsent(v) {
		return nil
	}
	return v
}

func (e *env) debugEnabled() bool {
	if l, ok := e.log.(interface{ IsEnabled(LogLevel) bool }); ok {
		return l.IsEnabled(LevelDebug)
	}
	return true
}

// pathString renders the current path for log lines. pkg/pathfmt is the
// caller-facing renderer; this one stays allocation-light and unquoted.
func (e *env) pathString() string {
	if len(e.path) == 0 {
		return "."
	}
	var b strings.Builder
	for _, s := range e.path {
		switch k := s.Key.(type) {
		case string:
			b.WriteByte('.')
			b.WriteString(k)
		case int:
			fmt.Fprintf(&b, "[%d]", k)
		default:
			fmt.Fprintf(&b, ".%v", k)
		}
	}
	return b.String()
}
