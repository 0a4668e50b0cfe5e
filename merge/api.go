package merge

// Result carries the merged tree and the traversal's diagnostics.
type Result struct {
	Value any
	Stats Stats
}

// Stats counts what one merge call did. Useful for asserting sharing
// behavior in tests and for the CLI's report.
type Stats struct {
	Visited  int // nodes entered by the walk
	Cloned   int // shallow clones performed (one per changed node)
	Shared   int // subtrees reused from source by reference
	Replaced int // subtrees taken wholesale from revision
	Deleted  int // keys removed because the revision dropped them
	Cycles   int // cycle bail-outs taken
}

// Merge produces a tree deeply equal to revision that reuses every subtree
// of source that did not change, by reference. Only the spine of nodes with
// an actually-changed descendant is cloned; source itself is never mutated.
//
// Example:
//
//	source := map[string]any{"a": map[string]any{"b": 1, "c": 2}, "d": []any{3}}
//	revision := map[string]any{"a": map[string]any{"b": 1, "c": 5}, "d": []any{3}}
//	res := merge.Merge(source, revision, merge.DefaultOptions())
//	// res.Value.(map[string]any)["d"] is source["d"], same slice.
func Merge(source, revision any, opts Options) Result {
	e := newEnv(opts)
	v := e.merge(source, revision)

	// The root cannot be its own ancestor against a fresh set, but stay
	// total if a custom adapter manufactures that state.
	if _, cyclic := v.(escapeSignal); cyclic {
		v = revision
	}

	return Result{Value: exported(v), Stats: e.stats}
}

// Trees is the plain-value shorthand for callers that do not need stats.
// Options may be omitted for the defaults.
func Trees(source, revision any, opts ...Options) any {
	opt := DefaultOptions()
	if len(opts) > 0 {
		opt = opts[0]
	}
	return Merge(source, revision, opt).Value
}
