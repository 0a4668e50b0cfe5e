package merge

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMerge_ChangedLeafClonesSpineOnly(t *testing.T) {
	source := map[string]any{
		"a": map[string]any{"b": 1, "c": 2},
		"d": []any{3, 4},
	}
	revision := map[string]any{
		"a": map[string]any{"b": 1, "c": 5},
		"d": []any{3, 4},
	}

	res := Merge(source, revision, DefaultOptions())
	got, ok := res.Value.(map[string]any)
	if !ok {
		t.Fatalf("expected map[string]any result, got %T", res.Value)
	}

	if diff := cmp.Diff(revision, got); diff != "" {
		t.Errorf("result not deeply equal to revision (-want +got):\n%s", diff)
	}
	if sameRef(got, source) {
		t.Error("root should have been cloned, a descendant changed")
	}
	if !sameRef(got["d"], source["d"]) {
		t.Error("unchanged sibling d should be the source slice by reference")
	}
	if sameRef(got["a"], source["a"]) {
		t.Error("a contains the change and must be a new map")
	}
	if got["a"].(map[string]any)["c"] != 5 {
		t.Errorf("expected c=5, got %v", got["a"].(map[string]any)["c"])
	}
}

func TestMerge_IdenticalTreesReturnSource(t *testing.T) {
	source := map[string]any{
		"x": map[string]any{"y": []any{1, 2, map[string]any{"z": true}}},
	}

	if got := Trees(source, source); !sameRef(got, source) {
		t.Error("merge(x, x) must return x itself")
	}

	// Equal by value but built separately: every key compares equal, so the
	// source node itself comes back without a clone.
	revision := map[string]any{"v": "x"}
	src2 := map[string]any{"v": "x"}
	if got := Trees(src2, revision); !sameRef(got, src2) {
		t.Error("value-equal flat trees should share the source node")
	}
}

func TestMerge_DoesNotMutateSource(t *testing.T) {
	source := map[string]any{
		"a": map[string]any{"b": 1, "c": 2},
		"d": []any{3, map[string]any{"e": 4}},
	}
	snapshot := map[string]any{
		"a": map[string]any{"b": 1, "c": 2},
		"d": []any{3, map[string]any{"e": 4}},
	}
	revision := map[string]any{
		"a": map[string]any{"b": 9},
		"d": []any{3},
		"f": "new",
	}

	Merge(source, revision, DefaultOptions())

	if diff := cmp.Diff(snapshot, source); diff != "" {
		t.Errorf("source mutated by merge (-want +got):\n%s", diff)
	}
}

func TestMerge_InsertCopiesByReference(t *testing.T) {
	source := map[string]any{"x": 1}
	inserted := map[string]any{"deep": []any{1, 2}}
	revision := map[string]any{"x": 1, "y": inserted}

	got := Trees(source, revision).(map[string]any)

	want := map[string]any{"x": 1, "y": map[string]any{"deep": []any{1, 2}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("unexpected result (-want +got):\n%s", diff)
	}
	if !sameRef(got["y"], inserted) {
		t.Error("new keys are assigned by reference, not merged or copied")
	}
	if sameRef(got, source) {
		t.Error("inserting a key must clone the node")
	}
}

func TestMerge_AbsentKeyDeletes(t *testing.T) {
	source := map[string]any{"x": 1, "y": 2}
	revision := map[string]any{"x": 1}

	res := Merge(source, revision, DefaultOptions())
	got := res.Value.(map[string]any)

	if res.Stats.Deleted != 1 {
		t.Errorf("expected 1 deletion recorded, got %d", res.Stats.Deleted)
	}
	if diff := cmp.Diff(revision, got); diff != "" {
		t.Errorf("unexpected result (-want +got):\n%s", diff)
	}
	if _, stillThere := got["y"]; stillThere {
		t.Error("y must be absent from the key set, not present-and-nil")
	}
	if source["y"] != 2 {
		t.Error("deletion must happen on a clone, source untouched")
	}
}

func TestMerge_DeleteAndInsertSameNode(t *testing.T) {
	source := map[string]any{"x": 1, "y": 2}
	revision := map[string]any{"x": 1, "z": 3}

	got := Trees(source, revision).(map[string]any)
	if diff := cmp.Diff(revision, got); diff != "" {
		t.Errorf("unexpected result (-want +got):\n%s", diff)
	}
}

func TestMerge_ShapeMismatchReplacesWholesale(t *testing.T) {
	oldSub := map[string]any{"n": 1}
	source := map[string]any{"x": oldSub}
	revision := map[string]any{"x": "leaf"}

	got := Trees(source, revision).(map[string]any)

	if got["x"] != "leaf" {
		t.Errorf("expected x replaced by leaf, got %v", got["x"])
	}
	if sameRef(got, source) {
		t.Error("enclosing node must be cloned")
	}
	if oldSub["n"] != 1 {
		t.Error("discarded subtree must not be touched")
	}

	// Map vs slice: compatible container check fails, revision wins.
	src2 := map[string]any{"x": map[string]any{"a": 1}}
	rev2 := map[string]any{"x": []any{1}}
	got2 := Trees(src2, rev2).(map[string]any)
	if !sameRef(got2["x"], rev2["x"]) {
		t.Error("kind mismatch must take the revision subtree by reference")
	}
}

func TestMerge_MaximalSharingDeep(t *testing.T) {
	leafParent := map[string]any{"leaf": 1}
	sibling := map[string]any{"s": true}
	farBranch := []any{map[string]any{"far": "away"}}
	source := map[string]any{
		"top": map[string]any{
			"mid":  map[string]any{"target": leafParent, "sibling": sibling},
			"also": "kept",
		},
		"far": farBranch,
	}
	revision := map[string]any{
		"top": map[string]any{
			"mid":  map[string]any{"target": map[string]any{"leaf": 2}, "sibling": map[string]any{"s": true}},
			"also": "kept",
		},
		"far": []any{map[string]any{"far": "away"}},
	}

	res := Merge(source, revision, DefaultOptions())
	got := res.Value.(map[string]any)

	if diff := cmp.Diff(revision, got); diff != "" {
		t.Fatalf("unexpected result (-want +got):\n%s", diff)
	}

	// Only root, top, mid and target are on the changed spine.
	if sameRef(got, source) || sameRef(got["top"], source["top"]) {
		t.Error("spine nodes must be fresh")
	}
	gotMid := got["top"].(map[string]any)["mid"].(map[string]any)
	srcMid := source["top"].(map[string]any)["mid"].(map[string]any)
	if sameRef(gotMid, srcMid) {
		t.Error("mid is on the spine and must be fresh")
	}
	if !sameRef(gotMid["sibling"], sibling) {
		t.Error("sibling subtree must ride along by reference")
	}
	if !sameRef(got["far"], farBranch) {
		t.Error("far branch must ride along by reference")
	}
	if res.Stats.Cloned != 4 {
		t.Errorf("expected exactly 4 clones (root, top, mid, target), got %d", res.Stats.Cloned)
	}
}

func TestMerge_Slices(t *testing.T) {
	t.Run("replace element", func(t *testing.T) {
		source := []any{1, 2, 3}
		got := Trees(source, []any{1, 9, 3}).([]any)
		if diff := cmp.Diff([]any{1, 9, 3}, got); diff != "" {
			t.Errorf("unexpected result (-want +got):\n%s", diff)
		}
		if sameRef(got, source) {
			t.Error("changed slice must be a fresh backing array")
		}
	})

	t.Run("grow appends by reference", func(t *testing.T) {
		extra := map[string]any{"new": true}
		got := Trees([]any{1}, []any{1, extra}).([]any)
		if len(got) != 2 || !sameRef(got[1], extra) {
			t.Errorf("expected appended element by reference, got %v", got)
		}
	})

	t.Run("shrink truncates", func(t *testing.T) {
		got := Trees([]any{1, 2, 3}, []any{1}).([]any)
		if diff := cmp.Diff([]any{1}, got); diff != "" {
			t.Errorf("unexpected result (-want +got):\n%s", diff)
		}
	})

	t.Run("shrink with change", func(t *testing.T) {
		got := Trees([]any{1, 2, 3}, []any{9}).([]any)
		if diff := cmp.Diff([]any{9}, got); diff != "" {
			t.Errorf("unexpected result (-want +got):\n%s", diff)
		}
	})

	t.Run("identical slices share", func(t *testing.T) {
		source := []any{1, map[string]any{"k": "v"}}
		got := Trees(source, []any{1, map[string]any{"k": "v"}})
		if !sameRef(got, source) {
			t.Error("value-equal slices should come back as the source")
		}
	})
}

func TestMerge_NilLeaves(t *testing.T) {
	source := map[string]any{"a": nil, "b": 1}
	revision := map[string]any{"a": nil, "b": nil}

	got := Trees(source, revision).(map[string]any)

	if diff := cmp.Diff(revision, got); diff != "" {
		t.Errorf("unexpected result (-want +got):\n%s", diff)
	}
	if v, present := got["a"]; !present || v != nil {
		t.Error("explicit nil stays a present key, distinct from deletion")
	}
}

func TestMerge_Stats(t *testing.T) {
	source := map[string]any{"a": map[string]any{"b": 1}, "c": 2}
	revision := map[string]any{"a": map[string]any{"b": 1}, "c": 3}

	res := Merge(source, revision, DefaultOptions())

	if res.Stats.Cloned != 1 {
		t.Errorf("only the root changed, expected 1 clone, got %d", res.Stats.Cloned)
	}
	if res.Stats.Cycles != 0 {
		t.Errorf("expected no cycles, got %d", res.Stats.Cycles)
	}
	if res.Stats.Visited == 0 || res.Stats.Shared == 0 {
		t.Errorf("expected walk activity, got %+v", res.Stats)
	}
}

func TestMerge_RootLeaves(t *testing.T) {
	if got := Trees(1, 2); got != 2 {
		t.Errorf("leaf roots: revision wins, got %v", got)
	}
	if got := Trees("same", "same"); got != "same" {
		t.Errorf("equal leaf roots share, got %v", got)
	}
	rev := map[string]any{"a": 1}
	if got := Trees(nil, rev); !sameRef(got, rev) {
		t.Error("nil source must be replaced by the revision itself")
	}
}
