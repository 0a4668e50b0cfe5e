// Package merge implements a structural-sharing merge of two tree-shaped
// values. Given a source tree and a revision tree of the same shape, Merge
// returns a tree deeply equal to the revision that reuses every unchanged
// subtree of the source by reference, cloning only the spine of nodes that
// actually changed. The source is never mutated.
//
// Containers are walked through Adapter implementations. Built-in adapters
// cover map[string]any, []any, *sequencedmap.Map[string, any] and
// *yaml.Node; callers can register their own via Options.Adapters.
package merge
