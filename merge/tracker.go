package merge

// ancestorSet tracks the container nodes on the active recursion path of a
// single merge call. Membership is by node identity: a hit means the walk
// has come back around to a node it is already inside, i.e. a cycle.
//
// The set is owned by one call and is empty again whenever the call returns,
// cyclic or not; independent merges never share one.
type ancestorSet struct {
	members map[nodeRef]struct{}
}

func newAncestorSet() *ancestorSet {
	return &ancestorSet{members: make(map[nodeRef]struct{}, 8)}
}

func (a *ancestorSet) contains(r nodeRef) bool {
	_, ok := a.members[r]
	return ok
}

func (a *ancestorSet) enter(r nodeRef) {
	a.members[r] = struct{}{}
}

func (a *ancestorSet) leave(r nodeRef) {
	delete(a.members, r)
}

func (a *ancestorSet) size() int {
	return len(a.members)
}
