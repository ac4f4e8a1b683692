package ir

// Predecessors returns one entry per edge into target, in layout order.
// A block branching to target from both arms appears twice.
func Predecessors(f *Func, target BlockID) []BlockID {
	var out []BlockID
	for _, id := range f.Layout {
		blk := f.Block(id)
		for _, succ := range blk.Term.Successors() {
			if succ == target {
				out = append(out, id)
			}
		}
	}
	return out
}

// Reachable returns the set of blocks reachable from the entry.
func Reachable(f *Func) map[BlockID]bool {
	seen := make(map[BlockID]bool, len(f.Blocks))
	if f.Block(f.Entry) == nil {
		return seen
	}
	stack := []BlockID{f.Entry}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			continue
		}
		seen[id] = true
		if blk := f.Block(id); blk != nil {
			stack = append(stack, blk.Term.Successors()...)
		}
	}
	return seen
}
