package controlflow

import "github.com/susji/nwcfr/block"

// singular reports whether b has exactly one instruction.
func singular(b *block.Block) bool {
	return len(b.Instructions) == 1
}

// isLoneJump reports whether b is a bare unconditional JMP that at least
// one parent reaches conditionally. A block whose every parent
// unconditionally falls into it has only been split because some other
// block jumps into its middle -- it isn't a real source-level jump target.
// Only once some parent actually branches does the bare JMP represent a
// break/continue/loop-back candidate.
func isLoneJump(b *block.Block) bool {
	if b == nil {
		return false
	}
	if !singular(b) || b.Instructions[0].Opcode != block.OpJMP {
		return false
	}
	for _, p := range b.Parents {
		if p.HasConditionalChildren() {
			return true
		}
	}
	return false
}

func isNotLoneJump(b *block.Block) bool {
	return !isLoneJump(b)
}

// isReturnBlock reports whether b contains a RETN instruction.
func isReturnBlock(b *block.Block) bool {
	for _, inst := range b.Instructions {
		if inst.Opcode == block.OpRETN {
			return true
		}
	}
	return false
}

// isReturnControl reports whether b is marked Return. If checkChildren is
// set and b has unconditional children, it also looks one step into each
// child for a Return marker.
func isReturnControl(b *block.Block, checkChildren bool) bool {
	if b.IsControl(block.KindReturn) {
		return true
	}
	if !checkChildren || b.HasConditionalChildren() {
		return false
	}
	for _, c := range b.Children {
		if c.IsControl(block.KindReturn) {
			return true
		}
	}
	return false
}

// earliest returns the block with the smallest address. Undefined
// (returns nil) on an empty slice.
func earliest(blocks []*block.Block) *block.Block {
	var result *block.Block
	for _, b := range blocks {
		if result == nil || b.Address < result.Address {
			result = b
		}
	}
	return result
}

// latest returns the block with the largest address. Undefined (returns
// nil) on an empty slice.
func latest(blocks []*block.Block) *block.Block {
	var result *block.Block
	for _, b := range blocks {
		if result == nil || b.Address > result.Address {
			result = b
		}
	}
	return result
}

// findPathMerge walks forward from the later of b1/b2 collecting every
// descendant reachable via a linear path starting at the earlier one, and
// returns the earliest such descendant -- the point where the two
// branches' control flow reconverges. Recursion is bounded by the
// finiteness of the CFG: it never enters a block twice, and never descends
// past a block already proven linearly reachable.
func findPathMerge(b1, b2 *block.Block) *block.Block {
	if b1.Address > b2.Address {
		b1, b2 = b2, b1
	}
	var merges []*block.Block
	collectPathMerges(&merges, b1, b2, map[*block.Block]bool{})
	return earliest(merges)
}

func collectPathMerges(merges *[]*block.Block, b1, b2 *block.Block, seen map[*block.Block]bool) {
	// The address guard ends a branch once b2 descends (via a back edge) to
	// an address before b1's; the seen set ends it when b2 goes round a
	// cycle that lies wholly after b1.
	if b1.Address > b2.Address || seen[b2] {
		return
	}
	seen[b2] = true
	if block.HasLinearPath(b1, b2) {
		*merges = append(*merges, b2)
		return
	}
	for _, c := range b2.Children {
		collectPathMerges(merges, b1, c, seen)
	}
}
