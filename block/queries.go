package block

import (
	"sort"

	"github.com/bits-and-blooms/bitset"
)

// Index assigns each block a dense ordinal (its position in ascending
// address order). Traversal helpers use it to size a bitset-backed visited
// set instead of a map keyed by address. Safe to call more than once; it's
// idempotent for an unchanged slice.
func Index(blocks []*Block) {
	sorted := append([]*Block(nil), blocks...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Address < sorted[j].Address })
	for i, b := range sorted {
		b.ordinal = i
		b.indexed = true
	}
}

// GetNextBlock returns the block in blocks with the smallest address
// strictly greater than b's, or false if b is the last block.
func GetNextBlock(blocks []*Block, b *Block) (*Block, bool) {
	var next *Block
	for _, cand := range blocks {
		if cand.Address <= b.Address {
			continue
		}
		if next == nil || cand.Address < next.Address {
			next = cand
		}
	}
	return next, next != nil
}

// HasLinearPath reports whether to is reachable from from by following
// successor edges -- both the fallthrough/jump edge of an unconditional
// block and either arm of a conditional one. The only edges excluded are
// calls into another subroutine: those don't represent flow within this
// one, so a path that only exists by leaving the subroutine doesn't count.
//
// "Linear" here describes what's excluded (subroutine calls), not a
// restriction to unconditional edges: a do-while loop's own tail is only
// reachable from its head by passing through the loop's conditional exit
// test, and verifyLoop relies on exactly that.
//
// Visited blocks are tracked in a bitset keyed by ordinal (see Index) so a
// back edge can't send this into an infinite loop. Blocks that were never
// indexed have no such guard and are revisited freely, so the search only
// terminates when no cycle runs through unindexed blocks.
// AnalyzeControlFlow indexes every block before any query.
func HasLinearPath(from, to *Block) bool {
	return hasLinearPath(from, to, bitset.New(0))
}

func hasLinearPath(from, to *Block, visited *bitset.BitSet) bool {
	if from == to {
		return true
	}
	for i, c := range from.Children {
		if from.IsSubRoutineChild(i) {
			continue
		}
		if c.indexed {
			if visited.Test(uint(c.ordinal)) {
				continue
			}
			visited.Set(uint(c.ordinal))
		}
		if hasLinearPath(c, to, visited) {
			return true
		}
	}
	return false
}
