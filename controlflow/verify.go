package controlflow

import "github.com/susji/nwcfr/block"

// verifyControlFlow runs the three verification sweeps over an already
// fully-detected block graph: general block sanity, loop geometry, and if
// geometry. Any violation is fatal -- the caller must discard the graph.
func verifyControlFlow(blocks []*block.Block) error {
	if err := verifyBlocks(blocks); err != nil {
		return err
	}
	if err := verifyLoops(blocks); err != nil {
		return err
	}
	return verifyIf(blocks)
}

// verifyBlocks asserts that every block carrying a back edge is part of
// some loop, and that every block with conditional children is marked
// IfCond with each child accounted for by the if: itself a nested
// condition, one of the if's own branches, or the immediate join.
func verifyBlocks(blocks []*block.Block) error {
	for _, b := range blocks {
		if b.HasBackEdge() && !b.IsLoop() {
			return malformed("block %s has back edges but is not part of a loop", hex(b.Address))
		}

		if b.HasConditionalChildren() {
			if !b.IsControl(block.KindIfCond) {
				return malformed("block %s has conditional children but is not an if", hex(b.Address))
			}
			for _, c := range b.Children {
				if !isIfType(c) {
					return malformed("block %s is child of if %s but is not an if type",
						hex(c.Address), hex(b.Address))
				}
			}
		}
	}
	return nil
}

// isIfType reports whether b plays some role in an if construct: the
// condition of a (possibly nested) if, one of its branches, or the block
// where its branches rejoin. A plain if with no else has no branch block
// that's itself IfCond or IfNext -- its then-branch is only ever IfTrue --
// so the child check above has to accept any of the four if-related kinds,
// not just IfCond/IfNext.
func isIfType(b *block.Block) bool {
	return b.IsControl(block.KindIfCond) ||
		b.IsControl(block.KindIfTrue) ||
		b.IsControl(block.KindIfElse) ||
		b.IsControl(block.KindIfNext)
}

// verifyLoops checks every recovered do-while and while loop's geometry.
func verifyLoops(blocks []*block.Block) error {
	doWhiles := Collect(blocks, block.KindDoWhileHead)
	for _, m := range doWhiles {
		lm := m.(block.LoopMarker)
		head, tail, next := lm.Loop()
		if err := verifyLoop(head, tail, next); err != nil {
			return err
		}
	}

	whiles := Collect(blocks, block.KindWhileHead)
	for _, m := range whiles {
		lm := m.(block.LoopMarker)
		head, tail, next := lm.Loop()
		if err := verifyLoop(head, tail, next); err != nil {
			return err
		}
	}
	return nil
}

// verifyLoop checks that a loop's head/tail/next triple is correctly
// ordered, that a linear path exists head->tail and tail->next, and that
// no block inside the loop escapes it illegitimately.
func verifyLoop(head, tail, next *block.Block) error {
	if head.Address >= tail.Address || next.Address <= tail.Address {
		return malformed("loop blocks out of order: head=%s tail=%s next=%s",
			hex(head.Address), hex(tail.Address), hex(next.Address))
	}
	if !block.HasLinearPath(head, tail) || !block.HasLinearPath(tail, next) {
		return malformed("loop blocks have no linear path: head=%s tail=%s next=%s",
			hex(head.Address), hex(tail.Address), hex(next.Address))
	}
	return verifyLoopBlocks(head, head, tail, next)
}

// verifyLoopBlocks recursively checks that every block in [head, tail]
// only jumps to another interior block, to next (ending the loop), or to
// a return block (leaving the subroutine entirely). Recursion only
// descends into children with a strictly larger address than the current
// block, which -- combined with the [head.Address, tail.Address] bound
// below -- prevents looping forever over a back edge.
func verifyLoopBlocks(b, head, tail, next *block.Block) error {
	if b.Address > tail.Address || b.Address < head.Address {
		return nil
	}

	for i, child := range b.Children {
		if b.IsSubRoutineChild(i) {
			continue
		}

		if child.Address < head.Address ||
			(child.Address > tail.Address && child.Address != next.Address) {

			if !isReturnControl(b, false) && !isReturnControl(child, true) {
				return malformed("loop block jumps outside loop: head=%s tail=%s next=%s: %s => %s",
					hex(head.Address), hex(tail.Address), hex(next.Address),
					hex(b.Address), hex(child.Address))
			}
		}

		if child.Address > b.Address {
			if err := verifyLoopBlocks(child, head, tail, next); err != nil {
				return err
			}
		}
	}
	return nil
}

// verifyIf checks that each recovered if's branches have a linear path to
// wherever they reconverge.
func verifyIf(blocks []*block.Block) error {
	ifs := Collect(blocks, block.KindIfCond)
	for _, m := range ifs {
		ic := m.(IfCond)
		if ic.True != nil && ic.Next != nil {
			if !block.HasLinearPath(ic.True, ic.Next) {
				return malformed("if blocks true and next have no linear path: cond=%s true=%s next=%s",
					hex(ic.Cond.Address), hex(ic.True.Address), hex(ic.Next.Address))
			}
		}
		if ic.Else != nil && ic.Next != nil {
			if !block.HasLinearPath(ic.Else, ic.Next) {
				return malformed("if blocks else and next have no linear path: cond=%s else=%s next=%s",
					hex(ic.Cond.Address), hex(ic.Else.Address), hex(ic.Next.Address))
			}
		}
	}
	return nil
}
