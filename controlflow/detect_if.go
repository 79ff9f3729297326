package controlflow

import "github.com/susji/nwcfr/block"

// detectIf finds if and if-else statements: an undetermined block (or a
// WhileHead -- a while loop's head legitimately carries both the loop
// marker and the conditional bounding it) with two conditional children.
//
// If the first child has no linear path to the second, this is an
// if-else and the first branch never falls into the second; ifNext is
// wherever they reconverge, if anywhere. Otherwise it's a plain if: the
// branch with the smaller address is the then-branch, and the larger is
// where control continues, reflecting that a forward conditional jump in
// the bytecode targets the larger address to skip over the then-branch.
func detectIf(blocks []*block.Block) {
	for _, ifCond := range blocks {
		if ifCond.IsControl(block.KindIfCond) {
			continue
		}
		if ifCond.HasMainControl() && !ifCond.IsControl(block.KindWhileHead) {
			continue
		}
		if len(ifCond.Children) != 2 || !ifCond.HasConditionalChildren() {
			continue
		}

		c0, c1 := ifCond.Children[0], ifCond.Children[1]
		isIfElse := !block.HasLinearPath(c0, c1)

		var ifTrue, ifElse, ifNext *block.Block
		if isIfElse {
			ifTrue, ifElse = c0, c1
			ifNext = findPathMerge(ifTrue, ifElse)
		} else {
			low, high := c0, c1
			if c1.Address < c0.Address {
				low, high = c1, c0
			}
			ifTrue, ifNext = low, high
		}

		ifCond.AddControl(IfCond{Cond: ifCond, True: ifTrue, Else: ifElse, Next: ifNext})
		ifTrue.AddControl(IfTrue{Cond: ifCond, True: ifTrue, Else: ifElse, Next: ifNext})
		if ifElse != nil {
			ifElse.AddControl(IfElse{Cond: ifCond, True: ifTrue, Else: ifElse, Next: ifNext})
		}
		if ifNext != nil {
			ifNext.AddControl(IfNext{Cond: ifCond, True: ifTrue, Else: ifElse, Next: ifNext})
		}
	}
}
