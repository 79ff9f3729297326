package controlflow

import "github.com/susji/nwcfr/block"

// detectDoWhile finds every do-while loop: a loop whose tail is nothing
// but a bare JMP back to the head. Because it runs first, it gets first
// claim on every such tail before detectWhile considers the same back
// edges.
func detectDoWhile(blocks []*block.Block) error {
	for _, head := range blocks {
		parents := head.GetLaterParents()
		var loneJumps []*block.Block
		for _, p := range parents {
			if isLoneJump(p) {
				loneJumps = append(loneJumps, p)
			}
		}
		if len(loneJumps) == 0 {
			continue
		}

		tail := latest(loneJumps)
		if tail.HasMainControl() {
			continue
		}

		next, ok := block.GetNextBlock(blocks, tail)
		if !ok {
			return malformed("cannot find block following do-while loop: head=%s tail=%s",
				hex(head.Address), hex(tail.Address))
		}

		head.AddControl(DoWhileHead{Head: head, Tail: tail, Next: next})
		tail.AddControl(DoWhileTail{Head: head, Tail: tail, Next: next})
		next.AddControl(DoWhileNext{Head: head, Tail: tail, Next: next})
	}
	return nil
}
