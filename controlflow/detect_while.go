package controlflow

import "github.com/susji/nwcfr/block"

// detectWhile finds every remaining loop whose tail jumps back to its head
// without being a bare JMP -- typically the loop-controlling comparison
// itself. It has the same shape as detectDoWhile minus the lone-jump
// filter on candidate tails; detectDoWhile has already claimed every
// bare-JMP tail, and HasMainControl prevents this pass from reconsidering
// them.
func detectWhile(blocks []*block.Block) error {
	for _, head := range blocks {
		parents := head.GetLaterParents()
		if len(parents) == 0 {
			continue
		}

		tail := latest(parents)
		if tail.HasMainControl() {
			continue
		}

		next, ok := block.GetNextBlock(blocks, tail)
		if !ok {
			return malformed("cannot find block following while loop: head=%s tail=%s",
				hex(head.Address), hex(tail.Address))
		}

		head.AddControl(WhileHead{Head: head, Tail: tail, Next: next})
		tail.AddControl(WhileTail{Head: head, Tail: tail, Next: next})
		next.AddControl(WhileNext{Head: head, Tail: tail, Next: next})
	}
	return nil
}
