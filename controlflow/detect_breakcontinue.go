package controlflow

import "github.com/susji/nwcfr/block"

// detectBreak finds every "break;": a bare-JMP block whose single child is
// the block directly following some loop.
func detectBreak(blocks []*block.Block) {
	for _, b := range blocks {
		if b.HasMainControl() || b.IsControl(block.KindBreak) || !isLoneJump(b) {
			continue
		}
		if len(b.Children) != 1 || !b.Children[0].IsLoopNext() {
			continue
		}
		head, tail, next, ok := b.Children[0].GetLoop()
		if !ok {
			continue
		}
		b.AddControl(Break{LoopHead: head, LoopTail: tail, LoopNext: next})
	}
}

// detectContinue finds every "continue;": a bare-JMP block whose single
// child is a loop's tail. It runs after detectBreak; the two are disjoint
// because a block's single child can't be both the loop's next and its
// tail.
func detectContinue(blocks []*block.Block) {
	for _, b := range blocks {
		if b.HasMainControl() || b.IsControl(block.KindContinue) || !isLoneJump(b) {
			continue
		}
		if len(b.Children) != 1 || !b.Children[0].IsLoopTail() {
			continue
		}
		head, tail, next, ok := b.Children[0].GetLoop()
		if !ok {
			continue
		}
		b.AddControl(Continue{LoopHead: head, LoopTail: tail, LoopNext: next})
	}
}
