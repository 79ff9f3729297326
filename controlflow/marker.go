// Package controlflow recovers the high-level control constructs (do-while,
// while, break, continue, return, if/if-else) a NWScript subroutine's
// basic-block graph was compiled from, and verifies the result is
// structurally well-formed.
//
// Detection runs as six fixed-order passes (see detect.go); each annotates
// candidate blocks with one of the marker types below. A later pass never
// reclassifies a block that already carries a "main" marker -- see
// block.Block.HasMainControl.
package controlflow

import "github.com/susji/nwcfr/block"

// DoWhileHead marks a loop head recovered from a do-while construct: the
// tail block is a bare JMP back to head, discovered before the less
// specific while pass runs.
type DoWhileHead struct{ Head, Tail, Next *block.Block }

func (DoWhileHead) MarkerKind() block.MarkerKind { return block.KindDoWhileHead }
func (m DoWhileHead) Loop() (head, tail, next *block.Block) {
	return m.Head, m.Tail, m.Next
}

type DoWhileTail struct{ Head, Tail, Next *block.Block }

func (DoWhileTail) MarkerKind() block.MarkerKind { return block.KindDoWhileTail }
func (m DoWhileTail) Loop() (head, tail, next *block.Block) {
	return m.Head, m.Tail, m.Next
}

type DoWhileNext struct{ Head, Tail, Next *block.Block }

func (DoWhileNext) MarkerKind() block.MarkerKind { return block.KindDoWhileNext }
func (m DoWhileNext) Loop() (head, tail, next *block.Block) {
	return m.Head, m.Tail, m.Next
}

// WhileHead marks a loop head whose tail is some other back-edge-carrying
// block, claimed only after the do-while pass has taken every bare-JMP
// tail. A while head also frequently carries an IfCond marker -- it is the
// sole exemption in detectIf's "already claimed" gate.
type WhileHead struct{ Head, Tail, Next *block.Block }

func (WhileHead) MarkerKind() block.MarkerKind { return block.KindWhileHead }
func (m WhileHead) Loop() (head, tail, next *block.Block) {
	return m.Head, m.Tail, m.Next
}

type WhileTail struct{ Head, Tail, Next *block.Block }

func (WhileTail) MarkerKind() block.MarkerKind { return block.KindWhileTail }
func (m WhileTail) Loop() (head, tail, next *block.Block) {
	return m.Head, m.Tail, m.Next
}

type WhileNext struct{ Head, Tail, Next *block.Block }

func (WhileNext) MarkerKind() block.MarkerKind { return block.KindWhileNext }
func (m WhileNext) Loop() (head, tail, next *block.Block) {
	return m.Head, m.Tail, m.Next
}

// Break marks a bare-JMP block whose single child is the next block of
// some loop -- a "break;" statement.
type Break struct{ LoopHead, LoopTail, LoopNext *block.Block }

func (Break) MarkerKind() block.MarkerKind { return block.KindBreak }
func (m Break) Loop() (head, tail, next *block.Block) {
	return m.LoopHead, m.LoopTail, m.LoopNext
}

// Continue marks a bare-JMP block whose single child is the tail of some
// loop -- a "continue;" statement.
type Continue struct{ LoopHead, LoopTail, LoopNext *block.Block }

func (Continue) MarkerKind() block.MarkerKind { return block.KindContinue }
func (m Continue) Loop() (head, tail, next *block.Block) {
	return m.LoopHead, m.LoopTail, m.LoopNext
}

// Return marks the logical site of a "return;" statement. If the actual
// RETN lives in a shared epilogue block with several callers, the marker is
// attached to each calling block instead of the epilogue itself -- see
// detect_return.go.
type Return struct{ Block *block.Block }

func (Return) MarkerKind() block.MarkerKind { return block.KindReturn }

// IfCond marks a block with two conditional children that forms an if or
// if-else. Else is nil for a plain if; Next is nil when the two branches
// never reconverge (e.g. both return).
type IfCond struct{ Cond, True, Else, Next *block.Block }

func (IfCond) MarkerKind() block.MarkerKind { return block.KindIfCond }

// IfTrue marks the then-branch of an if/if-else.
type IfTrue struct{ Cond, True, Else, Next *block.Block }

func (IfTrue) MarkerKind() block.MarkerKind { return block.KindIfTrue }

// IfElse marks the else-branch of an if-else.
type IfElse struct{ Cond, True, Else, Next *block.Block }

func (IfElse) MarkerKind() block.MarkerKind { return block.KindIfElse }

// IfNext marks the block where the then- and else-branches reconverge.
type IfNext struct{ Cond, True, Else, Next *block.Block }

func (IfNext) MarkerKind() block.MarkerKind { return block.KindIfNext }
