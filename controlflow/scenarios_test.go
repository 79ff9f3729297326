package controlflow_test

import (
	"testing"

	"github.com/susji/nwcfr/block"
	"github.com/susji/nwcfr/controlflow"
	"github.com/susji/nwcfr/testers/assert"
	"github.com/susji/nwcfr/testers/require"
)

// countMarkers returns how many control markers are attached across blocks,
// used by the idempotence checks below: a second AnalyzeControlFlow pass
// over an already-annotated graph must not grow this count.
func countMarkers(blocks []*block.Block) int {
	n := 0
	for _, b := range blocks {
		n += len(b.Controls)
	}
	return n
}

func requireIdempotent(t *testing.T, blocks []*block.Block) {
	before := countMarkers(blocks)
	require.True(t, controlflow.AnalyzeControlFlow(blocks) == nil)
	assert.Equal(t, before, countMarkers(blocks))
}

// TestSimpleIf covers spec scenario 1: a conditional with no else, where
// the true-branch falls straight into the join.
func TestSimpleIf(t *testing.T) {
	a := blkN(0, 1)
	b := blk(4, block.OpNOP)
	c := blk(8, block.OpNOP)

	branch(a, b, c)
	link(b, c)

	blocks := []*block.Block{a, b, c}
	require.True(t, controlflow.AnalyzeControlFlow(blocks) == nil)

	require.True(t, a.IsControl(block.KindIfCond))
	require.True(t, b.IsControl(block.KindIfTrue))
	require.True(t, c.IsControl(block.KindIfNext))
	assert.False(t, a.IsLoop())
	assert.False(t, b.IsLoop())
	assert.False(t, c.IsLoop())

	requireIdempotent(t, blocks)
}

// TestIfElseMerge covers spec scenario 2: two branches that each flow
// unconditionally into a shared join block.
func TestIfElseMerge(t *testing.T) {
	a := blkN(0, 1)
	b := blk(4, block.OpNOP)
	c := blk(8, block.OpNOP)
	d := blk(12, block.OpNOP)

	branch(a, b, c)
	link(b, d)
	link(c, d)

	blocks := []*block.Block{a, b, c, d}
	require.True(t, controlflow.AnalyzeControlFlow(blocks) == nil)

	require.True(t, a.IsControl(block.KindIfCond))
	require.True(t, b.IsControl(block.KindIfTrue))
	require.True(t, c.IsControl(block.KindIfElse))
	require.True(t, d.IsControl(block.KindIfNext))

	requireIdempotent(t, blocks)
}

// TestWhileLoop covers spec scenario 3: a loop whose head also carries the
// conditional bounding it, with a tail block that isn't a bare jump.
func TestWhileLoop(t *testing.T) {
	a := blkN(0, 1)
	b := blk(4, block.OpNOP)
	c := blk(8, block.OpNOP)
	d := blkN(12, 2)
	e := blk(20, block.OpNOP)

	link(a, b)
	branch(b, c, e)
	link(c, d)
	link(d, b)

	blocks := []*block.Block{a, b, c, d, e}
	require.True(t, controlflow.AnalyzeControlFlow(blocks) == nil)

	require.True(t, b.IsControl(block.KindWhileHead))
	require.True(t, b.IsControl(block.KindIfCond))
	require.True(t, d.IsControl(block.KindWhileTail))
	require.True(t, e.IsControl(block.KindWhileNext))
	require.True(t, c.IsControl(block.KindIfTrue))

	requireIdempotent(t, blocks)
}

// TestDoWhileLoop covers spec scenario 4: a loop whose tail is a bare JMP
// back to the head, claimed by the do-while pass before the while pass runs.
func TestDoWhileLoop(t *testing.T) {
	a := blkN(0, 1)
	b := blk(4, block.OpNOP)
	c := blk(8, block.OpNOP)
	tail := jmp(10)
	d := blk(12, block.OpNOP)

	link(a, b)
	link(b, c)
	branch(c, tail, d)
	link(tail, b)

	blocks := []*block.Block{a, b, c, tail, d}
	require.True(t, controlflow.AnalyzeControlFlow(blocks) == nil)

	require.True(t, b.IsControl(block.KindDoWhileHead))
	require.True(t, tail.IsControl(block.KindDoWhileTail))
	require.True(t, d.IsControl(block.KindDoWhileNext))

	requireIdempotent(t, blocks)
}

// TestBreakInsideWhile covers spec scenario 5: a bare-JMP block inside the
// loop body whose only child is the loop's next block.
func TestBreakInsideWhile(t *testing.T) {
	a := blkN(0, 1)
	b := blk(4, block.OpNOP)
	c := blk(8, block.OpNOP)
	x := jmp(10)
	d := blkN(12, 2)
	e := blk(20, block.OpNOP)

	link(a, b)
	branch(b, c, e)
	branch(c, d, x)
	link(d, b)
	link(x, e)

	blocks := []*block.Block{a, b, c, x, d, e}
	require.True(t, controlflow.AnalyzeControlFlow(blocks) == nil)

	require.True(t, b.IsControl(block.KindWhileHead))
	require.True(t, d.IsControl(block.KindWhileTail))
	require.True(t, e.IsControl(block.KindWhileNext))
	require.True(t, x.IsControl(block.KindBreak))

	for _, c := range x.Controls {
		if brk, ok := c.(controlflow.Break); ok {
			assert.Equal(t, b, brk.LoopHead)
			assert.Equal(t, d, brk.LoopTail)
			assert.Equal(t, e, brk.LoopNext)
		}
	}

	requireIdempotent(t, blocks)
}

// TestSharedReturnTrampoline covers spec scenario 6: three distinct call
// sites jumping into a single shared RETN epilogue. The marker belongs on
// each call site, not on the epilogue itself.
func TestSharedReturnTrampoline(t *testing.T) {
	p1 := jmp(0)
	p2 := jmp(4)
	p3 := jmp(8)
	r := retn(12)
	r.SubRoutine = &block.Subroutine{Address: 0}

	link(p1, r)
	link(p2, r)
	link(p3, r)

	blocks := []*block.Block{p1, p2, p3, r}
	require.True(t, controlflow.AnalyzeControlFlow(blocks) == nil)

	require.True(t, p1.IsControl(block.KindReturn))
	require.True(t, p2.IsControl(block.KindReturn))
	require.True(t, p3.IsControl(block.KindReturn))
	assert.False(t, r.IsControl(block.KindReturn))

	requireIdempotent(t, blocks)
}
