package block_test

import (
	"testing"

	"github.com/susji/nwcfr/block"
	"github.com/susji/nwcfr/testers/assert"
	"github.com/susji/nwcfr/testers/require"
)

func mk(addr uint32) *block.Block {
	return &block.Block{Address: addr, Instructions: []block.Instruction{{Address: addr, Opcode: block.OpNOP}}}
}

func TestGetNextBlock(t *testing.T) {
	a, b, c := mk(0), mk(4), mk(8)
	blocks := []*block.Block{a, b, c}

	next, ok := block.GetNextBlock(blocks, a)
	require.True(t, ok)
	assert.Equal(t, b, next)

	next, ok = block.GetNextBlock(blocks, b)
	require.True(t, ok)
	assert.Equal(t, c, next)

	_, ok = block.GetNextBlock(blocks, c)
	assert.False(t, ok)
}

func TestHasLinearPath(t *testing.T) {
	a, b, c := mk(0), mk(4), mk(8)
	a.Children = []*block.Block{b}
	b.Children = []*block.Block{c}
	b.Parents = []*block.Block{a}
	c.Parents = []*block.Block{b}

	assert.True(t, block.HasLinearPath(a, c))
	assert.True(t, block.HasLinearPath(a, a))
	assert.False(t, block.HasLinearPath(c, a))
}

func TestHasLinearPathExcludesSubRoutineChild(t *testing.T) {
	a, b, c := mk(0), mk(4), mk(8)
	a.Children = []*block.Block{b, c}
	a.SetSubRoutineChild(1)

	assert.True(t, block.HasLinearPath(a, b))
	assert.False(t, block.HasLinearPath(a, c))
}

func TestHasLinearPathTerminatesOnBackEdge(t *testing.T) {
	a, b := mk(0), mk(4)
	a.Children = []*block.Block{b}
	b.Children = []*block.Block{a}
	block.Index([]*block.Block{a, b})

	assert.True(t, block.HasLinearPath(a, b))
	assert.False(t, block.HasLinearPath(b, mk(99)))
}

func TestGetLaterParents(t *testing.T) {
	head, tail := mk(4), mk(8)
	earlier := mk(0)
	head.Parents = []*block.Block{earlier, tail}

	later := head.GetLaterParents()
	require.Equal(t, 1, len(later))
	assert.Equal(t, tail, later[0])
}
