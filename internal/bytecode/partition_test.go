package bytecode_test

import (
	"testing"

	"github.com/susji/nwcfr/block"
	"github.com/susji/nwcfr/internal/bytecode"
	"github.com/susji/nwcfr/testers/assert"
	"github.com/susji/nwcfr/testers/require"
)

// TestPartitionWhileLoop decodes and partitions the same shape as spec
// scenario 3 (a while loop whose head is also the conditional bounding
// it) straight from an encoded instruction stream, and checks that the
// partitioned graph has the loop's shape: a conditional head with two
// children and a tail block carrying the back edge.
func TestPartitionWhileLoop(t *testing.T) {
	// 0000 CONST        -- A, falls into B
	// 0002 JZ -> 0010   -- B, the loop head/condition: taken -> E, fallthrough -> C
	// 0008 ACTION       -- C/D, the loop body and tail: no leader falls
	// 000A JMP -> 0002  --   between them, so one block, back-edge to B
	// 0010 RETN         -- E, the loop next
	raw := []byte{
		0x04, 0x03,
		0x1F, 0x00, 0x00, 0x00, 0x00, 0x0E,
		0x05, 0x00,
		0x1D, 0x00, 0xFF, 0xFF, 0xFF, 0xF8,
		0x20, 0x03,
	}

	insts, err := bytecode.Decode(raw, 0)
	require.True(t, err == nil)

	sub := &block.Subroutine{Address: 0}
	blocks := bytecode.Partition(insts, sub)
	require.Equal(t, 4, len(blocks))

	byAddr := map[uint32]*block.Block{}
	for _, b := range blocks {
		byAddr[b.Address] = b
	}

	head := byAddr[2]
	tail := byAddr[0x8]
	next := byAddr[0x10]

	require.True(t, head != nil && tail != nil && next != nil)
	assert.True(t, head.HasConditionalChildren())
	assert.Equal(t, 2, len(head.Children))
	assert.True(t, tail.HasBackEdge())
}
