package controlflow_test

import "github.com/susji/nwcfr/block"

// These helpers are a tiny builder for literal block graphs used across the
// scenario tests in §8 of the control-flow recovery design: blocks are
// named by their address, wired with explicit parent/child edges, and
// tagged conditional or not by how many children they're given.

func blk(addr uint32, opcode block.Opcode) *block.Block {
	return &block.Block{
		Address:      addr,
		Instructions: []block.Instruction{{Address: addr, Opcode: opcode}},
	}
}

func blkN(addr uint32, n int) *block.Block {
	insts := make([]block.Instruction, n)
	for i := range insts {
		insts[i] = block.Instruction{Address: addr + uint32(i), Opcode: block.OpNOP}
	}
	return &block.Block{Address: addr, Instructions: insts}
}

// link wires an unconditional edge from -> to (fallthrough or JMP).
func link(from, to *block.Block) {
	from.Children = append(from.Children, to)
	to.Parents = append(to.Parents, from)
}

// branch wires a conditional block's two successors in order (taken,
// fallthrough) and marks the block conditional.
func branch(from, t, f *block.Block) {
	from.Conditional = true
	from.Children = append(from.Children, t, f)
	t.Parents = append(t.Parents, from)
	f.Parents = append(f.Parents, from)
}

func jmp(addr uint32) *block.Block {
	return blk(addr, block.OpJMP)
}

func retn(addr uint32) *block.Block {
	return blk(addr, block.OpRETN)
}
