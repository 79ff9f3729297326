package bytecode

import (
	"sort"

	"github.com/susji/nwcfr/block"
)

// Partition groups a flat, address-ordered instruction stream into
// block.Block values by the standard leader algorithm, grounded on the
// same three-pass shape as disasm.BuildCFG: find leaders, partition by
// leader, then compute each block's successor edges from its final
// instruction. It is the bytecode analogue of cfg.Form -- where that
// walked an AST splitting at if/while/for, this walks a flat instruction
// list splitting at branch targets and the instructions following them.
//
// sub identifies the enclosing subroutine; every produced block is
// stamped with it. Calls into other subroutines (JSR) are not resolved
// into child edges here -- cross-subroutine block resolution is its own
// concern, out of scope for this minimal partitioner -- so a JSR neither
// terminates its block nor grows Children; it behaves like any other
// non-branching instruction. A fuller decoder feeding a real multi-
// subroutine program would resolve JSR targets and flag the resulting
// edge with Block.SetSubRoutineChild, which is why that flag exists on
// block.Block at all, even though this partitioner never sets it.
func Partition(insts []block.Instruction, sub *block.Subroutine) []*block.Block {
	if len(insts) == 0 {
		return nil
	}

	addrToIdx := make(map[uint32]int, len(insts))
	for i, in := range insts {
		addrToIdx[in.Address] = i
	}

	leaders := map[int]bool{0: true}
	for i, in := range insts {
		if isTerminator(in.Opcode) && i+1 < len(insts) {
			leaders[i+1] = true
		}
		if isBranch(in.Opcode) {
			if idx, ok := addrToIdx[in.Target]; ok {
				leaders[idx] = true
			}
		}
	}

	starts := make([]int, 0, len(leaders))
	for idx := range leaders {
		starts = append(starts, idx)
	}
	sort.Ints(starts)

	blocks := make([]*block.Block, len(starts))
	blockAt := make(map[int]*block.Block, len(starts))
	for i, start := range starts {
		end := len(insts)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		b := &block.Block{
			Address:      insts[start].Address,
			Instructions: append([]block.Instruction(nil), insts[start:end]...),
			SubRoutine:   sub,
		}
		blocks[i] = b
		blockAt[start] = b
	}

	for i, start := range starts {
		end := len(insts)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		b := blocks[i]
		last := insts[end-1]

		switch last.Opcode {
		case block.OpRETN:
			// Terminal: no successors.
		case block.OpJMP:
			linkTarget(b, last.Target, addrToIdx, blockAt)
		case block.OpJZ, block.OpJNZ:
			b.Conditional = true
			linkTarget(b, last.Target, addrToIdx, blockAt)
			if end < len(insts) {
				link(b, blockAt[end])
			}
		default:
			if end < len(insts) {
				link(b, blockAt[end])
			}
		}
	}
	return blocks
}

func isTerminator(op block.Opcode) bool {
	switch op {
	case block.OpJMP, block.OpJZ, block.OpJNZ, block.OpRETN:
		return true
	}
	return false
}

func isBranch(op block.Opcode) bool {
	switch op {
	case block.OpJMP, block.OpJZ, block.OpJNZ:
		return true
	}
	return false
}

func linkTarget(from *block.Block, target uint32, addrToIdx map[uint32]int, blockAt map[int]*block.Block) {
	idx, ok := addrToIdx[target]
	if !ok {
		return
	}
	to, ok := blockAt[idx]
	if !ok {
		return
	}
	link(from, to)
}

func link(from, to *block.Block) {
	from.Children = append(from.Children, to)
	to.Parents = append(to.Parents, from)
}
