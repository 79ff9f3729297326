// Package bytecode turns a flat NWScript instruction stream into the
// block.Block graph the controlflow package analyzes. Everything here is
// a "collaborator" in spec terms: instruction decoding and basic-block
// partitioning are explicitly out of scope for the structural recovery
// pass itself, but a repo with nothing upstream of controlflow can't be
// driven end-to-end, so this package supplies a minimal one.
//
// The encoding understood by Decode is modeled on NWScript's NCS
// instruction format -- a one-byte opcode followed by a one-byte type
// qualifier, with a four-byte big-endian relative offset trailing the
// branch and call family -- but it only decodes the handful of opcodes
// the rest of this repo cares about, not the full NCS instruction set.
package bytecode

import (
	"encoding/binary"
	"fmt"

	"github.com/susji/nwcfr/block"
)

const (
	rawCPDOWNSP  = 0x01
	rawRSADD     = 0x02
	rawCPTOPSP   = 0x03
	rawCONST     = 0x04
	rawACTION    = 0x05
	rawLOGAND    = 0x06
	rawLOGOR     = 0x07
	rawEQ        = 0x08
	rawNEQ       = 0x09
	rawGEQ       = 0x0A
	rawGT        = 0x0B
	rawLT        = 0x0C
	rawLEQ       = 0x0D
	rawMOVSP     = 0x0E
	rawSAVEBP    = 0x0F
	rawRESTOREBP = 0x10
	rawJMP       = 0x1D
	rawJSR       = 0x1E
	rawJZ        = 0x1F
	rawRETN      = 0x20
	rawJNZ       = 0x21
	rawNOP       = 0x2D
)

var rawToOpcode = map[byte]block.Opcode{
	rawNOP:       block.OpNOP,
	rawCPDOWNSP:  block.OpCPDOWNSP,
	rawRSADD:     block.OpRSADD,
	rawCPTOPSP:   block.OpCPTOPSP,
	rawCONST:     block.OpCONST,
	rawACTION:    block.OpACTION,
	rawLOGAND:    block.OpLOGAND,
	rawLOGOR:     block.OpLOGOR,
	rawEQ:        block.OpEQ,
	rawNEQ:       block.OpNEQ,
	rawGEQ:       block.OpGEQ,
	rawGT:        block.OpGT,
	rawLT:        block.OpLT,
	rawLEQ:       block.OpLEQ,
	rawMOVSP:     block.OpMOVSP,
	rawJMP:       block.OpJMP,
	rawJZ:        block.OpJZ,
	rawJNZ:       block.OpJNZ,
	rawRETN:      block.OpRETN,
	rawSAVEBP:    block.OpSAVEBP,
	rawRESTOREBP: block.OpRESTOREBP,
	rawJSR:       block.OpJSR,
}

// hasOperand reports whether op carries a four-byte signed relative-offset
// operand immediately after its two-byte opcode/type header.
func hasOperand(op block.Opcode) bool {
	switch op {
	case block.OpJMP, block.OpJZ, block.OpJNZ, block.OpJSR:
		return true
	}
	return false
}

// Decode reads a flat instruction stream starting at base into decoded
// block.Instruction values, resolving branch/call operands into absolute
// target addresses. It stops at the first RETN or when raw is exhausted,
// whichever comes first -- a single call to Decode never spans more than
// one subroutine's worth of bytes.
func Decode(raw []byte, base uint32) ([]block.Instruction, error) {
	var out []block.Instruction
	addr := base
	for len(raw) > 0 {
		if len(raw) < 2 {
			return nil, fmt.Errorf("bytecode: truncated instruction header at %08X", addr)
		}
		op, ok := rawToOpcode[raw[0]]
		if !ok {
			return nil, fmt.Errorf("bytecode: unknown opcode byte %#02x at %08X", raw[0], addr)
		}

		inst := block.Instruction{Address: addr, Opcode: op}
		consumed := 2
		if hasOperand(op) {
			if len(raw) < 6 {
				return nil, fmt.Errorf("bytecode: truncated operand at %08X", addr)
			}
			rel := int32(binary.BigEndian.Uint32(raw[2:6]))
			inst.Target = uint32(int64(addr) + int64(rel))
			consumed = 6
		}

		out = append(out, inst)
		addr += uint32(consumed)
		raw = raw[consumed:]
		if op == block.OpRETN {
			break
		}
	}
	return out, nil
}
