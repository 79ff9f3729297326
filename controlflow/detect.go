package controlflow

import "github.com/susji/nwcfr/block"

// detectControlFlow runs the six detection passes in the fixed order the
// rest of the package depends on: do-while before while (claims bare-JMP
// tails first), break and continue before if (they rely on lone-JMP
// blocks not yet being reinterpreted as if-branches), return before if
// (shared epilogues get attributed before the conditional pass inspects
// them), and if last of all.
func detectControlFlow(blocks []*block.Block) error {
	if err := detectDoWhile(blocks); err != nil {
		return err
	}
	if err := detectWhile(blocks); err != nil {
		return err
	}
	detectBreak(blocks)
	detectContinue(blocks)
	detectReturn(blocks)
	detectIf(blocks)
	return nil
}

// Collect gathers every control marker of the given kind across all
// blocks, in block order. Used internally by the verification sweeps to
// avoid re-walking the whole block list once per loop or if, and exposed
// for downstream consumers (e.g. a text emitter) that want to enumerate
// recovered loops or ifs without re-deriving them.
func Collect(blocks []*block.Block, kind block.MarkerKind) []block.ControlMarker {
	var out []block.ControlMarker
	for _, b := range blocks {
		for _, c := range b.Controls {
			if c.MarkerKind() == kind {
				out = append(out, c)
			}
		}
	}
	return out
}
