package controlflow

import "github.com/susji/nwcfr/block"

// detectReturn finds every "return;" (and "return $value;") statement: a
// block containing a RETN, unless it's the subroutine's sole entry block.
// A bare-RETN block is often a shared epilogue several "return;" sites
// jump to; in that case the marker is attached to each logical return site
// (the calling block) instead of the shared epilogue itself.
func detectReturn(blocks []*block.Block) {
	for _, b := range blocks {
		if b.HasMainControl() || !isReturnBlock(b) {
			continue
		}
		if b.SubRoutine == nil || b.SubRoutine.Address == b.Address {
			continue
		}

		hasReturnParent := false
		if singular(b) {
			for _, p := range b.Parents {
				if p.HasUnconditionalChildren() && !p.HasMainControl() {
					hasReturnParent = true
					if !p.IsControl(block.KindReturn) {
						p.AddControl(Return{Block: b})
					}
				}
			}
		}

		if !hasReturnParent && !b.IsControl(block.KindReturn) {
			b.AddControl(Return{Block: b})
		}
	}
}
