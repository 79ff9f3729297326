package controlflow

import "github.com/susji/nwcfr/block"

// AnalyzeControlFlow recovers and verifies the high-level control
// constructs of a single subroutine's basic-block graph, given in
// ascending-address order. It mutates each block's Controls in place and
// returns the first ErrMalformedCFG encountered, wrapped with the
// offending addresses; on success, every invariant documented on
// block.Block's predicates holds.
//
// Analysis is synchronous, single-threaded, and touches only the blocks
// passed in: it borrows the graph for the duration of the call and
// appends to per-block marker slices, nothing more. A returned error means
// the graph is no longer trustworthy -- whatever markers were appended
// before the failure stay attached, and the caller should discard the
// graph rather than continue using it.
func AnalyzeControlFlow(blocks []*block.Block) error {
	block.Index(blocks)

	if err := detectControlFlow(blocks); err != nil {
		return err
	}
	return verifyControlFlow(blocks)
}
