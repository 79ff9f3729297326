package block

import (
	"fmt"
	"strings"
)

// Dot renders blocks as a Graphviz digraph, annotated with each block's
// attached control markers. It exists purely as a debugging aid for
// cmd/nwcfr's -dumpdot flag -- nothing in the analysis pass consumes it.
func Dot(blocks []*Block) string {
	b := &strings.Builder{}
	b.WriteString("digraph cfg {\n")
	for _, blk := range blocks {
		label := fmt.Sprintf("%08X", blk.Address)
		if len(blk.Controls) > 0 {
			kinds := make([]string, len(blk.Controls))
			for i, c := range blk.Controls {
				kinds[i] = c.MarkerKind().String()
			}
			label += "\\n" + strings.Join(kinds, ",")
		}
		fmt.Fprintf(b, "  b%08X [label=%q];\n", blk.Address, label)
		for i, c := range blk.Children {
			style := "solid"
			if blk.IsSubRoutineChild(i) {
				style = "dashed"
			}
			fmt.Fprintf(b, "  b%08X -> b%08X [style=%s];\n", blk.Address, c.Address, style)
		}
	}
	b.WriteString("}\n")
	return b.String()
}
