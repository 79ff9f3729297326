// nwcfr is a simple command-line front end for structural control-flow
// recovery over a NWScript subroutine. It is mainly intended for quick and
// dirty testing: point it at a raw instruction stream, and it decodes,
// partitions, and analyzes a single subroutine, then reports the markers
// recovered on each block.
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/susji/nwcfr/block"
	"github.com/susji/nwcfr/controlflow"
	"github.com/susji/nwcfr/internal/bytecode"
)

func fatal(f string, va ...interface{}) {
	fmt.Fprintf(os.Stderr, "fatal: "+f+"\n", va...)
	os.Exit(1)
}

func note(f string, va ...interface{}) {
	fmt.Fprintf(os.Stdout, "[] "+f+"\n", va...)
}

func dump(blocks []*block.Block) {
	for _, b := range blocks {
		fmt.Printf("%08X:\n", b.Address)
		for _, inst := range b.Instructions {
			fmt.Printf("  %08X  %s\n", inst.Address, inst.Opcode)
		}
		for _, c := range b.Controls {
			fmt.Printf("  -- %s\n", c.MarkerKind())
		}
	}
}

func tap(raw []byte, dumpdot bool) {
	insts, err := bytecode.Decode(raw, 0)
	if err != nil {
		fatal("decode: %s", err)
	}
	note("%d instructions decoded", len(insts))

	sub := &block.Subroutine{Address: 0}
	blocks := bytecode.Partition(insts, sub)
	note("%d blocks partitioned", len(blocks))

	if err := controlflow.AnalyzeControlFlow(blocks); err != nil {
		fatal("analyze: %s", err)
	}
	note("control flow recovered cleanly")
	dump(blocks)

	if dumpdot {
		tf, err := ioutil.TempFile("", "nwcfrdot*")
		if err != nil {
			fatal("tempfile: %s", err)
		}
		tf.WriteString(block.Dot(blocks))
		tf.Close()
		note("wrote dot: %s", tf.Name())
	}
}

func main() {
	dofile := flag.String("file", "", "decode and analyze a raw instruction stream")
	dumpdot := flag.Bool("dumpdot", false, "dump the recovered block graph as dot to a temp file")
	flag.Parse()

	if *dofile == "" {
		fatal("missing -file")
	}
	raw, err := ioutil.ReadFile(*dofile)
	if err != nil {
		fatal("cannot open %s: %s", *dofile, err)
	}
	tap(raw, *dumpdot)
}
