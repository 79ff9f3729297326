package controlflow

import (
	"errors"
	"fmt"
)

// ErrMalformedCFG is the one error taxonomy this package raises. Every
// fatal detection or verification failure wraps it with fmt.Errorf's %w so
// callers can test for it with errors.Is, while the message carries the
// offending block addresses in the zero-padded 8-hex-digit form existing
// NWScript diagnostic tooling expects.
var ErrMalformedCFG = errors.New("malformed control-flow graph")

func hex(addr uint32) string {
	return fmt.Sprintf("%08X", addr)
}

func malformed(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedCFG, fmt.Sprintf(format, a...))
}
