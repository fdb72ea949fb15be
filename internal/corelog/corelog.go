// Package corelog provides zero-cost-when-disabled trace logging for the
// core prompt engine. It deliberately has no third-party dependency: code
// under internal/decoder and internal/history is meant to run on
// resource-constrained embedded targets and must not pull in a structured
// logging stack just to print an occasional trace line.
package corelog

import "log"

// Enabled controls whether Tracef produces output. Off by default; flip it
// on in a test or from an embedder's own debug flag.
var Enabled bool

// Tracef logs a message only when Enabled is true.
func Tracef(format string, args ...any) {
	if Enabled {
		log.Printf("TRACE: "+format, args...)
	}
}
