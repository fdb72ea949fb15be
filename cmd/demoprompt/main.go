// Command demoprompt runs cliprompt over the local terminal, wiring the
// same Quit/Help/Drive command table used by cmd/telnetprompt (see
// SPEC_FULL.md §13), grounded on the original's Examples/Basic/main.c.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/nullterm/cliprompt"
	"github.com/nullterm/cliprompt/internal/transport/stdio"
)

type wallClock struct{ start time.Time }

func (c wallClock) Millis() uint32 { return uint32(time.Since(c.start).Milliseconds()) }

func main() {
	cfg, err := cliprompt.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	quit := make(chan struct{})
	commands := demoCommands(quit)

	tr, err := stdio.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening terminal: %v\n", err)
		os.Exit(1)
	}
	defer tr.Restore()

	p := cliprompt.NewPrompt(cfg, commands, tr, wallClock{start: time.Now()})
	line := make([]byte, cfg.LineBufferSize)
	hist := make([]byte, cfg.LineBufferSize*10)
	p.SetBuffers(line, hist)
	p.Start()

	for {
		select {
		case <-quit:
			return
		default:
		}
		p.Poll()
	}
}
