package cliprompt

import (
	"fmt"
	"strings"
)

// dispatch tokenizes a submitted, non-empty line and invokes the first
// command table entry whose name matches the line's prefix (the byte
// after the match must be NUL-equivalent, i.e. end of line, or a space).
func (p *Prompt) dispatch(line string) {
	if line == "" {
		return
	}

	for i := range p.commands {
		name := p.commands[i].Name
		if !strings.HasPrefix(line, name) {
			continue
		}
		if len(line) > len(name) && line[len(name)] != ' ' {
			continue
		}

		argv := tokenize(line)
		maxArgs := p.cfg.MaxArgs
		if maxArgs <= 0 {
			maxArgs = 10
		}
		if len(argv) > maxArgs {
			p.writeString(fmt.Sprintf("%s (max %d).\r\n", ErrArgvOverflow, maxArgs))
			return
		}

		cmd := &p.commands[i]
		p.runningCommand = cmd
		cmd.Exec(p, len(argv), argv)
		p.runningCommand = nil
		return
	}

	p.writeString("Command not found.\r\n\r\n")
}

// tokenize splits a line into space-separated tokens. Whitespace is the
// sole separator; there is no quoting or escaping.
func tokenize(line string) []string {
	return strings.Fields(line)
}

// DisplayHelp prints every command's name, padded to the longest name
// (minimum width 8) plus one space, followed by its one-line help string
// and a CRLF. This is what a Help command conventionally calls.
func (p *Prompt) DisplayHelp() {
	width := 8
	for _, c := range p.commands {
		if len(c.Name) > width {
			width = len(c.Name)
		}
	}
	for _, c := range p.commands {
		p.writeString(c.Name)
		for i := len(c.Name); i < width; i++ {
			p.transport.WriteByte(' ')
		}
		p.transport.WriteByte(' ')
		p.writeString(c.Help)
		p.writeCRLF()
	}
}

func (p *Prompt) writeString(s string) {
	for i := 0; i < len(s); i++ {
		p.transport.WriteByte(s[i])
	}
}

func (p *Prompt) writeCRLF() {
	p.transport.WriteByte(13)
	p.transport.WriteByte(10)
}
