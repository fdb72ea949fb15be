package cliprompt

import "strings"

// helpIndentUnit is the number of spaces one indent level renders as.
const helpIndentUnit = 4

// HelpStart begins a help/completion description block. A command handler
// calls this first when invoked with argc == 0.
func (p *Prompt) HelpStart() {
	p.argsOutput = 0
}

// HelpArg names one positional argument of the running command.
func (p *Prompt) HelpArg(label, desc string) {
	p.argsOutput++
	p.optionSeen = true

	switch p.mode {
	case helpModeUsageLine:
		p.writeString(" [")
		p.writeString(label)
		p.transport.WriteByte(']')
	case helpModeDetailBlock:
		p.outputHelpDesc(1, label, desc)
	case helpModeCompletionScan:
		p.optionIndex = 0
	}
}

// HelpSubArg declares a positional argument that logically follows a
// chosen option of the argument just described by HelpArg.
func (p *Prompt) HelpSubArg(label, desc string) {
	switch p.mode {
	case helpModeDetailBlock:
		p.outputHelpDesc(p.argsOutput+1, label, desc)
	}
}

// HelpOption declares one allowed token for the argument at the given
// zero-based level (0 is the first argument after the command name).
func (p *Prompt) HelpOption(level int, option, desc string) {
	switch p.mode {
	case helpModeDetailBlock:
		if p.optionSeen {
			p.argsOutput++
			p.optionSeen = false
		}
		p.outputHelpDesc(level+2, option, desc)
	case helpModeCompletionScan:
		if level != p.scanTargetLevel {
			return
		}
		if p.optionIndex == p.scanTargetIndex {
			p.scanMatch = option
			p.scanFound = true
		}
		p.optionIndex++
	}
}

// HelpDotDotDot marks a variadic tail on the usage line.
func (p *Prompt) HelpDotDotDot() {
	if p.mode == helpModeUsageLine {
		p.writeString(" ...")
	}
}

// HelpEnd ends a help/completion description block.
func (p *Prompt) HelpEnd() {
	if p.mode == helpModeUsageLine {
		p.writeCRLF()
	}
}

// outputHelpDesc writes "<indent>label -- desc\r\n", re-indenting to
// indent+2 after any embedded LF in desc.
func (p *Prompt) outputHelpDesc(indent int, label, desc string) {
	p.writeIndent(indent)
	p.writeString(label)
	p.writeString(" -- ")
	for i := 0; i < len(desc); i++ {
		c := desc[i]
		if c == '\n' {
			p.transport.WriteByte(13)
		}
		p.transport.WriteByte(c)
		if c == '\n' {
			p.writeIndent(indent + 2)
		}
	}
	p.writeCRLF()
}

func (p *Prompt) writeIndent(levels int) {
	for i := 0; i < helpIndentUnit*levels; i++ {
		p.transport.WriteByte(' ')
	}
}

// ShowCommandHelp runs the currently dispatched command's Exec(p, 0, nil)
// twice — once in UsageLine mode, once in DetailBlock mode — to print its
// full usage and detail block. If no command is currently running, this is
// a silent no-op. When Config.RemoveHelp is set, it instead prints a
// single "<cmd> -- <help>" summary line without invoking Exec at all.
func (p *Prompt) ShowCommandHelp() {
	cmd := p.runningCommand
	if cmd == nil || cmd.Exec == nil {
		return
	}

	if p.cfg.RemoveHelp {
		p.writeString(cmd.Name)
		p.writeString(" -- ")
		p.writeString(cmd.Help)
		p.writeCRLF()
		return
	}

	p.mode = helpModeUsageLine
	p.writeString("USAGE:\r\n")
	p.writeIndent(1)
	p.writeString(cmd.Name)
	cmd.Exec(p, 0, nil)

	p.mode = helpModeDetailBlock
	p.writeString("\r\nWHERE:\r\n")
	cmd.Exec(p, 0, nil)

	p.mode = helpModeNone
}

// doTabComplete implements auto-completion on TAB. It only acts when the
// caret is at the end of the line; otherwise TAB is ignored. This feature
// has no analogue in the system this engine is adapted from — it follows
// the emission-mode protocol invented for this module (see DESIGN.md),
// reusing the grounded HelpArg/HelpOption callback shape in a new
// CompletionScan mode instead of UsageLine/DetailBlock.
func (p *Prompt) doTabComplete() {
	if p.caret != p.length {
		return
	}

	line := p.Line()
	tokens := tokenize(line)

	var tokenIndex int
	var currentTyped string
	if line == "" || strings.HasSuffix(line, " ") {
		tokenIndex = len(tokens)
		currentTyped = ""
	} else {
		tokenIndex = len(tokens) - 1
		currentTyped = tokens[tokenIndex]
	}

	// The first TAB of a cycling chain fixes the prefix being completed
	// against; repeated TABs (with no intervening edit) keep matching
	// against that same original prefix even though the line now holds
	// whatever candidate the previous TAB wrote.
	if !p.tabActive {
		p.tabPrefix = currentTyped
		p.tabCommandIndex = 0
		p.tabArgIndex = 0
		p.tabActive = true
	}

	if tokenIndex == 0 {
		p.completeCommandName(p.tabPrefix)
		return
	}
	p.completeOption(tokens[0], tokenIndex-1, p.tabPrefix)
}

// completeCommandName cycles through the command table for a level-0
// (command-name) completion, starting at the stored resume index.
func (p *Prompt) completeCommandName(typed string) {
	n := len(p.commands)
	if n == 0 {
		return
	}

	for i := 0; i < n; i++ {
		idx := (p.tabCommandIndex + i) % n
		name := p.commands[idx].Name
		if len(name) >= len(typed) && name[:len(typed)] == typed && name != typed {
			p.replaceLastToken(name)
			p.tabCommandIndex = (idx + 1) % n
			return
		}
	}
}

// completeOption drives cmdName's handler in CompletionScan mode,
// advancing the scan index on each TAB until an option whose prefix
// matches typed is found (wrapping back to the start once every option
// has been visited).
func (p *Prompt) completeOption(cmdName string, level int, typed string) {
	var cmd *Command
	for i := range p.commands {
		if p.commands[i].Name == cmdName {
			cmd = &p.commands[i]
			break
		}
	}
	if cmd == nil || cmd.Exec == nil {
		return
	}

	p.mode = helpModeCompletionScan
	p.scanTargetLevel = level

	start := p.tabArgIndex
	wrapped := start == 0
	for {
		p.scanTargetIndex = start
		p.scanFound = false
		p.scanMatch = ""
		p.optionIndex = 0
		cmd.Exec(p, 0, nil)

		if !p.scanFound {
			// Ran off the end of this command's options: wrap to the
			// start for one more pass, or give up.
			if !wrapped {
				start = 0
				wrapped = true
				continue
			}
			break
		}
		if len(p.scanMatch) >= len(typed) && p.scanMatch[:len(typed)] == typed {
			p.mode = helpModeNone
			p.tabArgIndex = start + 1
			p.replaceLastToken(p.scanMatch)
			return
		}
		start++
	}

	p.mode = helpModeNone
}

// replaceLastToken erases the token currently being completed on screen
// and rewrites it as replacement, leaving the caret at end of line.
func (p *Prompt) replaceLastToken(replacement string) {
	line := p.Line()
	tokens := tokenize(line)

	prefix := line
	if len(tokens) > 0 {
		last := tokens[len(tokens)-1]
		if strings.HasSuffix(line, last) && !strings.HasSuffix(line, " ") {
			prefix = line[:len(line)-len(last)]
		}
	}

	for p.caret > len(prefix) {
		p.transport.WriteByte(8)
		p.transport.WriteByte(' ')
		p.transport.WriteByte(8)
		p.caret--
	}
	p.setLineContent(prefix + replacement)
	p.caret = len(prefix)
	for p.caret < p.length {
		p.echoByte(p.line[p.caret])
		p.caret++
	}
}
