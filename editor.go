package cliprompt

import "github.com/nullterm/cliprompt/internal/decoder"

// Poll drives the Prompt by at most one input byte. It performs a single
// non-blocking availability probe, reads and decodes at most one byte if
// one is ready, and applies the resulting edit event. It never blocks and
// must be called in a loop by the embedder.
func (p *Prompt) Poll() {
	now := uint32(0)
	if p.clock != nil {
		now = p.clock.Millis()
	}

	if !p.transport.Available() {
		if ev, fired := p.dec.PollTimeout(now); fired {
			p.handleEvent(ev)
		}
		return
	}

	b := p.transport.ReadByte()
	p.handleEvent(p.dec.Decode(b, now))
}

func (p *Prompt) handleEvent(ev decoder.Event) {
	switch ev.Kind {
	case decoder.None:
		return
	case decoder.TelnetReply:
		for _, b := range ev.Reply {
			p.transport.WriteByte(b)
		}
		return
	case decoder.Insert:
		p.doInsert(ev.Byte)
	case decoder.Backspace:
		p.doBackspace()
	case decoder.DeleteAtCaret:
		p.doDeleteAtCaret()
	case decoder.CursorLeft:
		p.doCursorLeft()
	case decoder.CursorRight:
		p.doCursorRight()
	case decoder.Home:
		p.doHome()
	case decoder.End:
		p.doEnd()
	case decoder.HistoryUp:
		p.doHistoryUp()
		return
	case decoder.HistoryDown:
		p.doHistoryDown()
		return
	case decoder.Tab:
		p.doTabComplete()
		return
	case decoder.Submit:
		p.doSubmit()
	case decoder.ClearLine:
		p.doClearLine()
	}

	p.lastKey = lastKeyOther
	p.resetTabState()
}

func (p *Prompt) resetTabState() {
	p.tabCommandIndex = 0
	p.tabArgIndex = 0
	p.tabActive = false
	p.tabPrefix = ""
}

// echoByte writes one data byte to the transport, masking it as '*' when
// password mode is active. Non-data bytes (spaces, backspaces used for
// erasure) are written directly and never masked.
func (p *Prompt) echoByte(b byte) {
	if p.passwordMode {
		p.transport.WriteByte('*')
		return
	}
	p.transport.WriteByte(b)
}

// echoTailFromCaret re-echoes the buffer tail from the caret to the end of
// the line, then a trailing space and enough backspaces to return the
// cursor to the caret. It is used after every insert, backspace, and
// forward-delete so the visible line matches the buffer.
func (p *Prompt) echoTailFromCaret() {
	for i := p.caret; i < p.length; i++ {
		p.echoByte(p.line[i])
	}
	p.transport.WriteByte(' ')
	backspaces := p.length - p.caret + 1
	for i := 0; i < backspaces; i++ {
		p.transport.WriteByte(8)
	}
}

// eraseCurrentLine backspaces the caret to column zero, overwrites the
// full visible line with spaces, then backspaces again to column zero. It
// does not touch the buffer contents.
func (p *Prompt) eraseCurrentLine() {
	for i := 0; i < p.caret; i++ {
		p.transport.WriteByte(8)
	}
	for i := 0; i < p.length; i++ {
		p.transport.WriteByte(' ')
	}
	for i := 0; i < p.length; i++ {
		p.transport.WriteByte(8)
	}
}

// drawPrompt emits the prompt string as-is.
func (p *Prompt) drawPrompt() {
	for i := 0; i < len(p.promptString); i++ {
		p.transport.WriteByte(p.promptString[i])
	}
}

func (p *Prompt) doInsert(b byte) {
	if p.length+1 >= len(p.line) {
		return
	}
	copy(p.line[p.caret+1:p.length+1], p.line[p.caret:p.length])
	p.line[p.caret] = b
	p.length++
	p.line[p.length] = 0
	p.echoByte(b)
	p.caret++
	p.echoTailFromCaret()
}

func (p *Prompt) doBackspace() {
	if p.caret == 0 {
		return
	}
	copy(p.line[p.caret-1:p.length-1], p.line[p.caret:p.length])
	p.length--
	p.caret--
	p.line[p.length] = 0
	p.transport.WriteByte(8)
	p.echoTailFromCaret()
}

func (p *Prompt) doDeleteAtCaret() {
	if p.caret >= p.length {
		return
	}
	copy(p.line[p.caret:p.length-1], p.line[p.caret+1:p.length])
	p.length--
	p.line[p.length] = 0
	p.echoTailFromCaret()
}

func (p *Prompt) doCursorLeft() {
	if p.caret == 0 {
		return
	}
	p.caret--
	p.transport.WriteByte(8)
}

func (p *Prompt) doCursorRight() {
	if p.caret >= p.length {
		return
	}
	p.echoByte(p.line[p.caret])
	p.caret++
}

func (p *Prompt) doHome() {
	for p.caret > 0 {
		p.caret--
		p.transport.WriteByte(8)
	}
}

func (p *Prompt) doEnd() {
	for p.caret < p.length {
		p.echoByte(p.line[p.caret])
		p.caret++
	}
}

func (p *Prompt) doClearLine() {
	p.eraseCurrentLine()
	p.setLineContent("")
	p.caret = 0
}

func (p *Prompt) doSubmit() {
	p.transport.WriteByte(10)
	p.transport.WriteByte(13)

	line := string(p.line[:p.length])
	navigating := p.lastKey == lastKeyUp || p.lastKey == lastKeyDown
	p.his.Submit(line, navigating)

	p.dispatch(line)

	p.setLineContent("")
	p.caret = 0
	p.lastKey = lastKeyOther
	p.drawPrompt()
}

func (p *Prompt) doHistoryUp() {
	line, ok := p.his.Up(p.lastKey == lastKeyDown)
	if ok {
		p.eraseCurrentLine()
		p.setLineContent(line)
		p.caret = 0
		for p.caret < p.length {
			p.echoByte(p.line[p.caret])
			p.caret++
		}
	}
	p.lastKey = lastKeyUp
	p.resetTabState()
}

func (p *Prompt) doHistoryDown() {
	line, ok := p.his.Down(p.lastKey == lastKeyUp)
	if ok {
		p.eraseCurrentLine()
		p.setLineContent(line)
		p.caret = 0
		for p.caret < p.length {
			p.echoByte(p.line[p.caret])
			p.caret++
		}
	}
	p.lastKey = lastKeyDown
	p.resetTabState()
}

// setLineContent replaces the buffer contents with s, truncated to fit the
// line buffer's capacity, and NUL-terminates it.
func (p *Prompt) setLineContent(s string) {
	if len(p.line) == 0 {
		p.length = 0
		return
	}
	max := len(p.line) - 1
	n := len(s)
	if n > max {
		n = max
	}
	copy(p.line, s[:n])
	p.length = n
	p.line[n] = 0
}
