// Package decoder turns a byte-at-a-time input stream into the edit events
// the core prompt engine acts on. It classifies bytes only — it never
// touches a line buffer, a caret, or a history cursor, and it never writes
// to a transport itself. That keeps the state machines in this package
// trivially testable in isolation and mirrors the source's own separation
// between its input-decoding layer and its line-editing layer, even where
// the original C implementation blurred the two by echoing inline.
package decoder

import "github.com/nullterm/cliprompt/internal/corelog"

// Kind identifies the edit event a Decode call produced.
type Kind int

const (
	// None means the byte was consumed (by a sub-protocol, or because it
	// has no effect) and there is nothing for the caller to act on.
	None Kind = iota
	Insert
	Backspace
	DeleteAtCaret
	CursorLeft
	CursorRight
	Home
	End
	HistoryUp
	HistoryDown
	Tab
	Submit
	// ClearLine is the lone-ESC / ESC-ESC "erase the current line" event.
	ClearLine
	// TelnetReply carries bytes the engine must write back verbatim as a
	// Telnet option response; Kind is otherwise None from the caller's
	// point of view (no editing action is implied).
	TelnetReply
)

// Event is the result of decoding one input byte.
type Event struct {
	Kind Kind
	// Byte holds the inserted character when Kind == Insert.
	Byte byte
	// Reply holds the bytes to write back when Kind == TelnetReply.
	Reply []byte
}

// ansiState walks the ESC / CSI state machine in §4.5 of the engine design.
type ansiState int

const (
	ansiIdle ansiState = iota
	ansiSeenESC
	ansiSeenCSI
	ansiSeenCSIParam
)

// escTimeoutMillis is the lone-ESC timeout: if no byte follows ESC within
// this many milliseconds, the ESC is treated as standalone.
const escTimeoutMillis = 250

// Decoder holds the ANSI and Telnet sub-protocol state for one prompt
// instance. The zero value is ready to use.
type Decoder struct {
	ansi     ansiState
	escAtMs  uint32
	csiParam byte

	telnet telnetState
}

// New returns a Decoder in its initial (Idle / None) state.
func New() *Decoder {
	return &Decoder{}
}

// Decode classifies one input byte. nowMillis is the current value of the
// embedder's millisecond clock, used only to timestamp a fresh ESC.
func (d *Decoder) Decode(b byte, nowMillis uint32) Event {
	if d.telnet != telnetNone {
		return d.decodeTelnet(b)
	}

	switch d.ansi {
	case ansiSeenESC:
		return d.decodeAfterESC(b)
	case ansiSeenCSI:
		return d.decodeCSI(b)
	case ansiSeenCSIParam:
		return d.decodeCSIParam(b)
	}

	switch {
	case b == 0 || b == 10:
		return Event{Kind: None}
	case b == 9:
		return Event{Kind: Tab}
	case b == 13:
		return Event{Kind: Submit}
	case b == 8 || b == 127:
		return Event{Kind: Backspace}
	case b == 27:
		d.ansi = ansiSeenESC
		d.escAtMs = nowMillis
		return Event{Kind: None}
	case b == 255:
		d.telnet = telnetExpectCmd
		return Event{Kind: None}
	case b >= 32 && b <= 254:
		return Event{Kind: Insert, Byte: b}
	default:
		return Event{Kind: None}
	}
}

// PollTimeout must be called once per poll when Decode was not called
// (i.e. the transport had no byte available). It fires the lone-ESC
// timeout against the passive millisecond clock.
func (d *Decoder) PollTimeout(nowMillis uint32) (Event, bool) {
	if d.ansi == ansiSeenESC && nowMillis-d.escAtMs >= escTimeoutMillis {
		d.ansi = ansiIdle
		corelog.Tracef("lone ESC timed out after %dms, clearing line", nowMillis-d.escAtMs)
		return Event{Kind: ClearLine}, true
	}
	return Event{}, false
}

func (d *Decoder) decodeAfterESC(b byte) Event {
	switch b {
	case '[':
		d.ansi = ansiSeenCSI
		return Event{Kind: None}
	case 27:
		d.ansi = ansiIdle
		return Event{Kind: ClearLine}
	default:
		d.ansi = ansiIdle
		return Event{Kind: None}
	}
}

func (d *Decoder) decodeCSI(b byte) Event {
	switch b {
	case 'C':
		d.ansi = ansiIdle
		return Event{Kind: CursorRight}
	case 'D':
		d.ansi = ansiIdle
		return Event{Kind: CursorLeft}
	case 'F':
		d.ansi = ansiIdle
		return Event{Kind: End}
	case 'H':
		d.ansi = ansiIdle
		return Event{Kind: Home}
	case 'A':
		d.ansi = ansiIdle
		return Event{Kind: HistoryUp}
	case 'B':
		d.ansi = ansiIdle
		return Event{Kind: HistoryDown}
	case '1', '3', '4':
		d.csiParam = b
		d.ansi = ansiSeenCSIParam
		return Event{Kind: None}
	default:
		d.ansi = ansiIdle
		corelog.Tracef("unknown CSI final byte %q, discarding sequence", b)
		return Event{Kind: None}
	}
}

func (d *Decoder) decodeCSIParam(b byte) Event {
	d.ansi = ansiIdle
	if b != '~' {
		return Event{Kind: None}
	}
	switch d.csiParam {
	case '1':
		return Event{Kind: Home}
	case '4':
		return Event{Kind: End}
	case '3':
		return Event{Kind: DeleteAtCaret}
	}
	return Event{Kind: None}
}
