// Package stdio adapts the process's standard input and output to
// cliprompt.Transport, putting the terminal into raw mode for the lifetime
// of the session so the core decoder sees every byte unbuffered and
// unechoed by the line discipline.
package stdio

import (
	"os"

	"golang.org/x/term"
)

// Transport implements cliprompt.Transport over os.Stdin/os.Stdout. A
// background goroutine reads stdin into a small buffered channel so that
// Available/ReadByte never block the poll loop, matching the non-blocking
// channel-reader pattern used elsewhere in this retrieval pack for window
// size notifications.
type Transport struct {
	bytes     chan byte
	done      chan struct{}
	oldState  *term.State
	lookahead *byte // byte Available already pulled off bytes, pending ReadByte
}

// New puts os.Stdin into raw mode (if it is a terminal) and starts the
// background reader goroutine. Call Restore when the session ends.
func New() (*Transport, error) {
	t := &Transport{
		bytes: make(chan byte, 256),
		done:  make(chan struct{}),
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
		if err != nil {
			return nil, err
		}
		t.oldState = oldState
	}

	go t.readLoop()
	return t, nil
}

func (t *Transport) readLoop() {
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			select {
			case t.bytes <- buf[0]:
			case <-t.done:
				return
			}
		}
		if err != nil {
			return
		}
	}
}

// Available reports whether a byte is waiting, pulling it off the channel
// into a one-slot lookahead if so (the channel itself has no peek).
func (t *Transport) Available() bool {
	if t.lookahead != nil {
		return true
	}
	select {
	case b := <-t.bytes:
		t.lookahead = &b
		return true
	default:
		return false
	}
}

// ReadByte returns the byte Available already pulled off the channel.
func (t *Transport) ReadByte() byte {
	if t.lookahead != nil {
		b := *t.lookahead
		t.lookahead = nil
		return b
	}
	return <-t.bytes
}

// WriteByte writes one byte to stdout, dropping any error.
func (t *Transport) WriteByte(b byte) {
	os.Stdout.Write([]byte{b})
}

// Restore puts the terminal back into its original mode and stops the
// background reader.
func (t *Transport) Restore() error {
	close(t.done)
	if t.oldState != nil {
		return term.Restore(int(os.Stdin.Fd()), t.oldState)
	}
	return nil
}
