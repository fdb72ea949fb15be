// Package cliprompt implements an interactive command-line prompt for
// programs that expose only a character-at-a-time byte stream: a local
// terminal, a serial port, or a Telnet connection. It turns raw keystrokes
// into edited lines, dispatches completed lines to a caller-supplied table
// of named commands, and renders context-sensitive help and tab-completion
// driven by the commands themselves.
//
// The engine is a single-threaded cooperative poller: an embedder drives one
// Prompt by calling Poll in a loop. There are no goroutines inside the
// core; a Prompt's line and history buffers are caller-supplied []byte
// slices held for the Prompt's entire lifetime and never reallocated. The
// core does make small transient allocations (strings for the current line
// and its tokens, history record slices, Telnet reply bytes).
//
// Multiple independent sessions are served by drawing one Prompt per
// session from a Pool (see NewPool); the subpackages under internal/ and
// the transport/server packages in this module show how to wire a Pool to
// a real terminal or network listener.
package cliprompt
