package cliprompt

import (
	"github.com/nullterm/cliprompt/internal/decoder"
	"github.com/nullterm/cliprompt/internal/history"
)

// Transport is the byte I/O contract an embedder provides to a Prompt. It
// crosses the core boundary; the core never holds a socket or a terminal
// handle directly.
type Transport interface {
	// Available reports whether a byte can be read without blocking. It
	// must have no side effects beyond the probe itself.
	Available() bool
	// ReadByte returns one byte. It is only ever called immediately after
	// Available returned true.
	ReadByte() byte
	// WriteByte writes one byte best-effort. There is no error return, by
	// design: a disconnected transport simply drops writes silently.
	WriteByte(b byte)
}

// Clock is the millisecond time source used only to time the lone-ESC
// timeout. An embedder with no use for the timeout may return a constant 0.
type Clock interface {
	Millis() uint32
}

// Command is one entry in a command table. Exec is invoked in two
// situations: a real dispatch (argc >= 1), and the help/completion
// emission signal (argc == 0), in which case Exec should drive the
// HelpStart/HelpArg/HelpOption/HelpSubArg/HelpDotDotDot/HelpEnd primitives
// on p to describe itself. argv is valid only for the duration of the call.
type Command struct {
	Name string
	Help string
	Exec func(p *Prompt, argc int, argv []string)
}

// lastKeyKind drives the history "skip on direction reversal" rule.
type lastKeyKind int

const (
	lastKeyOther lastKeyKind = iota
	lastKeyUp
	lastKeyDown
)

// helpMode is the emission mode a running command's HelpArg/HelpOption/...
// calls are currently interpreted under.
type helpMode int

const (
	helpModeNone helpMode = iota
	helpModeUsageLine
	helpModeDetailBlock
	helpModeCompletionScan
)

// Prompt is one interactive session: an input decoder, a line buffer with
// caret, a history store, and the command table it dispatches submitted
// lines to. A Prompt is owned by exactly one polling goroutine for its
// entire lifetime; the embedder drives it by calling Poll in a loop.
type Prompt struct {
	cfg      Config
	commands []Command

	transport Transport
	clock     Clock

	dec *decoder.Decoder
	his *history.Store

	line   []byte
	length int
	caret  int

	lastKey      lastKeyKind
	passwordMode bool
	promptString string

	runningCommand *Command

	mode        helpMode
	argsOutput  int  // bumped by each HelpArg and by the first HelpOption after it (DetailBlock indent driver)
	optionIndex int  // per-argument option counter (CompletionScan)
	optionSeen  bool // true from a HelpArg until the first HelpOption after it (DetailBlock)

	scanTargetLevel int    // CompletionScan: which argument level we're scanning
	scanTargetIndex int    // CompletionScan: which option index we're looking for
	scanMatch       string // CompletionScan: captured option string, if any
	scanFound       bool

	tabActive       bool   // a TAB-cycling chain is in progress
	tabPrefix       string // the typed text the chain is completing against
	tabCommandIndex int    // level-0 completion: next command-table index to try
	tabArgIndex     int    // level>=1 completion: next option index to try

	closeRequested bool // set by RequestClose; watched by the server layer
}

// NewPrompt constructs a Prompt with no buffers installed; SetBuffers must
// be called before Poll.
func NewPrompt(cfg Config, commands []Command, transport Transport, clock Clock) *Prompt {
	return &Prompt{
		cfg:          cfg,
		commands:     commands,
		transport:    transport,
		clock:        clock,
		dec:          decoder.New(),
		his:          history.New(nil),
		promptString: ">",
	}
}

// SetBuffers installs the caller-owned line and (optionally nil) history
// buffers. line must have capacity >= 2.
func (p *Prompt) SetBuffers(line []byte, hist []byte) {
	p.line = line
	p.length = 0
	if len(p.line) > 0 {
		p.line[0] = 0
	}
	p.caret = 0
	p.his = history.New(hist)
}

// SetPrompt overrides the default ">" prompt string.
func (p *Prompt) SetPrompt(s string) {
	p.promptString = s
}

// SetPasswordMode toggles masking of echoed data bytes as '*'.
func (p *Prompt) SetPasswordMode(on bool) {
	p.passwordMode = on
}

// Line returns the current contents of the line buffer up to its NUL
// terminator.
func (p *Prompt) Line() string {
	return string(p.line[:p.length])
}

// Start draws the initial prompt string. An embedder calls this once after
// SetBuffers and before the first Poll.
func (p *Prompt) Start() {
	p.drawPrompt()
}

// RequestClose marks this session for teardown. The core itself never acts
// on this flag — it exists for command handlers (e.g. a network Quit
// command with no process to exit) to signal the embedder's poll loop,
// which observes it via CloseRequested.
func (p *Prompt) RequestClose() {
	p.closeRequested = true
}

// CloseRequested reports whether RequestClose has been called on this
// session.
func (p *Prompt) CloseRequested() bool {
	return p.closeRequested
}

// Pool is a fixed-size collection of Prompt instances allocated once by
// NewPool. Acquire hands out pointers into that slice and never frees one
// back for reuse within this module, matching the "no instance is ever
// freed" handle model: a long-lived server sizes Config.MaxPrompts to its
// expected concurrent-session ceiling, exactly as an embedded target sizes
// it to its expected number of serial ports.
type Pool struct {
	cfg      Config
	commands []Command
	prompts  []Prompt
	taken    []bool
	next     int
}

// Config returns the Config the pool was constructed with.
func (pool *Pool) Config() Config {
	return pool.cfg
}

// NewPool allocates a pool of cfg.MaxPrompts Prompt instances sharing the
// given command table. If cfg.MaxPrompts <= 0, it is treated as 1.
func NewPool(cfg Config, commands []Command) *Pool {
	n := cfg.MaxPrompts
	if n <= 0 {
		n = 1
	}
	return &Pool{
		cfg:      cfg,
		commands: commands,
		prompts:  make([]Prompt, n),
		taken:    make([]bool, n),
	}
}

// Acquire returns a handle to an unused Prompt, initialized with the
// pool's Config, command table, transport, and clock. It returns
// ErrPoolExhausted when every instance is already checked out.
func (pool *Pool) Acquire(transport Transport, clock Clock) (*Prompt, error) {
	for i := 0; i < len(pool.prompts); i++ {
		idx := (pool.next + i) % len(pool.prompts)
		if !pool.taken[idx] {
			pool.taken[idx] = true
			pool.next = (idx + 1) % len(pool.prompts)

			p := &pool.prompts[idx]
			*p = Prompt{
				cfg:          pool.cfg,
				commands:     pool.commands,
				transport:    transport,
				clock:        clock,
				dec:          decoder.New(),
				his:          history.New(nil),
				promptString: ">",
			}
			return p, nil
		}
	}
	return nil, ErrPoolExhausted
}
