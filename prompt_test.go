package cliprompt

import (
	"strings"
	"testing"
)

type fakeTransport struct {
	in  []byte
	pos int
	out []byte
}

func (t *fakeTransport) Available() bool { return t.pos < len(t.in) }
func (t *fakeTransport) ReadByte() byte {
	b := t.in[t.pos]
	t.pos++
	return b
}
func (t *fakeTransport) WriteByte(b byte) { t.out = append(t.out, b) }

type fakeClock struct{ ms uint32 }

func (c *fakeClock) Millis() uint32 { return c.ms }

func drain(p *Prompt, tr *fakeTransport) {
	for tr.Available() {
		p.Poll()
	}
}

func TestPlainInsertAndSubmit(t *testing.T) {
	var gotArgc int
	var gotArgv []string
	cmds := []Command{{
		Name: "Quit",
		Help: "Quit",
		Exec: func(p *Prompt, argc int, argv []string) {
			gotArgc = argc
			gotArgv = argv
		},
	}}

	tr := &fakeTransport{in: []byte("Quit\r")}
	p := NewPrompt(DefaultConfig(), cmds, tr, &fakeClock{})
	p.SetBuffers(make([]byte, 64), nil)
	drain(p, tr)

	if gotArgc != 1 || len(gotArgv) != 1 || gotArgv[0] != "Quit" {
		t.Fatalf("handler saw argc=%d argv=%v, want argc=1 argv=[Quit]", gotArgc, gotArgv)
	}
	out := string(tr.out)
	if out != "Q \bu \bi \bt \b\n\r>" {
		t.Fatalf("output = %q, want %q", out, "Q \bu \bi \bt \b\n\r>")
	}
}

func TestBackspaceMidLine(t *testing.T) {
	var gotArgv []string
	cmds := []Command{{
		Name: "Quit",
		Help: "Quit",
		Exec: func(p *Prompt, argc int, argv []string) { gotArgv = argv },
	}}

	tr := &fakeTransport{in: []byte{'Q', 'u', 'j', 8, 'i', 't', '\r'}}
	p := NewPrompt(DefaultConfig(), cmds, tr, &fakeClock{})
	p.SetBuffers(make([]byte, 64), nil)
	drain(p, tr)

	if len(gotArgv) != 1 || gotArgv[0] != "Quit" {
		t.Fatalf("argv = %v, want [Quit]", gotArgv)
	}
}

func TestHistoryUpDownWithReversalSkip(t *testing.T) {
	cmds := []Command{{Name: "Help", Help: "H", Exec: func(p *Prompt, argc int, argv []string) {}}}

	tr := &fakeTransport{in: []byte("one\rtwo\r\x1b[A\x1b[A\x1b[B")}
	p := NewPrompt(DefaultConfig(), cmds, tr, &fakeClock{})
	p.SetBuffers(make([]byte, 64), make([]byte, 64))
	drain(p, tr)

	if p.Line() != "two" {
		t.Fatalf("after Up, Up, Down Line() = %q, want %q", p.Line(), "two")
	}
}

func TestHistoryUpAfterTwoSubmissions(t *testing.T) {
	cmds := []Command{{Name: "Help", Help: "H", Exec: func(p *Prompt, argc int, argv []string) {}}}

	tr := &fakeTransport{in: []byte("one\rtwo\r\x1b[A")}
	p := NewPrompt(DefaultConfig(), cmds, tr, &fakeClock{})
	p.SetBuffers(make([]byte, 64), make([]byte, 64))
	drain(p, tr)

	if p.Line() != "two" || p.caret != 3 {
		t.Fatalf("Line()=%q caret=%d, want %q, 3", p.Line(), p.caret, "two")
	}
}

func TestLoneESCClearsLine(t *testing.T) {
	cmds := []Command{}
	tr := &fakeTransport{in: []byte{'a', 'b', 'c', 27}}
	clk := &fakeClock{}
	p := NewPrompt(DefaultConfig(), cmds, tr, clk)
	p.SetBuffers(make([]byte, 64), nil)
	drain(p, tr)

	clk.ms = 251
	p.Poll()

	if p.Line() != "" || p.caret != 0 {
		t.Fatalf("after ESC timeout, Line()=%q caret=%d, want empty/0", p.Line(), p.caret)
	}
}

func TestTelnetNegotiationThroughPrompt(t *testing.T) {
	tr := &fakeTransport{in: []byte{255, 251, 34}}
	p := NewPrompt(DefaultConfig(), nil, tr, &fakeClock{})
	p.SetBuffers(make([]byte, 64), nil)
	drain(p, tr)

	want := []byte{255, 252, 34, 255, 251, 1}
	if string(tr.out) != string(want) {
		t.Fatalf("telnet reply = %v, want %v", tr.out, want)
	}
	if p.Line() != "" {
		t.Fatalf("Line() = %q after telnet negotiation, want empty", p.Line())
	}
}

func TestCommandNotFound(t *testing.T) {
	cmds := []Command{{Name: "Quit", Help: "Quit", Exec: func(p *Prompt, argc int, argv []string) {}}}
	tr := &fakeTransport{in: []byte("bogus\r")}
	p := NewPrompt(DefaultConfig(), cmds, tr, &fakeClock{})
	p.SetBuffers(make([]byte, 64), nil)
	drain(p, tr)

	out := string(tr.out)
	if !strings.Contains(out, "Command not found.") {
		t.Fatalf("output %q missing 'Command not found.'", out)
	}
}

func TestPrefixCommandStillDispatches(t *testing.T) {
	var called string
	cmds := []Command{
		{Name: "Go", Help: "Go", Exec: func(p *Prompt, argc int, argv []string) { called = "Go" }},
		{Name: "GoFar", Help: "GoFar", Exec: func(p *Prompt, argc int, argv []string) { called = "GoFar" }},
	}
	tr := &fakeTransport{in: []byte("Go\r")}
	p := NewPrompt(DefaultConfig(), cmds, tr, &fakeClock{})
	p.SetBuffers(make([]byte, 64), nil)
	drain(p, tr)

	if called != "Go" {
		t.Fatalf("called = %q, want Go", called)
	}
}

func TestPoolAcquireExhaustion(t *testing.T) {
	cmds := []Command{{Name: "Quit", Help: "Quit", Exec: func(p *Prompt, argc int, argv []string) {}}}
	pool := NewPool(Config{MaxPrompts: 1}, cmds)

	tr := &fakeTransport{}
	if _, err := pool.Acquire(tr, &fakeClock{}); err != nil {
		t.Fatalf("first Acquire: %v", err)
	}
	if _, err := pool.Acquire(tr, &fakeClock{}); err != ErrPoolExhausted {
		t.Fatalf("second Acquire = %v, want ErrPoolExhausted", err)
	}
}
