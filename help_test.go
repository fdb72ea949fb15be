package cliprompt

import (
	"testing"

	"github.com/nullterm/cliprompt/internal/decoder"
)

func tabEvent() decoder.Event {
	return decoder.Event{Kind: decoder.Tab}
}

func TestTabCyclesCommandNames(t *testing.T) {
	noop := func(p *Prompt, argc int, argv []string) {}
	cmds := []Command{
		{Name: "Drive", Help: "Drive", Exec: noop},
		{Name: "Delete", Help: "Delete", Exec: noop},
	}

	tr := &fakeTransport{in: []byte{'D', 9, 9, 9}}
	p := NewPrompt(DefaultConfig(), cmds, tr, &fakeClock{})
	p.SetBuffers(make([]byte, 64), nil)

	p.Poll() // 'D'
	if p.Line() != "D" {
		t.Fatalf("after 'D', Line() = %q", p.Line())
	}
	p.Poll() // Tab 1
	if p.Line() != "Drive" {
		t.Fatalf("after Tab 1, Line() = %q, want Drive", p.Line())
	}
	p.Poll() // Tab 2
	if p.Line() != "Delete" {
		t.Fatalf("after Tab 2, Line() = %q, want Delete", p.Line())
	}
	p.Poll() // Tab 3
	if p.Line() != "Drive" {
		t.Fatalf("after Tab 3, Line() = %q, want Drive (cycled back)", p.Line())
	}
}

func driveHandler(p *Prompt, argc int, argv []string) {
	if argc != 0 {
		return
	}
	p.HelpStart()
	p.HelpArg("Disk", "disk unit to select")
	p.HelpOption(0, "df0", "floppy unit 0")
	p.HelpOption(0, "df1", "floppy unit 1")
	p.HelpOption(0, "dh0", "hard unit 0")
	p.HelpEnd()
}

func TestTabCyclesOptionsForArg(t *testing.T) {
	cmds := []Command{{Name: "Drive", Help: "Select a disk", Exec: driveHandler}}

	tr := &fakeTransport{in: []byte("Drive d")}
	p := NewPrompt(DefaultConfig(), cmds, tr, &fakeClock{})
	p.SetBuffers(make([]byte, 64), nil)
	drain(p, tr)

	if p.Line() != "Drive d" {
		t.Fatalf("Line() = %q before Tab, want %q", p.Line(), "Drive d")
	}

	for _, want := range []string{"Drive df0", "Drive df1", "Drive dh0", "Drive df0"} {
		p.handleEvent(tabEvent())
		if p.Line() != want {
			t.Fatalf("Line() = %q, want %q", p.Line(), want)
		}
	}
}

func TestShowCommandHelpUsageAndDetail(t *testing.T) {
	cmds := []Command{{Name: "Drive", Help: "Select a disk", Exec: driveHandler}}
	tr := &fakeTransport{}
	p := NewPrompt(DefaultConfig(), cmds, tr, &fakeClock{})
	p.SetBuffers(make([]byte, 64), nil)

	p.runningCommand = &p.commands[0]
	p.ShowCommandHelp()

	out := string(tr.out)
	want := "USAGE:\r\n    Drive [Disk]\r\n" +
		"\r\nWHERE:\r\n" +
		"    Disk -- disk unit to select\r\n" +
		"        df0 -- floppy unit 0\r\n" +
		"        df1 -- floppy unit 1\r\n" +
		"        dh0 -- hard unit 0\r\n"
	if out != want {
		t.Fatalf("ShowCommandHelp output =\n%q\nwant\n%q", out, want)
	}
}

func TestShowCommandHelpRemoveHelp(t *testing.T) {
	cmds := []Command{{Name: "Drive", Help: "Select a disk", Exec: driveHandler}}
	cfg := DefaultConfig()
	cfg.RemoveHelp = true
	tr := &fakeTransport{}
	p := NewPrompt(cfg, cmds, tr, &fakeClock{})
	p.SetBuffers(make([]byte, 64), nil)

	p.runningCommand = &p.commands[0]
	p.ShowCommandHelp()

	want := "Drive -- Select a disk\r\n"
	if string(tr.out) != want {
		t.Fatalf("RemoveHelp output = %q, want %q", tr.out, want)
	}
}

func TestDisplayHelpListing(t *testing.T) {
	noop := func(p *Prompt, argc int, argv []string) {}
	cmds := []Command{
		{Name: "Quit", Help: "Exit the session", Exec: noop},
		{Name: "Drive", Help: "Select a disk", Exec: noop},
	}
	tr := &fakeTransport{}
	p := NewPrompt(DefaultConfig(), cmds, tr, &fakeClock{})
	p.SetBuffers(make([]byte, 64), nil)

	p.DisplayHelp()

	want := "Quit     Exit the session\r\nDrive    Select a disk\r\n"
	if string(tr.out) != want {
		t.Fatalf("DisplayHelp output = %q, want %q", tr.out, want)
	}
}
