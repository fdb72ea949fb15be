package main

import "github.com/nullterm/cliprompt"

// demoCommands returns the Quit/Help/Drive table described in
// SPEC_FULL.md §13. A telnet Quit has no process to exit: it calls
// RequestClose, and the server's poll loop ends the session and closes the
// connection once it sees that flag.
func demoCommands() []cliprompt.Command {
	return []cliprompt.Command{
		{
			Name: "Quit",
			Help: "Quit the session",
			Exec: func(p *cliprompt.Prompt, argc int, argv []string) {
				if argc == 0 {
					p.HelpStart()
					p.HelpEnd()
					return
				}
				p.RequestClose()
			},
		},
		{
			Name: "Help",
			Help: "Get help",
			Exec: func(p *cliprompt.Prompt, argc int, argv []string) {
				if argc == 0 {
					p.HelpStart()
					p.HelpEnd()
					return
				}
				p.DisplayHelp()
			},
		},
		driveCommand(),
	}
}

// driveCommand demonstrates the full help/completion protocol: an argument
// naming a disk unit, three distinct option strings, and a sub-argument
// for read/write mode (SPEC_FULL.md §9's resolution of the source's
// suspected copy-paste duplicate option).
func driveCommand() cliprompt.Command {
	return cliprompt.Command{
		Name: "Drive",
		Help: "Select a disk drive",
		Exec: func(p *cliprompt.Prompt, argc int, argv []string) {
			if argc == 0 {
				p.HelpStart()
				p.HelpArg("Disk", "disk unit to select")
				p.HelpOption(0, "df0", "floppy unit 0")
				p.HelpOption(0, "df1", "floppy unit 1")
				p.HelpOption(0, "dh0", "hard unit 0")
				p.HelpSubArg("Mode", "read or write")
				p.HelpEnd()
				return
			}
			if len(argv) < 2 {
				return
			}
		},
	}
}
