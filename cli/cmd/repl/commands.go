package repl

import (
	"fmt"
	"strings"
)

// commandKind identifies a control command independent of how it was typed.
type commandKind int

const (
	cmdUnknown commandKind = iota
	cmdHelp
	cmdVars
	cmdEdit
	cmdClear
	cmdQuit
)

type command struct {
	name    string
	aliases []string
	summary string
	kind    commandKind
}

// commands lists the control commands in the order help presents them.
var commands = []command{
	{name: "help", aliases: []string{"h", "?"}, summary: "Print this help", kind: cmdHelp},
	{name: "vars", aliases: []string{"v"}, summary: "List bound variables", kind: cmdVars},
	{name: "edit", aliases: []string{"e"}, summary: "Edit and run a program in $EDITOR", kind: cmdEdit},
	{name: "clear", aliases: []string{"c"}, summary: "Clear bindings and screen", kind: cmdClear},
	{name: "quit", aliases: []string{"q", "exit"}, summary: "Exit the REPL", kind: cmdQuit},
}

// ctrlCommands are the completion candidates in command mode.
var ctrlCommands = func() []string {
	names := make([]string, len(commands))
	for i, c := range commands {
		names[i] = c.name
	}

	return names
}()

// parseCommand splits input into a command and its arguments. An empty or
// unrecognized command yields cmdUnknown with the typed name.
func parseCommand(input string) (kind commandKind, name string, args []string) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return cmdUnknown, "", nil
	}

	name, args = fields[0], fields[1:]

	for _, c := range commands {
		if c.name == name {
			return c.kind, name, args
		}

		for _, a := range c.aliases {
			if a == name {
				return c.kind, name, args
			}
		}
	}

	return cmdUnknown, name, args
}

// helpMessage describes the control commands, each shown with marker, and
// how to use the REPL. Key bindings are listed only when keys is set.
func helpMessage(marker string, keys bool) string {
	var b strings.Builder

	b.WriteString("\nCommands:\n\n")

	for _, c := range commands {
		fmt.Fprintf(&b, "  %-8s %s\n", marker+c.name, c.summary)
	}

	b.WriteString(`
Usage:
  Type statements to run them, e.g. "let t = 30s; t;"
  The value of each expression statement is printed
  Bindings made with let persist for the whole session
`)

	if keys {
		b.WriteString(`
Keys:
  Esc                   Toggle between eval and command modes
  Tab, Shift-Tab        Cycle through completion candidates
  Space                 Accept the current candidate
  Up, Down              Browse history, switching mode as needed
  Shift-Up, Shift-Down  Browse history of the current mode only
  Alt-Up, Alt-Down      Browse command history, then return
  Ctrl-C, Ctrl-D        Exit on an empty line
`)
	}

	return b.String()
}
