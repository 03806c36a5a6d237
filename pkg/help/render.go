package help

import (
	"fmt"
	"strings"
)

// Layout constants, tuned for 80-column terminals.
const (
	commandColumnWidth = 22
	indentCategory     = "  "
	indentCommand      = "    "
	indentExample      = "      "
)

// RenderFull renders the complete help with all categories.
func (r *Renderer) RenderFull() {
	r.writeln("")
	r.writeln(Header(indentCategory + "Reportgen Commands"))
	r.writeln("")

	for _, cat := range CategoryOrder {
		r.renderCategory(cat)
	}

	r.RenderShortcuts()
}

// RenderCommand renders detailed help for one command. Returns false when
// the command is unknown.
func (r *Renderer) RenderCommand(name string) bool {
	cmd, found := GetCommand(name)
	if !found {
		r.writeln(fmt.Sprintf(indentCategory+"Command '%s' not found. Use /help to see all commands.", name))
		return false
	}

	r.writeln("")
	r.writeln(indentCategory + CommandWithShortcut(cmd.Name, cmd.Shortcut))
	r.writeln(indentCategory + Dim(cmd.Description))
	r.writeln("")
	r.writeln(indentCategory + Bold("Usage:") + " " + StyleExample(cmd.Usage))

	if len(cmd.Examples) > 0 {
		r.writeln("")
		r.writeln(indentCategory + Bold("Examples:"))
		for _, ex := range cmd.Examples {
			r.writeln(indentCommand + HighlightExample(ex.Command) + Dim(" - "+ex.Description))
		}
	}
	r.writeln("")

	return true
}

// RenderShortcuts renders the aliases and key bindings footer.
func (r *Renderer) RenderShortcuts() {
	r.writeln(indentCategory + StyleCategory("Shortcuts"))
	r.writeln(indentCategory + Dim(BoxTeeLeft+strings.Repeat(BoxHorizontal, commandColumnWidth+20)))
	r.writeln(indentCommand + Dim(BoxVertical+" ") + Dim("Aliases: ") +
		Shortcut("/h") + Dim(" help  ") +
		Shortcut("/ls") + Dim(" sessions  ") +
		Shortcut("/gen") + Dim(" generate  ") +
		Shortcut("/q") + Dim(" quit"))
	r.writeln(indentCommand + Dim(BoxVertical+" ") + Dim("Keys:    ") +
		Shortcut("Tab") + Dim(" complete  ") +
		Shortcut("Ctrl+D") + Dim(" exit  ") +
		Shortcut("↑↓") + Dim(" history"))
	r.writeln("")
}

func (r *Renderer) renderCategory(cat Category) {
	commands := GetCommandsByCategory(cat)
	if len(commands) == 0 {
		return
	}

	r.writeln(indentCategory + StyleCategory(cat.DisplayName()))
	r.writeln(indentCategory + Dim(BoxTeeLeft+strings.Repeat(BoxHorizontal, commandColumnWidth+20)))

	for _, cmd := range commands {
		r.renderCommandLine(cmd)
	}
	r.writeln("")
}

func (r *Renderer) renderCommandLine(cmd Command) {
	cmdPart := CommandWithShortcut(cmd.Name, cmd.Shortcut)

	line := indentCommand + Dim(BoxVertical+" ") + PadRight(cmdPart, commandColumnWidth) + Dim(cmd.Description)
	r.writeln(line)

	for i, ex := range cmd.Examples {
		if i >= 2 {
			break
		}
		r.writeln(indentExample + Dim(BoxVertical+"   e.g. ") + HighlightExample(ex.Command))
	}
}

func (r *Renderer) writeln(s string) {
	fmt.Fprintln(r.w, s)
}
