package help

// Styled text helpers. Each wraps text with ANSI codes for one semantic
// role in the help output.

// Header styles a main section title (bold cyan).
func Header(text string) string {
	return ColorBold + ColorCyan + text + ColorReset
}

// StyleCategory styles a category label (bold green).
func StyleCategory(text string) string {
	return ColorBold + ColorGreen + text + ColorReset
}

// StyleCommand styles a command name (cyan).
func StyleCommand(text string) string {
	return ColorCyan + text + ColorReset
}

// StyleExample styles example command syntax (yellow).
func StyleExample(text string) string {
	return ColorYellow + text + ColorReset
}

// Shortcut styles a keyboard shortcut or alias (bold yellow).
func Shortcut(text string) string {
	return ColorBold + ColorYellow + text + ColorReset
}

// Dim styles secondary text (gray).
func Dim(text string) string {
	return ColorGray + text + ColorReset
}

// Bold styles emphasized text.
func Bold(text string) string {
	return ColorBold + text + ColorReset
}

// CommandWithShortcut formats a command with its alias, e.g. "/help (or /h)".
func CommandWithShortcut(cmd, shortcut string) string {
	if shortcut == "" {
		return StyleCommand(cmd)
	}
	return StyleCommand(cmd) + Dim(" (or ") + Shortcut(shortcut) + Dim(")")
}

// HighlightExample styles an example: command in cyan, arguments in yellow.
func HighlightExample(cmd string) string {
	for i := 0; i < len(cmd); i++ {
		if cmd[i] == ' ' {
			return StyleCommand(cmd[:i]) + StyleExample(cmd[i:])
		}
	}
	return StyleCommand(cmd)
}
