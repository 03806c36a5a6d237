package help

import "strings"

// Category groups commands in the help output.
type Category string

const (
	CategorySessions Category = "sessions"
	CategoryReports  Category = "reports"
	CategoryGeneral  Category = "general"
)

// CategoryOrder fixes the display order.
var CategoryOrder = []Category{
	CategorySessions,
	CategoryReports,
	CategoryGeneral,
}

// categoryNames maps categories to their display names.
var categoryNames = map[Category]string{
	CategorySessions: "Sessions",
	CategoryReports:  "Reports",
	CategoryGeneral:  "General",
}

// DisplayName returns the category's display name.
func (c Category) DisplayName() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return string(c)
}

// Command describes one console command for the help output.
type Command struct {
	Name        string
	Shortcut    string
	Category    Category
	Description string
	Usage       string
	Examples    []Example
}

// Example is one usage example with its explanation.
type Example struct {
	Command     string
	Description string
}

// Commands is the registry behind all help output.
var Commands = []Command{
	{
		Name:        "/sessions",
		Shortcut:    "/ls",
		Category:    CategorySessions,
		Description: "List stored interview sessions",
		Usage:       "/sessions",
	},
	{
		Name:        "/show",
		Category:    CategorySessions,
		Description: "Show a session's questions and feedback",
		Usage:       "/show <id>",
		Examples: []Example{
			{"/show 3f2a91c4", "Show the session by its shortened id"},
		},
	},
	{
		Name:        "/stats",
		Category:    CategorySessions,
		Description: "Show per-category score statistics",
		Usage:       "/stats <id>",
	},
	{
		Name:        "/delete",
		Shortcut:    "/rm",
		Category:    CategorySessions,
		Description: "Delete a session after confirmation",
		Usage:       "/delete <id>",
	},
	{
		Name:        "/generate",
		Shortcut:    "/gen",
		Category:    CategoryReports,
		Description: "Generate a PDF report for a session",
		Usage:       "/generate <id> [output.pdf]",
		Examples: []Example{
			{"/generate 3f2a91c4", "Write the report to the reports directory"},
			{"/generate 3f2a91c4 out.pdf", "Write the report to a custom path"},
		},
	},
	{
		Name:        "/help",
		Shortcut:    "/h",
		Category:    CategoryGeneral,
		Description: "Show this help, or details for one command",
		Usage:       "/help [command]",
	},
	{
		Name:        "/clear",
		Category:    CategoryGeneral,
		Description: "Clear the screen",
		Usage:       "/clear",
	},
	{
		Name:        "/quit",
		Shortcut:    "/q",
		Category:    CategoryGeneral,
		Description: "Exit the console",
		Usage:       "/quit",
	},
}

// GetCommandsByCategory returns the commands in one category, in
// registry order.
func GetCommandsByCategory(cat Category) []Command {
	var out []Command
	for _, cmd := range Commands {
		if cmd.Category == cat {
			out = append(out, cmd)
		}
	}
	return out
}

// GetCommand looks up a command by name, with or without the / prefix,
// matching shortcuts too.
func GetCommand(name string) (Command, bool) {
	name = "/" + strings.TrimPrefix(name, "/")
	for _, cmd := range Commands {
		if cmd.Name == name || cmd.Shortcut == name {
			return cmd, true
		}
	}
	return Command{}, false
}
