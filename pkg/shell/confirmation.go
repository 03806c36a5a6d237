package shell

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Prompter asks the user to confirm a destructive operation. The interface
// exists so tests can substitute canned responses.
type Prompter interface {
	// Confirm displays a message and returns true only on an explicit yes.
	Confirm(message string) (bool, error)
}

// InteractivePrompter reads confirmations from a terminal.
type InteractivePrompter struct {
	reader io.Reader
	writer io.Writer
}

// NewInteractivePrompter creates a prompter on stdin/stdout.
func NewInteractivePrompter() *InteractivePrompter {
	return &InteractivePrompter{
		reader: os.Stdin,
		writer: os.Stdout,
	}
}

// NewInteractivePrompterWithIO creates a prompter with custom streams.
func NewInteractivePrompterWithIO(reader io.Reader, writer io.Writer) *InteractivePrompter {
	return &InteractivePrompter{
		reader: reader,
		writer: writer,
	}
}

// Confirm displays the message with a [y/N] suffix. No is the default:
// anything but "y" or "yes" (including EOF) declines.
func (p *InteractivePrompter) Confirm(message string) (bool, error) {
	fmt.Fprintf(p.writer, "%s [y/N]: ", message)

	scanner := bufio.NewScanner(p.reader)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return false, fmt.Errorf("failed to read confirmation: %w", err)
		}
		return false, nil
	}

	response := strings.TrimSpace(strings.ToLower(scanner.Text()))
	return response == "yes" || response == "y", nil
}

var _ Prompter = (*InteractivePrompter)(nil)

// MockPrompter returns predefined responses and records prompts for tests.
type MockPrompter struct {
	Response  bool
	Error     error
	Prompts   []string
	CallCount int
}

// NewMockPrompter creates a prompter that always answers response.
func NewMockPrompter(response bool) *MockPrompter {
	return &MockPrompter{Response: response}
}

// Confirm records the message and returns the canned response.
func (m *MockPrompter) Confirm(message string) (bool, error) {
	m.CallCount++
	m.Prompts = append(m.Prompts, message)

	if m.Error != nil {
		return false, m.Error
	}
	return m.Response, nil
}

var _ Prompter = (*MockPrompter)(nil)
