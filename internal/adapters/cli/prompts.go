// Package cli provides the low-level line-editor the Terminal IO Driver
// styles and dispatches through: reading stdin a line at a time and
// surfacing end-of-input (Ctrl-D) distinctly from an empty answer, so a
// driver can turn it into an abort rather than silently falling back to a
// default.
package cli

import (
	"bufio"
	"fmt"
	"strings"
)

// Prompts reads line-based input from a buffered reader, normally stdin.
type Prompts struct {
	reader *bufio.Reader
}

// NewPrompts creates a new Prompts instance reading from reader.
func NewPrompts(reader *bufio.Reader) *Prompts {
	return &Prompts{reader: reader}
}

// ReadLine prints label and returns the next trimmed input line. ok is
// false only when the reader hit an error (typically EOF/Ctrl-D), which
// callers should treat as a cancellation rather than an empty answer.
func (p *Prompts) ReadLine(label string) (line string, ok bool) {
	fmt.Print(label)
	input, err := p.reader.ReadString('\n')
	if err != nil && input == "" {
		return "", false
	}
	return strings.TrimSpace(input), true
}

// PromptString asks the user for a string input with optional default value.
func (p *Prompts) PromptString(prompt string, defaultValue string) string {
	label := prompt + ": "
	if defaultValue != "" {
		label = fmt.Sprintf("%s [%s]: ", prompt, defaultValue)
	}
	input, ok := p.ReadLine(label)
	if !ok || input == "" {
		return defaultValue
	}
	return input
}

// PromptStringMulti asks the user for multiple comma-separated values.
// Returns a slice of trimmed strings.
func (p *Prompts) PromptStringMulti(prompt string) []string {
	input, ok := p.ReadLine(prompt + " (comma-separated): ")
	if !ok || input == "" {
		return []string{}
	}

	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// PromptYesNo asks the user for a yes/no response.
func (p *Prompts) PromptYesNo(prompt string, defaultYes bool) bool {
	defaultStr := "n"
	if defaultYes {
		defaultStr = "y"
	}

	input, ok := p.ReadLine(fmt.Sprintf("%s [%s/n]: ", prompt, defaultStr))
	if !ok || input == "" {
		return defaultYes
	}

	input = strings.ToLower(input)
	return input == "y" || input == "yes"
}

// PromptSelect asks the user to select from options.
// Returns the selected option or empty string if cancelled.
func (p *Prompts) PromptSelect(prompt string, options []string) string {
	if len(options) == 0 {
		return ""
	}
	if len(options) == 1 {
		return options[0]
	}

	fmt.Printf("%s\n", prompt)
	for i, opt := range options {
		fmt.Printf("  %d) %s\n", i+1, opt)
	}

	input, ok := p.ReadLine(fmt.Sprintf("Select (1-%d): ", len(options)))
	if !ok {
		return ""
	}

	var idx int
	if _, err := fmt.Sscanf(input, "%d", &idx); err != nil || idx < 1 || idx > len(options) {
		return ""
	}
	return options[idx-1]
}
