package setup

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// Prompter collects answers at the orchestrator's decision points. The
// sequencing logic never reads input directly, so a non-interactive driver
// can run the same flow in tests or CI.
type Prompter interface {
	Ask(prompt string) (string, error)
	// AskSecret reads a sensitive value. Implementations should avoid
	// echoing it back.
	AskSecret(prompt string) (string, error)
	Confirm(prompt string, def bool) (bool, error)
}

// TerminalPrompter reads answers from an interactive terminal.
type TerminalPrompter struct {
	In  *bufio.Reader
	Out io.Writer
	// Fd is the input file descriptor, used for hidden reads. Negative
	// disables hidden input (e.g. when stdin is a pipe).
	Fd int
}

// NewTerminalPrompter creates a prompter over the given streams
func NewTerminalPrompter(in io.Reader, out io.Writer, fd int) *TerminalPrompter {
	return &TerminalPrompter{In: bufio.NewReader(in), Out: out, Fd: fd}
}

// Ask prints the prompt and reads one trimmed line
func (p *TerminalPrompter) Ask(prompt string) (string, error) {
	fmt.Fprintf(p.Out, "%s: ", prompt)
	line, err := p.In.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// AskSecret reads a line without echoing when attached to a terminal
func (p *TerminalPrompter) AskSecret(prompt string) (string, error) {
	if p.Fd >= 0 && term.IsTerminal(p.Fd) {
		fmt.Fprintf(p.Out, "%s: ", prompt)
		b, err := term.ReadPassword(p.Fd)
		fmt.Fprintln(p.Out)
		if err != nil {
			return "", fmt.Errorf("reading hidden input: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}
	return p.Ask(prompt)
}

// Confirm asks a yes/no question; an empty answer takes the default
func (p *TerminalPrompter) Confirm(prompt string, def bool) (bool, error) {
	suffix := "[y/N]"
	if def {
		suffix = "[Y/n]"
	}
	answer, err := p.Ask(fmt.Sprintf("%s %s", prompt, suffix))
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return def, nil
	}
}

// ScriptedPrompter replays a fixed answer sequence, for tests and
// non-interactive runs.
type ScriptedPrompter struct {
	Answers []string
	next    int
}

func (p *ScriptedPrompter) pop(prompt string) (string, error) {
	if p.next >= len(p.Answers) {
		return "", fmt.Errorf("no scripted answer left for prompt %q", prompt)
	}
	answer := p.Answers[p.next]
	p.next++
	return answer, nil
}

// Ask returns the next scripted answer
func (p *ScriptedPrompter) Ask(prompt string) (string, error) {
	return p.pop(prompt)
}

// AskSecret returns the next scripted answer
func (p *ScriptedPrompter) AskSecret(prompt string) (string, error) {
	return p.pop(prompt)
}

// Confirm interprets the next scripted answer as yes/no
func (p *ScriptedPrompter) Confirm(prompt string, def bool) (bool, error) {
	answer, err := p.pop(prompt)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
