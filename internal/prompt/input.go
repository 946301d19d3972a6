package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
)

// ErrCancelled is returned when the user aborts a prompt with Ctrl+C.
var ErrCancelled = errors.New("cancelled by user")

// Prompter interface wraps basic prompting functionality for testability
type Prompter interface {
	Prompt(string) (string, error)
	Close() error
}

// LinerPrompter wraps liner.State to implement Prompter interface
type LinerPrompter struct {
	*liner.State
}

// NewLinerPrompter creates a new liner-based prompter
func NewLinerPrompter() *LinerPrompter {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &LinerPrompter{State: line}
}

// Prompt reads one line and records it in the session history
func (p *LinerPrompter) Prompt(prompt string) (string, error) {
	input, err := p.State.Prompt(prompt)
	if err != nil {
		return "", err //nolint:wrapcheck // callers match liner sentinels
	}
	if strings.TrimSpace(input) != "" {
		p.AppendHistory(input)
	}
	return input, nil
}

// TextInputWithPrompter provides simple text input using a custom prompter
func TextInputWithPrompter(prompter Prompter, prompt string) (string, error) {
	coloredPrompt := color.CyanString(prompt + " ")
	result, err := prompter.Prompt(coloredPrompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", ErrCancelled
		}
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		return "", fmt.Errorf("text input with prompter failed: %w", err)
	}
	return result, nil
}

// Lines prompts repeatedly and hands every non-blank answer to handle until
// the input ends. End of input is not an error; Ctrl+C returns ErrCancelled.
func Lines(prompter Prompter, prompt string, handle func(string) error) error {
	for {
		input, err := TextInputWithPrompter(prompter, prompt)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if err := handle(input); err != nil {
			return err
		}
	}
}
