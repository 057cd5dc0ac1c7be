package fuzzy

import (
	"fmt"
	"io"
	"os"
	"strings"

	fzf "github.com/junegunn/fzf/src"
)

const fzfSeparator = "  │  "

// FzfRunner defines the interface for running fzf
type FzfRunner interface {
	Run(opts *fzf.Options) (int, error)
}

// DefaultFzfRunner implements the FzfRunner interface using the real fzf library
type DefaultFzfRunner struct{}

// Run executes fzf with the given options
func (r *DefaultFzfRunner) Run(opts *fzf.Options) (int, error) {
	return fzf.Run(opts)
}

// FzfFinder implements fuzzy finding using the fzf library
type FzfFinder struct {
	options  []Option
	prompt   string
	runner   FzfRunner
	fallback func(prompt string, options []Option) (string, error)
}

// NewFzf creates a new fzf-style fuzzy finder
func NewFzf(prompt string) *FzfFinder {
	return NewFzfWithRunner(prompt, &DefaultFzfRunner{})
}

// NewFzfWithRunner creates a new fzf-style fuzzy finder with a custom runner (for testing)
func NewFzfWithRunner(prompt string, runner FzfRunner) *FzfFinder {
	return &FzfFinder{
		prompt:   prompt,
		options:  make([]Option, 0),
		runner:   runner,
		fallback: lineSelect,
	}
}

// SetOptions sets the available options for selection
func (f *FzfFinder) SetOptions(options []Option) error {
	if options == nil {
		return fmt.Errorf("options cannot be nil")
	}

	f.options = make([]Option, len(options))
	copy(f.options, options)
	return nil
}

// SetPrompt sets the display prompt
func (f *FzfFinder) SetPrompt(prompt string) {
	f.prompt = prompt
}

// Select runs fzf over the options. Options are fed through stdin and the
// choice is read back from stdout, so both are redirected for the duration.
func (f *FzfFinder) Select() (string, error) {
	if len(f.options) == 0 {
		return "", fmt.Errorf("no options available")
	}

	tmpFile, err := os.CreateTemp("", "ghnode-options-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmpFile.Name())
	}()

	for _, option := range f.options {
		if _, err := fmt.Fprintln(tmpFile, displayText(option)); err != nil {
			_ = tmpFile.Close()
			return "", fmt.Errorf("failed to write option to file: %w", err)
		}
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temporary file: %w", err)
	}

	opts, err := fzf.ParseOptions(true, []string{
		"--prompt=" + f.prompt + " ",
		"--height=15",
		"--layout=reverse",
		"--no-multi",
		"--cycle",
		"--extended",
		"--algo=v2",
		"--tiebreak=begin",
		"--no-mouse",
		"--border=none",
		"--delimiter=" + strings.TrimSpace(fzfSeparator),
		"--nth=1",
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse fzf options: %w", err)
	}

	input, err := os.Open(tmpFile.Name())
	if err != nil {
		return "", fmt.Errorf("failed to open temporary file for reading: %w", err)
	}
	defer func() {
		_ = input.Close()
	}()

	r, w, err := os.Pipe()
	if err != nil {
		return "", fmt.Errorf("failed to create pipe: %w", err)
	}
	defer func() {
		_ = r.Close()
	}()

	originalStdin, originalStdout := os.Stdin, os.Stdout
	os.Stdin, os.Stdout = input, w
	exitCode, runErr := f.runner.Run(opts)
	_ = w.Close()
	os.Stdin, os.Stdout = originalStdin, originalStdout

	if runErr != nil {
		return f.fallback(f.prompt, f.options)
	}
	if exitCode != fzf.ExitOk {
		return "", fmt.Errorf("fzf selection cancelled or failed")
	}

	result, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read fzf result: %w", err)
	}

	return f.matchSelection(strings.TrimSpace(string(result)))
}

// matchSelection maps a selected display line back to its option value
func (f *FzfFinder) matchSelection(selected string) (string, error) {
	if selected == "" {
		return "", fmt.Errorf("no selection made")
	}

	value := strings.TrimSpace(strings.Split(selected, fzfSeparator)[0])
	for _, option := range f.options {
		if option.Value == value {
			return option.Value, nil
		}
	}
	return "", fmt.Errorf("selection %q does not match any option", value)
}

func displayText(option Option) string {
	if option.Description == "" {
		return option.Value
	}
	return option.Value + fzfSeparator + option.Description
}

func lineSelect(prompt string, options []Option) (string, error) {
	finder := New(prompt)
	for _, option := range options {
		finder.AddOption(option.Value, option.Description)
	}
	return finder.Select()
}
