package fuzzy

import (
	"fmt"
	"strings"
	"testing"

	fzf "github.com/junegunn/fzf/src"
)

// MockFzfRunner implements FzfRunner for testing
type MockFzfRunner struct {
	RunFunc       func(opts *fzf.Options) (int, error)
	CallCount     int
	LastOpts      *fzf.Options
	OutputToWrite string // What to write to stdout to simulate fzf output
}

// Run executes the mock function
func (m *MockFzfRunner) Run(opts *fzf.Options) (int, error) {
	m.CallCount++
	m.LastOpts = opts

	// Select redirects stdout into a pipe while fzf runs
	if m.OutputToWrite != "" {
		fmt.Print(m.OutputToWrite)
	}

	if m.RunFunc != nil {
		return m.RunFunc(opts)
	}
	return fzf.ExitOk, nil
}

func operationOptions() []Option {
	return []Option{
		{Value: "issue:create", Description: "POST /repos/{owner}/{repository}/issues - Create a new issue"},
		{Value: "issue:get", Description: "GET /repos/{owner}/{repository}/issues/{issueNumber} - Get the data of a single issue"},
		{Value: "release:getAll", Description: "GET /repos/{owner}/{repository}/releases - Get all repository releases"},
	}
}

func TestNewFzf(t *testing.T) {
	finder := NewFzf("operation>")
	if finder == nil {
		t.Fatal("NewFzf returned nil")
	}

	if finder.prompt != "operation>" {
		t.Errorf("Expected prompt 'operation>', got '%s'", finder.prompt)
	}

	if len(finder.options) != 0 {
		t.Errorf("Expected empty options, got %d options", len(finder.options))
	}

	if _, ok := finder.runner.(*DefaultFzfRunner); !ok {
		t.Errorf("Expected DefaultFzfRunner, got %T", finder.runner)
	}
}

func TestFzfSetOptions(t *testing.T) {
	finder := NewFzf("Test")

	if err := finder.SetOptions(nil); err == nil {
		t.Error("Expected error when setting nil options")
	}

	options := operationOptions()
	if err := finder.SetOptions(options); err != nil {
		t.Fatalf("SetOptions failed: %v", err)
	}

	if len(finder.options) != len(options) {
		t.Errorf("Expected %d options, got %d", len(options), len(finder.options))
	}

	// the finder keeps its own copy
	options[0].Value = "changed"
	if finder.options[0].Value != "issue:create" {
		t.Errorf("Expected options to be copied, got '%s'", finder.options[0].Value)
	}
}

func TestFzfSetPrompt(t *testing.T) {
	finder := NewFzf("Initial")
	finder.SetPrompt("Updated")

	if finder.prompt != "Updated" {
		t.Errorf("Expected prompt 'Updated', got '%s'", finder.prompt)
	}
}

func TestFzfSelectWithNoOptions(t *testing.T) {
	mockRunner := &MockFzfRunner{}
	finder := NewFzfWithRunner("Test", mockRunner)

	_, err := finder.Select()
	if err == nil || !strings.Contains(err.Error(), "no options available") {
		t.Errorf("Expected 'no options available' error, got %v", err)
	}

	if mockRunner.CallCount != 0 {
		t.Errorf("Expected fzf not to run, got %d calls", mockRunner.CallCount)
	}
}

func TestFzfSelect(t *testing.T) {
	mockRunner := &MockFzfRunner{
		OutputToWrite: displayText(operationOptions()[1]) + "\n",
	}

	finder := NewFzfWithRunner("operation>", mockRunner)
	if err := finder.SetOptions(operationOptions()); err != nil {
		t.Fatalf("SetOptions failed: %v", err)
	}

	selected, err := finder.Select()
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	if selected != "issue:get" {
		t.Errorf("Expected 'issue:get', got '%s'", selected)
	}

	if mockRunner.CallCount != 1 {
		t.Errorf("Expected 1 call to Run, got %d", mockRunner.CallCount)
	}

	if mockRunner.LastOpts == nil {
		t.Error("Expected fzf options to be passed to the runner")
	}
}

func TestFzfSelectEmptyOutput(t *testing.T) {
	finder := NewFzfWithRunner("Test", &MockFzfRunner{})
	if err := finder.SetOptions(operationOptions()); err != nil {
		t.Fatalf("SetOptions failed: %v", err)
	}

	_, err := finder.Select()
	if err == nil || !strings.Contains(err.Error(), "no selection made") {
		t.Errorf("Expected 'no selection made' error, got %v", err)
	}
}

func TestFzfSelectWithFallback(t *testing.T) {
	mockRunner := &MockFzfRunner{
		RunFunc: func(_ *fzf.Options) (int, error) {
			return 2, fmt.Errorf("fzf failed")
		},
	}

	finder := NewFzfWithRunner("Test", mockRunner)
	if err := finder.SetOptions(operationOptions()); err != nil {
		t.Fatalf("SetOptions failed: %v", err)
	}

	var fallbackPrompt string
	finder.fallback = func(prompt string, options []Option) (string, error) {
		fallbackPrompt = prompt
		return options[2].Value, nil
	}

	selected, err := finder.Select()
	if err != nil {
		t.Fatalf("Select failed: %v", err)
	}

	if selected != "release:getAll" {
		t.Errorf("Expected fallback selection 'release:getAll', got '%s'", selected)
	}

	if fallbackPrompt != "Test" {
		t.Errorf("Expected fallback to receive prompt 'Test', got '%s'", fallbackPrompt)
	}
}

func TestFzfSelectCancelled(t *testing.T) {
	mockRunner := &MockFzfRunner{
		RunFunc: func(_ *fzf.Options) (int, error) {
			return 130, nil // interrupted
		},
	}

	finder := NewFzfWithRunner("Test", mockRunner)
	if err := finder.SetOptions(operationOptions()[:1]); err != nil {
		t.Fatalf("SetOptions failed: %v", err)
	}

	_, err := finder.Select()
	if err == nil {
		t.Fatal("Expected error when fzf is cancelled")
	}

	expectedError := "fzf selection cancelled or failed"
	if !strings.Contains(err.Error(), expectedError) {
		t.Errorf("Expected error containing '%s', got '%s'", expectedError, err.Error())
	}
}

func TestMatchSelection(t *testing.T) {
	finder := NewFzf("Test")
	_ = finder.SetOptions(operationOptions())

	tests := []struct {
		name     string
		selected string
		expected string
		wantErr  bool
	}{
		{name: "display line", selected: displayText(operationOptions()[0]), expected: "issue:create"},
		{name: "bare value", selected: "release:getAll", expected: "release:getAll"},
		{name: "empty", selected: "", wantErr: true},
		{name: "unknown", selected: "gist:get", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := finder.matchSelection(tt.selected)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q", tt.selected)
				}
				return
			}
			if err != nil {
				t.Fatalf("matchSelection failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, got)
			}
		})
	}
}

func TestDisplayText(t *testing.T) {
	if got := displayText(Option{Value: "file:get"}); got != "file:get" {
		t.Errorf("Expected bare value, got '%s'", got)
	}

	got := displayText(Option{Value: "file:get", Description: "GET contents"})
	if got != "file:get"+fzfSeparator+"GET contents" {
		t.Errorf("Unexpected display text '%s'", got)
	}
}
