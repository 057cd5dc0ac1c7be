package fuzzy

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"ghnode/pkg/node"
)

// Selector chooses one value among options
type Selector interface {
	SetOptions(options []Option) error
	Select() (string, error)
}

// OperationOptions lists every operation as resource:operation with its route
func OperationOptions(defs []*node.Definition) []Option {
	options := make([]Option, 0, len(defs))
	for _, def := range defs {
		options = append(options, Option{
			Value:       def.Key.String(),
			Description: fmt.Sprintf("%s %s - %s", def.Method, def.Endpoint, def.Description),
		})
	}
	return options
}

// PickOperation asks the user to choose an operation with selector
func PickOperation(selector Selector, defs []*node.Definition) (node.OperationKey, error) {
	if err := selector.SetOptions(OperationOptions(defs)); err != nil {
		return node.OperationKey{}, err
	}

	value, err := selector.Select()
	if err != nil {
		return node.OperationKey{}, fmt.Errorf("operation selection failed: %w", err)
	}
	return node.ParseOperationKey(value)
}

// IsInteractive reports whether stdin and stdout are both terminals
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

var _ Selector = (*FzfFinder)(nil)
