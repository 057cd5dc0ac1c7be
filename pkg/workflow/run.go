package workflow

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"ghnode/pkg/node"
)

// Run is a parsed run file: one operation applied to a list of items
type Run struct {
	Resource       string         `yaml:"resource" json:"resource"`
	Operation      string         `yaml:"operation" json:"operation"`
	ContinueOnFail bool           `yaml:"continueOnFail,omitempty" json:"continueOnFail,omitempty"`
	Parameters     map[string]any `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Items          []ItemSpec     `yaml:"items,omitempty" json:"items,omitempty"`

	// baseDir resolves relative binary file paths
	baseDir string
	items   []node.Item
}

// ItemSpec is one input item as written in a run file
type ItemSpec struct {
	JSON   map[string]any        `yaml:"json,omitempty" json:"json,omitempty"`
	Params map[string]any        `yaml:"params,omitempty" json:"params,omitempty"`
	Binary map[string]BinarySpec `yaml:"binary,omitempty" json:"binary,omitempty"`
}

// BinarySpec is an attachment given inline as base64 or as a file path
type BinarySpec struct {
	Data     string `yaml:"data,omitempty" json:"data,omitempty"`
	File     string `yaml:"file,omitempty" json:"file,omitempty"`
	FileName string `yaml:"fileName,omitempty" json:"fileName,omitempty"`
	MimeType string `yaml:"mimeType,omitempty" json:"mimeType,omitempty"`
}

// LoadRun reads a YAML or JSON run file
func LoadRun(path string) (*Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run file: %w", err)
	}

	run, err := ParseRun(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("run file %s: %w", path, err)
	}
	return run, nil
}

// ParseRun parses run file contents. JSON input is accepted as YAML.
func ParseRun(data []byte, baseDir string) (*Run, error) {
	var run Run
	if err := yaml.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to parse run file: %w", err)
	}
	run.baseDir = baseDir

	if err := run.Validate(); err != nil {
		return nil, err
	}
	return &run, nil
}

// Key returns the operation key selected by the run file
func (r *Run) Key() node.OperationKey {
	return node.OperationKey{Resource: node.Resource(r.Resource), Operation: r.Operation}
}

// SetKey overrides the operation selected by the run file
func (r *Run) SetKey(key node.OperationKey) {
	r.Resource = string(key.Resource)
	r.Operation = key.Operation
}

// Validate checks the structure of the run file and decodes its attachments.
// The operation itself is resolved by the node executor.
func (r *Run) Validate() error {
	var validationErrors ValidationErrors

	if r.Resource != "" && !node.Resource(r.Resource).Valid() {
		validationErrors.Add("resource", r.Resource, "unknown resource")
	}

	items := make([]node.Item, 0, len(r.Items))
	for i, spec := range r.Items {
		item := node.Item{JSON: spec.JSON}
		if item.JSON == nil {
			item.JSON = map[string]any{}
		}
		if len(spec.Binary) > 0 {
			item.Binary = make(map[string]*node.BinaryData, len(spec.Binary))
			for name, bin := range spec.Binary {
				data, err := r.decodeBinary(bin)
				if err != nil {
					validationErrors.Add(fmt.Sprintf("items[%d].binary.%s", i, name), "", err.Error())
					continue
				}
				item.Binary[name] = data
			}
		}
		items = append(items, item)
	}

	if validationErrors.HasErrors() {
		return validationErrors
	}

	// a run without items still executes once
	if len(items) == 0 {
		items = append(items, node.Item{JSON: map[string]any{}})
	}
	r.items = items
	return nil
}

func (r *Run) decodeBinary(spec BinarySpec) (*node.BinaryData, error) {
	data := &node.BinaryData{FileName: spec.FileName, MimeType: spec.MimeType}

	switch {
	case spec.File != "" && spec.Data != "":
		return nil, fmt.Errorf("set either data or file, not both")
	case spec.File != "":
		path := spec.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(r.baseDir, path)
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read attachment: %w", err)
		}
		data.Data = content
		if data.FileName == "" {
			data.FileName = filepath.Base(path)
		}
	default:
		content, err := base64.StdEncoding.DecodeString(spec.Data)
		if err != nil {
			return nil, fmt.Errorf("data is not valid base64: %w", err)
		}
		data.Data = content
	}
	return data, nil
}

// SetDefault sets a run-wide parameter unless the run file already sets it
func (r *Run) SetDefault(name string, value any) {
	if _, ok := r.Parameters[name]; ok {
		return
	}
	if r.Parameters == nil {
		r.Parameters = make(map[string]any)
	}
	r.Parameters[name] = value
}

// Len implements node.ItemSource
func (r *Run) Len() int {
	return len(r.items)
}

// Item implements node.ItemSource
func (r *Run) Item(index int) node.Item {
	return r.items[index]
}

// Param implements node.Parameters. Item parameters take precedence over
// run-wide parameters.
func (r *Run) Param(name string, index int) (any, bool) {
	if index >= 0 && index < len(r.Items) {
		if v, ok := r.Items[index].Params[name]; ok {
			return v, true
		}
	}
	v, ok := r.Parameters[name]
	return v, ok
}

var (
	_ node.ItemSource = (*Run)(nil)
	_ node.Parameters = (*Run)(nil)
)
