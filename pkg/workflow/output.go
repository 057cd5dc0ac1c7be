package workflow

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"ghnode/pkg/node"
)

// Output formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// OutputItem is the serialised form of a node.Result
type OutputItem struct {
	JSON   map[string]any          `json:"json" yaml:"json"`
	Binary map[string]OutputBinary `json:"binary,omitempty" yaml:"binary,omitempty"`
}

// OutputBinary is an attachment with base64 data
type OutputBinary struct {
	Data     string `json:"data" yaml:"data"`
	FileName string `json:"fileName,omitempty" yaml:"fileName,omitempty"`
	MimeType string `json:"mimeType,omitempty" yaml:"mimeType,omitempty"`
	FileSize int    `json:"fileSize" yaml:"fileSize"`
}

// PlannedRequest is the serialised form of a routed request
type PlannedRequest struct {
	Item      int            `json:"item" yaml:"item"`
	Method    string         `json:"method" yaml:"method"`
	Endpoint  string         `json:"endpoint" yaml:"endpoint"`
	Query     map[string]any `json:"query,omitempty" yaml:"query,omitempty"`
	Body      map[string]any `json:"body,omitempty" yaml:"body,omitempty"`
	SHALookup string         `json:"shaLookup,omitempty" yaml:"shaLookup,omitempty"`
	ReturnAll bool           `json:"returnAll,omitempty" yaml:"returnAll,omitempty"`
	Limit     int            `json:"limit,omitempty" yaml:"limit,omitempty"`
}

// ToOutput converts executor results into their serialised form
func ToOutput(results []node.Result) []OutputItem {
	out := make([]OutputItem, 0, len(results))
	for _, r := range results {
		item := OutputItem{JSON: r.JSON}
		if item.JSON == nil {
			item.JSON = map[string]any{}
		}
		if len(r.Binary) > 0 {
			item.Binary = make(map[string]OutputBinary, len(r.Binary))
			for name, bin := range r.Binary {
				if bin == nil {
					continue
				}
				item.Binary[name] = OutputBinary{
					Data:     base64.StdEncoding.EncodeToString(bin.Data),
					FileName: bin.FileName,
					MimeType: bin.MimeType,
					FileSize: len(bin.Data),
				}
			}
		}
		out = append(out, item)
	}
	return out
}

// ToPlan converts routed requests into their serialised form
func ToPlan(specs []*node.RequestSpec) []PlannedRequest {
	plan := make([]PlannedRequest, 0, len(specs))
	for i, spec := range specs {
		p := PlannedRequest{
			Item:      i,
			Method:    spec.Method,
			Endpoint:  spec.Endpoint,
			Body:      spec.Body,
			ReturnAll: spec.ReturnAll,
			Limit:     spec.Limit,
		}
		if len(spec.Query) > 0 {
			p.Query = make(map[string]any, len(spec.Query))
			for k := range spec.Query {
				p.Query[k] = spec.Query.Get(k)
			}
		}
		if spec.SHALookup != nil {
			p.SHALookup = spec.SHALookup.Path
			if spec.SHALookup.Branch != "" {
				p.SHALookup += "@" + spec.SHALookup.Branch
			}
		}
		plan = append(plan, p)
	}
	return plan
}

// Write encodes v to w in the given format
func Write(w io.Writer, v any, format string) error {
	switch format {
	case "", FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q: use json or yaml", format)
	}
}
