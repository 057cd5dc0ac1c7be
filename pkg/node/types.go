package node

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Resource identifies the GitHub entity family an operation acts on
type Resource string

const (
	ResourceFile       Resource = "file"
	ResourceIssue      Resource = "issue"
	ResourceRepository Resource = "repository"
	ResourceRelease    Resource = "release"
	ResourceReview     Resource = "review"
	ResourceUser       Resource = "user"
)

// Resources lists every supported resource in display order
var Resources = []Resource{
	ResourceFile,
	ResourceIssue,
	ResourceRepository,
	ResourceRelease,
	ResourceReview,
	ResourceUser,
}

// Valid reports whether r belongs to the closed resource set
func (r Resource) Valid() bool {
	switch r {
	case ResourceFile, ResourceIssue, ResourceRepository, ResourceRelease, ResourceReview, ResourceUser:
		return true
	default:
		return false
	}
}

// OperationKey selects routing and reshaping behaviour for a run
type OperationKey struct {
	Resource  Resource
	Operation string
}

// String renders the key as resource:operation
func (k OperationKey) String() string {
	return fmt.Sprintf("%s:%s", k.Resource, k.Operation)
}

// ParseOperationKey parses "resource:operation"
func ParseOperationKey(s string) (OperationKey, error) {
	resource, operation, ok := strings.Cut(s, ":")
	if !ok || resource == "" || operation == "" {
		return OperationKey{}, fmt.Errorf("invalid operation key %q: expected resource:operation", s)
	}
	return OperationKey{Resource: Resource(resource), Operation: operation}, nil
}

// ResponseShape decides how a call's response contributes to the run output
type ResponseShape int

const (
	// PassThrough leaves the input item untouched
	PassThrough ResponseShape = iota
	// ReplaceSingle makes the response object the item's output
	ReplaceSingle
	// ReplaceFlatten appends the response array elements to the run output
	ReplaceFlatten
)

func (s ResponseShape) String() string {
	switch s {
	case ReplaceSingle:
		return "replace-single"
	case ReplaceFlatten:
		return "replace-flatten"
	default:
		return "pass-through"
	}
}

// FileRef addresses a file whose current blob SHA must be looked up
type FileRef struct {
	Owner      string
	Repository string
	Path       string
	Branch     string
}

// RequestSpec is a single GitHub call built for one input item
type RequestSpec struct {
	Method   string
	Endpoint string
	Body     map[string]any
	Query    url.Values

	// SHALookup is set when the call needs the file's current SHA in Body["sha"]
	SHALookup *FileRef

	// BinaryProperty names the attachment that receives decoded file content
	BinaryProperty string

	// ReturnAll and Limit carry the pagination mode for paginated operations
	ReturnAll bool
	Limit     int
}

// Page is one parsed GitHub response
type Page struct {
	Body     any
	NextPage int
}

// Caller performs one GitHub REST call. Endpoint is an absolute API path.
type Caller interface {
	Call(ctx context.Context, method, endpoint string, body map[string]any, query url.Values) (*Page, error)
}

// BinaryData is a named byte attachment carried by an item
type BinaryData struct {
	Data     []byte `json:"data" yaml:"data"`
	FileName string `json:"fileName,omitempty" yaml:"fileName,omitempty"`
	MimeType string `json:"mimeType,omitempty" yaml:"mimeType,omitempty"`
}

// Item is a host input item: a JSON payload plus optional attachments
type Item struct {
	JSON   map[string]any
	Binary map[string]*BinaryData
}

// ItemSource is an indexable sequence of input items
type ItemSource interface {
	Len() int
	Item(index int) Item
}

// Parameters resolves a named node parameter for the item at index
type Parameters interface {
	Param(name string, index int) (any, bool)
}
