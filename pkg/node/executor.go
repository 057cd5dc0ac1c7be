package node

import (
	"context"
	"encoding/base64"
	"maps"
	"mime"
	"path"
	"strings"

	"go.uber.org/zap"
)

// Result is one entry of a run's output
type Result struct {
	JSON   map[string]any         `json:"json"`
	Binary map[string]*BinaryData `json:"binary,omitempty"`
}

// Options configures an Executor
type Options struct {
	// ContinueOnFail records item failures in the output instead of aborting the run
	ContinueOnFail bool
	Logger         *zap.Logger
}

// Executor runs one operation over a sequence of items, one item at a time
type Executor struct {
	caller         Caller
	continueOnFail bool
	logger         *zap.Logger
}

// NewExecutor creates an executor that issues calls through caller
func NewExecutor(caller Caller, opts Options) *Executor {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		caller:         caller,
		continueOnFail: opts.ContinueOnFail,
		logger:         logger,
	}
}

// Run executes key for every item. Replace operations return the accumulated
// responses; pass-through operations return the input items.
func (e *Executor) Run(ctx context.Context, key OperationKey, items ItemSource, parameters Parameters) ([]Result, error) {
	def, err := Lookup(key)
	if err != nil {
		return nil, err
	}

	logger := e.logger.With(zap.Stringer("operation", key))

	accumulated := make([]Result, 0, items.Len())
	passThrough := make([]Result, items.Len())

	for i := 0; i < items.Len(); i++ {
		item := items.Item(i)
		passThrough[i] = Result{JSON: item.JSON, Binary: item.Binary}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out, err := e.processItem(ctx, def, item, parameters, i)
		if err != nil {
			nodeErr := withContext(err, key, i)
			if !e.continueOnFail {
				logger.Debug("item failed, aborting run", zap.Int("item", i), zap.Error(nodeErr))
				return nil, nodeErr
			}

			logger.Warn("item failed, continuing", zap.Int("item", i), zap.Error(nodeErr))
			errorJSON := map[string]any{"error": nodeErr.Error()}
			if def.Shape == PassThrough {
				passThrough[i] = Result{JSON: errorJSON, Binary: item.Binary}
			} else {
				accumulated = append(accumulated, Result{JSON: errorJSON})
			}
			continue
		}

		if out.attached != nil {
			passThrough[i] = *out.attached
			accumulated = append(accumulated, *out.attached)
			continue
		}

		switch def.Shape {
		case ReplaceSingle:
			accumulated = append(accumulated, toResults(out.body)...)
		case ReplaceFlatten:
			accumulated = append(accumulated, toResults(elementsOf(out.body))...)
		case PassThrough:
		}
	}

	if def.Shape == PassThrough {
		return passThrough, nil
	}
	return accumulated, nil
}

// Plan routes every item without touching the network
func (e *Executor) Plan(key OperationKey, items ItemSource, parameters Parameters) ([]*RequestSpec, error) {
	def, err := Lookup(key)
	if err != nil {
		return nil, err
	}

	specs := make([]*RequestSpec, 0, items.Len())
	for i := 0; i < items.Len(); i++ {
		spec, err := def.route(items.Item(i), parameters, i)
		if err != nil {
			return nil, withContext(err, key, i)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

type itemOutput struct {
	body     any
	attached *Result
}

func (e *Executor) processItem(ctx context.Context, def *Definition, item Item, parameters Parameters, index int) (*itemOutput, error) {
	spec, err := def.route(item, parameters, index)
	if err != nil {
		return nil, err
	}

	if spec.SHALookup != nil {
		sha, err := FileSHA(ctx, e.caller, *spec.SHALookup)
		if err != nil {
			return nil, err
		}
		spec.Body["sha"] = sha
	}

	body, err := e.Do(ctx, def, spec)
	if err != nil {
		return nil, err
	}

	if def.Key == (OperationKey{ResourceRelease, "delete"}) {
		body = map[string]any{"success": true}
	}

	if spec.BinaryProperty != "" {
		attached, err := attachContent(item, body, spec.BinaryProperty)
		if err != nil {
			return nil, err
		}
		return &itemOutput{attached: attached}, nil
	}

	return &itemOutput{body: body}, nil
}

// Do issues spec, paginating when the operation asks for it
func (e *Executor) Do(ctx context.Context, def *Definition, spec *RequestSpec) (any, error) {
	e.logger.Debug("github request",
		zap.String("method", spec.Method),
		zap.String("endpoint", spec.Endpoint),
		zap.String("query", spec.Query.Encode()),
	)

	body := spec.Body
	if len(body) == 0 {
		body = nil
	}

	if def.Paginated {
		if spec.ReturnAll {
			return FetchAll(ctx, e.caller, spec.Method, spec.Endpoint, body, spec.Query)
		}
		return FetchPage(ctx, e.caller, spec.Method, spec.Endpoint, body, spec.Query, spec.Limit)
	}

	page, err := e.caller.Call(ctx, spec.Method, spec.Endpoint, body, spec.Query)
	if err != nil {
		return nil, err
	}
	return page.Body, nil
}

// attachContent decodes a contents response into a shallow copy of item
func attachContent(item Item, body any, property string) (*Result, error) {
	file, ok := body.(map[string]any)
	if !ok {
		return nil, NewUsageError("file path is a directory, not a file")
	}
	encoded, _ := file["content"].(string)
	data, err := base64.StdEncoding.DecodeString(stripNewlines(encoded))
	if err != nil {
		return nil, NewUsageError("file content is not valid base64: %v", err)
	}

	fileName, _ := file["path"].(string)
	binary := make(map[string]*BinaryData, len(item.Binary)+1)
	maps.Copy(binary, item.Binary)
	binary[property] = &BinaryData{
		Data:     data,
		FileName: path.Base(fileName),
		MimeType: mime.TypeByExtension(path.Ext(fileName)),
	}

	return &Result{JSON: item.JSON, Binary: binary}, nil
}

// newlineStripper removes the line breaks GitHub inserts every 60 base64 characters
var newlineStripper = strings.NewReplacer("\n", "", "\r", "")

func stripNewlines(s string) string {
	return newlineStripper.Replace(s)
}

func toResults(body any) []Result {
	switch v := body.(type) {
	case map[string]any:
		return []Result{{JSON: v}}
	case []any:
		results := make([]Result, 0, len(v))
		for _, element := range v {
			results = append(results, toResults(element)...)
		}
		return results
	case nil:
		return []Result{{JSON: map[string]any{}}}
	default:
		return []Result{{JSON: map[string]any{"value": v}}}
	}
}
