package node

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

const (
	defaultLimit = 50
	maxPerPage   = 100
)

// target carries the owner/repository pair resolved for one item
type target struct {
	owner      string
	repository string
}

// builder turns one item's parameters into a request
type builder func(p params, item Item, t target) (*RequestSpec, error)

// Definition describes how one operation is routed and how its response is reshaped
type Definition struct {
	Key         OperationKey
	Method      string
	Endpoint    string
	Description string
	Shape       ResponseShape
	Paginated   bool

	// NoOwner and NoRepository mark operations that address GitHub without them
	NoOwner      bool
	NoRepository bool

	build builder
}

var registry = newRegistry(
	fileOperations(),
	issueOperations(),
	repositoryOperations(),
	releaseOperations(),
	reviewOperations(),
	userOperations(),
)

func newRegistry(groups ...[]Definition) map[OperationKey]*Definition {
	table := make(map[OperationKey]*Definition)
	for _, group := range groups {
		for i := range group {
			def := group[i]
			if _, exists := table[def.Key]; exists {
				panic(fmt.Sprintf("duplicate operation %s", def.Key))
			}
			table[def.Key] = &def
		}
	}
	return table
}

// Lookup returns the definition for key, failing on an unknown resource or operation
func Lookup(key OperationKey) (*Definition, error) {
	if !key.Resource.Valid() {
		return nil, NewConfigurationError("unknown resource %q", key.Resource)
	}
	def, ok := registry[key]
	if !ok {
		return nil, NewConfigurationError("unknown operation %q for resource %q", key.Operation, key.Resource)
	}
	return def, nil
}

// Definitions returns every operation sorted by resource order then operation name
func Definitions() []*Definition {
	order := make(map[Resource]int, len(Resources))
	for i, r := range Resources {
		order[r] = i
	}

	defs := make([]*Definition, 0, len(registry))
	for _, def := range registry {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool {
		if defs[i].Key.Resource != defs[j].Key.Resource {
			return order[defs[i].Key.Resource] < order[defs[j].Key.Resource]
		}
		return defs[i].Key.Operation < defs[j].Key.Operation
	})
	return defs
}

// Route builds the request for the item at index
func Route(key OperationKey, item Item, parameters Parameters, index int) (*RequestSpec, error) {
	def, err := Lookup(key)
	if err != nil {
		return nil, err
	}
	return def.route(item, parameters, index)
}

func (d *Definition) route(item Item, parameters Parameters, index int) (*RequestSpec, error) {
	p := params{source: parameters, index: index}

	var t target
	var err error
	if !d.NoOwner {
		if t.owner, err = p.requiredString("owner"); err != nil {
			return nil, err
		}
	}
	if !d.NoRepository {
		if t.repository, err = p.requiredString("repository"); err != nil {
			return nil, err
		}
	}

	spec, err := d.build(p, item, t)
	if err != nil {
		return nil, err
	}
	if err := checkEndpoint(spec.Endpoint); err != nil {
		return nil, err
	}
	if spec.Method == "" {
		spec.Method = d.Method
	}
	if spec.Query == nil {
		spec.Query = url.Values{}
	}

	if d.Paginated {
		if spec.ReturnAll, err = p.boolean("returnAll"); err != nil {
			return nil, err
		}
		if !spec.ReturnAll {
			if spec.Limit, err = p.integer("limit", defaultLimit); err != nil {
				return nil, err
			}
			if spec.Limit < 1 || spec.Limit > maxPerPage {
				return nil, NewConfigurationError("parameter \"limit\" must be between 1 and %d, got %d", maxPerPage, spec.Limit)
			}
		}
	}

	return spec, nil
}

// repoPath builds /repos/{owner}/{repository}/{segments...} with escaped segments
func repoPath(t target, segments ...string) string {
	parts := []string{"", "repos", url.PathEscape(t.owner), url.PathEscape(t.repository)}
	for _, s := range segments {
		parts = append(parts, url.PathEscape(s))
	}
	return strings.Join(parts, "/")
}

// checkEndpoint rejects dot segments; URL resolution would otherwise move the
// request to a different endpoint
func checkEndpoint(endpoint string) error {
	for _, segment := range strings.Split(endpoint, "/") {
		if segment == "." || segment == ".." {
			return NewConfigurationError("endpoint %q contains a relative path segment %q", endpoint, segment)
		}
	}
	return nil
}

// contentsPath builds the contents endpoint, keeping the file path's slashes
func contentsPath(owner, repository, filePath string) string {
	base := repoPath(target{owner: owner, repository: repository}, "contents")
	var escaped []string
	for _, segment := range strings.Split(strings.Trim(filePath, "/"), "/") {
		if segment == "" {
			continue
		}
		escaped = append(escaped, url.PathEscape(segment))
	}
	if len(escaped) == 0 {
		return base
	}
	return base + "/" + strings.Join(escaped, "/")
}

// request is a shorthand for a spec with an empty body
func request(method, endpoint string) *RequestSpec {
	return &RequestSpec{Method: method, Endpoint: endpoint, Body: map[string]any{}, Query: url.Values{}}
}
