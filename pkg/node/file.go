package node

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
)

const defaultBinaryProperty = "data"

func fileOperations() []Definition {
	const endpoint = "/repos/{owner}/{repository}/contents/{filePath}"
	return []Definition{
		{
			Key:         OperationKey{ResourceFile, "create"},
			Method:      http.MethodPut,
			Endpoint:    endpoint,
			Description: "Create a new file in a repository",
			Shape:       ReplaceSingle,
			build:       buildFileWrite(false),
		},
		{
			Key:         OperationKey{ResourceFile, "edit"},
			Method:      http.MethodPut,
			Endpoint:    endpoint,
			Description: "Update a file in a repository",
			Shape:       ReplaceSingle,
			build:       buildFileWrite(true),
		},
		{
			Key:         OperationKey{ResourceFile, "delete"},
			Method:      http.MethodDelete,
			Endpoint:    endpoint,
			Description: "Delete a file in a repository",
			Shape:       ReplaceSingle,
			build:       buildFileDelete,
		},
		{
			Key:         OperationKey{ResourceFile, "get"},
			Method:      http.MethodGet,
			Endpoint:    endpoint,
			Description: "Get the data of a single file",
			Shape:       ReplaceSingle,
			build:       buildFileGet,
		},
		{
			Key:         OperationKey{ResourceFile, "list"},
			Method:      http.MethodGet,
			Endpoint:    endpoint,
			Description: "List contents of a folder",
			Shape:       ReplaceFlatten,
			build: func(p params, _ Item, t target) (*RequestSpec, error) {
				filePath, err := p.optionalString("filePath")
				if err != nil {
					return nil, err
				}
				return request(http.MethodGet, contentsPath(t.owner, t.repository, filePath)), nil
			},
		},
	}
}

func buildFileWrite(edit bool) builder {
	return func(p params, item Item, t target) (*RequestSpec, error) {
		filePath, err := p.requiredString("filePath")
		if err != nil {
			return nil, err
		}

		spec := request(http.MethodPut, contentsPath(t.owner, t.repository, filePath))
		if err := commitFields(p, spec.Body); err != nil {
			return nil, err
		}

		useBinary, err := p.boolean("binaryData")
		if err != nil {
			return nil, err
		}
		if useBinary {
			name, err := binaryPropertyName(p)
			if err != nil {
				return nil, err
			}
			if item.Binary == nil {
				return nil, NewConfigurationError("no binary data exists on item")
			}
			data, ok := item.Binary[name]
			if !ok || data == nil {
				return nil, NewConfigurationError("binary property %q does not exist on item", name)
			}
			spec.Body["content"] = base64.StdEncoding.EncodeToString(data.Data)
		} else {
			content, err := p.optionalString("fileContent")
			if err != nil {
				return nil, err
			}
			spec.Body["content"] = base64.StdEncoding.EncodeToString([]byte(content))
		}

		if edit {
			spec.SHALookup = fileRef(t, filePath, spec.Body)
		}
		return spec, nil
	}
}

func buildFileDelete(p params, _ Item, t target) (*RequestSpec, error) {
	filePath, err := p.requiredString("filePath")
	if err != nil {
		return nil, err
	}

	spec := request(http.MethodDelete, contentsPath(t.owner, t.repository, filePath))
	if err := commitFields(p, spec.Body); err != nil {
		return nil, err
	}
	spec.SHALookup = fileRef(t, filePath, spec.Body)
	return spec, nil
}

func buildFileGet(p params, _ Item, t target) (*RequestSpec, error) {
	filePath, err := p.requiredString("filePath")
	if err != nil {
		return nil, err
	}

	spec := request(http.MethodGet, contentsPath(t.owner, t.repository, filePath))

	extra, err := p.collection("additionalParameters")
	if err != nil {
		return nil, err
	}
	if ref, ok := extra["reference"]; ok && ref != nil {
		s, err := toString(ref)
		if err != nil {
			return nil, NewConfigurationError("parameter \"additionalParameters.reference\": %v", err)
		}
		if s != "" {
			spec.Query.Set("ref", s)
		}
	}

	asBinary, err := p.boolean("asBinaryProperty")
	if err != nil {
		return nil, err
	}
	if asBinary {
		if spec.BinaryProperty, err = binaryPropertyName(p); err != nil {
			return nil, err
		}
	}
	return spec, nil
}

// commitFields fills message, author, committer and branch of a contents write
func commitFields(p params, body map[string]any) error {
	message, err := p.requiredString("commitMessage")
	if err != nil {
		return err
	}
	body["message"] = message

	extra, err := p.collection("additionalParameters")
	if err != nil {
		return err
	}
	for _, field := range []string{"author", "committer"} {
		raw, ok := extra[field]
		if !ok || raw == nil {
			continue
		}
		identity, isMap := toMap(raw)
		if !isMap {
			return NewConfigurationError("parameter \"additionalParameters.%s\": expected {name, email}", field)
		}
		body[field] = identity
	}
	if raw, ok := extra["branch"]; ok && raw != nil {
		branch := raw
		if m, isMap := toMap(raw); isMap {
			branch = m["branch"]
		}
		if branch != nil {
			s, err := toString(branch)
			if err != nil {
				return NewConfigurationError("parameter \"additionalParameters.branch\": %v", err)
			}
			if s != "" {
				body["branch"] = s
			}
		}
	}
	return nil
}

func fileRef(t target, filePath string, body map[string]any) *FileRef {
	ref := &FileRef{Owner: t.owner, Repository: t.repository, Path: filePath}
	if branch, ok := body["branch"].(string); ok {
		ref.Branch = branch
	}
	return ref
}

func binaryPropertyName(p params) (string, error) {
	name, err := p.optionalString("binaryPropertyName")
	if err != nil {
		return "", err
	}
	if name == "" {
		return defaultBinaryProperty, nil
	}
	return name, nil
}

// FileSHA fetches the current blob SHA of a file. GitHub rejects content
// updates and deletes that do not carry it.
func FileSHA(ctx context.Context, caller Caller, ref FileRef) (string, error) {
	query := url.Values{}
	if ref.Branch != "" {
		query.Set("ref", ref.Branch)
	}

	page, err := caller.Call(ctx, http.MethodGet, contentsPath(ref.Owner, ref.Repository, ref.Path), nil, query)
	if err != nil {
		return "", fmt.Errorf("could not get the SHA of file %s: %w", ref.Path, err)
	}

	obj, ok := page.Body.(map[string]any)
	if !ok {
		return "", NewUsageError("could not get the SHA of file %s: path is not a single file", ref.Path)
	}
	sha, ok := obj["sha"].(string)
	if !ok || sha == "" {
		return "", NewUsageError("could not get the SHA of file %s", ref.Path)
	}
	return sha, nil
}
