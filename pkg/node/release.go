package node

import (
	"net/http"
)

func releaseOperations() []Definition {
	return []Definition{
		{
			Key:         OperationKey{ResourceRelease, "create"},
			Method:      http.MethodPost,
			Endpoint:    "/repos/{owner}/{repository}/releases",
			Description: "Creates a new release",
			Shape:       ReplaceSingle,
			build: func(p params, _ Item, t target) (*RequestSpec, error) {
				tag, err := p.requiredString("releaseTag")
				if err != nil {
					return nil, err
				}
				spec := request(http.MethodPost, repoPath(t, "releases"))
				if err := copyCollection(p, "additionalFields", spec.Body); err != nil {
					return nil, err
				}
				spec.Body["tag_name"] = tag
				return spec, nil
			},
		},
		{
			Key:         OperationKey{ResourceRelease, "delete"},
			Method:      http.MethodDelete,
			Endpoint:    "/repos/{owner}/{repository}/releases/{release_id}",
			Description: "Delete a release",
			Shape:       ReplaceSingle,
			build:       releaseByID(http.MethodDelete),
		},
		{
			Key:         OperationKey{ResourceRelease, "get"},
			Method:      http.MethodGet,
			Endpoint:    "/repos/{owner}/{repository}/releases/{release_id}",
			Description: "Get a release",
			Shape:       ReplaceSingle,
			build:       releaseByID(http.MethodGet),
		},
		{
			Key:         OperationKey{ResourceRelease, "getAll"},
			Method:      http.MethodGet,
			Endpoint:    "/repos/{owner}/{repository}/releases",
			Description: "Get all repository releases",
			Shape:       ReplaceFlatten,
			Paginated:   true,
			build: func(_ params, _ Item, t target) (*RequestSpec, error) {
				return request(http.MethodGet, repoPath(t, "releases")), nil
			},
		},
		{
			Key:         OperationKey{ResourceRelease, "update"},
			Method:      http.MethodPatch,
			Endpoint:    "/repos/{owner}/{repository}/releases/{release_id}",
			Description: "Update a release",
			Shape:       ReplaceSingle,
			build: func(p params, item Item, t target) (*RequestSpec, error) {
				spec, err := releaseByID(http.MethodPatch)(p, item, t)
				if err != nil {
					return nil, err
				}
				if err := copyCollection(p, "additionalFields", spec.Body); err != nil {
					return nil, err
				}
				return spec, nil
			},
		},
	}
}

func releaseByID(method string) builder {
	return func(p params, _ Item, t target) (*RequestSpec, error) {
		id, err := p.requiredString("release_id")
		if err != nil {
			return nil, err
		}
		return request(method, repoPath(t, "releases", id)), nil
	}
}

// copyCollection copies every supplied field of a collection parameter into body
func copyCollection(p params, name string, body map[string]any) error {
	fields, err := p.collection(name)
	if err != nil {
		return err
	}
	for key, value := range fields {
		body[key] = value
	}
	return nil
}
