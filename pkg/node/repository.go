package node

import (
	"net/http"
)

// issueFilterNames are the query parameters accepted by repository:getIssues
var issueFilterNames = []string{"assignee", "creator", "mentioned", "labels", "since", "state", "sort", "direction"}

func repositoryOperations() []Definition {
	return []Definition{
		{
			Key:         OperationKey{ResourceRepository, "get"},
			Method:      http.MethodGet,
			Endpoint:    "/repos/{owner}/{repository}",
			Description: "Get the data of a single repository",
			Shape:       ReplaceSingle,
			build: func(_ params, _ Item, t target) (*RequestSpec, error) {
				return request(http.MethodGet, repoPath(t)), nil
			},
		},
		{
			Key:         OperationKey{ResourceRepository, "getLicense"},
			Method:      http.MethodGet,
			Endpoint:    "/repos/{owner}/{repository}/license",
			Description: "Returns the contents of the repository's license file, if one is detected",
			Shape:       ReplaceSingle,
			build: func(_ params, _ Item, t target) (*RequestSpec, error) {
				return request(http.MethodGet, repoPath(t, "license")), nil
			},
		},
		{
			Key:         OperationKey{ResourceRepository, "getIssues"},
			Method:      http.MethodGet,
			Endpoint:    "/repos/{owner}/{repository}/issues",
			Description: "Returns issues of a repository",
			Shape:       ReplaceFlatten,
			Paginated:   true,
			build:       buildRepositoryIssues,
		},
		{
			Key:         OperationKey{ResourceRepository, "listPopularPaths"},
			Method:      http.MethodGet,
			Endpoint:    "/repos/{owner}/{repository}/traffic/popular/paths",
			Description: "Get the top 10 popular content paths over the last 14 days",
			Shape:       ReplaceFlatten,
			build: func(_ params, _ Item, t target) (*RequestSpec, error) {
				return request(http.MethodGet, repoPath(t, "traffic", "popular", "paths")), nil
			},
		},
		{
			Key:         OperationKey{ResourceRepository, "listReferrers"},
			Method:      http.MethodGet,
			Endpoint:    "/repos/{owner}/{repository}/traffic/popular/referrers",
			Description: "Get the top 10 referrering domains over the last 14 days",
			Shape:       ReplaceFlatten,
			build: func(_ params, _ Item, t target) (*RequestSpec, error) {
				return request(http.MethodGet, repoPath(t, "traffic", "popular", "referrers")), nil
			},
		},
	}
}

func buildRepositoryIssues(p params, _ Item, t target) (*RequestSpec, error) {
	filters, err := p.collection("getRepositoryIssuesFilters")
	if err != nil {
		return nil, err
	}

	spec := request(http.MethodGet, repoPath(t, "issues"))
	for _, name := range issueFilterNames {
		value, ok := filters[name]
		if !ok || value == nil {
			continue
		}
		s, err := toString(value)
		if err != nil {
			return nil, NewConfigurationError("parameter \"getRepositoryIssuesFilters.%s\": %v", name, err)
		}
		if s != "" {
			spec.Query.Set(name, s)
		}
	}
	return spec, nil
}
