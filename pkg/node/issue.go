package node

import (
	"net/http"
)

const defaultLockReason = "resolved"

// lockReasons accepted by the lock endpoint
var lockReasons = map[string]bool{
	"off-topic":  true,
	"too heated": true,
	"resolved":   true,
	"spam":       true,
}

func issueOperations() []Definition {
	return []Definition{
		{
			Key:         OperationKey{ResourceIssue, "create"},
			Method:      http.MethodPost,
			Endpoint:    "/repos/{owner}/{repository}/issues",
			Description: "Create a new issue",
			Shape:       ReplaceSingle,
			build:       buildIssueCreate,
		},
		{
			Key:         OperationKey{ResourceIssue, "createComment"},
			Method:      http.MethodPost,
			Endpoint:    "/repos/{owner}/{repository}/issues/{issueNumber}/comments",
			Description: "Create a new comment on an issue",
			Shape:       ReplaceSingle,
			build: func(p params, _ Item, t target) (*RequestSpec, error) {
				number, err := p.requiredString("issueNumber")
				if err != nil {
					return nil, err
				}
				body, err := p.optionalString("body")
				if err != nil {
					return nil, err
				}
				spec := request(http.MethodPost, repoPath(t, "issues", number, "comments"))
				spec.Body["body"] = body
				return spec, nil
			},
		},
		{
			Key:         OperationKey{ResourceIssue, "edit"},
			Method:      http.MethodPatch,
			Endpoint:    "/repos/{owner}/{repository}/issues/{issueNumber}",
			Description: "Edit an issue",
			Shape:       ReplaceSingle,
			build:       buildIssueEdit,
		},
		{
			Key:         OperationKey{ResourceIssue, "get"},
			Method:      http.MethodGet,
			Endpoint:    "/repos/{owner}/{repository}/issues/{issueNumber}",
			Description: "Get the data of a single issue",
			Shape:       ReplaceSingle,
			build: func(p params, _ Item, t target) (*RequestSpec, error) {
				number, err := p.requiredString("issueNumber")
				if err != nil {
					return nil, err
				}
				return request(http.MethodGet, repoPath(t, "issues", number)), nil
			},
		},
		{
			Key:         OperationKey{ResourceIssue, "lock"},
			Method:      http.MethodPut,
			Endpoint:    "/repos/{owner}/{repository}/issues/{issueNumber}/lock",
			Description: "Lock an issue",
			Shape:       PassThrough,
			build: func(p params, _ Item, t target) (*RequestSpec, error) {
				number, err := p.requiredString("issueNumber")
				if err != nil {
					return nil, err
				}
				reason, err := p.optionalString("lockReason")
				if err != nil {
					return nil, err
				}
				if reason == "" {
					reason = defaultLockReason
				}
				if !lockReasons[reason] {
					return nil, NewConfigurationError("unknown lock reason %q", reason)
				}
				spec := request(http.MethodPut, repoPath(t, "issues", number, "lock"))
				spec.Query.Set("lock_reason", reason)
				return spec, nil
			},
		},
	}
}

func buildIssueCreate(p params, _ Item, t target) (*RequestSpec, error) {
	title, err := p.requiredString("title")
	if err != nil {
		return nil, err
	}
	body, err := p.optionalString("body")
	if err != nil {
		return nil, err
	}

	spec := request(http.MethodPost, repoPath(t, "issues"))
	spec.Body["title"] = title
	spec.Body["body"] = body

	labels, _ := p.raw("labels")
	if spec.Body["labels"], err = flattenParam("labels", labels, "label"); err != nil {
		return nil, err
	}
	assignees, _ := p.raw("assignees")
	if spec.Body["assignees"], err = flattenParam("assignees", assignees, "assignee"); err != nil {
		return nil, err
	}
	return spec, nil
}

func buildIssueEdit(p params, _ Item, t target) (*RequestSpec, error) {
	number, err := p.requiredString("issueNumber")
	if err != nil {
		return nil, err
	}
	fields, err := p.collection("editFields")
	if err != nil {
		return nil, err
	}

	spec := request(http.MethodPatch, repoPath(t, "issues", number))
	for key, value := range fields {
		spec.Body[key] = value
	}
	if value, ok := fields["labels"]; ok {
		if spec.Body["labels"], err = flattenParam("editFields.labels", value, "label"); err != nil {
			return nil, err
		}
	}
	if value, ok := fields["assignees"]; ok {
		if spec.Body["assignees"], err = flattenParam("editFields.assignees", value, "assignee"); err != nil {
			return nil, err
		}
	}
	return spec, nil
}

func flattenParam(name string, value any, field string) ([]string, error) {
	values, err := flattenValues(value, field)
	if err != nil {
		return nil, NewConfigurationError("parameter %q: %v", name, err)
	}
	return values, nil
}
