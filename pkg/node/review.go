package node

import (
	"net/http"
	"strings"
)

// Review events accepted by GitHub
const (
	ReviewEventApprove        = "APPROVE"
	ReviewEventRequestChanges = "REQUEST_CHANGES"
	ReviewEventComment        = "COMMENT"
	ReviewEventPending        = "PENDING"
)

func reviewOperations() []Definition {
	return []Definition{
		{
			Key:         OperationKey{ResourceReview, "create"},
			Method:      http.MethodPost,
			Endpoint:    "/repos/{owner}/{repository}/pulls/{pullRequestNumber}/reviews",
			Description: "Creates a new review",
			Shape:       ReplaceSingle,
			build:       buildReviewCreate,
		},
		{
			Key:         OperationKey{ResourceReview, "get"},
			Method:      http.MethodGet,
			Endpoint:    "/repos/{owner}/{repository}/pulls/{pullRequestNumber}/reviews/{reviewId}",
			Description: "Get a review for a pull request",
			Shape:       ReplaceSingle,
			build: func(p params, _ Item, t target) (*RequestSpec, error) {
				pr, id, err := reviewIDs(p)
				if err != nil {
					return nil, err
				}
				return request(http.MethodGet, repoPath(t, "pulls", pr, "reviews", id)), nil
			},
		},
		{
			Key:         OperationKey{ResourceReview, "getAll"},
			Method:      http.MethodGet,
			Endpoint:    "/repos/{owner}/{repository}/pulls/{pullRequestNumber}/reviews",
			Description: "Get all reviews for a pull request",
			Shape:       ReplaceFlatten,
			Paginated:   true,
			build: func(p params, _ Item, t target) (*RequestSpec, error) {
				pr, err := p.requiredString("pullRequestNumber")
				if err != nil {
					return nil, err
				}
				return request(http.MethodGet, repoPath(t, "pulls", pr, "reviews")), nil
			},
		},
		{
			Key:         OperationKey{ResourceReview, "update"},
			Method:      http.MethodPut,
			Endpoint:    "/repos/{owner}/{repository}/pulls/{pullRequestNumber}/reviews/{reviewId}",
			Description: "Update a review",
			Shape:       ReplaceSingle,
			build: func(p params, _ Item, t target) (*RequestSpec, error) {
				pr, id, err := reviewIDs(p)
				if err != nil {
					return nil, err
				}
				body, err := p.requiredString("body")
				if err != nil {
					return nil, err
				}
				spec := request(http.MethodPut, repoPath(t, "pulls", pr, "reviews", id))
				spec.Body["body"] = body
				return spec, nil
			},
		},
	}
}

func buildReviewCreate(p params, _ Item, t target) (*RequestSpec, error) {
	pr, err := p.requiredString("pullRequestNumber")
	if err != nil {
		return nil, err
	}
	rawEvent, err := p.requiredString("event")
	if err != nil {
		return nil, err
	}
	event, err := ReviewEvent(rawEvent)
	if err != nil {
		return nil, err
	}

	spec := request(http.MethodPost, repoPath(t, "pulls", pr, "reviews"))
	spec.Body["event"] = event

	if event == ReviewEventRequestChanges || event == ReviewEventComment {
		body, err := p.requiredString("body")
		if err != nil {
			return nil, err
		}
		spec.Body["body"] = body
	}

	fields, err := p.collection("additionalFields")
	if err != nil {
		return nil, err
	}
	for key, value := range fields {
		if key == "commitId" {
			key = "commit_id"
		}
		spec.Body[key] = value
	}
	return spec, nil
}

func reviewIDs(p params) (string, string, error) {
	pr, err := p.requiredString("pullRequestNumber")
	if err != nil {
		return "", "", err
	}
	id, err := p.requiredString("reviewId")
	if err != nil {
		return "", "", err
	}
	return pr, id, nil
}

// reviewEvents maps the camelCase event names and GitHub's own names to the
// REST enumeration
var reviewEvents = map[string]string{
	"approve":                 ReviewEventApprove,
	"requestChanges":          ReviewEventRequestChanges,
	"comment":                 ReviewEventComment,
	"pending":                 ReviewEventPending,
	ReviewEventApprove:        ReviewEventApprove,
	ReviewEventRequestChanges: ReviewEventRequestChanges,
	ReviewEventComment:        ReviewEventComment,
	ReviewEventPending:        ReviewEventPending,
}

// ReviewEvent converts a camelCase event name (requestChanges) to GitHub's
// upper snake case (REQUEST_CHANGES)
func ReviewEvent(name string) (string, error) {
	event, ok := reviewEvents[strings.TrimSpace(name)]
	if !ok {
		return "", NewConfigurationError("unknown review event %q", name)
	}
	return event, nil
}
