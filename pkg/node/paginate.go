package node

import (
	"context"
	"net/url"
	"strconv"
)

// FetchAll repeats the request with an advancing page number until GitHub
// reports no next page or a page comes back short, concatenating elements in
// response order.
func FetchAll(ctx context.Context, caller Caller, method, endpoint string, body map[string]any, query url.Values) ([]any, error) {
	all := make([]any, 0)
	for page := 1; ; page++ {
		pageQuery := cloneValues(query)
		pageQuery.Set("per_page", strconv.Itoa(maxPerPage))
		pageQuery.Set("page", strconv.Itoa(page))

		resp, err := caller.Call(ctx, method, endpoint, body, pageQuery)
		if err != nil {
			return nil, err
		}

		elements := elementsOf(resp.Body)
		all = append(all, elements...)

		if resp.NextPage == 0 || len(elements) < maxPerPage {
			return all, nil
		}
	}
}

// FetchPage issues a single request for at most limit elements
func FetchPage(ctx context.Context, caller Caller, method, endpoint string, body map[string]any, query url.Values, limit int) ([]any, error) {
	pageQuery := cloneValues(query)
	pageQuery.Set("per_page", strconv.Itoa(limit))

	resp, err := caller.Call(ctx, method, endpoint, body, pageQuery)
	if err != nil {
		return nil, err
	}

	elements := elementsOf(resp.Body)
	if len(elements) > limit {
		elements = elements[:limit]
	}
	return elements, nil
}

func elementsOf(body any) []any {
	switch v := body.(type) {
	case nil:
		return []any{}
	case []any:
		return v
	default:
		return []any{v}
	}
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for key, values := range v {
		out[key] = append([]string(nil), values...)
	}
	return out
}
