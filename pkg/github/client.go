package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"

	"ghnode/pkg/node"
)

const (
	// DefaultBaseURL is the public GitHub REST API
	DefaultBaseURL = "https://api.github.com/"

	// DefaultUserAgent identifies ghnode to GitHub
	DefaultUserAgent = "ghnode"
)

// ClientOptions configures a Client
type ClientOptions struct {
	// BaseURL overrides the API root, e.g. a GitHub Enterprise server
	BaseURL   string
	UserAgent string

	// HTTPClient is the underlying transport; the token is layered on top of it
	HTTPClient *http.Client
}

// Client performs raw GitHub REST calls for the node executor
type Client struct {
	client *github.Client
}

// NewClient creates a client for the public API authenticated with token
func NewClient(token string) *Client {
	client, err := NewClientWithOptions(token, ClientOptions{})
	if err != nil {
		// the default base URL always parses
		panic(err)
	}
	return client
}

// NewClientWithOptions creates a client with a custom base URL or transport
func NewClientWithOptions(token string, opts ClientOptions) (*Client, error) {
	ctx := context.Background()
	if opts.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, opts.HTTPClient)
	}

	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(ctx, ts)
	} else {
		httpClient = opts.HTTPClient
	}

	gh := github.NewClient(httpClient)

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	parsed, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	gh.BaseURL = parsed

	gh.UserAgent = DefaultUserAgent
	if opts.UserAgent != "" {
		gh.UserAgent = opts.UserAgent
	}

	return &Client{client: gh}, nil
}

// parseBaseURL parses an API root and ensures the trailing slash go-github requires
func parseBaseURL(raw string) (*url.URL, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub base URL %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid GitHub base URL %q: scheme must be http or https", raw)
	}
	return parsed, nil
}

// BaseURL returns the API root requests are resolved against
func (c *Client) BaseURL() string {
	return c.client.BaseURL.String()
}

// Call issues one request and decodes the JSON response. A response without
// a body decodes to nil.
func (c *Client) Call(ctx context.Context, method, endpoint string, body map[string]any, query url.Values) (*node.Page, error) {
	// endpoints are absolute API paths; resolve them under BaseURL so
	// enterprise prefixes such as /api/v3/ are kept
	urlStr := strings.TrimPrefix(endpoint, "/")
	if len(query) > 0 {
		urlStr += "?" + query.Encode()
	}

	var reqBody interface{}
	if body != nil {
		reqBody = body
	}

	req, err := c.client.NewRequest(method, urlStr, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request %s %s: %w", method, endpoint, err)
	}

	var out interface{}
	resp, err := c.client.Do(ctx, req, &out)
	if err != nil {
		return nil, WrapGitHubError(err, fmt.Sprintf("%s %s", method, endpoint))
	}

	return &node.Page{Body: out, NextPage: resp.NextPage}, nil
}

var _ node.Caller = (*Client)(nil)
