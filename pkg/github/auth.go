package github

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"ghnode/pkg/config"
)

// Credential check outcomes
const (
	CredentialStatusOK    = "OK"
	CredentialStatusError = "Error"
)

// CredentialStatus is the outcome of verifying a token against GitHub
type CredentialStatus struct {
	Status  string   `json:"status"`
	Message string   `json:"message"`
	User    string   `json:"user,omitempty"`
	Scopes  []string `json:"scopes,omitempty"`
}

// OK reports whether the credentials were accepted
func (s CredentialStatus) OK() bool {
	return s.Status == CredentialStatusOK
}

// AuthManager handles GitHub authentication
type AuthManager struct {
	client *Client
	token  string
}

// NewAuthManager creates a new authentication manager
func NewAuthManager() *AuthManager {
	return &AuthManager{}
}

// GetToken retrieves the GitHub token from environment variable or config file
func (am *AuthManager) GetToken(cfg *config.Config) (string, error) {
	// First, check environment variable
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return strings.TrimSpace(token), nil
	}

	// Then check config file
	if cfg != nil && cfg.GitHub.Token != "" {
		return strings.TrimSpace(cfg.GitHub.Token), nil
	}

	return "", fmt.Errorf("no GitHub token found: set GITHUB_TOKEN environment variable or configure token in ~/.ghnode/config.yaml")
}

// Authenticate sets up the GitHub client with the provided token
func (am *AuthManager) Authenticate(token string, opts ClientOptions) error {
	if token == "" {
		return fmt.Errorf("GitHub token cannot be empty")
	}

	client, err := NewClientWithOptions(token, opts)
	if err != nil {
		return err
	}

	am.client = client
	am.token = token
	return nil
}

// AuthenticateFromConfig resolves the token and base URL from cfg and builds the client
func (am *AuthManager) AuthenticateFromConfig(cfg *config.Config) error {
	token, err := am.GetToken(cfg)
	if err != nil {
		return err
	}

	opts := ClientOptions{}
	if cfg != nil {
		opts.BaseURL = cfg.GitHub.BaseURL
	}
	return am.Authenticate(token, opts)
}

// GetClient returns the authenticated GitHub client
func (am *AuthManager) GetClient() *Client {
	return am.client
}

// TestCredentials verifies the token by fetching the authenticated user.
// Failures are reported in the returned status, never as an error.
func (am *AuthManager) TestCredentials(ctx context.Context) CredentialStatus {
	if am.client == nil {
		return CredentialStatus{Status: CredentialStatusError, Message: "not authenticated: no GitHub token configured"}
	}
	return TestCredentials(ctx, am.client)
}

// TestCredentials checks that client can identify itself against /user
func TestCredentials(ctx context.Context, client *Client) CredentialStatus {
	req, err := client.client.NewRequest(http.MethodGet, "user", nil)
	if err != nil {
		return CredentialStatus{Status: CredentialStatusError, Message: err.Error()}
	}

	var user map[string]interface{}
	resp, err := client.client.Do(ctx, req, &user)
	if err != nil {
		return CredentialStatus{
			Status:  CredentialStatusError,
			Message: WrapGitHubError(err, "authenticated user").Error(),
		}
	}

	if _, ok := user["id"]; !ok {
		return CredentialStatus{Status: CredentialStatusError, Message: "Token is not valid: response has no user identity"}
	}

	status := CredentialStatus{
		Status:  CredentialStatusOK,
		Message: "Authentication successful",
	}
	if login, ok := user["login"].(string); ok {
		status.User = login
	}
	if scopeHeader := resp.Header.Get("X-OAuth-Scopes"); scopeHeader != "" {
		status.Scopes = strings.Split(strings.ReplaceAll(scopeHeader, " ", ""), ",")
	}
	return status
}

// GetAuthInstructions returns instructions for setting up GitHub authentication
func GetAuthInstructions() string {
	return `GitHub authentication is required. Please set up authentication using one of the following methods:

1. Environment Variable (Recommended for CI/CD):
   export GITHUB_TOKEN="your_personal_access_token"

2. Configuration File:
   Add the following to ~/.ghnode/config.yaml:

   github:
     token: "your_personal_access_token"

For GitHub Enterprise, also set github.base_url (or GHNODE_GITHUB_URL), for example
https://github.example.com/api/v3/

To create a personal access token:
1. Go to GitHub Settings > Developer settings > Personal access tokens
2. Generate a token with the scopes your operations need:
   - repo (files, issues, releases, reviews on private repositories)
   - admin:org (user invitations)`
}
