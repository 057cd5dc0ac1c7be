package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ghnode/pkg/config"
)

func TestNewAuthManager(t *testing.T) {
	am := NewAuthManager()
	assert.NotNil(t, am)
	assert.Nil(t, am.client)
	assert.Empty(t, am.token)
}

func TestAuthManager_GetToken(t *testing.T) {
	tests := []struct {
		name        string
		envToken    string
		config      *config.Config
		expected    string
		expectError bool
	}{
		{
			name:     "token from environment variable",
			envToken: "env_token_123",
			expected: "env_token_123",
		},
		{
			name:     "token from config file",
			config:   &config.Config{GitHub: config.GitHubConfig{Token: "config_token_456"}},
			expected: "config_token_456",
		},
		{
			name:     "environment variable takes precedence",
			envToken: "env_token_123",
			config:   &config.Config{GitHub: config.GitHubConfig{Token: "config_token_456"}},
			expected: "env_token_123",
		},
		{
			name:        "no token available",
			config:      &config.Config{},
			expectError: true,
		},
		{
			name:        "nil config and no env token",
			expectError: true,
		},
		{
			name:     "token with whitespace is trimmed",
			envToken: "  token_with_spaces  ",
			expected: "token_with_spaces",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GITHUB_TOKEN", tt.envToken)

			token, err := NewAuthManager().GetToken(tt.config)

			if tt.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "no GitHub token found")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, token)
		})
	}
}

func TestAuthManager_Authenticate(t *testing.T) {
	am := NewAuthManager()

	err := am.Authenticate("", ClientOptions{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "GitHub token cannot be empty")
	assert.Nil(t, am.GetClient())

	err = am.Authenticate("valid_token_123", ClientOptions{BaseURL: "ftp://nope"})
	assert.Error(t, err)

	require.NoError(t, am.Authenticate("valid_token_123", ClientOptions{}))
	assert.NotNil(t, am.GetClient())
	assert.Equal(t, "valid_token_123", am.token)
}

func TestAuthManager_AuthenticateFromConfig(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")

	cfg := &config.Config{GitHub: config.GitHubConfig{
		Token:   "config_token",
		BaseURL: "https://github.example.com/api/v3",
	}}

	am := NewAuthManager()
	require.NoError(t, am.AuthenticateFromConfig(cfg))
	assert.Equal(t, "https://github.example.com/api/v3/", am.GetClient().BaseURL())

	err := NewAuthManager().AuthenticateFromConfig(&config.Config{})
	assert.Error(t, err)
}

func TestTestCredentials(t *testing.T) {
	tests := []struct {
		name           string
		status         int
		body           string
		scopes         string
		expectedStatus string
		expectedUser   string
		expectedScopes []string
		expectedMsg    string
	}{
		{
			name:           "valid token",
			status:         http.StatusOK,
			body:           `{"id": 1, "login": "octocat"}`,
			scopes:         "repo, admin:org",
			expectedStatus: CredentialStatusOK,
			expectedUser:   "octocat",
			expectedScopes: []string{"repo", "admin:org"},
			expectedMsg:    "Authentication successful",
		},
		{
			name:           "response without identity",
			status:         http.StatusOK,
			body:           `{"message": "hello"}`,
			expectedStatus: CredentialStatusError,
			expectedMsg:    "Token is not valid",
		},
		{
			name:           "bad credentials",
			status:         http.StatusUnauthorized,
			body:           `{"message": "Bad credentials"}`,
			expectedStatus: CredentialStatusError,
			expectedMsg:    "authentication error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/user", r.URL.Path)
				if tt.scopes != "" {
					w.Header().Set("X-OAuth-Scopes", tt.scopes)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			status := TestCredentials(context.Background(), client)

			assert.Equal(t, tt.expectedStatus, status.Status)
			assert.Equal(t, tt.expectedStatus == CredentialStatusOK, status.OK())
			assert.Equal(t, tt.expectedUser, status.User)
			assert.Equal(t, tt.expectedScopes, status.Scopes)
			assert.Contains(t, status.Message, tt.expectedMsg)
		})
	}
}

func TestAuthManager_TestCredentialsNotAuthenticated(t *testing.T) {
	status := NewAuthManager().TestCredentials(context.Background())
	assert.False(t, status.OK())
	assert.Contains(t, status.Message, "not authenticated")
}

func TestAuthManager_TestCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer valid_token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id": 7, "login": "testuser"}`))
	}))
	defer server.Close()

	am := NewAuthManager()
	require.NoError(t, am.Authenticate("valid_token", ClientOptions{BaseURL: server.URL}))

	status := am.TestCredentials(context.Background())
	assert.True(t, status.OK())
	assert.Equal(t, "testuser", status.User)
}

func TestGetAuthInstructions(t *testing.T) {
	instructions := GetAuthInstructions()

	assert.NotEmpty(t, instructions)
	assert.Contains(t, instructions, "GITHUB_TOKEN")
	assert.Contains(t, instructions, "config.yaml")
	assert.Contains(t, instructions, "repo")
	assert.Contains(t, instructions, "Personal access tokens")
}
