// Package github is the GitHub REST transport used by ghnode.
//
// Client resolves the absolute API paths built by the node package against a
// configurable base URL, authenticates with an OAuth2 static token source and
// decodes responses into plain JSON values. Errors returned by the GitHub API
// are classified into GitHubError values (authentication, permission,
// not_found, validation, rate_limit, network, conflict, unknown).
//
// AuthManager resolves the token from the environment or the ghnode
// configuration file and verifies it against the authenticated-user endpoint.
package github
