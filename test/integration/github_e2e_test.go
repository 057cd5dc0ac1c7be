//go:build integration && github_e2e
// +build integration,github_e2e

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestGitHubE2ERepositoryGet reads a real repository through the CLI.
// This test requires:
// - GITHUB_TOKEN environment variable with read access to the repository
// - GITHUB_TEST_REPO environment variable in owner/name form
func TestGitHubE2ERepositoryGet(t *testing.T) {
	if os.Getenv("GITHUB_E2E_TESTS") != "true" {
		t.Skip("Skipping E2E tests. Set GITHUB_E2E_TESTS=true to run.")
	}
	if os.Getenv("GITHUB_TOKEN") == "" {
		t.Skip("GITHUB_TOKEN not set, skipping E2E tests")
	}
	owner, repo, ok := strings.Cut(os.Getenv("GITHUB_TEST_REPO"), "/")
	if !ok {
		t.Skip("GITHUB_TEST_REPO not set, skipping E2E tests")
	}

	binaryPath := getBinaryPath(t)
	dir := t.TempDir()

	runFile := filepath.Join(dir, "repo.yaml")
	content := fmt.Sprintf("resource: repository\noperation: get\nparameters:\n  owner: %s\n  repository: %s\n", owner, repo)
	if err := os.WriteFile(runFile, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write run file: %v", err)
	}

	cmd := exec.Command(binaryPath, "run", runFile, "--config", filepath.Join(dir, "config.yaml"))
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run failed: %v\nOutput: %s", err, stderr.String())
	}

	var results []map[string]map[string]interface{}
	if err := json.Unmarshal(stdout.Bytes(), &results); err != nil {
		t.Fatalf("Output is not JSON: %v\n%s", err, stdout.String())
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	fullName := fmt.Sprintf("%s/%s", owner, repo)
	if !strings.EqualFold(fmt.Sprint(results[0]["json"]["full_name"]), fullName) {
		t.Errorf("Expected full_name %s, got %v", fullName, results[0]["json"]["full_name"])
	}
}

// TestGitHubE2EAuthTest checks the configured token against GitHub
func TestGitHubE2EAuthTest(t *testing.T) {
	if os.Getenv("GITHUB_E2E_TESTS") != "true" {
		t.Skip("Skipping E2E tests. Set GITHUB_E2E_TESTS=true to run.")
	}
	if os.Getenv("GITHUB_TOKEN") == "" {
		t.Skip("GITHUB_TOKEN not set, skipping E2E tests")
	}

	binaryPath := getBinaryPath(t)
	cmd := exec.Command(binaryPath, "auth", "test", "--config", filepath.Join(t.TempDir(), "config.yaml"))
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("auth test failed: %v\nOutput: %s", err, out.String())
	}
	if !strings.Contains(out.String(), "Status: OK") {
		t.Errorf("Expected OK status, got: %s", out.String())
	}
}
