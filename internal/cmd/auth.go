package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ghnode/pkg/github"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authentication commands",
	Long:  "Commands for checking GitHub authentication",
}

var authTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Verify the configured GitHub credentials",
	Long: `Verify the configured GitHub token by requesting the authenticated user.

The token is read from the GITHUB_TOKEN environment variable or from github.token
in the ghnode config file. The result is reported as a status and a message.`,
	RunE: runAuthTest,
}

func init() {
	authCmd.AddCommand(authTestCmd)
}

func runAuthTest(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	authManager := github.NewAuthManager()
	if err := authManager.AuthenticateFromConfig(cfg); err != nil {
		fmt.Fprintf(out, "Status: %s\nMessage: %v\n\n%s\n", github.CredentialStatusError, err, github.GetAuthInstructions())
		return fmt.Errorf("credential test failed")
	}

	status := authManager.TestCredentials(context.Background())
	fmt.Fprintf(out, "Status: %s\nMessage: %s\n", status.Status, status.Message)
	if status.User != "" {
		fmt.Fprintf(out, "User: %s\n", status.User)
	}
	if len(status.Scopes) > 0 {
		fmt.Fprintf(out, "Scopes: %s\n", strings.Join(status.Scopes, ", "))
	}

	if !status.OK() {
		return fmt.Errorf("credential test failed")
	}
	return nil
}
