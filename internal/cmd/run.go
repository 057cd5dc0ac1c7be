package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ghnode/pkg/config"
	"ghnode/pkg/fuzzy"
	"ghnode/pkg/github"
	"ghnode/pkg/node"
	"ghnode/pkg/workflow"
)

var (
	runResource       string
	runOperation      string
	runContinueOnFail bool
	runOutputFormat   string
	runOutputFile     string
	runDryRun         bool
	runInteractive    bool
)

// newCaller builds the GitHub transport; tests replace it
var newCaller = func(cfg *config.Config) (node.Caller, error) {
	authManager := github.NewAuthManager()
	if err := authManager.AuthenticateFromConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w\n\n%s", err, github.GetAuthInstructions())
	}
	return authManager.GetClient(), nil
}

// newSelector builds the interactive operation picker; tests replace it
var newSelector = func() fuzzy.Selector {
	return fuzzy.NewFzf("operation>")
}

var runCmd = &cobra.Command{
	Use:   "run <run-file>",
	Short: "Execute a GitHub operation for every item of a run file",
	Long: `Execute one GitHub operation for every item of a YAML or JSON run file.

Run file format:

  resource: issue
  operation: create
  continueOnFail: false
  parameters:            # shared by all items
    owner: octo-org
    repository: hello-world
  items:
    - params:            # per-item parameters override shared ones
        title: First issue
        labels: [{label: bug}]
    - params:
        title: Second issue

Items are processed one at a time in order. Without continueOnFail the first
failing item aborts the run and no output is written; with it, the failure is
recorded as {"error": "..."} in the output and the run goes on.

Examples:
  ghnode run issues.yaml
  ghnode run files.yaml --operation edit --continue-on-fail
  ghnode run releases.yaml --dry-run --output yaml
  ghnode run items.json --interactive`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runResource, "resource", "", "Override the resource of the run file (file, issue, repository, release, review, user)")
	runCmd.Flags().StringVar(&runOperation, "operation", "", "Override the operation of the run file")
	runCmd.Flags().BoolVar(&runContinueOnFail, "continue-on-fail", false, "Record item failures in the output instead of aborting")
	runCmd.Flags().StringVarP(&runOutputFormat, "output", "o", workflow.FormatJSON, "Output format: json or yaml")
	runCmd.Flags().StringVar(&runOutputFile, "out", "", "Write results to this file instead of stdout")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Print the requests that would be sent without calling GitHub")
	runCmd.Flags().BoolVarP(&runInteractive, "interactive", "i", false, "Pick the operation interactively when the run file does not set one")
}

func runRun(cmd *cobra.Command, args []string) error {
	run, err := workflow.LoadRun(args[0])
	if err != nil {
		return err
	}

	key, err := resolveKey(run)
	if err != nil {
		return err
	}
	run.SetKey(key)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.GitHub.Organization != "" {
		run.SetDefault("organization", cfg.GitHub.Organization)
	}

	if runDryRun {
		specs, err := node.NewExecutor(nil, node.Options{}).Plan(key, run, run)
		if err != nil {
			return err
		}
		return writeOutput(cmd, workflow.ToPlan(specs))
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	caller, err := newCaller(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	executor := node.NewExecutor(caller, node.Options{
		ContinueOnFail: run.ContinueOnFail || runContinueOnFail,
		Logger:         logger,
	})

	logger.Info("starting run", zap.Stringer("operation", key), zap.Int("items", run.Len()))
	results, err := executor.Run(ctx, key, run, run)
	if err != nil {
		return err
	}
	logger.Info("run finished", zap.Stringer("operation", key), zap.Int("results", len(results)))

	return writeOutput(cmd, workflow.ToOutput(results))
}

// resolveKey applies flag overrides and, when asked, the interactive picker
func resolveKey(run *workflow.Run) (node.OperationKey, error) {
	key := run.Key()
	if runResource != "" {
		key.Resource = node.Resource(runResource)
	}
	if runOperation != "" {
		key.Operation = runOperation
	}

	if key.Resource == "" || key.Operation == "" {
		if !runInteractive {
			return node.OperationKey{}, fmt.Errorf("no operation selected: set resource and operation in the run file, use --resource/--operation, or pass --interactive")
		}
		if !fuzzy.IsInteractive() {
			return node.OperationKey{}, fmt.Errorf("--interactive requires a terminal")
		}
		return fuzzy.PickOperation(newSelector(), node.Definitions())
	}

	if _, err := node.Lookup(key); err != nil {
		return node.OperationKey{}, err
	}
	return key, nil
}

// writeOutput encodes v to --out or stdout; nothing is written for a failed run
func writeOutput(cmd *cobra.Command, v any) error {
	if runOutputFile == "" {
		return workflow.Write(cmd.OutOrStdout(), v, runOutputFormat)
	}

	f, err := os.Create(runOutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := workflow.Write(f, v, runOutputFormat); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
