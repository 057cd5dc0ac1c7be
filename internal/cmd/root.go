package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "ghnode",
	Short: "Run GitHub operations over lists of items",
	Long: `ghnode executes one GitHub operation (a resource and an operation, such as
issue:create or file:get) for every item of a run file and prints the results.

Each item supplies its own parameters, so a single run can create many issues,
update files in several repositories or page through releases, reviews and
repository issues.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the ghnode config file (default ~/.ghnode/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(operationsCmd)
}
