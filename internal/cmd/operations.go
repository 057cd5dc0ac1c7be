package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ghnode/pkg/node"
)

var operationsResource string

var operationsCmd = &cobra.Command{
	Use:   "operations",
	Short: "List supported GitHub operations",
	Long: `List every resource:operation pair with its HTTP method, endpoint template
and how its response is shaped into the run output:

  replace-single   the response object replaces the item
  replace-flatten  the response array elements are appended to the output
  pass-through     the input item is returned unchanged`,
	RunE: runOperations,
}

func init() {
	operationsCmd.Flags().StringVar(&operationsResource, "resource", "", "Only list operations of this resource")
}

func runOperations(cmd *cobra.Command, _ []string) error {
	if operationsResource != "" && !node.Resource(operationsResource).Valid() {
		return fmt.Errorf("unknown resource %q", operationsResource)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "OPERATION\tMETHOD\tENDPOINT\tSHAPE\tPAGINATED")
	for _, def := range node.Definitions() {
		if operationsResource != "" && string(def.Key.Resource) != operationsResource {
			continue
		}
		paginated := ""
		if def.Paginated {
			paginated = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", def.Key, def.Method, def.Endpoint, def.Shape, paginated)
	}
	return w.Flush()
}
