package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List backends in fallback order",
	Long: `Providers lists every known backend in its fixed fallback priority order,
along with whether a credential currently resolves for it.`,
	RunE: runProviders,
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

func runProviders(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ORDER\tID\tNAME\tKEY\tCONFIGURED\tENABLED")

	enabled := map[string]bool{}
	for _, s := range backendSpecs(cfg) {
		enabled[string(s.ID)] = true
	}

	order := 1
	for _, s := range allSpecs() {
		configured := "no"
		if creds.Resolve(s.KeyName) != "" {
			configured = "yes"
		}
		state := "no"
		if enabled[string(s.ID)] {
			state = "yes"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", order, s.ID, s.Name, s.KeyName, configured, state)
		order++
	}

	return w.Flush()
}
