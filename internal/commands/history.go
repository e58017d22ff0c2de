package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/spriteforge/autopaint/internal/store/sqlite"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent generation sessions",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of sessions to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if !cfg.History.Enabled {
		return fmt.Errorf("history is disabled in the configuration")
	}

	repo, err := sqlite.NewSQLiteStorage(cfg.History.Path)
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer func() {
		_ = repo.Close()
	}()

	sessions, err := repo.Sessions().GetRecent(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tSTATUS\tPROVIDER\tCODE\tMS\tPROMPT")
	for _, s := range sessions {
		code := ""
		if s.HasCode {
			code = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			s.CreatedAt.Local().Format("2006-01-02 15:04"),
			s.Status, s.ProviderID, code, s.LatencyMS, truncate(s.Prompt, 48))
	}

	return w.Flush()
}

// truncate cuts on a rune boundary so multi-byte prompts stay printable.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
