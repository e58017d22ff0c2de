package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage backend API keys",
	Long:  `Manage the API keys the backends are tried with. Keys live in the keyfile; environment variables and in-process overrides take precedence at lookup time.`,
}

var keysSetCmd = &cobra.Command{
	Use:   "set <key-name>",
	Short: "Store an API key in the keyfile",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeysSet,
}

var keysShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show which backend keys resolve, with masked values",
	RunE:  runKeysShow,
}

func init() {
	rootCmd.AddCommand(keysCmd)
	keysCmd.AddCommand(keysSetCmd)
	keysCmd.AddCommand(keysShowCmd)
}

func runKeysSet(cmd *cobra.Command, args []string) error {
	name := args[0]

	fmt.Fprintf(cmd.OutOrStdout(), "Enter value for %s: ", name)

	// Read without echo if terminal
	var value string
	if term.IsTerminal(int(os.Stdin.Fd())) {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
		value = string(raw)
		fmt.Fprintln(cmd.OutOrStdout())
	} else {
		reader := bufio.NewReader(cmd.InOrStdin())
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}
		value = strings.TrimSpace(line)
	}

	if value == "" {
		return fmt.Errorf("key value cannot be empty")
	}

	if err := creds.Save(name, value); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s stored in %s.\n", name, cfg.Keyfile)
	return nil
}

func runKeysShow(cmd *cobra.Command, args []string) error {
	for _, s := range allSpecs() {
		value := creds.Resolve(s.KeyName)
		display := "(not set)"
		if value != "" {
			display = mask(value)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-22s %s\n", s.KeyName, display)
	}
	return nil
}

// mask keeps just enough of the key to recognize it.
func mask(v string) string {
	if len(v) <= 8 {
		return strings.Repeat("*", len(v))
	}
	return v[:4] + strings.Repeat("*", 8) + v[len(v)-4:]
}
