package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "pocket-ledger",
		Short: "Track, categorize and summarize personal transactions",
		Long: `Pocket Ledger keeps a personal list of income, expense and transfer
transactions, validates every change, and lists them filtered and sorted.`,
		SilenceUsage: true,
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")

	cfg := func() string { return configPath }
	cmd.AddCommand(
		newInitCmd(cfg),
		newAddCmd(cfg),
		newUpdateCmd(cfg),
		newDeleteCmd(cfg),
		newGetCmd(cfg),
		newListCmd(cfg),
		newSummaryCmd(cfg),
		newAccountsCmd(cfg),
		newCategoriesCmd(cfg),
	)
	return cmd
}
