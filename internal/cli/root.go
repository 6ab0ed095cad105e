package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the murojaahbot command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "murojaahbot",
		Short: "murojaahbot tracks daily Quran review sessions over Telegram",
		Long: `murojaahbot is a Telegram front end for the murojaah backend.
It logs review sessions, computes page totals and completion status,
sends daily reminders and exports logs to Excel.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().String("env", ".env", "path of the .env file to load")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newCalcCmd())
	rootCmd.AddCommand(newExportCmd())
	return rootCmd
}

// Execute runs the root command and exits non-zero on error
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
