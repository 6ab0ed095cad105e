package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/murojaahbot/internal/api"
	"github.com/example/murojaahbot/internal/config"
	"github.com/example/murojaahbot/internal/excel"
)

func newExportCmd() *cobra.Command {
	var (
		from, to string
		email    string
		out      string
		maxDays  int
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export daily logs of a date range to .xlsx or .csv",
		Long: `export logs in to the murojaah backend and writes one row per session,
with a total row after every day. The password is read from MUROJAAH_PASSWORD.`,
		Example: "  MUROJAAH_PASSWORD=secret murojaahbot export --email a@b.c --from 2024-03-01 --to 2024-03-31",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			envFile, _ := cmd.Flags().GetString("env")
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}

			start, err := time.ParseInLocation(api.DateLayout, from, cfg.Location)
			if err != nil {
				return fmt.Errorf("invalid --from: %v", err)
			}
			end := start
			if to != "" {
				if end, err = time.ParseInLocation(api.DateLayout, to, cfg.Location); err != nil {
					return fmt.Errorf("invalid --to: %v", err)
				}
			}

			password := os.Getenv("MUROJAAH_PASSWORD")
			if password == "" {
				return fmt.Errorf("MUROJAAH_PASSWORD environment variable is not set")
			}

			ctx := cmd.Context()
			client := api.New(cfg.APIURL, cfg.APITimeout)
			login, err := client.Login(ctx, email, password)
			if err != nil {
				return fmt.Errorf("failed to log in: %w", err)
			}
			sess := api.Session{Token: login.Token, UserID: login.User.ID}

			logs, err := excel.FetchRange(ctx, client, sess, start, end, maxDays)
			if err != nil {
				return err
			}

			exportCfg := excel.DefaultExportConfig()
			if out != "" {
				exportCfg.FilePath = out
			}
			result, err := excel.Export(exportCfg, logs)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s: %d days, %d sessions, %d/%d pages\n",
				exportCfg.FilePath, result.Days, result.Sessions, result.Totals.CompletedSum, result.Totals.TargetSum)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "first date, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last date, YYYY-MM-DD (default --from)")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file, .xlsx or .csv")
	cmd.Flags().IntVar(&maxDays, "max-days", 31, "longest range accepted")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("email")
	return cmd
}
