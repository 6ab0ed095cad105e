package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/murojaahbot/internal/progress"
)

func newCalcCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "calc <start> <end> [completed]",
		Short: "Compute page totals and status of a session",
		Long: `Positions are written juz:page, for example 1:15 or 30/20.
Leave out completed for a session that has not started.`,
		Example: "  murojaahbot calc 1:15 2:5 1:20",
		Args:    cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			positions := make([]progress.Position, len(args))
			for i, arg := range args {
				p, err := progress.ParsePosition(arg)
				if err != nil {
					return err
				}
				positions[i] = p
			}

			target := progress.Range{Start: positions[0], End: positions[1]}
			completed := progress.None
			if len(positions) == 3 {
				completed = positions[2]
			}

			if err := validateSession(target, completed); err != nil {
				return err
			}
			result := progress.Evaluate(target, completed)

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			fmt.Fprintf(out, "Target:   %s (%d halaman)\n", target, result.TargetPages)
			fmt.Fprintf(out, "Selesai:  %s (%d halaman)\n", completed, result.CompletedPages)
			fmt.Fprintf(out, "Status:   %s\n", result.Status)
			fmt.Fprintf(out, "Progres:  %s %.1f%%\n", progress.Bar(result.Percent), result.Percent)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func validateSession(target progress.Range, completed progress.Position) error {
	err := progress.ValidateRange(target)
	if err == nil {
		err = progress.ValidateCompleted(target, completed)
	}

	var verr *progress.ValidationError
	if errors.As(err, &verr) {
		return fmt.Errorf("%s (%s)", verr.Message(), verr.Kind.String())
	}
	return err
}
