package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"stormquest/internal/ui"
)

func newSubjectsCmd(a *app) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "subjects",
		Short: "Per-subject progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconBook, "Subjects"))
			for _, s := range svc.Tracker().Subjects() {
				pct := 0.0
				if s.Total > 0 {
					pct = float64(s.Done) / float64(s.Total) * 100
				}
				fmt.Fprintf(out, "%-12s %s %d/%d %s\n", ui.Key.Render(s.Subject), ui.ProgressBar(pct, 16), s.Done, s.Total,
					ui.Muted.Render(fmt.Sprintf("(%d/%d XP)", s.XPDone, s.XPTotal)))
				if verbose {
					for _, item := range s.Items {
						fmt.Fprint(out, "    ")
						printAssignment(out, item, false)
					}
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "list every assignment")
	return cmd
}
