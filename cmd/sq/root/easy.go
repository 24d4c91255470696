package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"stormquest/internal/ui"
)

func newEasyCmd(a *app) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "easy",
		Short: "Complete the easiest remaining assignment today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()
			out := cmd.OutOrStdout()
			tr := svc.Tracker()

			if dryRun {
				fmt.Fprintln(out, ui.Heading(ui.IconBolt, "Quick picks"))
				if e, ok := tr.Easiest(); ok {
					fmt.Fprint(out, ui.Key.Render("Easiest: "))
					printAssignment(out, e, false)
				}
				if h, ok := tr.Hardest(); ok {
					fmt.Fprint(out, ui.Key.Render("Hardest: "))
					printAssignment(out, h, false)
				}
				up := tr.Upcoming(4)
				if len(up) > 0 {
					fmt.Fprintln(out, ui.H2.Render("Up next"))
					for _, u := range up {
						printAssignment(out, u, false)
					}
				}
				return nil
			}

			before := svc.Progress()
			done, ok, err := svc.CompleteEasiest(ctx, svc.Today())
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, ui.Gold.Render(ui.IconTrophy+" Nothing left. Every assignment is done!"))
				return nil
			}
			after := svc.Progress()
			fmt.Fprintf(out, "%s %s %s %s\n", ui.IconDone, ui.Good.Render("Completed"), done.Name, ui.Dim.Render(fmt.Sprintf("+%d XP", done.XP)))
			if after.Level > before.Level {
				fmt.Fprintf(out, "%s %s level %d → %d\n", ui.IconSparkle, ui.BadgeLevelUp, before.Level, after.Level)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&dryRun, "list", "l", false, "show easiest, hardest and upcoming without completing anything")
	return cmd
}
