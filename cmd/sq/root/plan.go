package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"stormquest/internal/engine"
	"stormquest/internal/ui"
)

func newPlanCmd(a *app) *cobra.Command {
	var from, to string
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the master allocation of assignments to days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var fromKey, toKey string
			if from != "" {
				d, err := engine.ResolveDate(from, svc.Today())
				if err != nil {
					return err
				}
				fromKey = engine.DateKey(d)
			}
			if to != "" {
				d, err := engine.ResolveDate(to, svc.Today())
				if err != nil {
					return err
				}
				toKey = engine.DateKey(d)
			}

			out := cmd.OutOrStdout()
			tr := svc.Tracker()
			plan := tr.Plan()
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Master plan"))
			for _, key := range plan.Dates() {
				if (fromKey != "" && key < fromKey) || (toKey != "" && key > toKey) {
					continue
				}
				d, _ := plan.Day(key)
				day, _ := engine.ParseDate(key)
				fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s %s", day.Format("Mon"), key)))
				for _, id := range d.Primary {
					if as, ok := tr.Assignment(id); ok {
						fmt.Fprint(out, "  ")
						printAssignment(out, as, false)
					}
				}
				for _, id := range d.Bonus {
					if as, ok := tr.Assignment(id); ok {
						fmt.Fprint(out, "  ")
						printAssignment(out, as, true)
					}
				}
			}
			if un := plan.Unscheduled(); len(un) > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.Warn.Render(fmt.Sprintf("%s Unscheduled: %v", ui.IconWarn, un)))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first day to show")
	cmd.Flags().StringVar(&to, "to", "", "last day to show")
	return cmd
}
