package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"stormquest/internal/ui"
)

func newHistoryCmd(a *app) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent completions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			evs, err := svc.History(ctx, n)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "History"))
			if len(evs) == 0 {
				fmt.Fprintln(out, ui.Dim.Render("(no completions yet)"))
				return nil
			}
			for _, ev := range evs {
				mark := ui.IconDone
				if !ev.Done {
					mark = ui.IconTodo
				}
				fmt.Fprintf(out, "%s %s %-10s %-12s %s %s\n", ui.Muted.Render(ev.At.Format("2006-01-02 15:04")), mark, ev.Kind, ev.ItemID,
					ui.Muted.Render("for "+ev.Day), ui.Dim.Render(fmt.Sprintf("+%d", ev.XP)))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "limit", "n", 20, "number of events")
	return cmd
}
