package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"stormquest/internal/engine"
	"stormquest/internal/ui"
)

func newStatusCmd(a *app) *cobra.Command {
	var showAll bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show level, XP, streak and the projected finish",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			today := svc.Today()
			p := svc.Progress()
			cat := svc.Catalog()

			fmt.Fprintln(out, ui.Heading(ui.IconStorm, "Stormquest Status"))
			fmt.Fprintln(out, ui.LabelValue("Level", p.Level))
			toNext := p.XPForNextLevel - p.TotalXP
			if toNext < 0 || p.XPForNextLevel == p.XPForCurrentLevel {
				toNext = 0
			}
			fmt.Fprintln(out, ui.LabelValue("Total XP", fmt.Sprintf("%d %s %s", p.TotalXP, ui.ProgressBar(p.Percent, 20),
				ui.Muted.Render(fmt.Sprintf("(%d to next level)", toNext)))))
			fmt.Fprintln(out, ui.LabelValue("Assignments", fmt.Sprintf("%d/%d", p.CompletedCount, p.TotalCount)))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d day(s)", ui.IconFire, p.Streak)))

			finish := engine.DateKey(p.EstimatedFinish)
			line := finish
			if target := cat.Target(); !target.IsZero() {
				switch {
				case p.EstimatedFinish.After(target):
					line += " " + ui.Bad.Render("(after target "+engine.DateKey(target)+")")
				default:
					line += " " + ui.Good.Render("(on track for "+engine.DateKey(target)+")")
				}
			}
			fmt.Fprintln(out, ui.LabelValue("Estimated finish", line))
			if p.AllDone {
				fmt.Fprintln(out, ui.Gold.Render(ui.IconTrophy+" Every assignment is done!"))
			}

			if q, ok := engine.QuoteFor(cat, today); ok {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("%s \"%s\" (%s)", q.Icon, q.Text, q.Author)))
			}

			if un := svc.Tracker().Plan().Unscheduled(); len(un) > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.Warn.Render(fmt.Sprintf("%s %d assignment(s) could not be scheduled before %d: %v", ui.IconWarn, len(un), cat.HorizonYear+1, un)))
			}

			checker := engine.NewAchievementChecker(svc.Tracker(), today)
			achievements := checker.Achievements()
			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s Achievements (%d/%d)", ui.IconTrophy, checker.CountEarned(), len(achievements))))
			for _, ach := range achievements {
				if !ach.Earned && !showAll {
					continue
				}
				mark := ui.Dim.Render("·")
				if ach.Earned {
					mark = ach.Icon
				}
				fmt.Fprintf(out, "- %s %s %s\n", mark, ach.Name, ui.Muted.Render(ach.Description))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&showAll, "all", "a", false, "list locked achievements too")
	return cmd
}
