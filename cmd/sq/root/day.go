package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"stormquest/internal/engine"
	"stormquest/internal/ui"
)

func newDayCmd(a *app) *cobra.Command {
	var showBonus bool
	cmd := &cobra.Command{
		Use:   "day [YYYY-MM-DD|today|tomorrow|yesterday|+N|-- -N]",
		Short: "Show the schedule for a day (default: today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := a.openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			arg := ""
			if len(args) == 1 {
				arg = args[0]
			}
			day, err := engine.ResolveDate(arg, svc.Today())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			s := svc.Schedule(day)
			log := svc.Tracker().ActivityLog()

			fmt.Fprintln(out, ui.Heading(ui.IconCal, fmt.Sprintf("%s %s", day.Format("Monday"), s.Date)))
			done, total := s.DayTally()
			msg := engine.Motivation(done, total)
			fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("%s %s (%d/%d assignments)", msg.Emoji, msg.Text, done, total)))
			fmt.Fprintln(out, "")

			items := s.WithBonus()
			if len(items) == 0 {
				fmt.Fprintln(out, ui.Dim.Render("Nothing scheduled."))
			}
			for _, it := range items {
				printItem(out, it, log, s.Date, it.Assignment != nil && s.IsBonus(it.ID()))
			}

			if len(s.BonusItems) > 0 && !s.BonusUnlocked {
				fmt.Fprintln(out, "")
				if showBonus {
					fmt.Fprintln(out, ui.H2.Render(ui.IconLock+" Bonus round (locked)"))
					for _, b := range s.BonusItems {
						printAssignment(out, b, true)
					}
				} else {
					fmt.Fprintln(out, ui.Dim.Render(fmt.Sprintf("%s %d bonus item(s) unlock when the day is done (--bonus to preview)", ui.IconLock, len(s.BonusItems))))
				}
			} else if s.BonusUnlocked && len(s.BonusItems) > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.Gold.Render(ui.IconGift+" Bonus round unlocked!"))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showBonus, "bonus", false, "preview locked bonus items")
	return cmd
}
