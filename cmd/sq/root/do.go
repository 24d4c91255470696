package root

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"stormquest/internal/engine"
	"stormquest/internal/ui"
)

func newDoCmd(a *app) *cobra.Command {
	var on string
	cmd := &cobra.Command{
		Use:   "do <assignment-id>",
		Short: "Toggle an assignment's completion",
		Args:  requireID("assignment"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.toggle(cmd, args[0], on, func(ctx context.Context, svc *engine.Service, id string, day time.Time) (engine.Change, string, error) {
				ch, err := svc.ToggleAssignment(ctx, id, day)
				title := id
				if as, ok := svc.Tracker().Assignment(id); ok {
					title = as.Name
				}
				return ch, title, err
			})
		},
	}
	cmd.Flags().StringVar(&on, "on", "", "completion day (default: today)")
	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	var on string
	cmd := &cobra.Command{
		Use:   "check <activity-id>",
		Short: "Toggle a recurring activity for a day",
		Args:  requireID("activity"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.toggle(cmd, args[0], on, func(ctx context.Context, svc *engine.Service, id string, day time.Time) (engine.Change, string, error) {
				ch, err := svc.ToggleActivity(ctx, id, day)
				title := id
				if act, ok := svc.Tracker().Activity(id); ok {
					title = act.Title
				}
				return ch, title, err
			})
		},
	}
	cmd.Flags().StringVar(&on, "on", "", "day to log (default: today)")
	return cmd
}

func requireID(kind string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
			return fmt.Errorf("%s id is required", kind)
		}
		return nil
	}
}

type toggleFunc func(ctx context.Context, svc *engine.Service, id string, day time.Time) (engine.Change, string, error)

func (a *app) toggle(cmd *cobra.Command, id, on string, fn toggleFunc) error {
	ctx := context.Background()
	svc, cleanup, err := a.openService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	day, err := engine.ResolveDate(on, svc.Today())
	if err != nil {
		return err
	}
	before := svc.Progress()
	ch, title, err := fn(ctx, svc, strings.TrimSpace(id), day)
	if err != nil {
		if errors.Is(err, engine.ErrUnknownItem) {
			return fmt.Errorf("%s: no such item (see `sq day` for ids)", id)
		}
		return err
	}
	after := svc.Progress()

	out := cmd.OutOrStdout()
	if ch.Done {
		fmt.Fprintf(out, "%s %s %s\n", ui.IconDone, ui.Good.Render("Completed"), title)
	} else {
		fmt.Fprintf(out, "%s %s %s\n", ui.IconTodo, ui.Warn.Render("Reopened"), title)
	}
	fmt.Fprintln(out, ui.LabelValue("Day", ch.Day))
	fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%d → %d", before.TotalXP, after.TotalXP)))
	if after.Level > before.Level {
		fmt.Fprintf(out, "%s %s level %d → %d\n", ui.IconSparkle, ui.BadgeLevelUp, before.Level, after.Level)
	}
	if ch.Done {
		if s := svc.Schedule(day); s.BonusUnlocked && len(s.BonusItems) > 0 {
			fmt.Fprintln(out, ui.Gold.Render(ui.IconGift+" Bonus round unlocked for "+s.Date))
		}
	}
	if after.AllDone && !before.AllDone {
		fmt.Fprintln(out, ui.Gold.Render(ui.IconTrophy+" Every assignment is done!"))
	}
	return nil
}
