package root

import (
	"fmt"
	"io"

	"stormquest/internal/engine"
	"stormquest/internal/ui"
)

func printItem(w io.Writer, it engine.ScheduledItem, log engine.ActivityLog, day string, bonus bool) {
	if it.Activity != nil {
		a := it.Activity
		done := log.Has(day, a.ID)
		title := a.Title
		if done {
			title = ui.Done.Render(title)
		}
		fmt.Fprintf(w, "%s %-8s %s %s %s %s\n", ui.Check(done), a.Time, ui.ActivityIcon(a.Icon), title,
			ui.Dim.Render(fmt.Sprintf("+%d", a.XP)), ui.Muted.Render("["+a.ID+"]"))
		return
	}
	printAssignment(w, *it.Assignment, bonus)
}

func printAssignment(w io.Writer, a engine.Assignment, bonus bool) {
	title := a.Name
	if a.Done() {
		title = ui.Done.Render(title)
	}
	line := fmt.Sprintf("%s %-10s %s %s %s %s", ui.Check(a.Done()), a.Subject, ui.Weather(engine.WeatherFor(a.XP)), title,
		ui.Dim.Render(fmt.Sprintf("+%d", a.XP)), ui.Muted.Render("["+a.ID+"]"))
	if bonus {
		line += " " + ui.BadgeBonus
	}
	fmt.Fprintln(w, line)
}
