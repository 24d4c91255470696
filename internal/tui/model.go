package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"stormquest/internal/engine"
	"stormquest/internal/ui"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service
	mu  *sync.Mutex // serializes tracker access from commands

	width  int
	height int

	day      time.Time
	sched    engine.DaySchedule
	rows     []engine.ScheduledItem
	log      engine.ActivityLog
	progress engine.Progress
	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	day      time.Time
	sched    engine.DaySchedule
	log      engine.ActivityLog
	progress engine.Progress
}

type toggledMsg struct {
	change      engine.Change
	title       string
	levelBefore int
	levelAfter  int
	err         error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		mu:      &sync.Mutex{},
		day:     svc.Today(),
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd(m.day)
}

func (m boardModel) loadCmd(day time.Time) tea.Cmd {
	return func() tea.Msg {
		m.mu.Lock()
		defer m.mu.Unlock()
		return loadedMsg{day: day, sched: m.svc.Schedule(day), log: m.svc.Tracker().ActivityLog(), progress: m.svc.Progress()}
	}
}

func (m boardModel) toggleCmd(id, title string) tea.Cmd {
	day := m.day
	return func() tea.Msg {
		m.mu.Lock()
		defer m.mu.Unlock()
		before := m.svc.Progress().Level
		ch, err := m.svc.ToggleItem(m.ctx, id, day)
		return toggledMsg{change: ch, title: title, levelBefore: before, levelAfter: m.svc.Progress().Level, err: err}
	}
}

func (m boardModel) easiestCmd() tea.Cmd {
	day := m.day
	return func() tea.Msg {
		m.mu.Lock()
		defer m.mu.Unlock()
		before := m.svc.Progress().Level
		a, ok, err := m.svc.CompleteEasiest(m.ctx, day)
		if !ok && err == nil {
			return toggledMsg{err: fmt.Errorf("nothing left to complete")}
		}
		d, _ := a.Status.Date()
		ch := engine.Change{Kind: engine.ChangeAssignment, ItemID: a.ID, Day: d, Done: true}
		return toggledMsg{change: ch, title: a.Name, levelBefore: before, levelAfter: m.svc.Progress().Level, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.day = msg.day
		m.sched = msg.sched
		m.rows = msg.sched.WithBonus()
		m.log = msg.log
		m.progress = msg.progress
		if m.selected >= len(m.rows) {
			m.selected = len(m.rows) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		return m, nil
	case toggledMsg:
		if msg.err != nil {
			m.lastLog = "Toggle failed: " + msg.err.Error()
			return m, m.loadCmd(m.day)
		}
		verb := "Reopened"
		if msg.change.Done {
			verb = "Completed"
		}
		m.lastLog = fmt.Sprintf("%s %s (%s).", verb, msg.title, msg.change.Day)
		if msg.levelAfter > msg.levelBefore {
			m.lastLog += fmt.Sprintf(" %s level %d → %d", ui.BadgeLevelUp, msg.levelBefore, msg.levelAfter)
		}
		return m, m.loadCmd(m.day)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd(m.day)
		case "left", "h":
			m.selected = 0
			return m, m.loadCmd(m.day.AddDate(0, 0, -1))
		case "right", "l":
			m.selected = 0
			return m, m.loadCmd(m.day.AddDate(0, 0, 1))
		case "t":
			m.selected = 0
			return m, m.loadCmd(m.svc.Today())
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.rows)-1 {
				m.selected++
			}
			return m, nil
		case "c", " ", "enter":
			if m.selected < 0 || m.selected >= len(m.rows) {
				return m, nil
			}
			row := m.rows[m.selected]
			m.lastLog = fmt.Sprintf("Toggling %s…", row.Title())
			return m, m.toggleCmd(row.ID(), row.Title())
		case "e":
			m.lastLog = "Completing the easiest assignment…"
			return m, m.easiestCmd()
		}
	}
	return m, nil
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}
	return m.renderHeader() + "\n\n" + m.renderMain() + "\n" + m.renderFooter()
}

func (m boardModel) renderHeader() string {
	p := m.progress
	title := ui.Heading(ui.IconStorm, "Stormquest")
	stats := fmt.Sprintf("Level %d | XP %d %s | %s %d-day streak | %d/%d done",
		p.Level, p.TotalXP, ui.ProgressBar(p.Percent, 20), ui.IconFire, p.Streak, p.CompletedCount, p.TotalCount)
	return title + "  " + stats
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	var out []string
	out = append(out, ui.H2.Render(fmt.Sprintf("%s %s %s", ui.IconCal, m.day.Format("Mon"), m.sched.Date)))
	done, total := m.sched.DayTally()
	msg := engine.Motivation(done, total)
	out = append(out, ui.Muted.Render(msg.Emoji+" "+msg.Text))
	out = append(out, "")

	if len(m.rows) == 0 {
		out = append(out, ui.Dim.Render("(nothing scheduled)"))
	}
	for i, it := range m.rows {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		out = append(out, cursor+m.renderRow(it))
	}

	if n := len(m.sched.BonusItems); n > 0 && !m.sched.BonusUnlocked {
		out = append(out, "")
		out = append(out, ui.Dim.Render(fmt.Sprintf("%s %d bonus item(s) unlock when the day is done", ui.IconLock, n)))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderRow(it engine.ScheduledItem) string {
	if it.Activity != nil {
		a := it.Activity
		done := m.log.Has(m.sched.Date, a.ID)
		title := a.Title
		if done {
			title = ui.Done.Render(title)
		}
		return fmt.Sprintf("%s %-8s %s %s %s", ui.Check(done), a.Time, ui.ActivityIcon(a.Icon), title, ui.Dim.Render(fmt.Sprintf("+%d", a.XP)))
	}
	a := it.Assignment
	title := a.Name
	if a.Done() {
		title = ui.Done.Render(title)
	}
	line := fmt.Sprintf("%s %-8s %s %s %s", ui.Check(a.Done()), a.Subject, ui.Weather(engine.WeatherFor(a.XP)), title, ui.Dim.Render(fmt.Sprintf("+%d", a.XP)))
	if m.sched.IsBonus(a.ID) {
		line += " " + ui.BadgeBonus
	}
	return line
}

func (m boardModel) renderFooter() string {
	keys := ui.Dim.Render("←/→ day · t today · ↑/↓ move · space toggle · e easiest · r refresh · q quit")
	return "\n" + keys + "\n" + m.lastLog
}
