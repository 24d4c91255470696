package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stormquest/internal/catalog"
	"stormquest/internal/logger"
	"stormquest/internal/storage"
)

// Service binds a Tracker to a Store: it loads state with fallback and
// persists the changed record after every toggle.
type Service struct {
	store   storage.Store
	tracker *Tracker
	log     *logger.Logger
	now     func() time.Time
}

type Option func(*Service)

// WithClock overrides the wall clock used for "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(log *logger.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// Open loads persisted state for cat from store. Missing or unusable records
// are logged and replaced by the seed backlog and an empty activity log; they
// never fail the call.
func Open(ctx context.Context, cat *catalog.Catalog, store storage.Store, opts ...Option) *Service {
	s := &Service{store: store, log: logger.Nop(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	s.tracker = NewTracker(cat, s.loadAssignments(ctx, cat), s.loadActivityLog(ctx))
	return s
}

func (s *Service) Tracker() *Tracker { return s.tracker }

func (s *Service) Catalog() *catalog.Catalog { return s.tracker.cat }

// Today is the effective today: the local day, clamped to the catalog start.
func (s *Service) Today() time.Time {
	return EffectiveToday(s.now(), s.tracker.cat.Start())
}

func (s *Service) Schedule(day time.Time) DaySchedule { return s.tracker.ScheduleFor(day) }

func (s *Service) Progress() Progress { return s.tracker.Progress(s.Today()) }

// ToggleAssignment flips an assignment on day and persists the backlog.
func (s *Service) ToggleAssignment(ctx context.Context, id string, day time.Time) (Change, error) {
	ch, err := s.tracker.ToggleAssignment(id, day)
	if err != nil {
		return Change{}, err
	}
	return ch, s.persist(ctx, ch)
}

// ToggleActivity flips an activity occurrence on day and persists the log.
func (s *Service) ToggleActivity(ctx context.Context, id string, day time.Time) (Change, error) {
	ch, err := s.tracker.ToggleActivity(id, day)
	if err != nil {
		return Change{}, err
	}
	return ch, s.persist(ctx, ch)
}

// ToggleItem flips whichever kind of item id names.
func (s *Service) ToggleItem(ctx context.Context, id string, day time.Time) (Change, error) {
	ch, err := s.tracker.Toggle(id, day)
	if err != nil {
		return Change{}, err
	}
	return ch, s.persist(ctx, ch)
}

// CompleteEasiest completes the lowest-XP incomplete assignment on day.
// ok is false when nothing is left.
func (s *Service) CompleteEasiest(ctx context.Context, day time.Time) (a Assignment, ok bool, err error) {
	a, ok = s.tracker.Easiest()
	if !ok {
		return Assignment{}, false, nil
	}
	if _, err := s.ToggleAssignment(ctx, a.ID, day); err != nil {
		return a, true, err
	}
	a, _ = s.tracker.Assignment(a.ID)
	return a, true, nil
}

// History returns the n most recent completion events.
func (s *Service) History(ctx context.Context, n int) ([]storage.Event, error) {
	evs, err := s.store.RecentEvents(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return evs, nil
}

func (s *Service) persist(ctx context.Context, ch Change) error {
	var err error
	xp := 0
	switch ch.Kind {
	case ChangeAssignment:
		err = s.store.SaveAssignments(ctx, assignmentRecords(s.tracker.assignments))
		if a, ok := s.tracker.Assignment(ch.ItemID); ok {
			xp = a.XP
		}
	case ChangeActivity:
		err = s.store.SaveActivityLog(ctx, storage.ActivityRecord(s.tracker.ActivityLog()))
		if a, ok := s.tracker.Activity(ch.ItemID); ok {
			xp = a.XP
		}
	}
	if err != nil {
		return fmt.Errorf("save %s %s: %w", ch.Kind, ch.ItemID, err)
	}

	ev := storage.Event{At: s.now(), Kind: string(ch.Kind), ItemID: ch.ItemID, Day: ch.Day, Done: ch.Done, XP: xp}
	if err := s.store.AppendEvent(ctx, ev); err != nil {
		// History is advisory; the record itself is saved.
		s.log.Warn("append completion event failed", "item", ch.ItemID, "error", err)
	}
	s.log.Debug("toggled", "kind", ch.Kind, "item", ch.ItemID, "day", ch.Day, "done", ch.Done)
	return nil
}

func (s *Service) loadAssignments(ctx context.Context, cat *catalog.Catalog) []Assignment {
	records, err := s.store.LoadAssignments(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.log.Info("no saved assignments; using seed backlog")
		return SeedAssignments(cat)
	case err != nil:
		s.log.Warn("saved assignments unusable; using seed backlog", "error", err)
		return SeedAssignments(cat)
	}

	out := make([]Assignment, 0, len(records))
	for _, r := range records {
		a := Assignment{ID: r.ID, Subject: r.Subject, Name: r.Name, XP: r.XP}
		if r.CompletionDate != nil {
			day, err := ParseDate(*r.CompletionDate)
			if err != nil {
				s.log.Warn("ignoring bad completion date", "id", r.ID, "date", *r.CompletionDate)
			} else {
				a.Status = CompletedOn(day)
			}
		}
		out = append(out, a)
	}
	return out
}

func (s *Service) loadActivityLog(ctx context.Context) ActivityLog {
	rec, err := s.store.LoadActivityLog(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.log.Info("no saved activity log; starting empty")
		return ActivityLog{}
	case err != nil:
		s.log.Warn("saved activity log unusable; starting empty", "error", err)
		return ActivityLog{}
	}
	return ActivityLog(rec)
}

func assignmentRecords(items []Assignment) []storage.AssignmentRecord {
	out := make([]storage.AssignmentRecord, 0, len(items))
	for _, a := range items {
		r := storage.AssignmentRecord{ID: a.ID, Subject: a.Subject, Name: a.Name, XP: a.XP}
		if d, ok := a.Status.Date(); ok {
			r.CompletionDate = &d
		}
		out = append(out, r)
	}
	return out
}
