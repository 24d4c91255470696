package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"stormquest/internal/logger"
)

const dateLayout = "2006-01-02"

//go:embed catalog.yaml
var embeddedCatalog []byte

var (
	embeddedOnce sync.Once
	embeddedCat  *Catalog
	embeddedErr  error
)

// Catalog is the static, build-time definition of the backlog and the rules
// used to schedule it. Call Validate before use; Parse and Load do this.
type Catalog struct {
	StartDate       string       `yaml:"start_date"`
	TargetFinish    string       `yaml:"target_finish"`
	HorizonYear     int          `yaml:"horizon_year"`
	DefaultSlot     string       `yaml:"default_slot"`
	LevelThresholds []int        `yaml:"level_thresholds"`
	Rules           Rules        `yaml:"rules"`
	Assignments     []Assignment `yaml:"assignments"`
	Activities      []Activity   `yaml:"activities"`
	Quotes          []Quote      `yaml:"quotes"`

	start       time.Time
	target      time.Time
	defaultMins int
	weekOne     [7][]string
	frontDay    time.Weekday
	heavy       map[string]bool
	subjects    []string
}

type Rules struct {
	WeekOne           map[string][]string `yaml:"week_one"`
	WeekPriorities    map[int][]string    `yaml:"week_priorities"`
	DefaultPriorities []string            `yaml:"default_priorities"`
	Front             FrontRule           `yaml:"front"`
	HeavyActivities   []string            `yaml:"heavy_activities"`
	Capacity          Capacity            `yaml:"capacity"`
}

// FrontRule forces Subject to the head of the priority order on Weekday.
type FrontRule struct {
	Weekday string `yaml:"weekday"`
	Subject string `yaml:"subject"`
}

type Capacity struct {
	Saturday int `yaml:"saturday"`
	Heavy    int `yaml:"heavy"`
	Normal   int `yaml:"normal"`
	Bonus    int `yaml:"bonus"`
}

// Assignment is a seed backlog entry. Completion state lives in the engine.
type Assignment struct {
	ID      string `yaml:"id"`
	Subject string `yaml:"subject"`
	Name    string `yaml:"name"`
	XP      int    `yaml:"xp"`
}

// Activity is a recurring activity template. Days uses 0=Sunday..6=Saturday.
type Activity struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Time  string `yaml:"time"`
	Icon  string `yaml:"icon"`
	Days  []int  `yaml:"days"`
	XP    int    `yaml:"xp"`

	minutes int
}

type Quote struct {
	Text   string `yaml:"text"`
	Author string `yaml:"author"`
	Icon   string `yaml:"icon"`
}

// OnWeekday reports whether the activity recurs on wd.
func (a Activity) OnWeekday(wd time.Weekday) bool {
	for _, d := range a.Days {
		if d == int(wd) {
			return true
		}
	}
	return false
}

// Minutes is the activity's time of day in minutes after midnight.
func (a Activity) Minutes() int {
	return a.minutes
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Embedded returns the catalog compiled into the binary. The result is parsed
// once per process and shared.
func Embedded() (*Catalog, error) {
	embeddedOnce.Do(func() {
		embeddedCat, embeddedErr = Parse(embeddedCatalog)
	})
	return embeddedCat, embeddedErr
}

// Load reads the catalog at path, falling back to the embedded catalog when
// path is empty or the override cannot be used.
func Load(path string, log *logger.Logger) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Embedded()
	}
	data, err := os.ReadFile(path)
	if err == nil {
		var c *Catalog
		c, err = Parse(data)
		if err == nil {
			return c, nil
		}
	}
	if log != nil {
		log.Warn("catalog override unusable; using embedded catalog", "path", path, "error", err)
	}
	return Embedded()
}

// Validate checks the catalog and derives the parsed fields used by the engine.
func (c *Catalog) Validate() error {
	start, err := time.ParseInLocation(dateLayout, strings.TrimSpace(c.StartDate), time.Local)
	if err != nil {
		return fmt.Errorf("catalog start_date: %w", err)
	}
	c.start = start
	c.target = time.Time{}
	if strings.TrimSpace(c.TargetFinish) != "" {
		target, err := time.ParseInLocation(dateLayout, strings.TrimSpace(c.TargetFinish), time.Local)
		if err != nil {
			return fmt.Errorf("catalog target_finish: %w", err)
		}
		c.target = target
	}
	if c.HorizonYear < start.Year() {
		return fmt.Errorf("catalog horizon_year %d is before start year %d", c.HorizonYear, start.Year())
	}

	if c.DefaultSlot == "" {
		c.DefaultSlot = "09:00 am"
	}
	mins, err := ParseClock(c.DefaultSlot)
	if err != nil {
		return fmt.Errorf("catalog default_slot: %w", err)
	}
	c.defaultMins = mins

	if len(c.LevelThresholds) == 0 {
		return errors.New("catalog level_thresholds is empty")
	}
	if !sort.IntsAreSorted(c.LevelThresholds) {
		return errors.New("catalog level_thresholds must be ascending")
	}

	if err := c.validateRules(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Assignments))
	c.subjects = c.subjects[:0]
	subjectSeen := map[string]bool{}
	for i, a := range c.Assignments {
		if a.ID == "" {
			return fmt.Errorf("catalog assignment #%d has no id", i)
		}
		if seen[a.ID] {
			return fmt.Errorf("catalog assignment %q is duplicated", a.ID)
		}
		seen[a.ID] = true
		if a.Subject == "" {
			return fmt.Errorf("catalog assignment %q has no subject", a.ID)
		}
		if a.XP <= 0 {
			return fmt.Errorf("catalog assignment %q has non-positive xp %d", a.ID, a.XP)
		}
		if !subjectSeen[a.Subject] {
			subjectSeen[a.Subject] = true
			c.subjects = append(c.subjects, a.Subject)
		}
	}

	actSeen := make(map[string]bool, len(c.Activities))
	for i := range c.Activities {
		a := &c.Activities[i]
		if a.ID == "" {
			return fmt.Errorf("catalog activity #%d has no id", i)
		}
		if actSeen[a.ID] {
			return fmt.Errorf("catalog activity %q is duplicated", a.ID)
		}
		actSeen[a.ID] = true
		for _, d := range a.Days {
			if d < 0 || d > 6 {
				return fmt.Errorf("catalog activity %q has invalid weekday %d", a.ID, d)
			}
		}
		m, err := ParseClock(a.Time)
		if err != nil {
			return fmt.Errorf("catalog activity %q: %w", a.ID, err)
		}
		a.minutes = m
	}
	return nil
}

func (c *Catalog) validateRules() error {
	r := c.Rules
	c.weekOne = [7][]string{}
	for name, subjects := range r.WeekOne {
		wd, err := ParseWeekday(name)
		if err != nil {
			return fmt.Errorf("catalog week_one: %w", err)
		}
		c.weekOne[wd] = append([]string(nil), subjects...)
	}
	for week := range r.WeekPriorities {
		if week < 2 {
			return fmt.Errorf("catalog week_priorities: week %d must be >= 2", week)
		}
	}
	c.frontDay = -1
	if r.Front.Weekday != "" {
		wd, err := ParseWeekday(r.Front.Weekday)
		if err != nil {
			return fmt.Errorf("catalog front: %w", err)
		}
		if r.Front.Subject == "" {
			return errors.New("catalog front: subject is required")
		}
		c.frontDay = wd
	}
	if r.Capacity.Saturday <= 0 || r.Capacity.Heavy <= 0 || r.Capacity.Normal <= 0 {
		return fmt.Errorf("catalog capacity must be positive: %+v", r.Capacity)
	}
	if r.Capacity.Bonus < 0 {
		return fmt.Errorf("catalog capacity bonus must not be negative: %d", r.Capacity.Bonus)
	}
	c.heavy = make(map[string]bool, len(r.HeavyActivities))
	for _, t := range r.HeavyActivities {
		c.heavy[t] = true
	}
	return nil
}

// Start is the first schedulable day, at local midnight.
func (c *Catalog) Start() time.Time { return c.start }

// Target is the optional goal finish day; zero when unset.
func (c *Catalog) Target() time.Time { return c.target }

// DefaultSlotMinutes is the sort slot for items without a time of day.
func (c *Catalog) DefaultSlotMinutes() int { return c.defaultMins }

// Subjects lists subjects in order of first appearance in the backlog.
func (c *Catalog) Subjects() []string {
	return append([]string(nil), c.subjects...)
}

// WeekOneSubjects returns the fixed week-1 pull list for wd.
func (c *Catalog) WeekOneSubjects(wd time.Weekday) []string {
	return c.weekOne[wd]
}

// PrioritiesFor returns the subject priority order for a week (>= 2) and
// weekday, with the front rule applied.
func (c *Catalog) PrioritiesFor(week int, wd time.Weekday) []string {
	base, ok := c.Rules.WeekPriorities[week]
	if !ok {
		base = c.Rules.DefaultPriorities
	}
	if wd != c.frontDay {
		return append([]string(nil), base...)
	}
	front := c.Rules.Front.Subject
	out := make([]string, 0, len(base)+1)
	out = append(out, front)
	for _, s := range base {
		if s != front {
			out = append(out, s)
		}
	}
	return out
}

// IsHeavy reports whether an activity title reduces a day's capacity.
func (c *Catalog) IsHeavy(title string) bool { return c.heavy[title] }

// ParseWeekday accepts full or three-letter English weekday names.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := strings.ToLower(wd.String())
		if s == name || s == name[:3] {
			return wd, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday: %q", s)
}

// ParseClock parses "8:30 am" or "20:30" into minutes after midnight.
func ParseClock(s string) (int, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, layout := range []string{"3:04 pm", "3:04pm", "15:04"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Hour()*60 + t.Minute(), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day: %q", s)
}
