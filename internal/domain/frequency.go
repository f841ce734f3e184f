package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// how often a task recurs
type Frequency uint8

const (
	FrequencyDaily Frequency = iota + 1
	FrequencyEvery2Days
	FrequencyWeekly
	FrequencyBiWeekly
	FrequencyMonthly
)

// all frequencies in display order
var Frequencies = []Frequency{
	FrequencyDaily,
	FrequencyEvery2Days,
	FrequencyWeekly,
	FrequencyBiWeekly,
	FrequencyMonthly,
}

var frequencyCodes = map[Frequency]string{
	FrequencyDaily:      "daily",
	FrequencyEvery2Days: "every_2_days",
	FrequencyWeekly:     "weekly",
	FrequencyBiWeekly:   "biweekly",
	FrequencyMonthly:    "monthly",
}

// labels used by the first version of the app, still accepted on input
var legacyFrequencyLabels = map[string]Frequency{
	"codziennie":    FrequencyDaily,
	"co 2 dni":      FrequencyEvery2Days,
	"co tydzień":    FrequencyWeekly,
	"co 2 tygodnie": FrequencyBiWeekly,
	"co miesiąc":    FrequencyMonthly,
}

func (f Frequency) String() string {
	if code, ok := frequencyCodes[f]; ok {
		return code
	}
	return fmt.Sprintf("Frequency(%d)", uint8(f))
}

// human readable label
func (f Frequency) Label() string {
	switch f {
	case FrequencyDaily:
		return "Daily"
	case FrequencyEvery2Days:
		return "Every 2 days"
	case FrequencyWeekly:
		return "Weekly"
	case FrequencyBiWeekly:
		return "Every 2 weeks"
	case FrequencyMonthly:
		return "Monthly"
	default:
		return f.String()
	}
}

func (f Frequency) IsValid() bool {
	_, ok := frequencyCodes[f]
	return ok
}

// ParseFrequency accepts a frequency code ("weekly") or a legacy label ("Co tydzień").
func ParseFrequency(s string) (Frequency, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for f, code := range frequencyCodes {
		if key == code {
			return f, nil
		}
	}
	if f, ok := legacyFrequencyLabels[key]; ok {
		return f, nil
	}
	return 0, fmt.Errorf("invalid frequency: %q (must be daily, every_2_days, weekly, biweekly, or monthly)", s)
}

func (f Frequency) MarshalText() ([]byte, error) {
	if !f.IsValid() {
		return nil, fmt.Errorf("invalid frequency: %d", uint8(f))
	}
	return []byte(f.String()), nil
}

func (f *Frequency) UnmarshalText(text []byte) error {
	parsed, err := ParseFrequency(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Value stores the frequency code.
func (f Frequency) Value() (driver.Value, error) {
	if !f.IsValid() {
		return nil, fmt.Errorf("invalid frequency: %d", uint8(f))
	}
	return f.String(), nil
}

// Scan reads a frequency code column.
func (f *Frequency) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return f.UnmarshalText([]byte(v))
	case []byte:
		return f.UnmarshalText(v)
	default:
		return fmt.Errorf("cannot scan %T into Frequency", src)
	}
}

// NextDue advances from by the frequency's calendar offset. Monthly keeps the
// day of month, clamped to the last day of the following month.
func NextDue(f Frequency, from time.Time) time.Time {
	switch f {
	case FrequencyDaily:
		return from.AddDate(0, 0, 1)
	case FrequencyEvery2Days:
		return from.AddDate(0, 0, 2)
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7)
	case FrequencyBiWeekly:
		return from.AddDate(0, 0, 14)
	case FrequencyMonthly:
		return addMonthClamped(from)
	default:
		panic(fmt.Sprintf("domain: unhandled frequency %d", uint8(f)))
	}
}

func addMonthClamped(t time.Time) time.Time {
	year, month, day := t.Date()

	// day 1 never overflows, so this is always the following month
	target := time.Date(year, month+1, 1, 0, 0, 0, 0, t.Location())
	if last := daysInMonth(target.Year(), target.Month(), t.Location()); day > last {
		day = last
	}

	return time.Date(target.Year(), target.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysInMonth(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
