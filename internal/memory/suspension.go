package memory

import (
	"fmt"
	"time"
)

// Unit is the calendar unit of a suspension.
type Unit int

const (
	UnitMinute Unit = iota + 1
	UnitHour
	UnitDay
	UnitMonth
	UnitYear
)

var unitNames = [...]string{
	UnitMinute: "minute",
	UnitHour:   "hour",
	UnitDay:    "day",
	UnitMonth:  "month",
	UnitYear:   "year",
}

func (u Unit) String() string {
	if u >= UnitMinute && u <= UnitYear {
		return unitNames[u]
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// Suspension is how long a term stays out of review after reaching a level.
type Suspension struct {
	Unit      Unit
	Magnitude int
}

var suspensionTable = [...]Suspension{
	Level1: {Unit: UnitMinute, Magnitude: 20},
	Level2: {Unit: UnitHour, Magnitude: 1},
	Level3: {Unit: UnitDay, Magnitude: 1},
	Level4: {Unit: UnitDay, Magnitude: 7},
	Level5: {Unit: UnitMonth, Magnitude: 1},
	Level6: {Unit: UnitYear, Magnitude: 1},
}

func (s Suspension) String() string {
	if s.Magnitude == 1 {
		return fmt.Sprintf("1 %s", s.Unit)
	}
	return fmt.Sprintf("%d %ss", s.Magnitude, s.Unit)
}

// From returns t advanced by the suspension.
// Months and years are calendar additions that stay inside the target month,
// so Jan 31 plus one month is the last day of February.
func (s Suspension) From(t time.Time) time.Time {
	switch s.Unit {
	case UnitMinute:
		return t.Add(time.Duration(s.Magnitude) * time.Minute)
	case UnitHour:
		return t.Add(time.Duration(s.Magnitude) * time.Hour)
	case UnitDay:
		return t.AddDate(0, 0, s.Magnitude)
	case UnitMonth:
		return addMonths(t, s.Magnitude)
	case UnitYear:
		return addMonths(t, 12*s.Magnitude)
	}
	panic(fmt.Sprintf("memory: unknown unit %s", s.Unit))
}

func addMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	// day 0 of the following month is the last day of the target month
	lastDay := time.Date(year, month+time.Month(months)+1, 0, 0, 0, 0, 0, t.Location()).Day()
	if day > lastDay {
		day = lastDay
	}
	hour, minute, sec := t.Clock()
	return time.Date(year, month+time.Month(months), day, hour, minute, sec, t.Nanosecond(), t.Location())
}
