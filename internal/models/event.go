package models

import (
	"fmt"
	"time"
)

// Status is the recorded state of a calendar day
type Status string

const (
	StatusNone    Status = ""
	StatusWork    Status = "work"
	StatusAbsence Status = "absence"
)

// Valid reports whether s is a recordable status; StatusNone is not recordable
func (s Status) Valid() bool {
	return s == StatusWork || s == StatusAbsence
}

// Event is the status recorded for one calendar date
type Event struct {
	Date   time.Time
	Status Status
}

// LockedMonth identifies a month that the UI treats as read-only
type LockedMonth struct {
	Year  int
	Month time.Month
}

func (m LockedMonth) String() string {
	return fmt.Sprintf("%d-%02d", m.Year, int(m.Month))
}
