// Package models defines the menu board's domain types: slots, change
// events, display payloads, and the structured error taxonomy.
package models

import (
	"strings"
	"time"
)

// Slot is the logical name of a stored menu image: one of the five weekday
// slots, or the weekly overlay.
type Slot string

const (
	SlotMonday    Slot = "monday"
	SlotTuesday   Slot = "tuesday"
	SlotWednesday Slot = "wednesday"
	SlotThursday  Slot = "thursday"
	SlotFriday    Slot = "friday"
	SlotWeekly    Slot = "weekly"
)

// Weekdays returns the five weekday slots in calendar order.
func Weekdays() []Slot {
	return []Slot{SlotMonday, SlotTuesday, SlotWednesday, SlotThursday, SlotFriday}
}

// AllSlots returns the five weekday slots plus the weekly overlay.
func AllSlots() []Slot {
	return append(Weekdays(), SlotWeekly)
}

// IsWeekday reports whether s is one of monday..friday.
func (s Slot) IsWeekday() bool {
	switch s {
	case SlotMonday, SlotTuesday, SlotWednesday, SlotThursday, SlotFriday:
		return true
	}
	return false
}

func (s Slot) String() string { return string(s) }

// ParseWeekdaySlot parses a case-insensitive weekday name. The weekly
// overlay is not a weekday and is rejected here.
func ParseWeekdaySlot(raw string) (Slot, bool) {
	s := Slot(strings.ToLower(raw))
	if s.IsWeekday() {
		return s, true
	}
	return "", false
}

// ParseSlot parses any valid slot name, weekday or weekly.
func ParseSlot(raw string) (Slot, bool) {
	s := Slot(strings.ToLower(raw))
	if s.IsWeekday() || s == SlotWeekly {
		return s, true
	}
	return "", false
}

// SlotForTime maps a point in time to its weekday slot. ok is false on
// Saturday and Sunday, when no daily menu exists.
func SlotForTime(t time.Time) (Slot, bool) {
	switch t.Weekday() {
	case time.Monday:
		return SlotMonday, true
	case time.Tuesday:
		return SlotTuesday, true
	case time.Wednesday:
		return SlotWednesday, true
	case time.Thursday:
		return SlotThursday, true
	case time.Friday:
		return SlotFriday, true
	}
	return "", false
}

// DayName returns the lowercase English weekday name for t, including
// saturday/sunday. Used for informational fields in API responses.
func DayName(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}
