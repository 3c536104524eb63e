package models_test

import (
	"testing"
	"time"

	"github.com/openmenuboard/menuboard/internal/models"
)

func TestParseSlot(t *testing.T) {
	cases := []struct {
		in      string
		want    models.Slot
		ok      bool
		weekday bool
	}{
		{"monday", models.SlotMonday, true, true},
		{"FRIDAY", models.SlotFriday, true, true},
		{"Weekly", models.SlotWeekly, true, false},
		{"saturday", "", false, false},
		{"sunday", "", false, false},
		{"", "", false, false},
		{"måndag", "", false, false},
	}
	for _, c := range cases {
		got, ok := models.ParseSlot(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("ParseSlot(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.ok)
		}
		_, wok := models.ParseWeekdaySlot(c.in)
		if wok != c.weekday {
			t.Errorf("ParseWeekdaySlot(%q) ok = %v, want %v", c.in, wok, c.weekday)
		}
	}
}

func TestSlotForTime(t *testing.T) {
	// 2024-01-01 is a Monday.
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	want := []struct {
		slot models.Slot
		ok   bool
	}{
		{models.SlotMonday, true},
		{models.SlotTuesday, true},
		{models.SlotWednesday, true},
		{models.SlotThursday, true},
		{models.SlotFriday, true},
		{"", false}, // saturday
		{"", false}, // sunday
	}
	for i, w := range want {
		day := base.AddDate(0, 0, i)
		got, ok := models.SlotForTime(day)
		if got != w.slot || ok != w.ok {
			t.Errorf("SlotForTime(%s) = (%q, %v), want (%q, %v)",
				day.Weekday(), got, ok, w.slot, w.ok)
		}
	}
}

func TestDayName(t *testing.T) {
	sat := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	if got := models.DayName(sat); got != "saturday" {
		t.Errorf("DayName = %q, want %q", got, "saturday")
	}
}
