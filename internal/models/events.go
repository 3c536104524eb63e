package models

import "time"

// EventType tags a ChangeEvent on the SSE feed.
type EventType string

const (
	// EventConnected is sent once to each subscriber right after it
	// attaches, carrying the currently resolved display day.
	EventConnected EventType = "connected"

	// EventMenuChanged signals that a daily menu or the display selection
	// changed. Subscribers re-fetch the resolved display state.
	EventMenuChanged EventType = "menu-update"

	// EventWeeklyMenuChanged signals that the weekly overlay changed.
	EventWeeklyMenuChanged EventType = "weekly-menu-update"
)

// ChangeEvent is a single notification on the SSE feed. Events are not a
// durable log: a disconnected subscriber gets no replay and must re-resolve
// on reconnect.
type ChangeEvent struct {
	Type        EventType `json:"type"`
	Message     string    `json:"message,omitempty"`
	SelectedDay string    `json:"selectedDay,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	UpdateID    int64     `json:"updateId,omitempty"`
}
