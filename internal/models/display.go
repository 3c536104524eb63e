package models

// DisplayState is the resolved display payload returned by /menu/today and
// /menu/display. MenuURL and the weekly fields are only set when the
// corresponding image exists.
type DisplayState struct {
	HasMenu       bool   `json:"hasMenu"`
	Day           string `json:"day"`
	MenuURL       string `json:"menuUrl,omitempty"`
	IsSelected    bool   `json:"isSelected"`
	HasWeeklyMenu bool   `json:"hasWeeklyMenu"`
	WeeklyMenuURL string `json:"weeklyMenuUrl,omitempty"`
	Message       string `json:"message,omitempty"`
}

// CurrentDisplay reports the raw selection state: which day is pinned (nil
// when automatic) and which day the automatic rule would pick right now.
type CurrentDisplay struct {
	SelectedDay *Slot  `json:"selectedDay"`
	CurrentDay  string `json:"currentDay"`
	IsAutomatic bool   `json:"isAutomatic"`
}

// UploadResult is returned by the upload endpoints.
type UploadResult struct {
	Message  string `json:"message"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

// SetDisplayResult is returned by set-display and reset-to-auto.
type SetDisplayResult struct {
	Message     string `json:"message"`
	SelectedDay *Slot  `json:"selectedDay"`
}
