package store

import "time"

// Timeline is the stored-timeline header row. Cues are loaded separately.
type Timeline struct {
	ID        string
	Name      string
	Language  string
	CueCount  int
	CreatedAt time.Time
	UpdatedAt time.Time
}
