package model

import (
	"f1q1report/pkg/helper"
	"fmt"
	"time"
)

// Driver is one roster entry from the abbreviations file.
type Driver struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	CarModel string `json:"carModel"`
}

// Less orders drivers by ID, then Name, then CarModel.
func (d Driver) Less(o Driver) bool {
	if d.ID != o.ID {
		return d.ID < o.ID
	}
	if d.Name != o.Name {
		return d.Name < o.Name
	}
	return d.CarModel < o.CarModel
}

func (d Driver) String() string {
	return fmt.Sprintf("%s %s (%s)", d.ID, d.Name, d.CarModel)
}

type TimestampEntry struct {
	ID        string
	Timestamp time.Time
}

type LapTime struct {
	ID       string
	Duration time.Duration
}

// RaceResult pairs a driver with its computed lap time.
type RaceResult struct {
	Driver  Driver        `json:"driver"`
	LapTime time.Duration `json:"lapTime"`
}

func (r RaceResult) FormattedLapTime() string {
	return helper.FormatLapTime(r.LapTime)
}

// DriverQuery is a free-text driver filter resolved to either an
// identifier or a full name. Both empty means the query did not resolve.
type DriverQuery struct {
	Raw  string
	ID   string
	Name string
}

func (q DriverQuery) IsZero() bool {
	return q.ID == "" && q.Name == ""
}

// Matches reports whether d is selected by the query.
func (q DriverQuery) Matches(d Driver) bool {
	if q.IsZero() {
		return false
	}
	return (q.ID != "" && d.ID == q.ID) || (q.Name != "" && d.Name == q.Name)
}

// Skip records an input record dropped under the permissive policy.
type Skip struct {
	Source string `json:"source"`
	Line   int    `json:"line,omitempty"` // 1-based, 0 when not line bound
	ID     string `json:"id,omitempty"`
	Err    error  `json:"-"`
}

func (s Skip) String() string {
	if s.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", s.Source, s.Line, s.Err)
	}
	return fmt.Sprintf("%s: %s", s.Source, s.Err)
}
