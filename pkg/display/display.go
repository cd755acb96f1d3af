package display

import (
	"f1q1report/pkg/model"
	"f1q1report/pkg/raceerrors"
	"f1q1report/pkg/schema"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	// Q1Cutoff is the last position that goes through to Q2.
	Q1Cutoff       = 15
	separatorWidth = 60
)

var Separator = strings.Repeat("_", separatorWidth)

type Order string

const (
	Ascending  Order = "asc"
	Descending Order = "desc"
)

func ParseOrder(s string) (Order, error) {
	switch Order(strings.ToLower(strings.TrimSpace(s))) {
	case Ascending:
		return Ascending, nil
	case Descending:
		return Descending, nil
	}
	return "", raceerrors.InvalidOrder(s)
}

// Sort returns a sorted copy. Descending is the ascending order reversed,
// so tied lap times come out in reverse roster order.
func Sort(results []model.RaceResult, order Order) []model.RaceResult {
	sorted := make([]model.RaceResult, len(results))
	copy(sorted, results)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LapTime < sorted[j].LapTime
	})
	if order == Descending {
		Reverse(sorted)
	}
	return sorted
}

func Reverse(results []model.RaceResult) {
	for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
		results[i], results[j] = results[j], results[i]
	}
}

// Filter keeps the rows matching the query by identifier or full name. An
// unresolvable query returns nil.
func Filter(results []model.RaceResult, raw string) []model.RaceResult {
	q := schema.ResolveQuery(raw)
	if q.IsZero() {
		return nil
	}
	filtered := []model.RaceResult{}
	for _, r := range results {
		if q.Matches(r.Driver) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// ColumnWidths returns the widest name and car model among the rows.
func ColumnWidths(results []model.RaceResult) (name int, car int) {
	for _, r := range results {
		if w := utf8.RuneCountInString(r.Driver.Name); w > name {
			name = w
		}
		if w := utf8.RuneCountInString(r.Driver.CarModel); w > car {
			car = w
		}
	}
	return name, car
}

// Row is one rendered report line.
type Row struct {
	Position int
	Driver   model.Driver
	LapTime  string
	// SeparatorAfter marks the Q1 cutoff row.
	SeparatorAfter bool
	text           string
}

func (r Row) String() string {
	return r.text
}

func Rows(results []model.RaceResult) ([]Row, error) {
	if len(results) == 0 {
		return nil, raceerrors.DisplayReport("failed during displaying race results: nothing to display")
	}
	nameWidth, carWidth := ColumnWidths(results)
	rows := make([]Row, 0, len(results))
	for i, r := range results {
		position := i + 1
		lapTime := r.FormattedLapTime()
		rows = append(rows, Row{
			Position:       position,
			Driver:         r.Driver,
			LapTime:        lapTime,
			SeparatorAfter: position == Q1Cutoff,
			text: fmt.Sprintf("%2d. %-*s | %-*s | %s",
				position, nameWidth, r.Driver.Name, carWidth, r.Driver.CarModel, lapTime),
		})
	}
	return rows, nil
}

// Render writes the fixed width report, one line per row, with the
// separator after the Q1 cutoff.
func Render(w io.Writer, results []model.RaceResult) error {
	rows, err := Rows(results)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := fmt.Fprintln(w, row); err != nil {
			return err
		}
		if row.SeparatorAfter {
			if _, err := fmt.Fprintln(w, Separator); err != nil {
				return err
			}
		}
	}
	return nil
}
