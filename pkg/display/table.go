package display

import (
	"f1q1report/pkg/helper"
	"f1q1report/pkg/model"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	tablePosition = "POS"
	tableDriver   = "PIL"
	tableName     = "Driver"
	tableCar      = "Car"
	tableTime     = "Time"
	tableGap      = "Gap"
)

// RenderTable writes the report as a box drawn table with a gap column
// relative to the first displayed row.
func RenderTable(w io.Writer, results []model.RaceResult) error {
	rows, err := Rows(results)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{tablePosition, tableDriver, tableName, tableCar, tableTime, tableGap})

	reference := results[0].LapTime
	for i, row := range rows {
		gap := results[i].LapTime - reference
		if gap < 0 {
			gap = -gap
		}
		t.AppendRow(table.Row{
			fmt.Sprintf("%2d", row.Position),
			row.Driver.ID,
			row.Driver.Name,
			row.Driver.CarModel,
			row.LapTime,
			helper.FormatGap(gap),
		})
		if row.SeparatorAfter && i < len(rows)-1 {
			t.AppendSeparator()
		}
	}
	t.Render()
	return nil
}
