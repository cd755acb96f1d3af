package parser

import (
	"f1q1report/pkg/model"
	"f1q1report/pkg/raceerrors"
	"f1q1report/pkg/schema"
	"time"
)

// Drivers parses roster lines in input order. source names the file for
// error and skip reporting.
func Drivers(source string, lines []string, policy Policy) ([]model.Driver, []model.Skip, error) {
	drivers := make([]model.Driver, 0, len(lines))
	var skipped []model.Skip
	for i, line := range lines {
		d, err := schema.ParseAbbreviation(line)
		if err != nil {
			if policy == Strict {
				return nil, nil, raceerrors.WithPath(err, source)
			}
			skipped = append(skipped, model.Skip{Source: source, Line: i + 1, Err: err})
			continue
		}
		drivers = append(drivers, d)
	}
	return drivers, skipped, nil
}

// Timestamps parses log lines into identifier -> timestamp. A repeated
// identifier overwrites the earlier one.
func Timestamps(source string, lines []string, policy Policy) (map[string]time.Time, []model.Skip, error) {
	timestamps := make(map[string]time.Time, len(lines))
	var skipped []model.Skip
	for i, line := range lines {
		entry, err := schema.ParseLogEntry(line)
		if err != nil {
			if policy == Strict {
				return nil, nil, raceerrors.WithPath(err, source)
			}
			skipped = append(skipped, model.Skip{Source: source, Line: i + 1, Err: err})
			continue
		}
		timestamps[entry.ID] = entry.Timestamp
	}
	return timestamps, skipped, nil
}
