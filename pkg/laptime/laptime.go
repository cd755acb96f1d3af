package laptime

import (
	"f1q1report/pkg/model"
	"f1q1report/pkg/parser"
	"f1q1report/pkg/raceerrors"
	"sort"
	"time"
)

const source = "laptime"

// Compute returns end - start for every identifier present in both maps.
// Identifiers found in only one map are left out without error.
func Compute(start, end map[string]time.Time, policy parser.Policy) (map[string]time.Duration, []model.Skip, error) {
	// walk in a stable order so strict mode always reports the same driver
	ids := make([]string, 0, len(start))
	for id := range start {
		if _, ok := end[id]; ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	lapTimes := make(map[string]time.Duration, len(ids))
	var skipped []model.Skip
	for _, id := range ids {
		startedAt, endedAt := start[id], end[id]
		if startedAt.After(endedAt) {
			err := raceerrors.InvalidRaceTime(id)
			if policy == parser.Strict {
				return nil, nil, err
			}
			skipped = append(skipped, model.Skip{Source: source, ID: id, Err: err})
			continue
		}
		lapTimes[id] = endedAt.Sub(startedAt)
	}
	return lapTimes, skipped, nil
}

// List flattens the map into LapTime values ordered by identifier.
func List(lapTimes map[string]time.Duration) []model.LapTime {
	list := make([]model.LapTime, 0, len(lapTimes))
	for id, d := range lapTimes {
		list = append(list, model.LapTime{ID: id, Duration: d})
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})
	return list
}
