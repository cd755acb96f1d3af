package report

import (
	"f1q1report/pkg/laptime"
	"f1q1report/pkg/logging"
	"f1q1report/pkg/model"
	"f1q1report/pkg/parser"
	"f1q1report/pkg/raceerrors"
	"f1q1report/pkg/reader"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const (
	AbbreviationsFile = "abbreviations.txt"
	StartLogFile      = "start.log"
	EndLogFile        = "end.log"
)

// Files names the three inputs inside a data directory.
type Files struct {
	Abbreviations string
	StartLog      string
	EndLog        string
}

func DefaultFiles() Files {
	return Files{
		Abbreviations: AbbreviationsFile,
		StartLog:      StartLogFile,
		EndLog:        EndLogFile,
	}
}

// Report is the outcome of one build.
type Report struct {
	ID      string
	Dir     string
	Policy  parser.Policy
	Results []model.RaceResult
	// Skipped lists what the permissive policy dropped. Always empty under
	// the strict policy.
	Skipped []model.Skip
}

type Builder struct {
	Policy parser.Policy
	Files  Files
	logger *slog.Logger
}

func NewBuilder(policy parser.Policy, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Builder{
		Policy: policy,
		Files:  DefaultFiles(),
		logger: logger,
	}
}

// Build reads the data directory and returns the race results in roster
// order. Drivers without both timestamps are left out.
func Build(dir string, policy parser.Policy) ([]model.RaceResult, error) {
	r, err := NewBuilder(policy, nil).Build(dir)
	if err != nil {
		return nil, err
	}
	return r.Results, nil
}

func (b *Builder) Build(dir string) (Report, error) {
	r := Report{
		ID:     uuid.NewString(),
		Dir:    dir,
		Policy: b.Policy,
	}
	log := b.logger.With("build_id", r.ID, "policy", b.Policy.String())
	log.Debug("starting report build", "dir", dir)

	abbreviationsPath := filepath.Join(dir, b.Files.Abbreviations)
	lines, err := reader.ReadLines(abbreviationsPath)
	if err != nil {
		return r, err
	}
	drivers, skipped, err := parser.Drivers(abbreviationsPath, lines, b.Policy)
	if err != nil {
		return r, err
	}
	r.Skipped = append(r.Skipped, skipped...)
	if len(drivers) == 0 {
		return r, raceerrors.InvalidFormatData("failed during creating driver database from %s", abbreviationsPath)
	}
	log.Debug("roster parsed", "drivers", len(drivers), "skipped", len(skipped))

	start, err := b.timestamps(filepath.Join(dir, b.Files.StartLog), &r)
	if err != nil {
		return r, err
	}
	end, err := b.timestamps(filepath.Join(dir, b.Files.EndLog), &r)
	if err != nil {
		return r, err
	}

	lapTimes, skipped, err := laptime.Compute(start, end, b.Policy)
	if err != nil {
		return r, err
	}
	r.Skipped = append(r.Skipped, skipped...)
	for _, lt := range laptime.List(lapTimes) {
		log.Debug("lap time", "id", lt.ID, "duration", lt.Duration)
	}

	r.Results = Join(drivers, lapTimes)
	for _, s := range r.Skipped {
		log.Warn("record skipped", "source", s.Source, "line", s.Line, "id", s.ID, "error", s.Err)
	}
	log.Info("report built", "results", len(r.Results), "drivers", len(drivers), "skipped", len(r.Skipped))
	return r, nil
}

func (b *Builder) timestamps(path string, r *Report) (map[string]time.Time, error) {
	lines, err := reader.ReadLines(path)
	if err != nil {
		return nil, err
	}
	timestamps, skipped, err := parser.Timestamps(path, lines, b.Policy)
	if err != nil {
		return nil, err
	}
	r.Skipped = append(r.Skipped, skipped...)
	return timestamps, nil
}

// Join pairs each driver with its lap time, keeping roster order.
func Join(drivers []model.Driver, lapTimes map[string]time.Duration) []model.RaceResult {
	results := make([]model.RaceResult, 0, len(drivers))
	for _, d := range drivers {
		if lt, ok := lapTimes[d.ID]; ok {
			results = append(results, model.RaceResult{Driver: d, LapTime: lt})
		}
	}
	return results
}
