package notification

import (
	"context"
	"f1q1report/pkg/display"
	"f1q1report/pkg/logging"
	"f1q1report/pkg/report"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nikoksr/notify"
)

const subject = "Q1 results"

type Manager struct {
	notifier *notify.Notify
	logger   *slog.Logger
}

// NewManager fans every notification out to the given services.
func NewManager(logger *slog.Logger, services ...notify.Notifier) *Manager {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Manager{
		notifier: notify.NewWithServices(services...),
		logger:   logger,
	}
}

// NotifyReport sends a summary of a finished build.
func (m *Manager) NotifyReport(ctx context.Context, r report.Report) error {
	message := Summary(r)
	m.logger.Info("sending report notification", "build_id", r.ID, "results", len(r.Results))
	if err := m.notifier.Send(ctx, subject, message); err != nil {
		m.logger.Error("error notifying report", "build_id", r.ID, "error", err)
		return err
	}
	return nil
}

// Summary describes the pole, the Q1 cutoff and what was skipped.
func Summary(r report.Report) string {
	lines := []string{fmt.Sprintf("  ▸ Drivers: %d", len(r.Results))}
	sorted := display.Sort(r.Results, display.Ascending)
	if len(sorted) > 0 {
		pole := sorted[0]
		lines = append(lines, fmt.Sprintf("  ▸ Pole: %s (%s) %s", pole.Driver.Name, pole.Driver.CarModel, pole.FormattedLapTime()))
	}
	if len(sorted) > display.Q1Cutoff {
		cut := sorted[display.Q1Cutoff-1]
		lines = append(lines, fmt.Sprintf("  ▸ Q1 cutoff: %s %s", cut.Driver.Name, cut.FormattedLapTime()))
	}
	if len(r.Skipped) > 0 {
		lines = append(lines, fmt.Sprintf("  ▸ Skipped records: %d", len(r.Skipped)))
	}
	return strings.Join(lines, "\n")
}
