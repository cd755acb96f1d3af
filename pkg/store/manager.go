// Package store keeps the result set of a build in an in-memory SQLite
// database so the web view can list and re-read it between requests.
package store

import (
	"database/sql"
	"f1q1report/pkg/logging"
	"f1q1report/pkg/model"
	"log/slog"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

type Manager struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *slog.Logger
}

func NewManager(dsn string, logger *slog.Logger) (*Manager, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	// every connection to ":memory:" is a separate database
	db.SetMaxOpenConns(1)

	_, err = db.Exec(buildCreateResultsTable())
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "init database")
	}

	return &Manager{
		db:     db,
		logger: logger,
	}, nil
}

func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.db.Close()
}

// Load replaces the stored results, keeping their order.
func (m *Manager) Load(results []model.RaceResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx, err := m.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer tx.Rollback()

	if _, err := tx.Exec(buildDeleteResultsCommand()); err != nil {
		return errors.Wrap(err, "clearing results")
	}
	stmt, err := tx.Prepare(buildInsertResultCommand())
	if err != nil {
		return errors.Wrap(err, "preparing insert")
	}
	defer stmt.Close()

	for i, r := range results {
		_, err := stmt.Exec(i+1, r.Driver.ID, r.Driver.Name, r.Driver.CarModel, int64(r.LapTime))
		if err != nil {
			return errors.Wrapf(err, "inserting %s", r.Driver.ID)
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit")
	}
	m.logger.Debug("results stored", "count", len(results))
	return nil
}

// Results returns the stored results in the order they were loaded.
func (m *Manager) Results() ([]model.RaceResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	query, read := buildSelectResultsCommand()
	rows, err := m.db.Query(query)
	if err != nil {
		return nil, errors.Wrap(err, "selecting results")
	}
	return read(rows)
}

// Drivers lists the drivers with a result, ordered by name.
func (m *Manager) Drivers() ([]model.Driver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	query, read := buildSelectDriversCommand()
	rows, err := m.db.Query(query)
	if err != nil {
		return nil, errors.Wrap(err, "selecting drivers")
	}
	return read(rows)
}
