package store

import (
	"database/sql"
	"f1q1report/pkg/model"
	"time"
)

func buildCreateResultsTable() string {
	return `CREATE TABLE IF NOT EXISTS results (
		position INTEGER PRIMARY KEY,
		id TEXT NOT NULL,
		name TEXT NOT NULL,
		car_model TEXT NOT NULL,
		lap_time INTEGER NOT NULL);`
}

func buildDeleteResultsCommand() string {
	return `DELETE FROM results`
}

func buildInsertResultCommand() string {
	return `INSERT INTO results (position, id, name, car_model, lap_time) VALUES (?, ?, ?, ?, ?)`
}

func buildSelectResultsCommand() (string, func(*sql.Rows) ([]model.RaceResult, error)) {
	return `SELECT id, name, car_model, lap_time FROM results ORDER BY position`, processSelectResultsRows
}

func processSelectResultsRows(rows *sql.Rows) ([]model.RaceResult, error) {
	defer rows.Close()

	results := make([]model.RaceResult, 0)
	for rows.Next() {
		var d model.Driver
		var lapTime int64
		err := rows.Scan(&d.ID, &d.Name, &d.CarModel, &lapTime)
		if err != nil {
			return results, err
		}
		results = append(results, model.RaceResult{
			Driver:  d,
			LapTime: time.Duration(lapTime),
		})
	}
	return results, rows.Err()
}

func buildSelectDriversCommand() (string, func(*sql.Rows) ([]model.Driver, error)) {
	return `SELECT id, name, car_model FROM results ORDER BY name, id`, processSelectDriversRows
}

func processSelectDriversRows(rows *sql.Rows) ([]model.Driver, error) {
	defer rows.Close()

	drivers := make([]model.Driver, 0)
	for rows.Next() {
		var d model.Driver
		err := rows.Scan(&d.ID, &d.Name, &d.CarModel)
		if err != nil {
			return drivers, err
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}
