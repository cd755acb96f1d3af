package webserver

import (
	"bytes"
	"f1q1report/pkg/chart"
	"f1q1report/pkg/display"
	"f1q1report/pkg/model"
	"f1q1report/pkg/raceerrors"
	"fmt"
	"net/http"
)

const (
	paramOrder    = "order"
	paramDriverID = "driver_id"
)

type reportPage struct {
	Title     string
	Order     display.Order
	Rows      []display.Row
	Separator string
}

type driversPage struct {
	Title   string
	Drivers []model.Driver
}

type driverPage struct {
	reportPage
	DriverID string
}

func (m *Manager) order(r *http.Request) (display.Order, error) {
	order := r.URL.Query().Get(paramOrder)
	if order == "" {
		return m.defaultOrder, nil
	}
	return display.ParseOrder(order)
}

func (m *Manager) handleReport(w http.ResponseWriter, r *http.Request) {
	order, err := m.order(r)
	if err != nil {
		m.writeError(w, err)
		return
	}
	rows, err := display.Rows(display.Sort(m.results, order))
	if err != nil {
		m.writeError(w, err)
		return
	}
	m.render(w, "report.html", reportPage{
		Title:     "Q1 report",
		Order:     order,
		Rows:      rows,
		Separator: display.Separator,
	})
}

func (m *Manager) handleDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := m.store.Drivers()
	if err != nil {
		m.writeError(w, err)
		return
	}
	m.render(w, "drivers.html", driversPage{
		Title:   "Drivers",
		Drivers: drivers,
	})
}

func (m *Manager) handleDriver(w http.ResponseWriter, r *http.Request) {
	driverID := r.URL.Query().Get(paramDriverID)
	filtered := display.Filter(m.results, driverID)
	if len(filtered) == 0 {
		m.writeError(w, unknownDriver(driverID))
		return
	}
	rows, err := display.Rows(filtered)
	if err != nil {
		m.writeError(w, err)
		return
	}
	m.render(w, "driver.html", driverPage{
		reportPage: reportPage{
			Title:     "Driver " + driverID,
			Rows:      rows,
			Separator: display.Separator,
		},
		DriverID: driverID,
	})
}

func (m *Manager) handleChart(w http.ResponseWriter, r *http.Request) {
	order, err := m.order(r)
	if err != nil {
		m.writeError(w, err)
		return
	}
	var b bytes.Buffer
	if err := chart.WritePNG(&b, display.Sort(m.results, order)); err != nil {
		m.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(b.Bytes())
}

func unknownDriver(query string) error {
	return &raceerrors.Error{
		Kind: raceerrors.KindDriverNotFound,
		Message: fmt.Sprintf("Identifier %q is not recognized. Try to use 3-letter code like 'KRF': "+
			"the first letters of the first name: 'K', the first letters of the last name: 'R' and "+
			"the first letters of the car model: 'F'.", query),
	}
}

func (m *Manager) render(w http.ResponseWriter, name string, data any) {
	var b bytes.Buffer
	if err := m.templates.ExecuteTemplate(&b, name, data); err != nil {
		m.logger.Error("error rendering template", "template", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = b.WriteTo(w)
}

// writeError maps analysis errors to 400 and anything else to 500.
func (m *Manager) writeError(w http.ResponseWriter, err error) {
	if raceerrors.KindOf(err) != raceerrors.KindUnknown {
		m.logger.Debug("bad request", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	m.logger.Error("request failed", "error", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
