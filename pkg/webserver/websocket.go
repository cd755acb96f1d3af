package webserver

import (
	"f1q1report/pkg/display"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{} // use default options

// StreamRow is the JSON frame pushed for every report row.
type StreamRow struct {
	Position int    `json:"position"`
	ID       string `json:"id"`
	Name     string `json:"name"`
	CarModel string `json:"carModel"`
	LapTime  string `json:"lapTime"`
	Cutoff   bool   `json:"cutoff,omitempty"`
}

// handleStream pushes the sorted report row by row and closes the socket.
func (m *Manager) handleStream(w http.ResponseWriter, r *http.Request) {
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

	c, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		m.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer c.Close()

	for _, row := range rows {
		_ = c.SetWriteDeadline(time.Now().Add(writeWait))
		err := c.WriteJSON(StreamRow{
			Position: row.Position,
			ID:       row.Driver.ID,
			Name:     row.Driver.Name,
			CarModel: row.Driver.CarModel,
			LapTime:  row.LapTime,
			Cutoff:   row.SeparatorAfter,
		})
		if err != nil {
			m.logger.Warn("websocket write failed", "error", err)
			return
		}
	}
	_ = c.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeWait))
}
