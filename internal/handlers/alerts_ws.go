package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/stocksentry/stocksentry/internal/services"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		// CORS policy already allows any origin for the REST API.
		return true
	},
}

// AlertStreamHandler pushes the current alert set to websocket clients. Each
// client gets a snapshot on connect and a fresh one every interval.
type AlertStreamHandler struct {
	alertService *services.AlertService
	interval     time.Duration
}

func NewAlertStreamHandler(alertService *services.AlertService, interval time.Duration) *AlertStreamHandler {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &AlertStreamHandler{alertService: alertService, interval: interval}
}

// SetupRoutes sets up the websocket route
func (h *AlertStreamHandler) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /ws/alerts", h.handleStream)
}

func (h *AlertStreamHandler) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("AlertStreamHandler: upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	// Drain client frames so close and ping/pong are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := h.pushSnapshot(conn); err != nil {
		return
	}

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if err := h.pushSnapshot(conn); err != nil {
				return
			}
		}
	}
}

func (h *AlertStreamHandler) pushSnapshot(conn *websocket.Conn) error {
	list, err := h.alertService.Aggregate()
	if err != nil {
		log.Printf("AlertStreamHandler: aggregation failed: %v", err)
		msg := map[string]string{"type": "error", "error": "failed to aggregate alerts"}
		return conn.WriteJSON(msg)
	}

	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteJSON(map[string]interface{}{
		"type":   "alerts",
		"alerts": list,
	})
}
