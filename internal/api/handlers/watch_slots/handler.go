package watch_slots

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberSlots/internal/api/handlers"
	"github.com/m04kA/SMC-BarberSlots/internal/domain"
)

const (
	msgInvalidEmployeeID = "некорректный ID мастера"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgStreamingDisabled = "потоковая передача не поддерживается"

	defaultHeartbeat = 15 * time.Second
)

// ChangeEvent тело события changed: клиент должен перезапросить слоты
type ChangeEvent struct {
	EmployeeID int64  `json:"employeeId"`
	Date       string `json:"date"`
}

type Handler struct {
	subscriber SlotsSubscriber
	logger     Logger
	heartbeat  time.Duration

	done     chan struct{}
	stopOnce sync.Once
}

// NewHandler создает handler. heartbeat <= 0 заменяется значением по умолчанию.
func NewHandler(subscriber SlotsSubscriber, logger Logger, heartbeat time.Duration) *Handler {
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	return &Handler{
		subscriber: subscriber,
		logger:     logger,
		heartbeat:  heartbeat,
		done:       make(chan struct{}),
	}
}

// Stop завершает все открытые стримы. Вызывается при остановке сервера,
// иначе Shutdown ждал бы отключения клиентов.
func (h *Handler) Stop() {
	h.stopOnce.Do(func() {
		close(h.done)
	})
}

// Handle GET /api/v1/employees/{employeeId}/slots/watch
// Query params: date (required, YYYY-MM-DD)
// Отдает text/event-stream: ready при подключении, changed при каждом изменении записей.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(mux.Vars(r)["employeeId"], 10, 64)
	if err != nil || employeeID <= 0 {
		h.logger.Warn("GET /employees/{id}/slots/watch - Invalid employee ID: %s", mux.Vars(r)["employeeId"])
		handlers.RespondBadRequest(w, msgInvalidEmployeeID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /employees/{id}/slots/watch - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /employees/{id}/slots/watch - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	rc := http.NewResponseController(w)
	// у сервера есть WriteTimeout, для стрима он снимается
	if err := rc.SetWriteDeadline(time.Time{}); err != nil {
		h.logger.Info("GET /employees/{id}/slots/watch - Write deadline not supported: %v", err)
	}

	sub := h.subscriber.Subscribe(employeeID, date)
	defer sub.Unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	payload, _ := json.Marshal(ChangeEvent{EmployeeID: employeeID, Date: dateStr})

	if err := h.writeEvent(rc, w, "ready", payload); err != nil {
		h.logger.Warn("GET /employees/{id}/slots/watch - %s: %v", msgStreamingDisabled, err)
		return
	}

	h.logger.Info("GET /employees/{id}/slots/watch - Subscribed: employee_id=%d, date=%s", employeeID, dateStr)

	ticker := time.NewTicker(h.heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			h.logger.Info("GET /employees/{id}/slots/watch - Client disconnected: employee_id=%d, date=%s", employeeID, dateStr)
			return

		case <-h.done:
			return

		case _, ok := <-sub.Changes():
			if !ok {
				return
			}
			if err := h.writeEvent(rc, w, "changed", payload); err != nil {
				h.logger.Warn("GET /employees/{id}/slots/watch - Write failed: %v", err)
				return
			}

		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": ping\n\n"); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}

func (h *Handler) writeEvent(rc *http.ResponseController, w http.ResponseWriter, event string, data []byte) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	return rc.Flush()
}
