package notifier

import "time"

// Alert тело запроса к webhook
type Alert struct {
	Source     string    `json:"source"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurredAt"`
}
