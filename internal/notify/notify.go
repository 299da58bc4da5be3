// Package notify carries the fire-and-forget notifications fired by
// lifecycle transitions. A failed send never affects the transition
// that triggered it.
package notify

import (
	"context"
	"log/slog"
)

type EventType string

const (
	EventOfferReceived  EventType = "offer_received"
	EventJobAssigned    EventType = "job_assigned"
	EventJobStarted     EventType = "job_started"
	EventJobCompleted   EventType = "job_completed"
	EventJobConfirmed   EventType = "job_confirmed"
	EventJobCancelled   EventType = "job_cancelled"
	EventAutoReleased   EventType = "auto_released"
	EventDisputeOpened  EventType = "dispute_opened"
	EventStartCodeReset EventType = "start_code_reset"
)

type Event struct {
	Type      EventType
	JobID     uint
	Recipient string
	Data      map[string]any
}

type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// LogNotifier is the dev/test dispatcher: it just logs the event.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

var _ Notifier = (*LogNotifier)(nil)

func (n *LogNotifier) Notify(ctx context.Context, event Event) error {
	n.logger.Info("notification dispatched",
		slog.String("type", string(event.Type)),
		slog.Uint64("job_id", uint64(event.JobID)),
		slog.String("recipient", event.Recipient),
	)
	return nil
}
