package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/scholar-stream/scholarship-service/internal/models"
)

const (
	eventSource  = "scholarship-service"
	eventVersion = "1.0"
)

// Event types published by the service.
const (
	EventApplicationSubmitted     = "application.submitted"
	EventApplicationStatusChanged = "application.status_changed"
	EventApplicationDeleted       = "application.deleted"
	EventPaymentRecorded          = "payment.recorded"
)

// Event is the envelope every published message shares.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent builds an envelope with the service identity filled in.
func NewEvent(eventType string, data interface{}) Event {
	return Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    eventSource,
		Version:   eventVersion,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// ApplicationStatusChangedEvent is emitted after a lifecycle transition
// commits.
type ApplicationStatusChangedEvent struct {
	ApplicationID uint                     `json:"application_id"`
	UserEmail     string                   `json:"user_email"`
	FromStatus    models.ApplicationStatus `json:"from_status"`
	ToStatus      models.ApplicationStatus `json:"to_status"`
	ChangedBy     string                   `json:"changed_by"`
	Feedback      *string                  `json:"feedback,omitempty"`
}

// PaymentRecordedEvent is emitted after a confirmed payment is persisted.
type PaymentRecordedEvent struct {
	TransactionID string  `json:"transaction_id"`
	ApplicationID uint    `json:"application_id"`
	Email         string  `json:"email"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
}

// EventPublisher publishes domain events. Publishing is best effort:
// callers log failures and never fail the request over them.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// MockEventPublisher records events in memory for tests.
type MockEventPublisher struct {
	mu     sync.Mutex
	events []Event
	logger *slog.Logger
}

func NewMockEventPublisher(logger *slog.Logger) *MockEventPublisher {
	return &MockEventPublisher{logger: logger}
}

func (m *MockEventPublisher) Publish(_ context.Context, event Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	m.logger.Debug("mock publisher recorded event", "type", event.Type, "id", event.ID)
	return nil
}

func (m *MockEventPublisher) Close() error { return nil }

func (m *MockEventPublisher) GetPublishedEvents() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}

func (m *MockEventPublisher) ClearEvents() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}
