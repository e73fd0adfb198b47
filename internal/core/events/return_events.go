package events

import (
	"time"

	"github.com/google/uuid"
)

const EventTypeReturnResponded = "return.responded"

// ReturnRespondedEvent is published after a return's status transition has
// committed. The email dispatch subscribes to it; delivery failure never
// affects the persisted return.
type ReturnRespondedEvent struct {
	ID          string
	Timestamp   time.Time
	ReturnID    int64
	OrderNumber string
	Recipient   string
	Email       string
	Approved    bool
	Reason      string
	Message     string
	Alternative string
}

func NewReturnRespondedEvent(returnID int64, orderNumber, recipient, email string, approved bool, reason, message, alternative string) *ReturnRespondedEvent {
	return &ReturnRespondedEvent{
		ID:          uuid.NewString(),
		Timestamp:   time.Now(),
		ReturnID:    returnID,
		OrderNumber: orderNumber,
		Recipient:   recipient,
		Email:       email,
		Approved:    approved,
		Reason:      reason,
		Message:     message,
		Alternative: alternative,
	}
}

func (e *ReturnRespondedEvent) EventType() string {
	return EventTypeReturnResponded
}

func (e *ReturnRespondedEvent) EventID() string {
	return e.ID
}

func (e *ReturnRespondedEvent) OccurredAt() time.Time {
	return e.Timestamp
}
