package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rahayucraft/studio-management/internal/core/events"
)

// EventHandler turns committed return decisions into customer emails.
type EventHandler struct {
	sender Sender
	logger *slog.Logger
}

func NewEventHandler(sender Sender, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		sender: sender,
		logger: logger,
	}
}

func (h *EventHandler) HandleReturnResponded(ctx context.Context, event events.Event) error {
	respondedEvent, ok := event.(*events.ReturnRespondedEvent)
	if !ok {
		h.logger.Error("invalid event type for return responded handler", "event_type", event.EventType())
		return fmt.Errorf("expected ReturnRespondedEvent, got %T", event)
	}

	h.logger.Info("handling return responded event for email dispatch",
		"return_id", respondedEvent.ReturnID,
		"order_number", respondedEvent.OrderNumber,
		"approved", respondedEvent.Approved,
		"event_id", respondedEvent.EventID())

	email := ComposeReturnResponse(respondedEvent)
	if err := h.sender.Send(ctx, email); err != nil {
		h.logger.Error("failed to queue return response email",
			"error", err,
			"return_id", respondedEvent.ReturnID,
			"event_id", respondedEvent.EventID())
		return fmt.Errorf("email dispatch failed for return %d: %w", respondedEvent.ReturnID, err)
	}

	h.logger.Info("return response email queued",
		"return_id", respondedEvent.ReturnID,
		"to", email.To,
		"event_id", respondedEvent.EventID())

	return nil
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.EventTypeReturnResponded, h.HandleReturnResponded)

	h.logger.Info("mailer event handlers registered",
		"handlers", []string{events.EventTypeReturnResponded})
}

// ComposeReturnResponse renders the decision email for a return.
func ComposeReturnResponse(ev *events.ReturnRespondedEvent) Email {
	var (
		subject string
		lines   []string
	)

	greeting := "Hello"
	if ev.Recipient != "" {
		greeting = "Hello " + ev.Recipient
	}
	lines = append(lines, greeting+",", "")

	if ev.Approved {
		subject = fmt.Sprintf("Your return for order %s has been approved", ev.OrderNumber)
		lines = append(lines,
			fmt.Sprintf("Good news: your return request for order %s was approved.", ev.OrderNumber))
	} else {
		subject = fmt.Sprintf("Update on your return for order %s", ev.OrderNumber)
		lines = append(lines,
			fmt.Sprintf("Unfortunately we could not approve your return request for order %s.", ev.OrderNumber))
	}

	if ev.Reason != "" {
		lines = append(lines, "", "Reason: "+ev.Reason)
	}
	if ev.Message != "" {
		lines = append(lines, "", ev.Message)
	}
	if ev.Alternative != "" {
		lines = append(lines, "", "Alternative offered: "+ev.Alternative)
	}

	lines = append(lines, "", "Warm regards,", "Rahayu Craft Studio")

	return Email{
		To:      ev.Email,
		Name:    ev.Recipient,
		Subject: subject,
		Body:    strings.Join(lines, "\n"),
	}
}
