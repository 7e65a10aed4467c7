// Package audit records ticket lifecycle events. The trail is write-only:
// the ticket collection is never rebuilt from it.
package audit

import (
	"context"
	"time"

	"github.com/ticketdesk/ticketdesk/backend/go-services/internal/ticket"
)

const (
	ActionCreate = "create"
	ActionUpdate = "update"
)

// Event is a single audit record for a ticket mutation.
type Event struct {
	TicketID int           `bson:"ticketId" json:"ticketId"`
	Action   string        `bson:"action" json:"action"`
	Changed  []string      `bson:"changed,omitempty" json:"changed,omitempty"`
	Ticket   ticket.Ticket `bson:"ticket" json:"ticket"`
	At       time.Time     `bson:"at" json:"at"`
}

// Recorder persists audit events.
type Recorder interface {
	Record(ctx context.Context, ev Event) error
}

// NopRecorder discards every event. Used when no audit backend is configured.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, Event) error { return nil }
