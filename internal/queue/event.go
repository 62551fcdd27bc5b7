// Package queue defines the booking events exchanged over the message
// broker, together with their publishers and the log consumer.
package queue

import (
	"time"

	"github.com/google/uuid"
)

// QueueName is the durable queue carrying booking events.
const QueueName = "booking.events"

const (
	EventRoomAssigned = "room.assigned"
	EventRoomReleased = "room.released"
)

// BookingEvent is published whenever a student moves into or out of a
// room. It carries enough detail for consumers to log or notify without
// reading the record stores.
type BookingEvent struct {
	EventID     string `json:"event_id"`
	Type        string `json:"type"`
	StudentID   int    `json:"student_id"`
	StudentName string `json:"student_name"`
	RoomID      int    `json:"room_id"`
	RoomNumber  string `json:"room_number"`
	OccurredAt  string `json:"occurred_at"`
}

// NewBookingEvent stamps a fresh event id and the occurrence time.
func NewBookingEvent(kind string, studentID int, studentName string, roomID int, roomNumber string, at time.Time) BookingEvent {
	return BookingEvent{
		EventID:     uuid.NewString(),
		Type:        kind,
		StudentID:   studentID,
		StudentName: studentName,
		RoomID:      roomID,
		RoomNumber:  roomNumber,
		OccurredAt:  at.UTC().Format(time.RFC3339),
	}
}
