package model

import (
	"time"
)

// GroupEvent is the only durable entity of the service. Date, StartTime and
// EndTime stay empty while the event is pending and are all set together when
// a slot is booked and the status flips to confirmed.
type GroupEvent struct {
	ID             string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name           string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Description    string    `json:"description,omitempty" bson:"description" validate:"omitempty,max=500"`
	OwnerID        string    `json:"owner_id" bson:"owner_id" validate:"required"`
	ParticipantIDs []string  `json:"participant_ids" bson:"participant_ids" validate:"required,min=1,dive,required"`
	Status         string    `json:"status" bson:"status" validate:"required,oneof=pending confirmed"`
	Date           string    `json:"date,omitempty" bson:"date,omitempty" validate:"omitempty,event_date"`
	StartTime      string    `json:"start_time,omitempty" bson:"start_time,omitempty" validate:"omitempty,clock_time"`
	EndTime        string    `json:"end_time,omitempty" bson:"end_time,omitempty" validate:"omitempty,clock_time"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Confirmed reports whether the event has a committed slot.
func (ge *GroupEvent) Confirmed() bool {
	return ge.Status == StatusConfirmed
}

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
)
