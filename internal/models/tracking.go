package models

import "time"

// TrackingState is the persisted marker of an open cleanup cycle.
// InitialDate and TicketID are either both set or both empty.
type TrackingState struct {
	InitialDate *time.Time `json:"initialDate,omitempty"`
	TicketID    string     `json:"ticketId,omitempty"`
}

// Open reports whether a cleanup cycle is in progress
func (s TrackingState) Open() bool {
	return s.InitialDate != nil
}
