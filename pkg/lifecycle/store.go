package lifecycle

import (
	"context"
	"fmt"
	"time"

	"github.com/younsl/ebsreaper/internal/models"
	"github.com/younsl/ebsreaper/pkg/utils"
)

// StateStore persists the tracking state as two parameters
type StateStore struct {
	params      ParameterStore
	dateParam   string
	ticketParam string
}

// NewStateStore creates a StateStore over the given parameter names
func NewStateStore(params ParameterStore, dateParam, ticketParam string) *StateStore {
	return &StateStore{
		params:      params,
		dateParam:   dateParam,
		ticketParam: ticketParam,
	}
}

// Load reads the tracking state. A missing date means no cycle is open.
// A date that does not parse is an error.
func (s *StateStore) Load(ctx context.Context) (models.TrackingState, error) {
	raw, found, err := s.params.Get(ctx, s.dateParam)
	if err != nil {
		return models.TrackingState{}, fmt.Errorf("error reading %s: %w", s.dateParam, err)
	}
	if !found || raw == "" {
		return models.TrackingState{}, nil
	}

	date, err := utils.ParseDate(raw)
	if err != nil {
		return models.TrackingState{}, fmt.Errorf("error parsing %s: %w", s.dateParam, err)
	}

	ticket, _, err := s.params.Get(ctx, s.ticketParam)
	if err != nil {
		return models.TrackingState{}, fmt.Errorf("error reading %s: %w", s.ticketParam, err)
	}

	return models.TrackingState{InitialDate: &date, TicketID: ticket}, nil
}

// Open persists a new cycle started today for ticketID
func (s *StateStore) Open(ctx context.Context, ticketID string, today time.Time) error {
	if err := s.params.Put(ctx, s.ticketParam, ticketID, "Ticket number in jira"); err != nil {
		return fmt.Errorf("error writing %s: %w", s.ticketParam, err)
	}
	if err := s.params.Put(ctx, s.dateParam, utils.FormatDate(today), "Initial Date"); err != nil {
		return fmt.Errorf("error writing %s: %w", s.dateParam, err)
	}
	return nil
}

// Clear removes both parameters, closing the cycle.
// The date goes first: a ticket left without a date still loads as no cycle.
func (s *StateStore) Clear(ctx context.Context) error {
	if err := s.params.Delete(ctx, s.dateParam); err != nil {
		return fmt.Errorf("error deleting %s: %w", s.dateParam, err)
	}
	if err := s.params.Delete(ctx, s.ticketParam); err != nil {
		return fmt.Errorf("error deleting %s: %w", s.ticketParam, err)
	}
	return nil
}
