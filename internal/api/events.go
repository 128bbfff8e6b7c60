package api

import (
	"context"
	"fmt"

	"github.com/syrianarchive/archivectl/internal/model"
)

// EventsService covers documented incidents that posts attach to.
type EventsService struct {
	client *Client
}

// List returns approved events.
func (s *EventsService) List(ctx context.Context, opts ListOptions) (model.Page[model.Event], error) {
	var page model.Page[model.Event]
	err := s.client.Get(ctx, "/events/", opts.values(20), &page)
	return page, err
}

// Get returns one approved event.
func (s *EventsService) Get(ctx context.Context, id int64) (*model.Event, error) {
	var event model.Event
	if err := s.client.Get(ctx, fmt.Sprintf("/events/%d/", id), nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// Create submits a new event; it stays pending until an admin approves it.
func (s *EventsService) Create(ctx context.Context, draft model.EventDraft) (*model.Event, error) {
	if draft.Title == "" {
		return nil, validationError("title is required")
	}
	if draft.Date == "" {
		return nil, validationError("date is required (YYYY-MM-DD)")
	}

	var event model.Event
	if err := s.client.Post(ctx, "/events/", draft, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
