package api

import (
	"context"
	"fmt"

	"github.com/syrianarchive/archivectl/internal/model"
)

// PersonsService covers the person registry referenced by posts and events.
type PersonsService struct {
	client *Client
}

// List returns approved persons.
func (s *PersonsService) List(ctx context.Context, opts ListOptions) (model.Page[model.Person], error) {
	var page model.Page[model.Person]
	err := s.client.Get(ctx, "/persons/", opts.values(20), &page)
	return page, err
}

// Get returns one approved person.
func (s *PersonsService) Get(ctx context.Context, id int64) (*model.Person, error) {
	var person model.Person
	if err := s.client.Get(ctx, fmt.Sprintf("/persons/%d/", id), nil, &person); err != nil {
		return nil, err
	}
	return &person, nil
}

// Create submits a new person record; it stays pending until an admin
// approves it.
func (s *PersonsService) Create(ctx context.Context, draft model.PersonDraft) (*model.Person, error) {
	if draft.Name == "" {
		return nil, validationError("name is required")
	}
	if !draft.Role.Valid() {
		return nil, validationError("invalid person role %q", draft.Role)
	}

	var person model.Person
	if err := s.client.Post(ctx, "/persons/", draft, &person); err != nil {
		return nil, err
	}
	return &person, nil
}
