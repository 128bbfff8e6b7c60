package api

import (
	"context"
	"fmt"

	"github.com/syrianarchive/archivectl/internal/model"
)

// UsersService reads user accounts and manages the caller's profile.
type UsersService struct {
	client *Client
}

// List returns active, non-banned users.
func (s *UsersService) List(ctx context.Context, opts ListOptions) (model.Page[model.User], error) {
	var page model.Page[model.User]
	err := s.client.Get(ctx, "/users/", opts.values(20), &page)
	return page, err
}

// Get returns one user by id.
func (s *UsersService) Get(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := s.client.Get(ctx, fmt.Sprintf("/users/%d/", id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Profile returns the authenticated user's own record.
func (s *UsersService) Profile(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := s.client.GetFresh(ctx, "/profile/", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ProfileUpdate carries the writable profile fields; absent fields are
// omitted from the payload.
type ProfileUpdate struct {
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

// UpdateProfile patches the authenticated user's record.
func (s *UsersService) UpdateProfile(ctx context.Context, update ProfileUpdate) (*model.User, error) {
	var user model.User
	if err := s.client.Patch(ctx, "/profile/", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
