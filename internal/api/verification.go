package api

import (
	"context"

	"github.com/syrianarchive/archivectl/internal/model"
)

// VerificationService covers role-upgrade applications. The server allows at
// most one pending or under-review request per user.
type VerificationService struct {
	client *Client
}

// Create submits a verification request for a privileged role backed by an
// identity document reference.
func (s *VerificationService) Create(ctx context.Context, draft model.VerificationRequestDraft) (*model.VerificationRequest, error) {
	if !draft.RequestedRole.Valid() {
		return nil, validationError("invalid requested role %q", draft.RequestedRole)
	}
	if draft.UIDDocument == "" {
		return nil, validationError("supporting document is required")
	}

	var request model.VerificationRequest
	if err := s.client.Post(ctx, "/verification-requests/", draft, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// My returns the caller's verification requests, newest first.
func (s *VerificationService) My(ctx context.Context, opts ListOptions) (model.Page[model.VerificationRequest], error) {
	var page model.Page[model.VerificationRequest]
	err := s.client.GetFresh(ctx, "/verification-requests/my/", opts.values(20), &page)
	return page, err
}
