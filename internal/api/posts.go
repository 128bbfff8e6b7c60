package api

import (
	"context"
	"fmt"
	"strconv"

	"github.com/syrianarchive/archivectl/internal/model"
)

// PostsService covers post CRUD and the moderation workflow
// (like/trust/report/verify).
type PostsService struct {
	client *Client
}

// ListPostsOptions extends the common pagination with post filters.
type ListPostsOptions struct {
	ListOptions
	UserID  int64 // filter by owner
	EventID int64 // filter by related event
}

// List returns approved posts, newest first. Pending, rejected and removed
// posts never appear here; visibility gating is server-side.
func (s *PostsService) List(ctx context.Context, opts ListPostsOptions) (model.Page[model.Post], error) {
	params := opts.values(10)
	if opts.UserID > 0 {
		params.Set("user", strconv.FormatInt(opts.UserID, 10))
	}
	if opts.EventID > 0 {
		params.Set("event", strconv.FormatInt(opts.EventID, 10))
	}

	var page model.Page[model.Post]
	err := s.client.Get(ctx, "/posts/", params, &page)
	return page, err
}

// My returns the caller's own posts in every status.
func (s *PostsService) My(ctx context.Context, opts ListOptions) (model.Page[model.Post], error) {
	var page model.Page[model.Post]
	err := s.client.GetFresh(ctx, "/posts/my/", opts.values(10), &page)
	return page, err
}

// Get returns one approved post.
func (s *PostsService) Get(ctx context.Context, id int64) (*model.Post, error) {
	var post model.Post
	if err := s.client.Get(ctx, fmt.Sprintf("/posts/%d/", id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Create submits a new post. It lands in pending_review unless the server's
// auto-approval rules (privileged or identity-confirmed authors) apply.
func (s *PostsService) Create(ctx context.Context, draft model.PostDraft) (*model.Post, error) {
	if draft.Content == "" {
		return nil, validationError("content is required")
	}

	var post model.Post
	if err := s.client.Post(ctx, "/posts/", draft, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Update replaces an own post. The server scopes writes to the owner; a
// foreign id comes back as not found.
func (s *PostsService) Update(ctx context.Context, id int64, draft model.PostDraft) (*model.Post, error) {
	var post model.Post
	if err := s.client.Put(ctx, fmt.Sprintf("/posts/%d/", id), draft, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// Delete removes an own post, reporting success as a boolean.
func (s *PostsService) Delete(ctx context.Context, id int64) bool {
	return s.client.Delete(ctx, fmt.Sprintf("/posts/%d/", id))
}

// Like toggles the caller's like on a post. Calling it twice restores the
// previous state.
func (s *PostsService) Like(ctx context.Context, id int64) (*model.LikeResult, error) {
	var result model.LikeResult
	if err := s.client.Post(ctx, fmt.Sprintf("/posts/%d/like/", id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Trust toggles the caller's trust endorsement. Restricted to journalist,
// politician and admin roles; the local precheck fails early with the same
// kind of error the server would return. The returned IsVerified reflects the
// server's opaque threshold policy.
func (s *PostsService) Trust(ctx context.Context, id int64) (*model.TrustResult, error) {
	if sess, ok := s.client.Store().Current(); ok && sess.Role != "" && !sess.Role.CanModerate() {
		return nil, permissionError("role %q cannot trust posts", sess.Role)
	}

	var result model.TrustResult
	if err := s.client.Post(ctx, fmt.Sprintf("/posts/%d/trust/", id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Report files a moderation report against a post. Reasons outside the fixed
// enumeration are rejected locally. Repeat reports from the same user are
// allowed by the documented contract, so no client-side deduplication.
func (s *PostsService) Report(ctx context.Context, id int64, reason model.ReportReason) (*model.PostReport, error) {
	if !reason.Valid() {
		return nil, validationError("invalid report reason %q", reason)
	}

	var report model.PostReport
	err := s.client.Post(ctx, fmt.Sprintf("/posts/%d/report/", id), map[string]string{
		"reason": string(reason),
	}, &report)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// Verify files a formal verification, distinct from trust. Restricted to
// journalist, politician and admin roles; the server derives the verification
// type from the caller's role.
func (s *PostsService) Verify(ctx context.Context, id int64) (*model.PostVerification, error) {
	if sess, ok := s.client.Store().Current(); ok && sess.Role != "" && !sess.Role.CanModerate() {
		return nil, permissionError("role %q cannot verify posts", sess.Role)
	}

	var verification model.PostVerification
	if err := s.client.Post(ctx, fmt.Sprintf("/posts/%d/verify/", id), nil, &verification); err != nil {
		return nil, err
	}
	return &verification, nil
}
