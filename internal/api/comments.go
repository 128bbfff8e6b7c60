package api

import (
	"context"
	"fmt"

	"github.com/syrianarchive/archivectl/internal/model"
)

// CommentsService covers comments, which hang off posts for listing and
// creation but are addressed directly for read/update/delete.
type CommentsService struct {
	client *Client
}

// List returns the comments of a post, newest first.
func (s *CommentsService) List(ctx context.Context, postID int64, opts ListOptions) (model.Page[model.Comment], error) {
	var page model.Page[model.Comment]
	err := s.client.Get(ctx, fmt.Sprintf("/posts/%d/comments/", postID), opts.values(20), &page)
	return page, err
}

// Create adds a comment to an approved post.
func (s *CommentsService) Create(ctx context.Context, postID int64, draft model.CommentDraft) (*model.Comment, error) {
	if draft.Content == "" && draft.Attachment == nil {
		return nil, validationError("comment needs content or an attachment")
	}

	var comment model.Comment
	if err := s.client.Post(ctx, fmt.Sprintf("/posts/%d/comments/", postID), draft, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// Get returns one own comment.
func (s *CommentsService) Get(ctx context.Context, id int64) (*model.Comment, error) {
	var comment model.Comment
	if err := s.client.Get(ctx, fmt.Sprintf("/comments/%d/", id), nil, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// Update replaces an own comment.
func (s *CommentsService) Update(ctx context.Context, id int64, draft model.CommentDraft) (*model.Comment, error) {
	var comment model.Comment
	if err := s.client.Put(ctx, fmt.Sprintf("/comments/%d/", id), draft, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// Delete removes an own comment, reporting success as a boolean.
func (s *CommentsService) Delete(ctx context.Context, id int64) bool {
	return s.client.Delete(ctx, fmt.Sprintf("/comments/%d/", id))
}
