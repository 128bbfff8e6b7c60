package model

import "time"

// Comment belongs to a post. Only the owner may update or delete it.
type Comment struct {
	ID         int64     `json:"id"`
	PostID     int64     `json:"post"`
	User       User      `json:"user"`
	Content    string    `json:"content,omitempty"`
	Attachment string    `json:"attachment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// CommentDraft is the create/update payload for comments.
type CommentDraft struct {
	Content    string  `json:"content"`
	Attachment *string `json:"attachment,omitempty"`
}
