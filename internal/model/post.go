package model

import "time"

// PostStatus gates visibility: only approved posts appear in default list
// queries. Status transitions are admin-only and happen server-side.
type PostStatus string

const (
	PostPendingReview PostStatus = "pending_review"
	PostApproved      PostStatus = "approved"
	PostRejected      PostStatus = "rejected"
	PostRemoved       PostStatus = "removed"
)

// ReportReason is the fixed enumeration accepted by the report endpoint.
type ReportReason string

const (
	ReasonSpam      ReportReason = "spam"
	ReasonFakeNews  ReportReason = "fake_news"
	ReasonOffensive ReportReason = "offensive"
	ReasonOther     ReportReason = "other"
)

// Valid reports whether the reason is one of the accepted values.
func (r ReportReason) Valid() bool {
	switch r {
	case ReasonSpam, ReasonFakeNews, ReasonOffensive, ReasonOther:
		return true
	}
	return false
}

// Post is an archived report submitted by a user.
type Post struct {
	ID            int64      `json:"id"`
	User          User       `json:"user"`
	Event         *Event     `json:"event,omitempty"`
	People        []Person   `json:"people,omitempty"`
	Title         string     `json:"title,omitempty"`
	Content       string     `json:"content"`
	Attachment    string     `json:"attachment,omitempty"`
	Status        PostStatus `json:"status"`
	ReportCount   int        `json:"report_count"`
	IsVerified    bool       `json:"is_verified"`
	CreatedAt     time.Time  `json:"created_at"`
	LikesCount    int        `json:"likes_count"`
	TrustsCount   int        `json:"trusts_count"`
	CommentsCount int        `json:"comments_count"`
}

// PostDraft is the create/update payload. Optional fields are pointers so
// absent values are omitted from the JSON body instead of sent as null.
type PostDraft struct {
	Title      *string `json:"title,omitempty"`
	Content    string  `json:"content"`
	Attachment *string `json:"attachment,omitempty"`
	EventID    *int64  `json:"event,omitempty"`
}

// LikeResult is the response of the like toggle.
type LikeResult struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likes_count"`
}

// TrustResult is the response of the trust toggle. IsVerified reflects the
// server's threshold policy and is authoritative; the client never recomputes
// it.
type TrustResult struct {
	Trusted     bool `json:"trusted"`
	TrustsCount int  `json:"trusts_count"`
	IsVerified  bool `json:"is_verified"`
}

// PostReport is a moderation report record.
type PostReport struct {
	ID        int64        `json:"id"`
	PostID    int64        `json:"post"`
	User      User         `json:"user"`
	Reason    ReportReason `json:"reason"`
	Status    string       `json:"status,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// PostVerification records a formal verification by a privileged user.
// Type is derived server-side from the verifier's role ("journalist_confirm"
// or "politician_confirm").
type PostVerification struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"post"`
	User      User      `json:"user"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}
