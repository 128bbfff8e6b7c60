package model

import "time"

// RequestedRole is the role a user may apply for with a verification request.
type RequestedRole string

const (
	RequestJournalist RequestedRole = "journalist"
	RequestPolitician RequestedRole = "politician"
)

// Valid reports whether the requested role is one of the accepted values.
func (r RequestedRole) Valid() bool {
	return r == RequestJournalist || r == RequestPolitician
}

// VerificationRequestStatus tracks the review lifecycle of a request.
// The server rejects a new request while one is pending or under review.
type VerificationRequestStatus string

const (
	VerificationPending     VerificationRequestStatus = "pending"
	VerificationUnderReview VerificationRequestStatus = "under_review"
	VerificationApproved    VerificationRequestStatus = "approved"
	VerificationDenied      VerificationRequestStatus = "denied"
)

// VerificationRequest is a user's application for a privileged role backed by
// an identity document.
type VerificationRequest struct {
	ID            int64                     `json:"id"`
	User          User                      `json:"user"`
	RequestedRole RequestedRole             `json:"requested_role"`
	UIDDocument   string                    `json:"uid_document,omitempty"`
	CreatedAt     time.Time                 `json:"created_at"`
	Status        VerificationRequestStatus `json:"status"`
}

// VerificationRequestDraft is the create payload.
type VerificationRequestDraft struct {
	RequestedRole RequestedRole `json:"requested_role"`
	UIDDocument   string        `json:"uid_document"`
}
