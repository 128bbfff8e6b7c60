package model

import "time"

// PersonRole classifies a person's relation to archived events.
type PersonRole string

const (
	PersonVictim      PersonRole = "victim"
	PersonWitness     PersonRole = "witness"
	PersonPerpetrator PersonRole = "perpetrator"
	PersonJournalist  PersonRole = "journalist"
	PersonActivist    PersonRole = "activist"
	PersonOfficial    PersonRole = "official"
	PersonOther       PersonRole = "other"
)

// Valid reports whether the role is one of the accepted values.
func (r PersonRole) Valid() bool {
	switch r {
	case PersonVictim, PersonWitness, PersonPerpetrator, PersonJournalist,
		PersonActivist, PersonOfficial, PersonOther:
		return true
	}
	return false
}

// ApprovalStatus gates persons and events the same way PostStatus gates posts.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
)

// Person is an individual referenced by archived posts.
type Person struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Role      PersonRole     `json:"role"`
	Image     string         `json:"image,omitempty"`
	AddedBy   *User          `json:"added_by,omitempty"`
	Status    ApprovalStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
}

// PersonDraft is the create payload for persons.
type PersonDraft struct {
	Name  string     `json:"name"`
	Role  PersonRole `json:"role"`
	Image *string    `json:"image,omitempty"`
}
