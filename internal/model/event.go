package model

// Event groups archived posts around a documented incident.
type Event struct {
	ID           int64          `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description,omitempty"`
	Date         string         `json:"date"` // YYYY-MM-DD
	CreatedBy    *User          `json:"created_by,omitempty"`
	Participants []Person       `json:"participants,omitempty"`
	Journalists  []User         `json:"journalists,omitempty"`
	Status       ApprovalStatus `json:"status"`
}

// EventDraft is the create payload for events.
type EventDraft struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Date        string  `json:"date"`
}
