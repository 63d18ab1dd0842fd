package domain

import "time"

// Journey lifecycle subjects.
const (
	SubjectJourneySubmitted     = "journey.submitted"
	SubjectJourneyAssigned      = "journey.assigned"
	SubjectJourneyStatusChanged = "journey.status_changed"
)

type JourneySubmittedEvent struct {
	JourneyID string    `json:"journey_id"`
	UserID    string    `json:"user_id"`
	At        time.Time `json:"at"`
}

type JourneyAssignedEvent struct {
	JourneyID  string    `json:"journey_id"`
	AssignedTo *string   `json:"assigned_to"`
	By         string    `json:"by"`
	At         time.Time `json:"at"`
}

type JourneyStatusChangedEvent struct {
	JourneyID string        `json:"journey_id"`
	Status    JourneyStatus `json:"status"`
	By        string        `json:"by"`
	At        time.Time     `json:"at"`
}
