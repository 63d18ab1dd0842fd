package domain

import (
	"strings"
	"time"
)

type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Admin is the capability handed to triage handlers once the guard has
// verified the admin flag for the current session.
type Admin struct {
	ID    string
	Name  string
	Email string
}

type Person struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type JourneyStatus string

const (
	StatusPending   JourneyStatus = "pending"
	StatusReviewed  JourneyStatus = "reviewed"
	StatusContacted JourneyStatus = "contacted"
)

// ParseJourneyStatus accepts only the three stored values, exact match.
func ParseJourneyStatus(s string) (JourneyStatus, bool) {
	switch JourneyStatus(s) {
	case StatusPending, StatusReviewed, StatusContacted:
		return JourneyStatus(s), true
	}
	return "", false
}

type Journey struct {
	ID          string        `json:"id"`
	UserID      string        `json:"userId"`
	TravelStyle *string       `json:"travelStyle"`
	Destination *string       `json:"destination"`
	Budget      *string       `json:"budget"`
	Duration    *string       `json:"duration"`
	Preferences *string       `json:"preferences"`
	Status      JourneyStatus `json:"status"`
	AssignedTo  *string       `json:"assignedTo"`
	CreatedAt   time.Time     `json:"createdAt"`
}

// JourneyView is a journey joined with its owner (list and detail views).
type JourneyView struct {
	Journey
	UserName      *string `json:"userName"`
	UserEmail     *string `json:"userEmail"`
	AssignedAdmin *Person `json:"assignedAdmin"`
}

type NewJourney struct {
	UserID      string
	TravelStyle *string
	Destination *string
	Budget      *string
	Duration    *string
	Preferences *string
}

type Note struct {
	ID        string    `json:"id"`
	JourneyID string    `json:"journeyId"`
	AdminID   string    `json:"adminId"`
	AdminName *string   `json:"adminName,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type File struct {
	ID         string    `json:"id"`
	JourneyID  string    `json:"journeyId"`
	AdminID    string    `json:"adminId"`
	AdminName  *string   `json:"adminName,omitempty"`
	Filename   string    `json:"filename"`
	Locator    string    `json:"filepath"`
	FileType   string    `json:"fileType"`
	FileSize   int64     `json:"fileSize"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// IsRemote reports whether the locator points at the object store rather
// than the local upload directory.
func (f File) IsRemote() bool { return IsRemoteLocator(f.Locator) }

func IsRemoteLocator(loc string) bool {
	l := strings.ToLower(loc)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}

type JourneyDetail struct {
	Journey JourneyView `json:"journey"`
	Notes   []Note      `json:"notes"`
	Files   []File      `json:"files"`
}
