package models

import (
	"errors"
	"time"
)

// Status is the publication state of a mentor session.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
)

// ErrInvalidStatus is returned for a status other than draft or published.
var ErrInvalidStatus = errors.New("status must be draft or published")

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Session is a mentor session record owned by a single user.
type Session struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    string    `json:"duration"`
	Date        string    `json:"date"`
	Mentor      string    `json:"mentor"`
	Status      Status    `json:"status"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SessionFields is the JSON body for POST /my-sessions/publish and
// POST /my-sessions/save-draft. Missing fields are stored empty.
type SessionFields struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	Date        string `json:"date"`
	Mentor      string `json:"mentor"`
}

// SessionUpdate is the JSON body for PUT /my-sessions/{id}.
// Nil fields are left untouched.
type SessionUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Duration    *string `json:"duration"`
	Date        *string `json:"date"`
	Mentor      *string `json:"mentor"`
	Status      *Status `json:"status"`
}

// Validate checks the optional status.
func (u SessionUpdate) Validate() error {
	if u.Status != nil && !u.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// Apply copies the provided fields onto s.
func (u SessionUpdate) Apply(s *Session) {
	if u.Title != nil {
		s.Title = *u.Title
	}
	if u.Description != nil {
		s.Description = *u.Description
	}
	if u.Duration != nil {
		s.Duration = *u.Duration
	}
	if u.Date != nil {
		s.Date = *u.Date
	}
	if u.Mentor != nil {
		s.Mentor = *u.Mentor
	}
	if u.Status != nil {
		s.Status = *u.Status
	}
}
