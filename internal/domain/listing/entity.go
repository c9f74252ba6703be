// Package listing defines job listings as the backend returns them, and the application
// status an admin moves them through.
//
// Status graph:
//
//	new ──► viewed ──► applied
//	 │                    ▲
//	 └────────────────────┘
//
// applied is terminal.
package listing

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

type Status string

const (
	StatusNew     Status = ""
	StatusViewed  Status = "viewed"
	StatusApplied Status = "applied"
)

var ErrInvalidTransition = errors.New("invalid listing status transition")

var validTransitions = map[Status][]Status{
	StatusNew:    {StatusViewed, StatusApplied},
	StatusViewed: {StatusApplied},
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case StatusNew, StatusViewed, StatusApplied:
		return st, nil
	}
	return "", fmt.Errorf("unknown listing status %q", s)
}

// IsTransitionAllowed reports whether from -> to is permitted. Repeating the current
// status is allowed and is a no-op.
func IsTransitionAllowed(from, to Status) bool {
	if from == to {
		return true
	}
	return slices.Contains(validTransitions[from], to)
}

func (s Status) String() string {
	if s == StatusNew {
		return "new"
	}
	return string(s)
}

type Listing struct {
	ID           int64    `json:"id"`
	Title        string   `json:"title"`
	SalaryRange  string   `json:"salary_range"`
	Provider     string   `json:"provider"`
	CreatedAt    string   `json:"created_at"`
	Tags         []string `json:"tags"`
	Location     string   `json:"location"`
	ExternalLink string   `json:"external_link,omitempty"`
	Status       Status   `json:"status,omitempty"`
}

// PageEnvelope is one page of listings with the backend's pagination metadata.
type PageEnvelope struct {
	Rows        []Listing `json:"data"`
	CurrentPage int       `json:"current_page"`
	LastPage    int       `json:"last_page"`
	Total       int       `json:"total"`
}

// WithStatus returns a copy of the page where only the listing with id has its status
// replaced. found is false when the listing is not on this page.
func (p PageEnvelope) WithStatus(id int64, st Status) (out PageEnvelope, found bool) {
	out = p
	out.Rows = make([]Listing, len(p.Rows))
	copy(out.Rows, p.Rows)
	for i := range out.Rows {
		if out.Rows[i].ID == id {
			out.Rows[i].Status = st
			found = true
		}
	}
	return out, found
}

// Find returns the listing with id when it is on the page.
func (p PageEnvelope) Find(id int64) (Listing, bool) {
	for _, l := range p.Rows {
		if l.ID == id {
			return l, true
		}
	}
	return Listing{}, false
}
