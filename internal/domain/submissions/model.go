package submissions

import (
	"encoding/json"
	"time"

	"github.com/Spok95/geosites/internal/domain/sites"
	"github.com/Spok95/geosites/internal/domain/users"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Decision reports whether s is a status a review may set.
func (s Status) Decision() bool { return s == StatusApproved || s == StatusRejected }

// SiteData is the proposed site, stored as JSON and copied verbatim into a
// new site on approval.
type SiteData struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Location    json.RawMessage `json:"location"`
}

func (d SiteData) SiteInput() sites.Input {
	return sites.Input{Name: d.Name, Description: d.Description, Location: d.Location}
}

// Submission keeps ReviewedByID and ReviewedAt nil exactly while Status is
// PENDING.
type Submission struct {
	ID            int64      `json:"id"`
	SiteData      SiteData   `json:"siteData"`
	Status        Status     `json:"status"`
	SubmittedByID int64      `json:"submittedById"`
	SubmittedBy   *users.Ref `json:"submittedBy,omitempty"`
	ReviewedByID  *int64     `json:"reviewedById"`
	ReviewedBy    *users.Ref `json:"reviewedBy"`
	ReviewedAt    *time.Time `json:"reviewedAt"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type Filter struct {
	Status      Status
	SubmittedBy int64
}

// ReviewResult is what a committed review produced. Site is nil unless the
// decision was APPROVED.
type ReviewResult struct {
	Submission *Submission
	Site       *sites.Site
}
