package sites

import (
	"encoding/json"
	"time"

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

type Site struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Location    json.RawMessage `json:"location"` // GeoJSON point, stored as-is
	Status      Status          `json:"status"`
	CreatedByID int64           `json:"createdById"`
	CreatedBy   *users.Ref      `json:"createdBy,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Input is what a caller provides to create a site.
type Input struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Location    json.RawMessage `json:"location"`
}

// Patch is a partial update; nil fields are left alone.
type Patch struct {
	Name        *string
	Description *string
	Location    json.RawMessage
}

func (p Patch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Location == nil
}
