package dashboard

import (
	"github.com/Spok95/geosites/internal/domain/sites"
	"github.com/Spok95/geosites/internal/domain/submissions"
)

type UserCounts struct {
	Total int64 `json:"total"`
}

type StatusCounts struct {
	Total    int64 `json:"total"`
	Approved int64 `json:"approved"`
	Pending  int64 `json:"pending"`
	Rejected int64 `json:"rejected"`
}

type Stats struct {
	Users       UserCounts   `json:"users"`
	Sites       StatusCounts `json:"sites"`
	Submissions StatusCounts `json:"submissions"`
}

type Activity struct {
	RecentSites       []sites.Site             `json:"recentSites"`
	RecentSubmissions []submissions.Submission `json:"recentSubmissions"`
}
