package models

import "time"

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location is a node in the relief transport network. Immutable once
// created; owned by the graph store.
type Location struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Coordinates Coordinates `json:"coordinates"`
	Center      bool        `json:"is_center"` // usable as a dispatch center
}

// RouteEdge is a stored connection between two locations. Distance is in
// abstract map units; travel time derives from it via config.MinutesPerUnit.
type RouteEdge struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Distance float64 `json:"distance"`
	Directed bool    `json:"directed"`
}

// DisasterArea is an affected area awaiting prioritization. UrgencyScore is
// recomputed by the ranker; everything else is set at creation.
type DisasterArea struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Severity     int     `json:"severity"`   // 1..10
	Population   int     `json:"population"` // >= 1
	DelayTime    int     `json:"delay_time"` // hours since report
	UrgencyScore float64 `json:"urgency_score"`
}

type SupplyItem struct {
	ID       string `json:"id"`
	Name     string `json:"item_name"`
	Weight   int    `json:"weight"`   // > 0
	Utility  int    `json:"utility"`  // 1..10
	Quantity int    `json:"quantity"` // available units, >= 0
}

type VolunteerStatus string

const (
	VolunteerAvailable VolunteerStatus = "available"
	VolunteerAssigned  VolunteerStatus = "assigned"
	VolunteerBusy      VolunteerStatus = "busy"
)

type Volunteer struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Skills     []string        `json:"skills"`
	Location   string          `json:"location"`
	Status     VolunteerStatus `json:"status"`
	AssignedTo string          `json:"assigned_to,omitempty"`
}

type Region struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Capacity     int      `json:"capacity"`      // max volunteers it can absorb
	DemandSkills []string `json:"demand_skills"` // tags it needs
}

type UrgencyLevel string

const (
	UrgencyLow      UrgencyLevel = "Low"
	UrgencyMedium   UrgencyLevel = "Medium"
	UrgencyHigh     UrgencyLevel = "High"
	UrgencyCritical UrgencyLevel = "Critical"
)

// Message is an analyzed free-text relief request. Immutable after the
// scanner derives its urgency fields.
type Message struct {
	ID            string       `json:"id"`
	Text          string       `json:"message"`
	Source        string       `json:"source"`
	Timestamp     time.Time    `json:"timestamp"`
	UrgencyScore  int          `json:"urgency_score"`
	UrgencyLevel  UrgencyLevel `json:"urgency_level"`
	KeywordsFound []string     `json:"keywords_found"`
}
