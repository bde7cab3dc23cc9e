// Package api is the client for the editorial backend. It owns the wire
// contract and the normalization of the backend's loosely shaped responses;
// the rest of the app only ever sees the fully populated types below.
package api

import "github.com/jask/newsdesk/internal/workflow"

// Priority values as the backend reports them.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityBreaking = "breaking"
)

// Location of a content record. The backend sends either a bare string or an
// {id, name} object; both normalize here.
type Location struct {
	ID   string
	Name string
}

type Attachment struct {
	Path string
	MIME string
}

type Comment struct {
	ID          int
	Text        string
	CreatedBy   int
	CreatedName string
	CreatedDate string
}

// Lock identifies the user holding a record's edit claim.
type Lock struct {
	LockedBy     int
	LockedByName string
}

// ContentRecord is one editorial item. Locked is true iff Lock.LockedBy is a
// valid user id; Version only ever increases.
type ContentRecord struct {
	ID          int
	Headline    string
	Description string
	Location    Location
	Priority    string
	ContentType string
	Tags        []string

	Status     workflow.Status
	StatusText string
	Version    int
	Locked     bool
	Lock       Lock

	CreatedDate string
	UpdatedDate string
	CreatedBy   int
	CreatedName string

	Attachments []Attachment
	Comments    []Comment
}

// State projects the record onto the slice the workflow policy table reads.
func (r ContentRecord) State() workflow.RecordState {
	return workflow.RecordState{
		Status:   r.Status,
		Locked:   r.Locked,
		LockedBy: r.Lock.LockedBy,
		Version:  r.Version,
	}
}

// StatusLabel prefers the backend's status_text, falling back to the local
// label when the backend omitted it.
func (r ContentRecord) StatusLabel() string {
	if r.StatusText != "" {
		return r.StatusText
	}
	return r.Status.Label()
}

// Page is one page of list results plus the total match count.
type Page struct {
	Results      []ContentRecord
	TotalRecords int
}
