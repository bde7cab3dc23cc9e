// Package workflow is the editorial state machine: status codes, roles, the
// permitted-action policy table and the transition performer. Everything here
// is a pure function of its inputs except Performer and Counts, which own the
// mutation side effects.
package workflow

// Status is a content record's numeric workflow state.
type Status int

const (
	StatusDraft          Status = 1  // new submission, not yet claimed
	StatusInputQueue     Status = 2  // waiting in input
	StatusOutputQueue    Status = 3  // waiting in output
	StatusPublished      Status = 5  // terminal for this machine
	StatusInputReturned  Status = 7  // input returned to reporter
	StatusOutputToInput  Status = 8  // output returned to input
	StatusInputEditing   Status = 9  // locked for input edit
	StatusOutputEditing  Status = 10 // locked for output edit
	StatusOutputReturned Status = 11 // output returned to reporter
)

var statusLabels = map[Status]string{
	StatusDraft:          "New",
	StatusInputQueue:     "Waiting in input",
	StatusOutputQueue:    "Waiting in output",
	StatusPublished:      "Published",
	StatusInputReturned:  "Returned to reporter",
	StatusOutputToInput:  "Returned to input",
	StatusInputEditing:   "In input edit",
	StatusOutputEditing:  "In output edit",
	StatusOutputReturned: "Returned to reporter",
}

// Known reports whether s is a status this machine models.
func (s Status) Known() bool {
	_, ok := statusLabels[s]
	return ok
}

// Label is the human form of the status; the server's status_text wins when
// present, this is the fallback.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return "Unknown"
}

// Locked statuses carry an exclusive edit claim by one user.
func (s Status) LockedStatus() bool {
	return s == StatusInputEditing || s == StatusOutputEditing
}

// Role is the acting user's desk role.
type Role string

const (
	RoleStringer Role = "stringer" // originator, view-only here
	RoleInput    Role = "input"
	RoleOutput   Role = "output"
	RoleAdmin    Role = "admin" // administrative, not gated by this machine
)

// User is the acting identity as the policy table sees it.
type User struct {
	ID   int
	Name string
	Role Role
}
