package workflow

// Action is one user-triggerable workflow operation on a content record.
type Action uint8

const (
	ActionEdit             Action = iota // open the editor, no status change
	ActionLockEdit                       // claim the lock and enter the edit status
	ActionReturnToReporter               // send back to the originating reporter
	ActionMoveToOutput                   // hand over from input to output
	ActionReturnToInput                  // send back from output to input
	ActionUnlock                         // release a lock without a transition; never granted (removed feature)
	actionCount
)

var actionLabels = [actionCount]string{
	ActionEdit:             "Edit",
	ActionLockEdit:         "Lock & edit",
	ActionReturnToReporter: "Return to reporter",
	ActionMoveToOutput:     "Move to output",
	ActionReturnToInput:    "Return to input",
	ActionUnlock:           "Unlock",
}

func (a Action) Label() string {
	if int(a) < len(actionLabels) {
		return actionLabels[a]
	}
	return "?"
}

// ActionSet is a small set of Actions.
type ActionSet uint8

func NewActionSet(actions ...Action) ActionSet {
	var s ActionSet
	for _, a := range actions {
		s |= 1 << a
	}
	return s
}

func (s ActionSet) Has(a Action) bool { return s&(1<<a) != 0 }
func (s ActionSet) Empty() bool       { return s == 0 }

// Actions lists the members in declaration order, so action bars render
// consistently.
func (s ActionSet) Actions() []Action {
	var out []Action
	for a := Action(0); a < actionCount; a++ {
		if s.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// RecordState is the slice of a content record the policy table reads.
type RecordState struct {
	Status   Status
	Locked   bool
	LockedBy int // user id holding the lock; meaningful only when Locked
	Version  int // current latest version number
}

// rule is one row of the permission table. A zero role matches input, output
// and admin (never stringer, which is view-only everywhere).
type rule struct {
	role        Role
	status      Status
	needOwnLock bool
	grant       ActionSet
}

// permissionTable is the single source of truth for role × status → actions.
// PermittedActions is its only consumer; view code never re-derives this.
var permissionTable = []rule{
	{role: RoleInput, status: StatusInputQueue,
		grant: NewActionSet(ActionLockEdit, ActionReturnToReporter, ActionMoveToOutput)},
	{role: RoleInput, status: StatusInputEditing, needOwnLock: true,
		grant: NewActionSet(ActionEdit, ActionReturnToReporter, ActionMoveToOutput)},
	{role: RoleOutput, status: StatusOutputQueue,
		grant: NewActionSet(ActionLockEdit, ActionReturnToReporter, ActionReturnToInput)},
	{role: RoleOutput, status: StatusOutputEditing, needOwnLock: true,
		grant: NewActionSet(ActionEdit, ActionReturnToReporter, ActionReturnToInput)},
	{status: StatusDraft,
		grant: NewActionSet(ActionEdit)},
}

// PermittedActions computes the legal actions for a user looking at a record
// with selectedVersion displayed. It is a pure lookup over the permission
// table plus two cross-cutting gates:
//
//   - a lock held by someone else blocks every action on that record;
//   - edit (plain or lock-and-edit) is only reachable while the displayed
//     version is the latest one, so structural edits never target a stale
//     snapshot.
func PermittedActions(rs RecordState, u User, selectedVersion int) ActionSet {
	if u.Role == RoleStringer {
		return 0
	}
	if rs.Locked && rs.LockedBy != u.ID {
		return 0
	}

	var granted ActionSet
	for _, r := range permissionTable {
		if r.status != rs.Status {
			continue
		}
		if r.role != "" && r.role != u.Role {
			continue
		}
		if r.needOwnLock && !(rs.Locked && rs.LockedBy == u.ID) {
			continue
		}
		granted |= r.grant
	}

	if selectedVersion != rs.Version {
		granted &^= NewActionSet(ActionEdit, ActionLockEdit)
	}
	return granted
}

// Route is a listing destination the UI navigates to after a transition.
type Route string

const (
	RouteDesk        Route = "desk"
	RouteInputQueue  Route = "input-queue"
	RouteOutputQueue Route = "output-queue"
	RouteDetail      Route = "detail"
)

// Transition describes the single status mutation an action issues and the
// route the UI navigates to afterwards. The route is used on success and on
// failure alike: the user is never left on a stale detail view.
type Transition struct {
	Action Action
	Target Status
	Route  Route
}

var transitions = map[Role]map[Action]Transition{
	RoleInput: {
		ActionLockEdit:         {Action: ActionLockEdit, Target: StatusInputEditing, Route: RouteDetail},
		ActionReturnToReporter: {Action: ActionReturnToReporter, Target: StatusInputReturned, Route: RouteInputQueue},
		ActionMoveToOutput:     {Action: ActionMoveToOutput, Target: StatusOutputQueue, Route: RouteInputQueue},
	},
	RoleOutput: {
		ActionLockEdit:         {Action: ActionLockEdit, Target: StatusOutputEditing, Route: RouteDetail},
		ActionReturnToReporter: {Action: ActionReturnToReporter, Target: StatusOutputReturned, Route: RouteOutputQueue},
		ActionReturnToInput:    {Action: ActionReturnToInput, Target: StatusOutputToInput, Route: RouteOutputQueue},
	},
}

// TransitionFor resolves the mutation for a role's action. ActionEdit has no
// transition: plain edit changes no status.
func TransitionFor(role Role, a Action) (Transition, bool) {
	tr, ok := transitions[role][a]
	return tr, ok
}
