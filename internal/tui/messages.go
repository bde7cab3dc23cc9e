package tui

import (
	"github.com/jask/newsdesk/internal/api"
	"github.com/jask/newsdesk/internal/workflow"
)

// ---------------------------------------------------------------------------
// Bubble Tea messages
// ---------------------------------------------------------------------------
// Every fetch result carries the sequence token it was issued with; Update
// drops any message whose token is no longer the latest, so out-of-order
// responses can never overwrite a newer page.

type activitiesMsg struct {
	token uint64
	page  api.Page
}

type activitiesErrMsg struct {
	token uint64
	err   error
}

type recordMsg struct {
	rec api.ContentRecord
}

type versionMsg struct {
	id      int
	version int
	rec     api.ContentRecord
}

type detailErrMsg struct {
	err error
}

type commentAddedMsg struct {
	id      int
	comment api.Comment
}

type commentErrMsg struct {
	err error
}

// transitionDoneMsg reports a finished workflow transition. route is set on
// success and on failure: navigation is fail-open.
type transitionDoneMsg struct {
	route workflow.Route
	err   error
}

type countsMsg struct {
	snap workflow.CountsSnapshot
	err  error
}
