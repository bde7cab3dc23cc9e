package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/newsdesk/internal/api"
	"github.com/jask/newsdesk/internal/query"
	"github.com/jask/newsdesk/internal/workflow"
)

// Backend is the slice of the api client the UI consumes. *api.Client
// satisfies it; tests plug in fakes.
type Backend interface {
	FetchActivities(ctx context.Context, p query.Params) (api.Page, error)
	GetContent(ctx context.Context, id int) (api.ContentRecord, error)
	GetContentVersion(ctx context.Context, id, version int) (api.ContentRecord, error)
	UpdateStatus(ctx context.Context, id int, target workflow.Status) error
	AddComment(ctx context.Context, id int, text string) (api.Comment, error)
	FetchCounts(ctx context.Context) (workflow.CountsSnapshot, error)
}

// fetchCmd issues the list fetch for the current filter. The token taken
// here is compared on arrival; only the newest in-flight fetch may land.
func (m *Model) fetchCmd() tea.Cmd {
	token := m.seq.Next()
	params := m.filter.Compose()
	m.loading = true
	return func() tea.Msg {
		page, err := m.backend.FetchActivities(m.ctx, params)
		if err != nil {
			return activitiesErrMsg{token: token, err: err}
		}
		return activitiesMsg{token: token, page: page}
	}
}

func (m *Model) refreshCountsCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.counts.Refresh(m.ctx)
		snap, _ := m.counts.Get()
		return countsMsg{snap: snap, err: err}
	}
}

func (m *Model) loadRecordCmd(id int) tea.Cmd {
	return func() tea.Msg {
		rec, err := m.backend.GetContent(m.ctx, id)
		if err != nil {
			return detailErrMsg{err: err}
		}
		return recordMsg{rec: rec}
	}
}

func (m *Model) loadVersionCmd(id, version int) tea.Cmd {
	return func() tea.Msg {
		rec, err := m.backend.GetContentVersion(m.ctx, id, version)
		if err != nil {
			return detailErrMsg{err: err}
		}
		return versionMsg{id: id, version: version, rec: rec}
	}
}

func (m *Model) addCommentCmd(id int, text string) tea.Cmd {
	return func() tea.Msg {
		comment, err := m.backend.AddComment(m.ctx, id, text)
		if err != nil {
			return commentErrMsg{err: err}
		}
		return commentAddedMsg{id: id, comment: comment}
	}
}

// transitionCmd runs the full transition sequence off the event loop: the
// status mutation, then the awaited counts refresh, then the navigation
// route is carried back in the message. The Performer guarantees a route is
// produced whether or not the mutation succeeded.
func (m *Model) transitionCmd(id int, tr workflow.Transition) tea.Cmd {
	backend, counts, ctx := m.backend, m.counts, m.ctx
	return func() tea.Msg {
		var route workflow.Route
		p := &workflow.Performer{
			Mutator:  backend,
			Counts:   counts,
			Navigate: func(r workflow.Route) { route = r },
		}
		err := p.Perform(ctx, id, tr)
		return transitionDoneMsg{route: route, err: err}
	}
}
