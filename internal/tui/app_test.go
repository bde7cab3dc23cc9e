package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/newsdesk/internal/api"
	"github.com/jask/newsdesk/internal/config"
	"github.com/jask/newsdesk/internal/query"
	"github.com/jask/newsdesk/internal/workflow"
)

type fakeBackend struct {
	fetch        func(query.Params) (api.Page, error)
	updateStatus func(int, workflow.Status) error
	addComment   func(int, string) (api.Comment, error)
}

func (f *fakeBackend) FetchActivities(_ context.Context, p query.Params) (api.Page, error) {
	if f.fetch == nil {
		return api.Page{}, nil
	}
	return f.fetch(p)
}

func (f *fakeBackend) GetContent(_ context.Context, id int) (api.ContentRecord, error) {
	return api.ContentRecord{ID: id, Version: 1}, nil
}

func (f *fakeBackend) GetContentVersion(_ context.Context, id, version int) (api.ContentRecord, error) {
	return api.ContentRecord{ID: id, Version: version}, nil
}

func (f *fakeBackend) UpdateStatus(_ context.Context, id int, target workflow.Status) error {
	if f.updateStatus == nil {
		return nil
	}
	return f.updateStatus(id, target)
}

func (f *fakeBackend) AddComment(_ context.Context, id int, text string) (api.Comment, error) {
	if f.addComment == nil {
		return api.Comment{Text: text}, nil
	}
	return f.addComment(id, text)
}

func (f *fakeBackend) FetchCounts(_ context.Context) (workflow.CountsSnapshot, error) {
	return workflow.CountsSnapshot{}, nil
}

func newTestModel(backend *fakeBackend) *Model {
	cfg := config.Config{}
	cfg.User.ID = 7
	cfg.User.Name = "pat"
	cfg.User.Role = "input"
	cfg.UI.PageLimit = 20
	counts := workflow.NewCounts(backend.FetchCounts)
	return New(context.Background(), cfg, backend, counts, nil)
}

func page(total int, ids ...int) api.Page {
	p := api.Page{TotalRecords: total}
	for _, id := range ids {
		p.Results = append(p.Results, api.ContentRecord{ID: id, Headline: "story", Version: 1})
	}
	return p
}

func TestStaleFetchResponseIsDropped(t *testing.T) {
	backend := &fakeBackend{}
	m := newTestModel(backend)

	first := m.fetchCmd()
	second := m.fetchCmd()

	// The newer request completes first; the older response must not
	// overwrite it when it finally lands.
	backend.fetch = func(query.Params) (api.Page, error) { return page(1, 200), nil }
	newer := second()
	backend.fetch = func(query.Params) (api.Page, error) { return page(1, 100), nil }
	older := first()
	m.Update(newer)
	m.Update(older)

	if len(m.records) != 1 || m.records[0].ID != 200 {
		t.Fatalf("stale response overwrote listing: %+v", m.records)
	}
	if m.loading {
		t.Fatalf("loading should clear once the newest response lands")
	}
}

func TestFetchErrorClearsListing(t *testing.T) {
	backend := &fakeBackend{
		fetch: func(query.Params) (api.Page, error) {
			return api.Page{}, errors.New("boom")
		},
	}
	m := newTestModel(backend)
	m.records = page(3, 1, 2, 3).Results
	m.total = 3
	m.cursor = 2

	cmd := m.fetchCmd()
	m.Update(cmd())

	if m.records != nil || m.total != 0 || m.cursor != 0 {
		t.Fatalf("listing not cleared after failed fetch: %d records, total %d", len(m.records), m.total)
	}
	if m.errText == "" {
		t.Fatalf("error text should be set for the retry prompt")
	}
}

func TestStaleErrorDoesNotClobberFreshPage(t *testing.T) {
	backend := &fakeBackend{}
	m := newTestModel(backend)

	first := m.fetchCmd()
	second := m.fetchCmd()
	backend.fetch = func(query.Params) (api.Page, error) { return page(1, 42), nil }
	fresh := second()
	backend.fetch = func(query.Params) (api.Page, error) {
		return api.Page{}, errors.New("slow request failed")
	}
	stale := first()
	m.Update(fresh)
	m.Update(stale)

	if len(m.records) != 1 || m.records[0].ID != 42 {
		t.Fatalf("stale error cleared a fresh page: %+v", m.records)
	}
	if m.errText != "" {
		t.Fatalf("stale error surfaced: %q", m.errText)
	}
}

func TestTransitionFailureStillNavigates(t *testing.T) {
	backend := &fakeBackend{
		updateStatus: func(int, workflow.Status) error {
			return errors.New("conflict")
		},
	}
	m := newTestModel(backend)
	m.activeView = viewDesk
	m.detail = &detailState{rec: api.ContentRecord{ID: 9, Version: 1}}

	tr, ok := workflow.TransitionFor(workflow.RoleInput, workflow.ActionReturnToReporter)
	if !ok {
		t.Fatalf("input role should have a return transition")
	}
	msg := m.transitionCmd(9, tr)()
	done, ok := msg.(transitionDoneMsg)
	if !ok {
		t.Fatalf("got %T, want transitionDoneMsg", msg)
	}
	if done.err == nil {
		t.Fatalf("mutation error should surface")
	}
	if done.route != workflow.RouteInputQueue {
		t.Fatalf("route = %q, want the input queue even on failure", done.route)
	}

	m.Update(done)
	if m.detail != nil {
		t.Fatalf("detail overlay should close after a transition attempt")
	}
	if m.activeView != viewBrowse || m.filter.Status != int(workflow.StatusInputQueue) {
		t.Fatalf("expected navigation to the input queue listing, got view %d status %d", m.activeView, m.filter.Status)
	}
	if m.flash == "" {
		t.Fatalf("failure should be flashed")
	}
}

func TestComposerIgnoresEnterWhileSubmitInFlight(t *testing.T) {
	sent := 0
	backend := &fakeBackend{
		addComment: func(int, string) (api.Comment, error) {
			sent++
			return api.Comment{}, nil
		},
	}
	m := newTestModel(backend)
	m.detail = &detailState{rec: api.ContentRecord{ID: 4, Version: 1}, composing: true}
	m.detail.commentInput.SetValue("hold the front page")

	enter := tea.KeyMsg{Type: tea.KeyEnter}
	_, cmd := m.updateComposer(enter)
	if cmd == nil {
		t.Fatalf("first enter should submit")
	}
	if !m.detail.commentInFlight {
		t.Fatalf("submit should mark the composer in flight")
	}
	if _, again := m.updateComposer(enter); again != nil {
		t.Fatalf("second enter while in flight should be a no-op")
	}
	cmd()
	if sent != 1 {
		t.Fatalf("comment sent %d times, want 1", sent)
	}
}

func TestCommentErrorKeepsDraft(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	m.detail = &detailState{rec: api.ContentRecord{ID: 4, Version: 1}, composing: true, commentInFlight: true}
	m.detail.commentInput.SetValue("draft text")

	m.Update(commentErrMsg{err: errors.New("rejected")})

	if m.detail.commentInFlight {
		t.Fatalf("in-flight flag should reset on error")
	}
	if got := m.detail.commentInput.Value(); got != "draft text" {
		t.Fatalf("draft lost on error: %q", got)
	}
}

func TestCollectOptionsAccumulatesAcrossPages(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	m.collectOptions([]api.ContentRecord{
		{Location: api.Location{ID: "10", Name: "Metro"}, CreatedBy: 1, CreatedName: "Ana"},
	})
	m.collectOptions([]api.ContentRecord{
		{Location: api.Location{ID: "11", Name: "World"}, CreatedBy: 2, CreatedName: "Ben"},
		{Location: api.Location{ID: "10", Name: "Metro"}},
	})
	if len(m.locationOpts) != 2 {
		t.Fatalf("locations = %v, want 2 distinct entries", m.locationOpts)
	}
	if len(m.authorOpts) != 2 {
		t.Fatalf("authors = %v, want 2 distinct entries", m.authorOpts)
	}
}

func TestHistoricalVersionHidesEditActions(t *testing.T) {
	m := newTestModel(&fakeBackend{})
	m.detail = &detailState{
		rec: api.ContentRecord{
			ID:      3,
			Version: 4,
			Status:  workflow.StatusInputQueue,
		},
		selectedVersion: 4,
	}

	latest := workflow.NewActionSet(m.permittedActions()...)
	if !latest.Has(workflow.ActionLockEdit) {
		t.Fatalf("input role on the queue should be offered lock-and-edit")
	}

	m.detail.selectedVersion = 2
	historical := workflow.NewActionSet(m.permittedActions()...)
	if historical.Has(workflow.ActionLockEdit) || historical.Has(workflow.ActionEdit) {
		t.Fatalf("edit actions offered on a historical version: %v", historical.Actions())
	}
	if !historical.Has(workflow.ActionReturnToReporter) {
		t.Fatalf("non-edit actions should survive version switching")
	}
}

func TestQueueNavigationPinsStatus(t *testing.T) {
	backend := &fakeBackend{fetch: func(p query.Params) (api.Page, error) {
		if p.Status != int(workflow.StatusOutputQueue) {
			return api.Page{}, errors.New("wrong status filter")
		}
		return page(0), nil
	}}
	m := newTestModel(backend)

	cmd := m.openQueue(workflow.StatusOutputQueue)
	if m.filter.LatestMonth() {
		t.Fatalf("queue views must not run in latest-month mode")
	}
	msg := cmd()
	if _, ok := msg.(activitiesMsg); !ok {
		t.Fatalf("queue fetch failed: %+v", msg)
	}
}
