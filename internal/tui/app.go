// Package tui is the newsdesk terminal UI: a desk overview with queue badges
// and intake chart, a browse view over the filter engine, and a detail
// overlay where workflow actions run.
package tui

import (
	"context"
	"sort"
	"strconv"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/newsdesk/internal/api"
	"github.com/jask/newsdesk/internal/config"
	"github.com/jask/newsdesk/internal/prefs"
	"github.com/jask/newsdesk/internal/query"
	"github.com/jask/newsdesk/internal/workflow"
)

type view int

const (
	viewDesk view = iota
	viewBrowse
)

type browseFocus int

const (
	focusNone browseFocus = iota
	focusSearch
	focusDateFrom
	focusDateTo
)

// Model is the app state. It lives on the Bubble Tea event loop; commands do
// the blocking I/O and report back as messages.
type Model struct {
	ctx     context.Context
	cfg     config.Config
	backend Backend
	counts  *workflow.Counts
	presets *prefs.Store

	width  int
	height int

	activeView view

	// browse state
	filter  query.Filter
	seq     query.Sequence
	records []api.ContentRecord
	total   int
	cursor  int
	loading bool
	errText string
	flash   string

	// picker options accumulated from every page fetched this session
	locationOpts map[string]string
	authorOpts   map[string]string

	focus         browseFocus
	searchInput   textinput.Model
	dateFromInput textinput.Model
	dateToInput   textinput.Model

	picker *picker
	detail *detailState
}

type detailState struct {
	rec             api.ContentRecord // current record state
	snapshot        api.ContentRecord // fields of the displayed version
	selectedVersion int
	loadingVersion  bool

	commentInput    textinput.Model
	composing       bool
	commentInFlight bool

	transitionInFlight bool
}

// displayed returns the record as shown: the live record on the latest
// version, otherwise the historical snapshot.
func (d *detailState) displayed() api.ContentRecord {
	if d.selectedVersion == d.rec.Version {
		return d.rec
	}
	return d.snapshot
}

// New builds the app model. The browse view starts in latest-month mode.
func New(ctx context.Context, cfg config.Config, backend Backend, counts *workflow.Counts, presets *prefs.Store) *Model {
	search := textinput.New()
	search.Placeholder = "search headlines and text"
	search.CharLimit = 120

	from := textinput.New()
	from.Placeholder = "YYYY-MM-DD"
	from.CharLimit = 10
	to := textinput.New()
	to.Placeholder = "YYYY-MM-DD"
	to.CharLimit = 10

	return &Model{
		ctx:           ctx,
		cfg:           cfg,
		backend:       backend,
		counts:        counts,
		presets:       presets,
		activeView:    viewDesk,
		filter:        query.New(cfg.UI.PageLimit, true),
		locationOpts:  make(map[string]string),
		authorOpts:    make(map[string]string),
		searchInput:   search,
		dateFromInput: from,
		dateToInput:   to,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd(), m.refreshCountsCmd())
}

// ---------------------------------------------------------------------------
// Overlay precedence
// ---------------------------------------------------------------------------
// The first matching guard owns the key. Same shape as the browse/detail
// views themselves: one table, one consumer, nothing re-derives priority.

type overlayEntry struct {
	name    string
	guard   func(*Model) bool
	handler func(*Model, tea.KeyMsg) (tea.Model, tea.Cmd)
}

func overlayPrecedence() []overlayEntry {
	return []overlayEntry{
		{
			name:    "picker",
			guard:   func(m *Model) bool { return m.picker != nil },
			handler: (*Model).updatePicker,
		},
		{
			name:    "composer",
			guard:   func(m *Model) bool { return m.detail != nil && m.detail.composing },
			handler: (*Model).updateComposer,
		},
		{
			name:    "detail",
			guard:   func(m *Model) bool { return m.detail != nil },
			handler: (*Model).updateDetail,
		},
		{
			name:    "filterInput",
			guard:   func(m *Model) bool { return m.focus != focusNone },
			handler: (*Model).updateFilterInput,
		},
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		for _, entry := range overlayPrecedence() {
			if entry.guard(m) {
				return entry.handler(m, msg)
			}
		}
		if m.activeView == viewBrowse {
			return m.updateBrowse(msg)
		}
		return m.updateDesk(msg)

	case activitiesMsg:
		if m.seq.Stale(msg.token) {
			return m, nil
		}
		m.loading = false
		m.errText = ""
		m.records = msg.page.Results
		m.total = msg.page.TotalRecords
		if m.cursor >= len(m.records) {
			m.cursor = 0
		}
		m.collectOptions(msg.page.Results)
		return m, nil

	case activitiesErrMsg:
		if m.seq.Stale(msg.token) {
			return m, nil
		}
		// Failed fetches clear the page rather than leaving stale rows up;
		// the footer offers a manual retry.
		m.loading = false
		m.errText = msg.err.Error()
		m.records = nil
		m.total = 0
		m.cursor = 0
		return m, nil

	case countsMsg:
		if msg.err != nil && m.flash == "" {
			m.flash = "counts unavailable"
		}
		return m, nil

	case recordMsg:
		if m.detail != nil && m.detail.rec.ID == msg.rec.ID {
			m.detail.rec = msg.rec
			if m.detail.selectedVersion == 0 || m.detail.selectedVersion > msg.rec.Version {
				m.detail.selectedVersion = msg.rec.Version
			}
			if m.detail.selectedVersion == msg.rec.Version {
				m.detail.snapshot = msg.rec
			}
		}
		return m, nil

	case versionMsg:
		if m.detail == nil || m.detail.rec.ID != msg.id {
			return m, nil
		}
		m.detail.loadingVersion = false
		if m.detail.selectedVersion == msg.version {
			m.detail.snapshot = msg.rec
		}
		return m, nil

	case detailErrMsg:
		if m.detail != nil {
			m.detail.loadingVersion = false
		}
		m.flash = msg.err.Error()
		return m, nil

	case commentAddedMsg:
		if m.detail != nil && m.detail.rec.ID == msg.id {
			m.detail.commentInFlight = false
			m.detail.composing = false
			m.detail.rec.Comments = append(m.detail.rec.Comments, msg.comment)
			m.detail.commentInput.SetValue("")
			m.detail.commentInput.Blur()
		}
		return m, nil

	case commentErrMsg:
		// The draft is kept so the user can retry.
		if m.detail != nil {
			m.detail.commentInFlight = false
		}
		m.flash = msg.err.Error()
		return m, nil

	case transitionDoneMsg:
		m.detail = nil
		if msg.err != nil {
			m.flash = msg.err.Error()
		} else {
			m.flash = "done"
		}
		return m, m.navigate(msg.route)
	}

	return m, nil
}

// navigate moves the UI to a workflow route. Queue routes rebuild the browse
// filter pinned to that queue's status.
func (m *Model) navigate(route workflow.Route) tea.Cmd {
	switch route {
	case workflow.RouteInputQueue:
		return m.openQueue(workflow.StatusInputQueue)
	case workflow.RouteOutputQueue:
		return m.openQueue(workflow.StatusOutputQueue)
	case workflow.RouteDetail:
		// Reopen the listing the action came from; the record is refetched
		// when the user re-enters it.
		m.activeView = viewBrowse
		return m.fetchCmd()
	default:
		m.activeView = viewDesk
		return m.refreshCountsCmd()
	}
}

func (m *Model) openQueue(st workflow.Status) tea.Cmd {
	m.activeView = viewBrowse
	m.filter = query.New(m.cfg.UI.PageLimit, false)
	m.filter.Status = int(st)
	m.cursor = 0
	m.syncFilterInputs()
	return m.fetchCmd()
}

// openBrowseAll is the unpinned listing; as the session-scoped default view
// it starts in latest-month mode until the user touches a filter.
func (m *Model) openBrowseAll() tea.Cmd {
	m.activeView = viewBrowse
	m.filter = query.New(m.cfg.UI.PageLimit, true)
	m.cursor = 0
	m.syncFilterInputs()
	return m.fetchCmd()
}

func (m *Model) syncFilterInputs() {
	m.searchInput.SetValue(m.filter.SearchDraft)
	m.dateFromInput.SetValue(m.filter.DateFrom)
	m.dateToInput.SetValue(m.filter.DateTo)
}

func (m *Model) collectOptions(records []api.ContentRecord) {
	for _, r := range records {
		if r.Location.Name != "" {
			id := r.Location.ID
			if id == "" {
				id = r.Location.Name
			}
			m.locationOpts[id] = r.Location.Name
		}
		if r.CreatedBy > 0 && r.CreatedName != "" {
			m.authorOpts[strconv.Itoa(r.CreatedBy)] = r.CreatedName
		}
	}
}

// optionList flattens an id→label map into picker options sorted by label,
// carrying the current selection.
func optionList(opts map[string]string, selected query.Set) []pickerOption {
	out := make([]pickerOption, 0, len(opts))
	for id, label := range opts {
		out = append(out, pickerOption{id: id, label: label, selected: selected.Has(id)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].label < out[j].label })
	return out
}

var priorityOptions = []pickerOption{
	{id: api.PriorityLow, label: "Low"},
	{id: api.PriorityMedium, label: "Medium"},
	{id: api.PriorityHigh, label: "High"},
	{id: api.PriorityBreaking, label: "Breaking"},
}

func (m *Model) priorityOptionList() []pickerOption {
	out := make([]pickerOption, len(priorityOptions))
	copy(out, priorityOptions)
	for i := range out {
		out[i].selected = m.filter.Priorities.Has(out[i].id)
	}
	return out
}
