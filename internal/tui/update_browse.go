package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/newsdesk/internal/prefs"
	"github.com/jask/newsdesk/internal/query"
	"github.com/jask/newsdesk/internal/workflow"
)

func (m *Model) updateDesk(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab", "b":
		return m, m.openBrowseAll()
	case "i":
		return m, m.openQueue(workflow.StatusInputQueue)
	case "o":
		return m, m.openQueue(workflow.StatusOutputQueue)
	case "g":
		return m, m.openQueue(workflow.StatusPublished)
	case "r":
		m.counts.Invalidate()
		return m, m.refreshCountsCmd()
	}
	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.activeView = viewDesk
		return m, m.refreshCountsCmd()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.records)-1 {
			m.cursor++
		}
	case "enter":
		if m.cursor < len(m.records) {
			return m, m.openDetail(m.records[m.cursor])
		}
	case "left", "h":
		return m.changePage(m.filter.Page - 1)
	case "right", "l":
		return m.changePage(m.filter.Page + 1)
	case "/":
		m.focus = focusSearch
		m.searchInput.Focus()
		return m, nil
	case "d":
		m.focus = focusDateFrom
		m.dateFromInput.Focus()
		return m, nil
	case "L":
		m.picker = newPicker(pickerLocations, "Locations",
			true, optionList(m.locationOpts, m.filter.Locations))
		return m, nil
	case "p":
		m.picker = newPicker(pickerPriorities, "Priorities", true, m.priorityOptionList())
		return m, nil
	case "u":
		m.picker = newPicker(pickerAuthors, "Authors",
			true, optionList(m.authorOpts, m.filter.Authors))
		return m, nil
	case "a":
		m.filter.Apply()
		m.cursor = 0
		return m, m.fetchCmd()
	case "c":
		m.filter.Clear()
		m.cursor = 0
		m.syncFilterInputs()
		return m, m.fetchCmd()
	case "r":
		// manual retry after a failed fetch
		return m, m.fetchCmd()
	case "s":
		return m, m.savePreset()
	case "e":
		return m, m.openPresetPicker()
	}
	return m, nil
}

// changePage validates against the known total before moving; out-of-range
// requests coming from key repeat at the edges are simply ignored here, the
// engine itself would reject them loudly.
func (m *Model) changePage(n int) (tea.Model, tea.Cmd) {
	if n < 1 || n > query.TotalPages(m.total, m.filter.Limit) {
		return m, nil
	}
	if err := m.filter.ChangePage(n, m.total); err != nil {
		m.flash = err.Error()
		return m, nil
	}
	m.cursor = 0
	return m, m.fetchCmd()
}

// ---------------------------------------------------------------------------
// Filter bar text input
// ---------------------------------------------------------------------------

func (m *Model) updateFilterInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.blurInputs()
		m.syncFilterInputs()
		return m, nil
	case "enter":
		switch m.focus {
		case focusSearch:
			m.filter.SearchDraft = m.searchInput.Value()
			m.blurInputs()
			m.filter.Apply()
			m.cursor = 0
			return m, m.fetchCmd()
		case focusDateFrom:
			m.focus = focusDateTo
			m.dateFromInput.Blur()
			m.dateToInput.Focus()
			return m, nil
		case focusDateTo:
			m.blurInputs()
			return m, m.commitDates()
		}
	case "tab":
		if m.focus == focusDateFrom {
			m.focus = focusDateTo
			m.dateFromInput.Blur()
			m.dateToInput.Focus()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
		m.filter.SearchDraft = m.searchInput.Value()
	case focusDateFrom:
		m.dateFromInput, cmd = m.dateFromInput.Update(msg)
	case focusDateTo:
		m.dateToInput, cmd = m.dateToInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) blurInputs() {
	m.focus = focusNone
	m.searchInput.Blur()
	m.dateFromInput.Blur()
	m.dateToInput.Blur()
}

// commitDates stores the edited range. Queue views with auto-apply fetch
// immediately; otherwise the change waits for an explicit Apply.
func (m *Model) commitDates() tea.Cmd {
	m.filter.SetDateRange(
		strings.TrimSpace(m.dateFromInput.Value()),
		strings.TrimSpace(m.dateToInput.Value()),
	)
	if m.cfg.UI.AutoApplyPickers {
		m.filter.Page = 1
		m.cursor = 0
		return m.fetchCmd()
	}
	return nil
}

// ---------------------------------------------------------------------------
// Picker overlay
// ---------------------------------------------------------------------------

func (m *Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.picker
	switch msg.String() {
	case "esc":
		m.picker = nil
		return m, nil
	case "up":
		if p.cursor > 0 {
			p.cursor--
		}
		return m, nil
	case "down":
		if p.cursor < len(p.visible)-1 {
			p.cursor++
		}
		return m, nil
	case " ":
		p.toggleCurrent()
		return m, nil
	case "ctrl+a":
		p.selectAll()
		return m, nil
	case "ctrl+x":
		p.clearAll()
		return m, nil
	case "enter":
		m.picker = nil
		return m, m.applyPicker(p)
	case "backspace":
		if p.query != "" {
			p.query = p.query[:len(p.query)-1]
			p.refilter()
		}
		return m, nil
	}
	if msg.Type == tea.KeyRunes {
		p.query += string(msg.Runes)
		p.refilter()
	}
	return m, nil
}

// applyPicker writes the picker result back into the filter. A changed
// multi-select invalidates the current page, so Page resets to 1; whether it
// also fetches right away is the per-view auto-apply policy.
func (m *Model) applyPicker(p *picker) tea.Cmd {
	switch p.kind {
	case pickerLocations:
		m.filter.Locations = query.NewSet(p.selectedIDs()...)
	case pickerPriorities:
		m.filter.Priorities = query.NewSet(p.selectedIDs()...)
	case pickerAuthors:
		m.filter.Authors = query.NewSet(p.selectedIDs()...)
	case pickerPresets:
		return m.applyPresetByName(p.selectedIDs())
	}
	m.filter.Touch()
	m.filter.Page = 1
	m.cursor = 0
	if m.cfg.UI.AutoApplyPickers {
		return m.fetchCmd()
	}
	return nil
}

// ---------------------------------------------------------------------------
// Saved presets
// ---------------------------------------------------------------------------

func (m *Model) savePreset() tea.Cmd {
	if m.presets == nil {
		return nil
	}
	name := strings.TrimSpace(m.filter.SearchApplied)
	if name == "" {
		name = fmt.Sprintf("preset %s–%s", m.filter.DateFrom, m.filter.DateTo)
	}
	p := prefs.Preset{
		Name:       name,
		Search:     m.filter.SearchApplied,
		DateFrom:   m.filter.DateFrom,
		DateTo:     m.filter.DateTo,
		Locations:  m.filter.Locations.IDs(),
		Priorities: m.filter.Priorities.IDs(),
		Authors:    m.filter.Authors.IDs(),
	}
	if err := m.presets.Add(p); err != nil {
		m.flash = err.Error()
		return nil
	}
	m.flash = "saved preset " + name
	return nil
}

func (m *Model) openPresetPicker() tea.Cmd {
	if m.presets == nil {
		return nil
	}
	saved, err := m.presets.Load()
	if err != nil {
		m.flash = err.Error()
		return nil
	}
	if len(saved) == 0 {
		m.flash = "no saved presets"
		return nil
	}
	options := make([]pickerOption, 0, len(saved))
	for _, p := range saved {
		options = append(options, pickerOption{id: p.Name, label: p.Name})
	}
	m.picker = newPicker(pickerPresets, "Presets", false, options)
	return nil
}

func (m *Model) applyPresetByName(names []string) tea.Cmd {
	if len(names) == 0 {
		return nil
	}
	saved, err := m.presets.Load()
	if err != nil {
		m.flash = err.Error()
		return nil
	}
	for _, p := range saved {
		if !strings.EqualFold(p.Name, names[0]) {
			continue
		}
		m.filter.Clear()
		m.filter.SearchDraft = p.Search
		m.filter.DateFrom = p.DateFrom
		m.filter.DateTo = p.DateTo
		m.filter.Locations = query.NewSet(p.Locations...)
		m.filter.Priorities = query.NewSet(p.Priorities...)
		m.filter.Authors = query.NewSet(p.Authors...)
		m.filter.Apply()
		m.cursor = 0
		m.syncFilterInputs()
		return m.fetchCmd()
	}
	m.flash = "preset not found"
	return nil
}
