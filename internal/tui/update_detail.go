package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/newsdesk/internal/api"
	"github.com/jask/newsdesk/internal/workflow"
)

// openDetail shows the overlay with the listing's copy of the record and
// refetches the full record (comments, attachments) in the background.
func (m *Model) openDetail(rec api.ContentRecord) tea.Cmd {
	input := textinput.New()
	input.Placeholder = "add a comment"
	input.CharLimit = 500
	m.detail = &detailState{
		rec:             rec,
		snapshot:        rec,
		selectedVersion: rec.Version,
		commentInput:    input,
	}
	return m.loadRecordCmd(rec.ID)
}

// permittedActions is the one place view code asks the policy table.
func (m *Model) permittedActions() []workflow.Action {
	d := m.detail
	if d == nil {
		return nil
	}
	set := workflow.PermittedActions(d.rec.State(), m.cfg.Identity(), d.selectedVersion)
	return set.Actions()
}

func (m *Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.detail
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.detail = nil
		return m, nil
	case "c":
		d.composing = true
		d.commentInput.Focus()
		return m, nil
	case "r":
		return m, m.loadRecordCmd(d.rec.ID)
	case "[":
		return m, m.selectVersion(d.selectedVersion - 1)
	case "]":
		return m, m.selectVersion(d.selectedVersion + 1)
	}

	if n, err := strconv.Atoi(msg.String()); err == nil && n >= 1 {
		actions := m.permittedActions()
		if n <= len(actions) {
			return m, m.triggerAction(actions[n-1])
		}
	}
	return m, nil
}

// selectVersion switches the displayed snapshot. Version metadata stays that
// of the current record; only the editable fields change, and edit actions
// drop out of the action bar while a historical version is up.
func (m *Model) selectVersion(v int) tea.Cmd {
	d := m.detail
	if v < 1 || v > d.rec.Version || v == d.selectedVersion {
		return nil
	}
	d.selectedVersion = v
	if v == d.rec.Version {
		d.snapshot = d.rec
		return nil
	}
	d.loadingVersion = true
	return m.loadVersionCmd(d.rec.ID, v)
}

// triggerAction starts a workflow transition for one of the permitted
// actions. A transition already in flight blocks further triggers, so a
// double keypress cannot double-submit.
func (m *Model) triggerAction(a workflow.Action) tea.Cmd {
	d := m.detail
	if d.transitionInFlight {
		return nil
	}
	if a == workflow.ActionEdit {
		// Editing happens in the web editor; the terminal client only
		// drives workflow state.
		m.flash = "open the web editor to change content"
		return nil
	}
	tr, ok := workflow.TransitionFor(m.cfg.Role(), a)
	if !ok {
		return nil
	}
	d.transitionInFlight = true
	return m.transitionCmd(d.rec.ID, tr)
}

// ---------------------------------------------------------------------------
// Comment composer
// ---------------------------------------------------------------------------

func (m *Model) updateComposer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.detail
	switch msg.String() {
	case "esc":
		d.composing = false
		d.commentInput.Blur()
		return m, nil
	case "enter":
		// Self-disabled while a submit is in flight; the draft stays put
		// until the backend confirms.
		if d.commentInFlight {
			return m, nil
		}
		text := strings.TrimSpace(d.commentInput.Value())
		if text == "" {
			return m, nil
		}
		d.commentInFlight = true
		return m, m.addCommentCmd(d.rec.ID, text)
	}
	var cmd tea.Cmd
	d.commentInput, cmd = d.commentInput.Update(msg)
	return m, cmd
}
