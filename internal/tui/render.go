package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/newsdesk/internal/query"
)

func (m *Model) View() string {
	var body string
	switch m.activeView {
	case viewBrowse:
		body = m.renderBrowse()
	default:
		body = m.renderDesk()
	}
	if m.detail != nil {
		body += "\n\n" + m.renderDetail()
	}
	if m.picker != nil {
		body += "\n\n" + m.renderPicker()
	}
	return body + "\n" + m.renderStatusBar()
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	if m.width > 120 {
		return 120
	}
	return m.width
}

// ---------------------------------------------------------------------------
// Desk
// ---------------------------------------------------------------------------

func (m *Model) renderDesk() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Newsdesk") + "  " + subtleStyle.Render(m.cfg.User.Name+" · "+m.cfg.User.Role))
	b.WriteString("\n\n")

	snap, fresh := m.counts.Get()
	badge := badgeStyle
	if !fresh {
		badge = staleStyle
	}
	badges := []string{
		badge.Render(fmt.Sprintf("new %d", snap.Drafts)),
		badge.Render(fmt.Sprintf("input %d", snap.InputQueue)),
		badge.Render(fmt.Sprintf("output %d", snap.OutputQueue)),
		badge.Render(fmt.Sprintf("returned %d", snap.Returned)),
		badge.Render(fmt.Sprintf("published %d", snap.Published)),
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(badges, " ")))
	if !fresh {
		b.WriteString(" " + subtleStyle.Render("(stale)"))
	}
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Intake this month") + "\n")
	b.WriteString(renderIntakeChart(m.records, m.contentWidth()-4))
	b.WriteString("\n\n")
	b.WriteString(subtleStyle.Render("b browse · i input queue · o output queue · g published · r refresh · q quit"))
	return b.String()
}

// ---------------------------------------------------------------------------
// Browse
// ---------------------------------------------------------------------------

func (m *Model) renderBrowse() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.browseTitle()) + "\n")
	b.WriteString(m.renderFilterBar() + "\n\n")

	switch {
	case m.errText != "":
		b.WriteString(errorStyle.Render("fetch failed: "+m.errText) + "\n")
		b.WriteString(subtleStyle.Render("press r to retry") + "\n")
	case m.loading && len(m.records) == 0:
		b.WriteString(subtleStyle.Render("loading…") + "\n")
	case len(m.records) == 0:
		b.WriteString(subtleStyle.Render("no matching records") + "\n")
	default:
		for i, r := range m.records {
			prefix := "  "
			if i == m.cursor {
				prefix = cursorStyle.Render("> ")
			}
			line := fmt.Sprintf("%s#%d %s", prefix, r.ID, r.Headline)
			meta := fmt.Sprintf("  %s · %s · v%d · %s",
				r.StatusLabel(), priorityStyle(r.Priority).Render(r.Priority), r.Version, r.Location.Name)
			if d := m.formatDate(r.UpdatedDate); d != "" {
				meta += " · " + d
			}
			if r.Locked {
				meta += lockedStyle.Render(" · locked by " + r.Lock.LockedByName)
			}
			b.WriteString(ansi.Truncate(line, m.contentWidth(), "…") + "\n")
			b.WriteString(ansi.Truncate(meta, m.contentWidth(), "…") + "\n")
		}
	}

	b.WriteString("\n" + m.renderPagination())
	b.WriteString("\n" + subtleStyle.Render("/ search · d dates · L locations · p priorities · u authors · a apply · c clear · s/e presets · tab desk"))
	return b.String()
}

func (m *Model) browseTitle() string {
	if m.filter.Status != 0 {
		return "Queue: " + queueName(m.filter.Status)
	}
	if m.filter.LatestMonth() {
		return "Latest month"
	}
	return "Browse"
}

func queueName(status int) string {
	switch status {
	case 2:
		return "input"
	case 3:
		return "output"
	case 5:
		return "published"
	default:
		return strconv.Itoa(status)
	}
}

func (m *Model) renderFilterBar() string {
	var parts []string
	search := m.searchInput.View()
	if m.focus != focusSearch && m.filter.SearchApplied != "" {
		search = "search: " + m.filter.SearchApplied
	}
	parts = append(parts, search)
	if m.focus == focusDateFrom || m.focus == focusDateTo {
		parts = append(parts, "from "+m.dateFromInput.View(), "to "+m.dateToInput.View())
	} else if m.filter.DateFrom != "" || m.filter.DateTo != "" {
		parts = append(parts, fmt.Sprintf("dates %s…%s", m.filter.DateFrom, m.filter.DateTo))
	}
	if n := len(m.filter.Locations); n > 0 {
		parts = append(parts, fmt.Sprintf("locations(%d)", n))
	}
	if n := len(m.filter.Priorities); n > 0 {
		parts = append(parts, fmt.Sprintf("priorities(%d)", n))
	}
	if n := len(m.filter.Authors); n > 0 {
		parts = append(parts, fmt.Sprintf("authors(%d)", n))
	}
	return subtleStyle.Render(strings.Join(parts, " │ "))
}

// renderPagination shows the ellipsis page window plus the match count.
func (m *Model) renderPagination() string {
	total := query.TotalPages(m.total, m.filter.Limit)
	if total <= 1 {
		return subtleStyle.Render(fmt.Sprintf("%d records", m.total))
	}
	var parts []string
	for _, p := range query.VisiblePages(m.filter.Page, total) {
		switch {
		case p == query.Ellipsis:
			parts = append(parts, "…")
		case p == m.filter.Page:
			parts = append(parts, pageCurStyle.Render(strconv.Itoa(p)))
		default:
			parts = append(parts, strconv.Itoa(p))
		}
	}
	return strings.Join(parts, " ") + subtleStyle.Render(fmt.Sprintf("   %d records · ←/→ page", m.total))
}

// ---------------------------------------------------------------------------
// Detail overlay
// ---------------------------------------------------------------------------

func (m *Model) renderDetail() string {
	d := m.detail
	rec := d.displayed()
	width := m.contentWidth() - 6

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("#%d %s", rec.ID, rec.Headline)) + "\n")
	b.WriteString(fmt.Sprintf("%s · %s · %s\n",
		d.rec.StatusLabel(), priorityStyle(rec.Priority).Render(rec.Priority), rec.Location.Name))

	version := fmt.Sprintf("version %d of %d", d.selectedVersion, d.rec.Version)
	if d.loadingVersion {
		version += " (loading…)"
	} else if d.selectedVersion != d.rec.Version {
		version += " (read-only snapshot)"
	}
	b.WriteString(subtleStyle.Render(version+" · [/] switch") + "\n")
	if d.rec.Locked {
		b.WriteString(lockedStyle.Render("locked by "+d.rec.Lock.LockedByName) + "\n")
	}
	b.WriteString("\n" + ansi.Truncate(stripToSingleLine(rec.Description), width, "…") + "\n")

	if len(rec.Attachments) > 0 {
		b.WriteString("\n" + subtleStyle.Render(fmt.Sprintf("%d attachment(s)", len(rec.Attachments))) + "\n")
	}

	b.WriteString("\n" + titleStyle.Render("Comments") + "\n")
	if len(d.rec.Comments) == 0 {
		b.WriteString(subtleStyle.Render("none") + "\n")
	}
	for _, c := range d.rec.Comments {
		line := fmt.Sprintf("%s: %s", c.CreatedName, c.Text)
		b.WriteString(ansi.Truncate(line, width, "…") + "\n")
	}
	if d.composing {
		prompt := d.commentInput.View()
		if d.commentInFlight {
			prompt += disabledStyle.Render(" (sending…)")
		}
		b.WriteString(prompt + "\n")
	}

	b.WriteString("\n" + m.renderActionBar())
	return modalStyle.Width(width + 2).Render(b.String())
}

func (m *Model) renderActionBar() string {
	actions := m.permittedActions()
	if len(actions) == 0 {
		return subtleStyle.Render("view only · c comment · esc close")
	}
	var parts []string
	for i, a := range actions {
		label := fmt.Sprintf("%d %s", i+1, a.Label())
		if m.detail.transitionInFlight {
			parts = append(parts, disabledStyle.Render(label))
		} else {
			parts = append(parts, actionStyle.Render(label))
		}
	}
	return strings.Join(parts, "  ") + subtleStyle.Render("  · c comment · esc close")
}

// ---------------------------------------------------------------------------
// Picker overlay
// ---------------------------------------------------------------------------

func (m *Model) renderPicker() string {
	p := m.picker
	var b strings.Builder
	b.WriteString(titleStyle.Render(p.title) + " " + subtleStyle.Render(p.query) + "\n")
	if len(p.visible) == 0 {
		b.WriteString(subtleStyle.Render("no matches") + "\n")
	}
	for vi, i := range p.visible {
		opt := p.options[i]
		prefix := "  "
		if vi == p.cursor {
			prefix = cursorStyle.Render("> ")
		}
		mark := "[ ] "
		if opt.selected {
			mark = "[x] "
		}
		if !p.multi {
			mark = ""
		}
		b.WriteString(prefix + mark + opt.label + "\n")
	}
	b.WriteString(subtleStyle.Render("space toggle · ctrl+a all · ctrl+x none · enter apply · esc cancel"))
	return modalStyle.Render(b.String())
}

// ---------------------------------------------------------------------------
// Status bar
// ---------------------------------------------------------------------------

func (m *Model) renderStatusBar() string {
	msg := m.flash
	if m.loading {
		msg = "loading…"
	}
	if msg == "" {
		msg = " "
	}
	return statusBarStyle.Render(ansi.Truncate(msg, m.contentWidth()-4, "…"))
}

// formatDate renders a backend timestamp in the configured display format,
// or empty when the value does not parse.
func (m *Model) formatDate(raw string) string {
	day, ok := dayOf(raw)
	if !ok {
		return ""
	}
	layout := m.cfg.UI.DateFormat
	if layout == "" {
		layout = "2006-01-02"
	}
	return day.Format(layout)
}

func stripToSingleLine(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.Join(strings.Fields(s), " ")
}
