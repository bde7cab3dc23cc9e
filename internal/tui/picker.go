package tui

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// pickerKind identifies which filter set (or other target) an open picker
// feeds back into when it closes.
type pickerKind int

const (
	pickerLocations pickerKind = iota
	pickerPriorities
	pickerAuthors
	pickerPresets
)

type pickerOption struct {
	id       string
	label    string
	selected bool
}

// picker is a multi-select (or for presets, single-select) overlay with
// type-to-filter fuzzy matching.
type picker struct {
	kind    pickerKind
	title   string
	query   string
	options []pickerOption
	visible []int // indexes into options, ranked for the current query
	cursor  int
	multi   bool
}

func newPicker(kind pickerKind, title string, multi bool, options []pickerOption) *picker {
	p := &picker{kind: kind, title: title, multi: multi, options: options}
	p.refilter()
	return p
}

// refilter re-ranks options for the current query and clamps the cursor.
func (p *picker) refilter() {
	p.visible = rankOptions(p.options, p.query)
	if p.cursor >= len(p.visible) {
		p.cursor = len(p.visible) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// rankOptions orders option indexes by match quality: prefix, then substring,
// then closest edit distance. An empty query keeps the original order.
// Equal scores keep their relative order so the list stays stable while
// typing.
func rankOptions(options []pickerOption, query string) []int {
	idx := make([]int, len(options))
	for i := range options {
		idx[i] = i
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return idx
	}

	scores := make([]int, len(options))
	keep := idx[:0]
	for _, i := range idx {
		label := strings.ToLower(options[i].label)
		switch {
		case strings.HasPrefix(label, q):
			scores[i] = 0
		case strings.Contains(label, q):
			scores[i] = 1
		default:
			dist := levenshtein.ComputeDistance(q, label)
			// Anything further than half the query away is noise.
			if dist > len(q)/2+1 {
				continue
			}
			scores[i] = 2 + dist
		}
		keep = append(keep, i)
	}
	sort.SliceStable(keep, func(a, b int) bool { return scores[keep[a]] < scores[keep[b]] })
	return keep
}

func (p *picker) toggleCurrent() {
	if len(p.visible) == 0 {
		return
	}
	i := p.visible[p.cursor]
	if p.multi {
		p.options[i].selected = !p.options[i].selected
		return
	}
	for j := range p.options {
		p.options[j].selected = false
	}
	p.options[i].selected = true
}

func (p *picker) selectAll() {
	for i := range p.options {
		p.options[i].selected = true
	}
}

func (p *picker) clearAll() {
	for i := range p.options {
		p.options[i].selected = false
	}
}

// selectedIDs returns the chosen option ids in option order.
func (p *picker) selectedIDs() []string {
	var out []string
	for _, o := range p.options {
		if o.selected {
			out = append(out, o.id)
		}
	}
	return out
}
