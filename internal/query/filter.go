// Package query composes list-view filter state into request parameters and
// owns the pagination bookkeeping that goes with it. It is pure state logic:
// the HTTP encoding lives in the api package, the key handling in tui.
package query

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Set is a multi-select filter: a set of raw option ids.
// An empty set means "no filter" (match everything), never "match nothing".
type Set map[string]struct{}

func NewSet(ids ...string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Set) Has(id string) bool { return s != nil && contains(s, id) }

func contains(s Set, id string) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the selected ids sorted, so composed params are deterministic.
func (s Set) IDs() []string {
	if len(s) == 0 {
		return nil
	}
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Filter holds one list view's filter and pagination state. It is owned by a
// single view instance on the event loop and is never shared.
type Filter struct {
	// SearchDraft is what the user is typing; SearchApplied is what the last
	// Apply committed. Only SearchApplied reaches the request, so typing does
	// not fire a request per keystroke.
	SearchDraft   string
	SearchApplied string

	// Inclusive ISO date range; empty string means unbounded on that side.
	DateFrom string
	DateTo   string

	Locations  Set
	Priorities Set
	Authors    Set

	Page  int // 1-based
	Limit int

	// Status pins this view to one workflow queue (0 = unpinned).
	Status int

	// latestMonthArmed: the view supports the "latest month, unpaged" first
	// load. touched flips on the first filter interaction and stays set until
	// Clear, permanently disabling latest-month mode for the session.
	latestMonthArmed bool
	touched          bool
}

// New returns a Filter positioned on page 1. latestMonth arms the
// latest-month-unpaged first load for views that use it.
func New(limit int, latestMonth bool) Filter {
	return Filter{
		Page:             1,
		Limit:            limit,
		Locations:        NewSet(),
		Priorities:       NewSet(),
		Authors:          NewSet(),
		latestMonthArmed: latestMonth,
	}
}

// Active reports whether any committed filter is set. The search draft does
// not count until applied.
func (f *Filter) Active() bool {
	return f.SearchApplied != "" ||
		f.DateFrom != "" || f.DateTo != "" ||
		len(f.Locations) > 0 || len(f.Priorities) > 0 || len(f.Authors) > 0
}

// Touch records a filter interaction. Any interaction disables latest-month
// mode until the filters are fully cleared.
func (f *Filter) Touch() { f.touched = true }

// LatestMonth reports whether the next fetch should be the unpaged
// latest-month request: armed view, untouched session, no active filter.
func (f *Filter) LatestMonth() bool {
	return f.latestMonthArmed && !f.touched && !f.Active()
}

// Apply commits the search draft and resets to page 1. Applying with zero
// active filters is valid and means a plain full fetch; the engine does not
// depend on the Apply button being disabled in that state.
func (f *Filter) Apply() {
	f.SearchApplied = strings.TrimSpace(f.SearchDraft)
	f.Page = 1
	f.Touch()
}

// Clear resets every field to its empty default, returns to page 1 and
// re-arms latest-month mode where the view supports it.
func (f *Filter) Clear() {
	f.SearchDraft = ""
	f.SearchApplied = ""
	f.DateFrom = ""
	f.DateTo = ""
	f.Locations = NewSet()
	f.Priorities = NewSet()
	f.Authors = NewSet()
	f.Page = 1
	f.touched = false
}

// SetDateRange sets the inclusive range; either side may be empty.
func (f *Filter) SetDateRange(from, to string) {
	f.DateFrom = from
	f.DateTo = to
	f.Touch()
}

// SelectAll replaces a multi-select with the full option list.
// It does not apply; the caller decides per view policy.
func (f *Filter) SelectAll(which *Set, options []string) {
	*which = NewSet(options...)
	f.Touch()
}

// ClearAll empties a multi-select.
func (f *Filter) ClearAll(which *Set) {
	*which = NewSet()
	f.Touch()
}

// Toggle flips one id in a multi-select.
func (f *Filter) Toggle(which *Set, id string) {
	if contains(*which, id) {
		delete(*which, id)
	} else {
		(*which)[id] = struct{}{}
	}
	f.Touch()
}

// TotalPages is ceil(totalRecords/limit); 0 records is 0 pages.
func TotalPages(totalRecords, limit int) int {
	if totalRecords <= 0 || limit <= 0 {
		return 0
	}
	return (totalRecords + limit - 1) / limit
}

// ChangePage moves to page n. n outside 1..TotalPages is a programmer error
// (the pagination control enforces its own bounds), so it fails loudly
// instead of clamping, which would mask bugs in the control.
func (f *Filter) ChangePage(n, totalRecords int) error {
	total := TotalPages(totalRecords, f.Limit)
	if n < 1 || n > total {
		return fmt.Errorf("query: page %d out of range 1..%d", n, total)
	}
	f.Page = n
	return nil
}

// Params is the composed request descriptor handed to the fetch collaborator.
// Compose omits empty fields entirely; the backend treats absent and empty
// identically, so an empty value is never sent.
type Params struct {
	Page        int
	Limit       int
	Search      string
	DateFrom    string
	DateTo      string
	Locations   []string
	Priorities  []string
	Authors     []string
	Status      int
	LatestMonth bool
}

// Compose translates the filter into Params. In latest-month mode the result
// carries no pagination: the backend returns the whole month.
func (f *Filter) Compose() Params {
	if f.LatestMonth() {
		return Params{Status: f.Status, LatestMonth: true}
	}
	return Params{
		Page:       f.Page,
		Limit:      f.Limit,
		Search:     f.SearchApplied,
		DateFrom:   f.DateFrom,
		DateTo:     f.DateTo,
		Locations:  f.Locations.IDs(),
		Priorities: f.Priorities.IDs(),
		Authors:    f.Authors.IDs(),
		Status:     f.Status,
	}
}

// Values encodes the params for the wire. Empty strings, empty sets, unset
// dates and zero status produce no key at all.
func (p Params) Values() url.Values {
	v := url.Values{}
	if p.LatestMonth {
		v.Set("latest_month", "1")
	}
	if p.Page > 0 {
		v.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.DateFrom != "" {
		v.Set("date_from", p.DateFrom)
	}
	if p.DateTo != "" {
		v.Set("date_to", p.DateTo)
	}
	for _, id := range p.Locations {
		v.Add("location", id)
	}
	for _, id := range p.Priorities {
		v.Add("priority", id)
	}
	for _, id := range p.Authors {
		v.Add("created_by", id)
	}
	if p.Status > 0 {
		v.Set("status", strconv.Itoa(p.Status))
	}
	return v
}
