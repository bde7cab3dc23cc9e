package tui

import (
	"reflect"
	"testing"
)

func labelsOf(options []pickerOption, idx []int) []string {
	out := make([]string, 0, len(idx))
	for _, i := range idx {
		out = append(out, options[i].label)
	}
	return out
}

func TestRankOptionsPrefixBeatsSubstringBeatsFuzzy(t *testing.T) {
	options := []pickerOption{
		{id: "1", label: "Northern bureau"},
		{id: "2", label: "North desk"},
		{id: "3", label: "Old North"},
		{id: "4", label: "Norh"}, // one edit away
	}
	got := labelsOf(options, rankOptions(options, "north"))
	want := []string{"Northern bureau", "North desk", "Old North", "Norh"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ranked %v, want %v", got, want)
	}
}

func TestRankOptionsEmptyQueryKeepsOrder(t *testing.T) {
	options := []pickerOption{
		{label: "zulu"}, {label: "alpha"}, {label: "mike"},
	}
	got := rankOptions(options, "  ")
	if !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Fatalf("empty query reordered options: %v", got)
	}
}

func TestRankOptionsDropsDistantMatches(t *testing.T) {
	options := []pickerOption{
		{label: "Sports"},
		{label: "Politics"},
	}
	got := rankOptions(options, "xyzzy")
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %v", labelsOf(options, got))
	}
}

func TestRankOptionsStableForEqualScores(t *testing.T) {
	options := []pickerOption{
		{label: "desk one"}, {label: "desk two"}, {label: "desk three"},
	}
	got := labelsOf(options, rankOptions(options, "desk"))
	want := []string{"desk one", "desk two", "desk three"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("equal-score order changed: %v", got)
	}
}

func TestSingleSelectPickerClearsOthers(t *testing.T) {
	p := newPicker(pickerPresets, "Presets", false, []pickerOption{
		{id: "a", label: "a", selected: true},
		{id: "b", label: "b"},
	})
	p.cursor = 1
	p.toggleCurrent()
	if got := p.selectedIDs(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Fatalf("selected = %v, want [b]", got)
	}
}

func TestRefilterClampsCursor(t *testing.T) {
	p := newPicker(pickerLocations, "Locations", true, []pickerOption{
		{label: "Metro"}, {label: "National"}, {label: "World"},
	})
	p.cursor = 2
	p.query = "metro"
	p.refilter()
	if p.cursor != 0 {
		t.Fatalf("cursor = %d after narrowing, want 0", p.cursor)
	}
}
