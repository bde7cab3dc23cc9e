package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := &Store{Dir: t.TempDir()}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Load = %v, want empty", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := &Store{Dir: t.TempDir()}
	in := []Preset{
		{Name: "breaking this week", Search: "", DateFrom: "2026-08-25", Priorities: []string{"breaking"}},
		{Name: "westside", Locations: []string{"3", "7"}},
	}
	if err := s.Save(in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 || got[0].Name != "breaking this week" || got[1].Locations[1] != "7" {
		t.Fatalf("round trip = %+v", got)
	}
}

func TestAddReplacesByNameCaseInsensitive(t *testing.T) {
	s := &Store{Dir: t.TempDir()}
	if err := s.Add(Preset{Name: "Morning sweep", Search: "old"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := s.Add(Preset{Name: "morning sweep", Search: "new"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 || got[0].Search != "new" {
		t.Fatalf("presets = %+v, want single replaced entry", got)
	}
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	s := &Store{Dir: dir}
	if err := s.Save([]Preset{{Name: "x"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, presetsFile+".tmp")); !os.IsNotExist(err) {
		t.Fatal("temp file left behind")
	}
}
