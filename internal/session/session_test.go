package session

import (
	"context"
	"errors"
	"testing"

	"github.com/example/repaint/internal/advisor"
	"github.com/example/repaint/internal/catalog"
	"github.com/example/repaint/internal/geometry"
	"github.com/example/repaint/internal/scene"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.Category{{
		Name: "interior",
		Colors: []catalog.ColorEntry{
			{ID: "white", L: 100},
			{ID: "black", L: 0},
			{ID: "grey", L: 50},
		},
	}})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return cat
}

func testDefinition() scene.ImageDefinition {
	square := geometry.ParseVertices("0,0 10,0 10,10 0,10")
	return scene.ImageDefinition{
		ID: "room", Width: 100, Height: 100,
		Regions: []scene.Region{
			{ID: "ceiling", Vertices: square},
			{ID: "left", Vertices: square},
			{ID: "floor", Vertices: square},
			{ID: "back", Vertices: square},
		},
	}
}

func newSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	s := New(testCatalog(t), opts...)
	if err := s.SetPalette([]string{"white", "black", "grey"}); err != nil {
		t.Fatalf("SetPalette: %v", err)
	}
	s.SelectImage(testDefinition())
	return s
}

func TestAssignOverwrites(t *testing.T) {
	s := newSession(t)
	if !s.Assign("left", "#111111") || !s.Assign("left", "#222222") {
		t.Fatalf("Assign rejected")
	}
	if c, _ := s.Assigned("left"); c != "#222222" {
		t.Fatalf("Assigned = %q", c)
	}
	if len(s.Assignments()) != 1 {
		t.Fatalf("assignments = %v", s.Assignments())
	}
	if s.Assign("floor", "#111111") || s.Assign("missing", "#111111") || s.Assign("back", "") {
		t.Fatalf("invalid assignment accepted")
	}
	copyMap := s.Assignments()
	copyMap["back"] = "#000000"
	if _, ok := s.Assigned("back"); ok {
		t.Fatalf("Assignments must return a copy")
	}
}

func TestSelectColorAndAssignActive(t *testing.T) {
	s := newSession(t)
	if s.ActiveColor() != "#ffffff" {
		t.Fatalf("initial active = %q", s.ActiveColor())
	}
	if err := s.SelectColor("black"); err != nil {
		t.Fatalf("SelectColor: %v", err)
	}
	if !s.AssignActive("back") {
		t.Fatalf("AssignActive rejected")
	}
	if c, _ := s.Assigned("back"); c != "#000000" {
		t.Fatalf("back = %q", c)
	}
	if err := s.SelectColor("nope"); !errors.Is(err, ErrNotInPalette) {
		t.Fatalf("expected ErrNotInPalette, got %v", err)
	}
}

func TestRemovePaletteEntryKeepsAssignments(t *testing.T) {
	s := newSession(t)
	if err := s.SelectColor("black"); err != nil {
		t.Fatalf("SelectColor: %v", err)
	}
	s.AssignActive("left")
	if err := s.RemovePaletteEntry("black"); err != nil {
		t.Fatalf("RemovePaletteEntry: %v", err)
	}
	if c, _ := s.Assigned("left"); c != "#000000" {
		t.Fatalf("assignment changed to %q", c)
	}
	if s.ActiveColor() != "#ffffff" {
		t.Fatalf("active fallback = %q, want first palette entry", s.ActiveColor())
	}
	_ = s.RemovePaletteEntry("white")
	_ = s.RemovePaletteEntry("grey")
	if s.ActiveColor() != "" {
		t.Fatalf("active = %q with empty palette", s.ActiveColor())
	}
	if s.AssignActive("back") {
		t.Fatalf("empty active colour must not assign")
	}
}

func TestTogglePalette(t *testing.T) {
	s := New(testCatalog(t))
	if err := s.TogglePalette("grey"); err != nil {
		t.Fatalf("TogglePalette: %v", err)
	}
	if !s.Palette().Contains("grey") || s.ActiveID() != "grey" {
		t.Fatalf("toggle on failed")
	}
	if err := s.TogglePalette("grey"); err != nil {
		t.Fatalf("TogglePalette: %v", err)
	}
	if s.Palette().Contains("grey") || s.ActiveColor() != "" {
		t.Fatalf("toggle off failed")
	}
	if err := s.SetPalette([]string{"white", "grey"}); err != nil {
		t.Fatalf("SetPalette: %v", err)
	}
	if err := s.SelectColor("grey"); err != nil {
		t.Fatalf("SelectColor: %v", err)
	}
	if err := s.TogglePalette("grey"); err != nil {
		t.Fatalf("TogglePalette: %v", err)
	}
	if s.ActiveID() != "white" {
		t.Fatalf("active after removing grey = %q, want white", s.ActiveID())
	}
	if err := s.TogglePalette("mauve"); !errors.Is(err, catalog.ErrUnknownColor) {
		t.Fatalf("expected ErrUnknownColor, got %v", err)
	}
}

func TestPrefill(t *testing.T) {
	s := newSession(t, WithPrefill(true))
	got := s.Assignments()
	if len(got) != 3 || got["ceiling"] != "#ffffff" {
		t.Fatalf("prefill = %v", got)
	}
	if _, ok := got["floor"]; ok {
		t.Fatalf("floor must not be prefilled")
	}
}

func TestApplySuggestionsFiltersInCatalogOrder(t *testing.T) {
	s := newSession(t)
	s.Assign("left", "#123456")
	got, err := s.ApplySuggestions([]advisor.Suggestion{{ID: "grey"}, {ID: "teal"}, {ID: "white"}})
	if err != nil {
		t.Fatalf("ApplySuggestions: %v", err)
	}
	// white precedes grey in the catalog; regions cycle through both.
	want := map[string]string{"ceiling": "#ffffff", "left": "#777777", "back": "#ffffff"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("%s = %q, want %q (all %v)", k, got[k], v, got)
		}
	}
}

func TestApplySuggestionsFailureLeavesMap(t *testing.T) {
	s := newSession(t)
	s.Assign("left", "#123456")
	if _, err := s.ApplySuggestions([]advisor.Suggestion{{ID: "teal"}}); !errors.Is(err, advisor.ErrNoSuggestions) {
		t.Fatalf("expected ErrNoSuggestions, got %v", err)
	}
	if got := s.Assignments(); len(got) != 1 || got["left"] != "#123456" {
		t.Fatalf("assignments mutated: %v", got)
	}
	if len(s.Notices()) != 1 {
		t.Fatalf("notices = %v", s.Notices())
	}
}

func TestAdvise(t *testing.T) {
	s := newSession(t)
	_ = s.RemovePaletteEntry("grey")
	provider := advisor.ProviderFunc(func(ctx context.Context, req advisor.Request) ([]advisor.Suggestion, error) {
		if len(req.PermittedIDs) != 2 {
			t.Fatalf("permitted = %v", req.PermittedIDs)
		}
		return []advisor.Suggestion{{ID: "black", Reason: "contrast"}, {ID: "grey"}, {ID: "white", Reason: "light"}}, nil
	})
	got, err := s.Advise(context.Background(), provider, "bright room")
	if err != nil {
		t.Fatalf("Advise: %v", err)
	}
	if len(got) != 2 || got[0].ID != "white" || got[1].ID != "black" {
		t.Fatalf("Advise = %+v", got)
	}

	failing := advisor.ProviderFunc(func(context.Context, advisor.Request) ([]advisor.Suggestion, error) {
		return nil, errors.New("offline")
	})
	before := s.Assignments()
	if _, err := s.Advise(context.Background(), failing, "x"); err == nil {
		t.Fatalf("expected error")
	}
	if len(s.Notices()) != 1 || len(s.Assignments()) != len(before) {
		t.Fatalf("failure must only add a notice")
	}
}
