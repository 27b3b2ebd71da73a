// Package session holds the explicit per-user state of a repaint session:
// the working palette, the active colour, the editable scene and the map
// of colour assignments.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/repaint/internal/advisor"
	"github.com/example/repaint/internal/catalog"
	"github.com/example/repaint/internal/scene"
)

var (
	// ErrNoImage is returned by operations that need a selected image.
	ErrNoImage = errors.New("no image selected")
	// ErrNotInPalette is returned when an id is not in the working palette.
	ErrNotInPalette = errors.New("colour not in palette")
)

// Session is the single-writer state behind the editor. It is not safe for
// concurrent use.
type Session struct {
	catalog   *catalog.Catalog
	palette   *catalog.Palette
	model     *scene.Model
	modelOpts []scene.Option
	prefill   bool
	logger    *slog.Logger

	active   string
	activeID string

	assignments map[string]string
	notices     []string
	history     []advisor.Turn
}

// Option configures a Session.
type Option func(*Session)

// WithPrefill makes SelectImage paint every paintable region with the
// active colour.
func WithPrefill(on bool) Option {
	return func(s *Session) { s.prefill = on }
}

// WithModelOptions passes options to every scene.Model the session builds.
func WithModelOptions(opts ...scene.Option) Option {
	return func(s *Session) { s.modelOpts = append(s.modelOpts, opts...) }
}

// WithLogger sets the logger used for notices.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// New returns a session drawing colours from cat.
func New(cat *catalog.Catalog, opts ...Option) *Session {
	s := &Session{
		catalog:     cat,
		palette:     catalog.NewPalette(),
		assignments: map[string]string{},
		logger:      slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Catalog returns the catalog the session draws from.
func (s *Session) Catalog() *catalog.Catalog { return s.catalog }

// SelectImage starts a fresh editable copy of def and clears assignments.
func (s *Session) SelectImage(def scene.ImageDefinition) {
	s.model = scene.NewModel(def, s.modelOpts...)
	s.assignments = map[string]string{}
	if s.prefill && s.active != "" {
		for _, r := range s.model.Paintable() {
			s.assignments[r.ID] = s.active
		}
	}
	s.logger.Debug("image selected", "image", def.ID, "regions", len(def.Regions), "prefilled", len(s.assignments))
}

// Model returns the editable scene, or nil before SelectImage.
func (s *Session) Model() *scene.Model { return s.model }

// Palette returns the working palette.
func (s *Session) Palette() *catalog.Palette { return s.palette }

// SetPalette replaces the working palette with ids in the given order.
func (s *Session) SetPalette(ids []string) error {
	p := catalog.NewPalette()
	for _, id := range ids {
		e, ok := s.catalog.Lookup(id)
		if !ok {
			return fmt.Errorf("%w: %q", catalog.ErrUnknownColor, id)
		}
		p.Add(e)
	}
	s.palette = p
	if s.activeID != "" && !p.Contains(s.activeID) {
		s.fallbackActive()
	}
	if s.active == "" {
		s.fallbackActive()
	}
	return nil
}

// TogglePalette adds id to the palette or removes it when present.
func (s *Session) TogglePalette(id string) error {
	e, ok := s.catalog.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %q", catalog.ErrUnknownColor, id)
	}
	if !s.palette.Toggle(e) {
		if s.activeID == id || (s.activeID == "" && s.active == e.Display()) {
			s.fallbackActive()
		}
		return nil
	}
	if s.active == "" {
		s.setActiveEntry(e)
	}
	return nil
}

// SelectColor makes the palette entry id the active colour.
func (s *Session) SelectColor(id string) error {
	e, ok := s.palette.Get(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotInPalette, id)
	}
	s.setActiveEntry(e)
	return nil
}

// SetActiveColor sets an arbitrary display colour as active.
func (s *Session) SetActiveColor(display string) {
	s.active = display
	s.activeID = ""
}

// ActiveColor returns the active display colour, "" when none.
func (s *Session) ActiveColor() string { return s.active }

// ActiveID returns the palette id behind the active colour, if any.
func (s *Session) ActiveID() string { return s.activeID }

func (s *Session) setActiveEntry(e catalog.ColorEntry) {
	s.active = e.Display()
	s.activeID = e.ID
}

func (s *Session) fallbackActive() {
	if first, ok := s.palette.First(); ok {
		s.setActiveEntry(first)
		return
	}
	s.active, s.activeID = "", ""
}

// RemovePaletteEntry drops id from the palette. If it was the active colour
// the first remaining entry becomes active. Existing assignments keep their
// colour.
func (s *Session) RemovePaletteEntry(id string) error {
	e, ok := s.palette.Get(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotInPalette, id)
	}
	s.palette.Remove(id)
	if s.activeID == id || (s.activeID == "" && s.active == e.Display()) {
		s.fallbackActive()
	}
	return nil
}

// AssignActive paints regionID with the active colour.
func (s *Session) AssignActive(regionID string) bool {
	return s.Assign(regionID, s.active)
}

// Assign paints regionID with color, overwriting any earlier colour.
// Unknown or excluded regions and empty colours are rejected.
func (s *Session) Assign(regionID, color string) bool {
	if color == "" || s.model == nil || !s.model.IsPaintable(regionID) {
		s.logger.Debug("assignment rejected", "region", regionID, "color", color)
		return false
	}
	s.assignments[regionID] = color
	return true
}

// Unassign clears the colour of regionID.
func (s *Session) Unassign(regionID string) bool {
	if _, ok := s.assignments[regionID]; !ok {
		return false
	}
	delete(s.assignments, regionID)
	return true
}

// Assignments returns a copy of the region to colour map.
func (s *Session) Assignments() map[string]string {
	out := make(map[string]string, len(s.assignments))
	for k, v := range s.assignments {
		out[k] = v
	}
	return out
}

// Assigned returns the colour of regionID.
func (s *Session) Assigned(regionID string) (string, bool) {
	c, ok := s.assignments[regionID]
	return c, ok
}

// Notices returns the user-visible notices raised so far.
func (s *Session) Notices() []string {
	return append([]string(nil), s.notices...)
}

func (s *Session) notice(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.notices = append(s.notices, msg)
	s.logger.Warn(msg)
}

// PermittedIDs is what the advisory service may choose from: the working
// palette, or the whole catalog while the palette is empty.
func (s *Session) PermittedIDs() []string {
	if s.palette.Len() > 0 {
		return s.palette.IDs()
	}
	return s.catalog.IDs()
}

// Advise asks provider for suggestions and returns the permitted ones in
// catalog order. Failures raise a notice and leave the session unchanged.
func (s *Session) Advise(ctx context.Context, provider advisor.Provider, prompt string) ([]advisor.Suggestion, error) {
	permitted := s.PermittedIDs()
	req := advisor.Request{PermittedIDs: permitted, Prompt: prompt, History: append([]advisor.Turn(nil), s.history...)}
	suggestions, err := provider.Suggest(ctx, req)
	if err != nil {
		s.notice("colour advice failed: %v", err)
		return nil, err
	}
	accepted := advisor.Filter(suggestions, permitted, s.catalog.Index)
	if len(accepted) == 0 {
		s.notice("colour advice returned no permitted colours")
		return nil, advisor.ErrNoSuggestions
	}
	if dropped := len(suggestions) - len(accepted); dropped > 0 {
		s.logger.Info("ignored suggestions outside the palette", "dropped", dropped)
	}
	s.history = append(s.history, advisor.Turn{Role: "user", Text: prompt})
	for _, a := range accepted {
		s.history = append(s.history, advisor.Turn{Role: "model", Text: a.ID + ": " + a.Reason})
	}
	return accepted, nil
}

// ApplySuggestions paints the paintable regions, in definition order, with
// the accepted suggestion colours in catalog order, cycling when there are
// more regions than colours. On failure the assignments are left untouched.
func (s *Session) ApplySuggestions(suggestions []advisor.Suggestion) (map[string]string, error) {
	if s.model == nil {
		s.notice("cannot apply suggestions: %v", ErrNoImage)
		return nil, ErrNoImage
	}
	accepted := advisor.Filter(suggestions, s.PermittedIDs(), s.catalog.Index)
	colors := make([]string, 0, len(accepted))
	for _, a := range accepted {
		if e, ok := s.catalog.Lookup(a.ID); ok {
			colors = append(colors, e.Display())
		}
	}
	if len(colors) == 0 {
		s.notice("no suggested colour is in the palette")
		return nil, advisor.ErrNoSuggestions
	}
	next := s.Assignments()
	for i, r := range s.model.Paintable() {
		next[r.ID] = colors[i%len(colors)]
	}
	s.assignments = next
	return s.Assignments(), nil
}
