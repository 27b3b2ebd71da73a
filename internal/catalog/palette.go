package catalog

// Palette is the ordered working set of colours a user picked from the
// catalog. Entries are unique by id.
type Palette struct {
	entries []ColorEntry
}

// NewPalette builds a palette, dropping repeated ids.
func NewPalette(entries ...ColorEntry) *Palette {
	p := &Palette{}
	for _, e := range entries {
		p.Add(e)
	}
	return p
}

// Add appends e unless its id is already present. It reports whether the
// palette changed.
func (p *Palette) Add(e ColorEntry) bool {
	if p.Contains(e.ID) {
		return false
	}
	p.entries = append(p.entries, e)
	return true
}

// Remove drops the entry with id and reports whether it was present.
func (p *Palette) Remove(id string) bool {
	for i, e := range p.entries {
		if e.ID == id {
			p.entries = append(p.entries[:i:i], p.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Toggle adds e when absent and removes it when present. It returns true
// when e is in the palette afterwards.
func (p *Palette) Toggle(e ColorEntry) bool {
	if p.Remove(e.ID) {
		return false
	}
	p.entries = append(p.entries, e)
	return true
}

// Contains reports whether id is in the palette.
func (p *Palette) Contains(id string) bool {
	_, ok := p.Get(id)
	return ok
}

// Get returns the entry with id.
func (p *Palette) Get(id string) (ColorEntry, bool) {
	if p == nil {
		return ColorEntry{}, false
	}
	for _, e := range p.entries {
		if e.ID == id {
			return e, true
		}
	}
	return ColorEntry{}, false
}

// Entries returns a copy of the palette in insertion order.
func (p *Palette) Entries() []ColorEntry {
	if p == nil {
		return nil
	}
	out := make([]ColorEntry, len(p.entries))
	copy(out, p.entries)
	return out
}

// IDs lists the palette ids in insertion order.
func (p *Palette) IDs() []string {
	if p == nil {
		return nil
	}
	ids := make([]string, len(p.entries))
	for i, e := range p.entries {
		ids[i] = e.ID
	}
	return ids
}

// First returns the first entry, if any.
func (p *Palette) First() (ColorEntry, bool) {
	if p == nil || len(p.entries) == 0 {
		return ColorEntry{}, false
	}
	return p.entries[0], true
}

// Len returns the number of entries.
func (p *Palette) Len() int {
	if p == nil {
		return 0
	}
	return len(p.entries)
}
