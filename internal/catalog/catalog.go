// Package catalog holds the paint colour catalog and the user's working
// palette drawn from it.
package catalog

import (
	"errors"
	"fmt"
	"io"

	"github.com/example/repaint/internal/colorspace"
	"gopkg.in/yaml.v3"
)

// ErrUnknownColor is returned when an id is not present in the catalog.
var ErrUnknownColor = errors.New("unknown colour id")

// ColorEntry is a single paint colour expressed in L*a*b*.
type ColorEntry struct {
	ID string  `yaml:"id" json:"id"`
	L  float64 `yaml:"l" json:"l"`
	A  float64 `yaml:"a" json:"a"`
	B  float64 `yaml:"b" json:"b"`
}

// Display returns the entry's "#rrggbb" display colour.
func (e ColorEntry) Display() string {
	return colorspace.ToDisplayColor(e.L, e.A, e.B)
}

// Category is a named, ordered group of colours.
type Category struct {
	Name   string       `yaml:"name"`
	Colors []ColorEntry `yaml:"colors"`
}

// Catalog is an immutable set of categories. The zero value is empty.
type Catalog struct {
	categories []Category
	byID       map[string]ColorEntry
	rank       map[string]int
}

// New builds a catalog, copying the categories. Ids must be unique across
// the whole catalog.
func New(categories []Category) (*Catalog, error) {
	c := &Catalog{
		categories: make([]Category, 0, len(categories)),
		byID:       make(map[string]ColorEntry),
		rank:       make(map[string]int),
	}
	for _, cat := range categories {
		entries := make([]ColorEntry, len(cat.Colors))
		copy(entries, cat.Colors)
		for _, e := range entries {
			if e.ID == "" {
				return nil, fmt.Errorf("category %q: colour with empty id", cat.Name)
			}
			if _, dup := c.byID[e.ID]; dup {
				return nil, fmt.Errorf("category %q: duplicate colour id %q", cat.Name, e.ID)
			}
			c.byID[e.ID] = e
			c.rank[e.ID] = len(c.rank)
		}
		c.categories = append(c.categories, Category{Name: cat.Name, Colors: entries})
	}
	return c, nil
}

type catalogFile struct {
	Categories []Category `yaml:"categories"`
}

// Load reads a YAML catalog of the form
//
//	categories:
//	  - name: Interior
//	    colors:
//	      - {id: "L101", l: 92.1, a: -0.4, b: 5.2}
func Load(r io.Reader) (*Catalog, error) {
	var f catalogFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(f.Categories)
}

// Categories lists category names in catalog order.
func (c *Catalog) Categories() []string {
	if c == nil {
		return nil
	}
	names := make([]string, len(c.categories))
	for i, cat := range c.categories {
		names[i] = cat.Name
	}
	return names
}

// Entries returns a copy of the colours in a category.
func (c *Catalog) Entries(category string) []ColorEntry {
	if c == nil {
		return nil
	}
	for _, cat := range c.categories {
		if cat.Name == category {
			out := make([]ColorEntry, len(cat.Colors))
			copy(out, cat.Colors)
			return out
		}
	}
	return nil
}

// Page returns up to limit colours of a category starting at offset and
// whether more remain after the page.
func (c *Catalog) Page(category string, offset, limit int) ([]ColorEntry, bool) {
	all := c.Entries(category)
	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return nil, false
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end], end < len(all)
}

// Lookup finds a colour by id.
func (c *Catalog) Lookup(id string) (ColorEntry, bool) {
	if c == nil {
		return ColorEntry{}, false
	}
	e, ok := c.byID[id]
	return e, ok
}

// IDs lists every colour id in catalog order.
func (c *Catalog) IDs() []string {
	if c == nil {
		return nil
	}
	ids := make([]string, 0, len(c.byID))
	for _, cat := range c.categories {
		for _, e := range cat.Colors {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// Index returns the catalog order rank of id, or -1.
func (c *Catalog) Index(id string) int {
	if c == nil {
		return -1
	}
	if r, ok := c.rank[id]; ok {
		return r
	}
	return -1
}

// Len returns the number of colours.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.byID)
}
