package assets

import (
	"testing"
)

func TestDefaultsLoad(t *testing.T) {
	cat, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog: %v", err)
	}
	if len(cat.Categories()) != 4 || cat.Len() != 32 {
		t.Fatalf("catalog has %d categories, %d colours", len(cat.Categories()), cat.Len())
	}
	defs, err := DefaultDefinitions()
	if err != nil {
		t.Fatalf("DefaultDefinitions: %v", err)
	}
	if len(defs) != 1 || defs[0].ID != "interior-lavis-auto" {
		t.Fatalf("definitions = %+v", defs)
	}
	d := defs[0]
	if d.Width != 1920 || d.Height != 1280 || len(d.Regions) != 5 {
		t.Fatalf("definition = %+v", d)
	}
	if d.Regions[1].ID != "left-wall" || d.Regions[1].LabelAnchor.X != 350 {
		t.Fatalf("left-wall = %+v", d.Regions[1])
	}
}

func TestCatalogFromMissingPath(t *testing.T) {
	if _, err := Catalog("/does/not/exist.yaml"); err == nil {
		t.Fatal("expected error")
	}
	if _, err := Definitions(""); err != nil {
		t.Fatalf("embedded definitions: %v", err)
	}
}
