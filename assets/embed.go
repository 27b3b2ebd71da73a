// Package assets embeds the default colour catalog and scene definitions.
package assets

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/example/repaint/internal/catalog"
	"github.com/example/repaint/internal/scene"
)

//go:embed data/catalog.yaml data/scenes.yaml
var embedded embed.FS

var (
	loadOnce    sync.Once
	loadErr     error
	defaultCat  *catalog.Catalog
	defaultDefs []scene.ImageDefinition
)

func loadDefaults() {
	data, err := embedded.ReadFile("data/catalog.yaml")
	if err != nil {
		loadErr = err
		return
	}
	if defaultCat, err = catalog.Load(bytes.NewReader(data)); err != nil {
		loadErr = fmt.Errorf("embedded catalog: %w", err)
		return
	}
	data, err = embedded.ReadFile("data/scenes.yaml")
	if err != nil {
		loadErr = err
		return
	}
	if defaultDefs, err = scene.LoadDefinitions(bytes.NewReader(data)); err != nil {
		loadErr = fmt.Errorf("embedded scenes: %w", err)
	}
}

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() (*catalog.Catalog, error) {
	loadOnce.Do(loadDefaults)
	return defaultCat, loadErr
}

// DefaultDefinitions returns a copy of the embedded image definitions.
func DefaultDefinitions() ([]scene.ImageDefinition, error) {
	loadOnce.Do(loadDefaults)
	if loadErr != nil {
		return nil, loadErr
	}
	return append([]scene.ImageDefinition(nil), defaultDefs...), nil
}

// Catalog loads the catalog at path, or the embedded one when path is empty.
func Catalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	return openWith(path, catalog.Load)
}

// Definitions loads image definitions from path, or the embedded ones.
func Definitions(path string) ([]scene.ImageDefinition, error) {
	if path == "" {
		return DefaultDefinitions()
	}
	return openWith(path, scene.LoadDefinitions)
}

func openWith[T any](path string, load func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero, err
	}
	defer f.Close()
	v, err := load(f)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}
