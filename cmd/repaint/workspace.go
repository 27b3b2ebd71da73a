package main

import (
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/example/repaint/assets"
	"github.com/example/repaint/internal/advisor"
	"github.com/example/repaint/internal/catalog"
	"github.com/example/repaint/internal/config"
	"github.com/example/repaint/internal/render"
	"github.com/example/repaint/internal/scene"
	"github.com/example/repaint/internal/session"
)

// clipboardSource as an -image value reads the photo from the clipboard.
const clipboardSource = "clipboard"

// Swapped out by tests.
var (
	newProvider = func(cfg config.Advisor) advisor.Provider {
		return advisor.NewGemini(cfg.Model, cfg.Temperature)
	}
	loadBaseFn = func(ctx context.Context, src string) (image.Image, error) {
		if src == clipboardSource {
			img, err := clipboardReadImage()
			if err != nil {
				return nil, fmt.Errorf("%w: clipboard: %w", render.ErrBaseUnavailable, err)
			}
			return img, nil
		}
		return render.LoadBase(ctx, src, render.DefaultHTTPClient)
	}
)


func (r *root) loadCatalog() (*catalog.Catalog, error) {
	cat, err := assets.Catalog(r.config.Catalog)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

func (r *root) definitions() ([]scene.ImageDefinition, error) {
	defs, err := assets.Definitions(r.config.Scenes)
	if err != nil {
		return nil, fmt.Errorf("load scenes: %w", err)
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("no image definitions")
	}
	return defs, nil
}

// definition finds id, or the first definition when id is empty.
func (r *root) definition(id string) (scene.ImageDefinition, error) {
	defs, err := r.definitions()
	if err != nil {
		return scene.ImageDefinition{}, err
	}
	if id == "" {
		return defs[0], nil
	}
	def, ok := scene.Find(defs, id)
	if !ok {
		return scene.ImageDefinition{}, fmt.Errorf("unknown scene %q", id)
	}
	return def, nil
}

// openSession selects the scene and palette. Definitions that do not name
// their own excluded regions fall back to the configured list.
func (r *root) openSession(sceneID, palette string) (*session.Session, error) {
	cat, err := r.loadCatalog()
	if err != nil {
		return nil, err
	}
	def, err := r.definition(sceneID)
	if err != nil {
		return nil, err
	}
	opts := []session.Option{session.WithPrefill(r.config.Prefill)}
	if len(def.Excluded) == 0 && len(r.config.Excluded) > 0 {
		opts = append(opts, session.WithModelOptions(scene.WithExcluded(r.config.Excluded...)))
	}
	sess := session.New(cat, opts...)
	if ids := splitIDs(palette); len(ids) > 0 {
		if err := sess.SetPalette(ids); err != nil {
			return nil, err
		}
	}
	sess.SelectImage(def)
	return sess, nil
}

// renderOptions builds compositing options from config, with blend taking
// precedence when set.
func (r *root) renderOptions(blend string) (render.Options, error) {
	opts := render.DefaultOptions()
	opts.Alpha = r.config.Alpha
	if len(r.config.Excluded) > 0 {
		opts.Excluded = r.config.Excluded
	}
	if blend == "" {
		blend = r.config.Blend
	}
	mode, err := render.ParseBlendMode(blend)
	if err != nil {
		return opts, err
	}
	opts.Blend = mode
	return opts, nil
}

// baseSource picks the photo for def: an explicit source, else the
// definition's display URL.
func baseSource(def scene.ImageDefinition, src string) string {
	if src != "" {
		return src
	}
	return def.DisplayURL
}

func splitIDs(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
