package main

import (
	"context"
	"flag"
	"log/slog"
	"time"

	"github.com/example/repaint/internal/appstate"
	"github.com/example/repaint/internal/render"
	"github.com/example/repaint/internal/session"
)

// defaultSwatches is how many catalog colours fill an empty palette.
const defaultSwatches = 8

type editCmd struct {
	*root
	fs       *flag.FlagSet
	scene    string
	image    string
	palette  string
	output   string
	preview  string
	editMode bool
	timeout  time.Duration
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	cmd := &editCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	exportDir := ""
	if r != nil && r.config != nil {
		exportDir = r.config.ExportDir
	}
	fs.StringVar(&cmd.scene, "scene", "", "image definition id (default: the first one)")
	fs.StringVar(&cmd.image, "image", "", "base photo path, URL or \"clipboard\" (default: the scene's url)")
	fs.StringVar(&cmd.palette, "palette", "", "comma separated catalog ids for the toolbar")
	fs.StringVar(&cmd.output, "output", exportDir, "directory Ctrl+S writes into")
	fs.StringVar(&cmd.preview, "preview-blend", "multiply", "blend mode of the on-screen preview")
	fs.BoolVar(&cmd.editMode, "edit-mode", false, "start with region editing enabled")
	fs.DurationVar(&cmd.timeout, "timeout", 30*time.Second, "limit for loading the photo")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *editCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

// build prepares the window state without opening it.
func (c *editCmd) build() (*appstate.AppState, error) {
	opts, err := c.renderOptions("")
	if err != nil {
		return nil, err
	}
	preview, err := render.ParseBlendMode(c.preview)
	if err != nil {
		return nil, err
	}
	sess, err := c.openSession(c.scene, c.palette)
	if err != nil {
		return nil, err
	}
	if sess.Palette().Len() == 0 {
		if err := sess.SetPalette(starterPalette(sess)); err != nil {
			return nil, err
		}
		if c.config.Prefill {
			sess.SelectImage(sess.Model().Definition())
		}
	}

	def := sess.Model().Definition()
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	base, err := loadBaseFn(ctx, baseSource(def, c.image))
	if err != nil {
		// The window still works on geometry; export reports the missing photo.
		slog.Warn("base photo unavailable", "scene", def.ID, "error", err)
		base = nil
	}

	return appstate.New(sess,
		appstate.WithBase(base),
		appstate.WithTheme(c.activeTheme),
		appstate.WithNotifier(c.notifier),
		appstate.WithExportDir(c.output),
		appstate.WithRenderOptions(opts, preview),
		appstate.WithEditMode(c.editMode),
	), nil
}

func (c *editCmd) Run() error {
	st, err := c.build()
	if err != nil {
		return err
	}
	st.Run()
	return nil
}

// starterPalette is the first few colours of the catalog's first category.
func starterPalette(sess *session.Session) []string {
	cat := sess.Catalog()
	categories := cat.Categories()
	if len(categories) == 0 {
		return nil
	}
	entries, _ := cat.Page(categories[0], 0, defaultSwatches)
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	return ids
}
