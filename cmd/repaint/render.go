package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/example/repaint/internal/advisor"
	"github.com/example/repaint/internal/catalog"
	"github.com/example/repaint/internal/colorspace"
	"github.com/example/repaint/internal/render"
	"github.com/example/repaint/internal/session"
	"golang.org/x/image/colornames"
)

// assignList collects repeated -assign region=color flags.
type assignList []string

func (a *assignList) String() string { return strings.Join(*a, ",") }

func (a *assignList) Set(v string) error {
	if _, _, ok := strings.Cut(v, "="); !ok {
		return fmt.Errorf("expected region=color, got %q", v)
	}
	*a = append(*a, v)
	return nil
}

type renderCmd struct {
	*root
	fs      *flag.FlagSet
	scene   string
	image   string
	palette string
	suggest string
	output  string
	blend   string
	assign  assignList
	timeout time.Duration
	now     func() time.Time
}

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	cmd := &renderCmd{root: r, fs: fs, now: time.Now}
	fs.Usage = usageFunc(cmd)
	exportDir := ""
	if r != nil && r.config != nil {
		exportDir = r.config.ExportDir
	}
	fs.StringVar(&cmd.scene, "scene", "", "image definition id (default: the first one)")
	fs.StringVar(&cmd.image, "image", "", "base photo path, URL or \"clipboard\" (default: the scene's url)")
	fs.Var(&cmd.assign, "assign", "region=color, color being a catalog id, #rrggbb or CSS name (repeatable)")
	fs.StringVar(&cmd.palette, "palette", "", "comma separated catalog ids for the working palette")
	fs.StringVar(&cmd.suggest, "suggest", "", "ask the colour advisor and paint regions with its picks")
	fs.StringVar(&cmd.output, "output", exportDir, "directory to write the PNG into")
	fs.StringVar(&cmd.blend, "blend", "", "fill blend mode: normal, multiply or overlay")
	fs.DurationVar(&cmd.timeout, "timeout", time.Minute, "limit for loading the photo and the advisor call")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	if len(cmd.assign) == 0 && cmd.suggest == "" && (r == nil || !r.config.Prefill) {
		return nil, fmt.Errorf("nothing to paint: give -assign or -suggest")
	}
	return cmd, nil
}

func (c *renderCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *renderCmd) Run() error {
	opts, err := c.renderOptions(c.blend)
	if err != nil {
		return err
	}
	sess, err := c.openSession(c.scene, c.palette)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	if c.suggest != "" {
		if err := applyAdvice(ctx, sess, newProvider(c.config.Advisor), c.suggest); err != nil {
			return err
		}
	}
	if err := applyAssignments(sess, c.assign); err != nil {
		return err
	}

	m := sess.Model()
	def := m.Definition()
	base, err := loadBaseFn(ctx, baseSource(def, c.image))
	if err != nil {
		return fmt.Errorf("render %s: %w", def.ID, err)
	}
	opts.Width, opts.Height = m.Size()
	img, err := render.Composite(base, m.Paintable(), sess.Assignments(), opts)
	if err != nil {
		return fmt.Errorf("render %s: %w", def.ID, err)
	}
	path, err := render.Export(c.output, img, c.now())
	if err != nil {
		return fmt.Errorf("export %s: %w", def.ID, err)
	}
	fmt.Fprintln(c.stdout, path)
	c.notifyExport(path)
	return nil
}

// applyAdvice paints the session's regions with the advisor's picks.
func applyAdvice(ctx context.Context, sess *session.Session, p advisor.Provider, prompt string) error {
	suggestions, err := sess.Advise(ctx, p, prompt)
	if err != nil {
		return fmt.Errorf("colour advice: %w", err)
	}
	if _, err := sess.ApplySuggestions(suggestions); err != nil {
		return fmt.Errorf("apply advice: %w", err)
	}
	return nil
}

// applyAssignments applies region=color pairs in order.
func applyAssignments(sess *session.Session, pairs []string) error {
	for _, pair := range pairs {
		region, value, _ := strings.Cut(pair, "=")
		region = strings.TrimSpace(region)
		display, err := resolveColor(sess.Catalog(), value)
		if err != nil {
			return err
		}
		if !sess.Assign(region, display) {
			return fmt.Errorf("region %q cannot be painted", region)
		}
	}
	return nil
}

var errUnknownColorName = errors.New("not a catalog id, #rrggbb value or CSS colour name")

// resolveColor turns a catalog id, hex value or CSS colour name into a
// "#rrggbb" display colour.
func resolveColor(cat *catalog.Catalog, value string) (string, error) {
	value = strings.TrimSpace(value)
	if e, ok := cat.Lookup(value); ok {
		return e.Display(), nil
	}
	if strings.HasPrefix(value, "#") {
		if c, ok := colorspace.ParseHex(value); ok {
			return colorspace.ToHex(c), nil
		}
	}
	if c, ok := colornames.Map[strings.ToLower(value)]; ok {
		return colorspace.ToHex(c), nil
	}
	return "", fmt.Errorf("%q: %w", value, errUnknownColorName)
}
