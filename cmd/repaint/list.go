package main

import (
	"flag"
	"fmt"
	"strings"
)

type colorsCmd struct {
	*root
	fs       *flag.FlagSet
	category string
	offset   int
	limit    int
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	fs := flag.NewFlagSet("colors", flag.ExitOnError)
	cmd := &colorsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	fs.StringVar(&cmd.category, "category", "", "only list this category")
	fs.IntVar(&cmd.offset, "offset", 0, "skip this many colours per category")
	fs.IntVar(&cmd.limit, "limit", 0, "list at most this many colours per category (0 = all)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 || cmd.offset < 0 || cmd.limit < 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *colorsCmd) Run() error {
	cat, err := c.loadCatalog()
	if err != nil {
		return err
	}
	categories := cat.Categories()
	if c.category != "" {
		categories = []string{c.category}
	}
	found := false
	for _, name := range categories {
		entries, more := cat.Page(name, c.offset, c.limit)
		if len(entries) == 0 {
			continue
		}
		found = true
		fmt.Fprintf(c.stdout, "%s:\n", name)
		for _, e := range entries {
			fmt.Fprintf(c.stdout, "  %-10s %s  L=%.1f a=%.1f b=%.1f\n", e.ID, e.Display(), e.L, e.A, e.B)
		}
		if more {
			fmt.Fprintf(c.stdout, "  ... (use -offset %d for more)\n", c.offset+len(entries))
		}
	}
	if !found {
		if c.category != "" {
			return fmt.Errorf("no colours in category %q", c.category)
		}
		fmt.Fprintln(c.stdout, "no colors available")
	}
	return nil
}

type scenesCmd struct {
	*root
	fs *flag.FlagSet
}

func parseScenesCmd(args []string, r *root) (*scenesCmd, error) {
	fs := flag.NewFlagSet("scenes", flag.ExitOnError)
	cmd := &scenesCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *scenesCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *scenesCmd) Run() error {
	defs, err := c.definitions()
	if err != nil {
		return err
	}
	for _, def := range defs {
		sess, err := c.openSession(def.ID, "")
		if err != nil {
			return err
		}
		m := sess.Model()
		fmt.Fprintf(c.stdout, "%s  %q  viewBox %s\n", def.ID, def.Name, def.ViewBox())
		if def.DisplayURL != "" {
			fmt.Fprintf(c.stdout, "  image: %s\n", def.DisplayURL)
		}
		ids := make([]string, 0, len(def.Regions))
		for _, reg := range m.Regions() {
			label := reg.ID
			if m.IsExcluded(reg.ID) {
				label += " (excluded)"
			}
			ids = append(ids, label)
		}
		fmt.Fprintf(c.stdout, "  regions: %s\n", strings.Join(ids, ", "))
	}
	return nil
}
