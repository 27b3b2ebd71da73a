package main

import (
	"context"
	"flag"
	"fmt"
	"time"
)

type suggestCmd struct {
	*root
	fs      *flag.FlagSet
	prompt  string
	palette string
	scene   string
	apply   bool
	timeout time.Duration
}

func parseSuggestCmd(args []string, r *root) (*suggestCmd, error) {
	fs := flag.NewFlagSet("suggest", flag.ExitOnError)
	cmd := &suggestCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	fs.StringVar(&cmd.prompt, "prompt", "", "what the room should feel like")
	fs.StringVar(&cmd.palette, "palette", "", "comma separated catalog ids to choose from (default: whole catalog)")
	fs.StringVar(&cmd.scene, "scene", "", "image definition id used with -apply")
	fs.BoolVar(&cmd.apply, "apply", false, "also print which region gets which colour")
	fs.DurationVar(&cmd.timeout, "timeout", time.Minute, "limit for the advisor call")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cmd.prompt == "" && fs.NArg() > 0 {
		cmd.prompt = joinArgs(fs.Args())
	} else if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	if cmd.prompt == "" {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *suggestCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *suggestCmd) Run() error {
	sess, err := c.openSession(c.scene, c.palette)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	suggestions, err := sess.Advise(ctx, newProvider(c.config.Advisor), c.prompt)
	if err != nil {
		return fmt.Errorf("colour advice: %w", err)
	}
	cat := sess.Catalog()
	for _, s := range suggestions {
		e, _ := cat.Lookup(s.ID)
		fmt.Fprintf(c.stdout, "%-10s %s  %s\n", s.ID, e.Display(), s.Reason)
	}
	if !c.apply {
		return nil
	}
	assignments, err := sess.ApplySuggestions(suggestions)
	if err != nil {
		return fmt.Errorf("apply advice: %w", err)
	}
	for _, r := range sess.Model().Paintable() {
		fmt.Fprintf(c.stdout, "  %s = %s\n", r.ID, assignments[r.ID])
	}
	return nil
}
