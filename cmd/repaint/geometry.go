package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/example/repaint/internal/clipboard"
	"github.com/example/repaint/internal/scene"
)

// Swapped out by tests.
var (
	clipboardWriteText = clipboard.WriteText
	clipboardReadText  = clipboard.ReadText
	clipboardReadImage = clipboard.ReadImage
)

type geometryCmd struct {
	*root
	fs    *flag.FlagSet
	scene string
	input string
	op    string
}

func parseGeometryCmd(args []string, r *root) (*geometryCmd, error) {
	fs := flag.NewFlagSet("geometry", flag.ExitOnError)
	cmd := &geometryCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	fs.StringVar(&cmd.scene, "scene", "", "image definition id (default: the first one)")
	fs.StringVar(&cmd.input, "input", "", "paste from this JSON file instead of the clipboard")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, &UsageError{of: cmd}
	}
	cmd.op = strings.ToLower(fs.Arg(0))
	switch cmd.op {
	case "print", "copy", "paste":
	default:
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *geometryCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *geometryCmd) Run() error {
	sess, err := c.openSession(c.scene, "")
	if err != nil {
		return err
	}
	m := sess.Model()
	switch c.op {
	case "copy":
		data, err := scene.ExportGeometry(m.Regions())
		if err != nil {
			return err
		}
		if err := clipboardWriteText(string(data)); err != nil {
			return fmt.Errorf("copy geometry: %w", err)
		}
		fmt.Fprintf(c.stderr, "copied geometry of %d regions\n", len(m.Regions()))
		c.notifyCopy("geometry", nil)
		return nil
	case "paste":
		data, err := c.readInput()
		if err != nil {
			return err
		}
		regions, err := scene.ImportGeometry(data)
		if err != nil {
			return err
		}
		skipped, err := m.Apply(regions)
		if err != nil {
			return fmt.Errorf("apply geometry: %w", err)
		}
		if len(skipped) > 0 {
			fmt.Fprintf(c.stderr, "skipped regions: %s\n", strings.Join(skipped, ", "))
		}
	}
	data, err := scene.ExportGeometry(m.Regions())
	if err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, string(data))
	return nil
}

func (c *geometryCmd) readInput() ([]byte, error) {
	if c.input != "" {
		data, err := os.ReadFile(c.input)
		if err != nil {
			return nil, fmt.Errorf("read geometry: %w", err)
		}
		return data, nil
	}
	text, err := clipboardReadText()
	if err != nil {
		return nil, fmt.Errorf("paste geometry: %w", err)
	}
	return []byte(text), nil
}
