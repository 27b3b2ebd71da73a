package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// commandList collects repeated -e flags.
type commandList []string

func (c *commandList) String() string { return strings.Join(*c, "; ") }

func (c *commandList) Set(v string) error {
	*c = append(*c, v)
	return nil
}

type interactiveCmd struct {
	*root
	fs    *flag.FlagSet
	execs commandList
	in    io.Reader
}

func parseInteractiveCmd(args []string, r *root) (*interactiveCmd, error) {
	fs := flag.NewFlagSet("interactive", flag.ExitOnError)
	cmd := &interactiveCmd{root: r, fs: fs, in: os.Stdin}
	fs.Usage = usageFunc(cmd)
	fs.Var(&cmd.execs, "e", "run this command and exit (may be repeated)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *interactiveCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *interactiveCmd) Run() error {
	if len(c.execs) > 0 {
		for _, line := range c.execs {
			done, err := c.executeLine(line)
			if err != nil {
				return err
			}
			if done {
				break
			}
		}
		return nil
	}

	fmt.Fprintln(c.stdout, "Enter commands (type 'exit' to quit)")
	scanner := bufio.NewScanner(c.in)
	for {
		fmt.Fprint(c.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		done, err := c.executeLine(scanner.Text())
		if err != nil {
			fmt.Fprintln(c.stderr, err)
		}
		if done {
			break
		}
	}
	return scanner.Err()
}

// executeLine runs one command line and reports whether the session ended.
func (c *interactiveCmd) executeLine(line string) (bool, error) {
	args := splitLine(line)
	if len(args) == 0 {
		return false, nil
	}
	switch args[0] {
	case "exit", "quit":
		return true, nil
	case "interactive":
		return false, nil
	}
	if c.root.fs == nil {
		return false, fmt.Errorf("interactive mode needs the root command")
	}
	return false, c.root.Run(args)
}

// splitLine splits on whitespace, keeping double quoted runs together.
func splitLine(line string) []string {
	var (
		args    []string
		current strings.Builder
		quoted  bool
		started bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			started = true
		case !quoted && (r == ' ' || r == '\t'):
			if started {
				args = append(args, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}
	if started {
		args = append(args, current.String())
	}
	return args
}

func joinArgs(args []string) string {
	return strings.Join(args, " ")
}
