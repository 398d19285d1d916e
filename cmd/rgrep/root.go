package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/coregx/rgrep"
)

// Exit codes, as in grep(1).
const (
	exitMatch   = 0
	exitNoMatch = 1
	exitTrouble = 2
)

var errUsage = errors.New("usage: rgrep [-r] [-o] [--color=WHEN] -E <pattern> [paths...]")

// app holds the flag values and I/O of one invocation.
type app struct {
	pattern      string
	recursive    bool
	onlyMatching bool
	color        string
	nested       bool
	backtrack    bool
	noPrefilter  bool
	debugPattern bool

	stdin  io.Reader
	stdout io.Writer

	found bool
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rgrep -E <pattern> [paths...]",
		Short: "rgrep prints lines matching a pattern.",
		Long: "`rgrep` searches files, directories (with -r) or standard input for lines matching a pattern.\n\n" +
			"Supported syntax: literals, ., \\d, \\w, [set], [^set], + and ?, (group), (a|b), \\1-\\9, ^ and $.",
		Args: cobra.ArbitraryArgs,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			glog.Flush()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(args)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	a.registerFlags(cmd.Flags())
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	return cmd
}

func (a *app) registerFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&a.pattern, "regexp", "E", "", "Pattern to match.")
	fs.BoolVarP(&a.recursive, "recursive", "r", false, "Search directories recursively.")
	fs.BoolVarP(&a.onlyMatching, "only-matching", "o", false, "Print only the matched part of each line.")
	fs.StringVar(&a.color, "color", "never", "Highlight matches: auto, always or never.")
	fs.BoolVar(&a.nested, "nested-groups", false, "Allow nested groups and more than two alternation branches.")
	fs.BoolVar(&a.backtrack, "backtrack-quantifiers", false, "Let quantifiers give back repetitions.")
	fs.BoolVar(&a.noPrefilter, "no-prefilter", false, "Run the matcher on every line.")
	fs.BoolVar(&a.debugPattern, "debug-pattern", false, "Log the compiled pattern nodes.")
	fs.Lookup("color").NoOptDefVal = "auto"
}

// execute runs the command line args and returns the process exit code.
func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := &app{stdin: stdin, stdout: stdout}
	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "rgrep: %v\n", err)
		return exitTrouble
	}
	if a.found {
		return exitMatch
	}
	return exitNoMatch
}

func (a *app) config() rgrep.Config {
	config := rgrep.DefaultConfig()
	config.NestedGroups = a.nested
	config.BacktrackQuantifiers = a.backtrack
	config.EnablePrefilter = !a.noPrefilter
	return config
}

func (a *app) useColor() (bool, error) {
	switch a.color {
	case "always":
		return true, nil
	case "never", "":
		return false, nil
	case "auto":
		f, ok := a.stdout.(*os.File)
		return ok && isTerminal(int(f.Fd())), nil
	}
	return false, fmt.Errorf("invalid --color value %q: expected auto, always or never", a.color)
}

func (a *app) run(paths []string) error {
	if a.pattern == "" {
		return errUsage
	}
	color, err := a.useColor()
	if err != nil {
		return err
	}

	re, err := rgrep.CompileWithConfig(a.pattern, a.config())
	if err != nil {
		return err
	}
	if a.debugPattern {
		logPattern(re)
	}

	g := &grepper{
		re:           re,
		out:          a.stdout,
		onlyMatching: a.onlyMatching,
		color:        color,
	}

	switch {
	case len(paths) == 0:
		a.found, err = g.scan("(standard input)", a.stdin, false)
		return err
	case a.recursive:
		a.found, err = g.walk(paths)
		return err
	default:
		a.found, err = g.files(paths, len(paths) > 1)
		return err
	}
}

func logPattern(re *rgrep.Regex) {
	p := re.Pattern()
	glog.Infof("pattern %q: start anchor=%v end anchor=%v groups=%d prefilter=%v",
		p.Source, p.StartAnchor, p.EndAnchor, p.NumGroups(), re.HasPrefilter())
	for i := range p.Nodes {
		n := &p.Nodes[i]
		glog.Infof("  node %d: %s %s", i, n.Op, n.String())
	}
}
