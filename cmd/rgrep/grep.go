package main

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"

	"github.com/coregx/rgrep"
)

const (
	colorStart = "\x1b[01;31m"
	colorEnd   = "\x1b[m"
)

// grepper prints the matching lines of its inputs.
type grepper struct {
	re           *rgrep.Regex
	out          io.Writer
	onlyMatching bool
	color        bool
}

// scan prints the lines of r that match, prefixed with name when prefix is
// set, and reports whether any line matched.
func (g *grepper) scan(name string, r io.Reader, prefix bool) (bool, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	found := false
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		ok, err := g.re.IsMatch(line)
		if err != nil {
			return found, fmt.Errorf("%s:%d: %w", name, lineNo, err)
		}
		if !ok {
			continue
		}
		found = true
		if err := g.print(name, line, prefix); err != nil {
			return found, fmt.Errorf("%s:%d: %w", name, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return found, fmt.Errorf("reading %s: %w", name, err)
	}
	glog.V(1).Infof("%s: %d lines scanned, match=%v", name, lineNo, found)
	return found, nil
}

func (g *grepper) print(name, line string, prefix bool) error {
	lead := ""
	if prefix {
		lead = name + ":"
	}

	if !g.onlyMatching && !g.color {
		_, err := fmt.Fprintf(g.out, "%s%s\n", lead, line)
		return err
	}

	locs, err := g.re.FindAllStringIndex(line, -1)
	if err != nil {
		return err
	}

	if g.onlyMatching {
		for _, loc := range locs {
			if _, err := fmt.Fprintf(g.out, "%s%s\n", lead, g.paint(line[loc[0]:loc[1]])); err != nil {
				return err
			}
		}
		return nil
	}

	var b strings.Builder
	b.WriteString(lead)
	last := 0
	for _, loc := range locs {
		b.WriteString(line[last:loc[0]])
		b.WriteString(g.paint(line[loc[0]:loc[1]]))
		last = loc[1]
	}
	b.WriteString(line[last:])
	b.WriteByte('\n')
	_, err = io.WriteString(g.out, b.String())
	return err
}

func (g *grepper) paint(match string) string {
	if !g.color {
		return match
	}
	return colorStart + match + colorEnd
}

// files scans each named file in order.
func (g *grepper) files(paths []string, prefix bool) (bool, error) {
	found := false
	for _, path := range paths {
		ok, err := g.file(path, prefix)
		found = found || ok
		if err != nil {
			return found, err
		}
	}
	return found, nil
}

func (g *grepper) file(path string, prefix bool) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	return g.scan(path, f, prefix)
}

// walk scans every regular file below each root. Unreadable entries are
// logged and skipped.
func (g *grepper) walk(roots []string) (bool, error) {
	found := false
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				glog.Warningf("skipping %s: %v", path, err)
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			ok, err := g.file(path, true)
			found = found || ok
			if err != nil {
				if os.IsPermission(err) {
					glog.Warningf("skipping %s: %v", path, err)
					return nil
				}
				return err
			}
			return nil
		})
		if err != nil {
			return found, err
		}
	}
	return found, nil
}
