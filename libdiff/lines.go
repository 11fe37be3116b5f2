package libdiff

import (
	"io"
	"strings"

	"github.com/signadot/go-surreal/surql"
	"github.com/signadot/go-surreal/value"

	"github.com/fatih/color"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type Op int

const (
	OpEqual Op = iota
	OpInsert
	OpDelete
)

func (o Op) prefix() string {
	switch o {
	case OpInsert:
		return "+ "
	case OpDelete:
		return "- "
	}
	return "  "
}

// Line is one line of a line diff.
type Line struct {
	Op   Op
	Text string
}

// Equal reports whether from and to are the same value, object key order
// included.
func Equal(from, to *value.Value) bool {
	return value.Equal(from, to)
}

// Lines returns the line diff of the pretty SurrealQL renderings of from
// and to.
func Lines(from, to *value.Value) []Line {
	a := surql.Format(from, surql.Pretty(2)) + "\n"
	b := surql.Format(to, surql.Pretty(2)) + "\n"
	if a == b {
		return toLines(OpEqual, a)
	}
	dmp := diffpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
	var res []Line
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffInsert:
			res = append(res, toLines(OpInsert, d.Text)...)
		case diffpatch.DiffDelete:
			res = append(res, toLines(OpDelete, d.Text)...)
		default:
			res = append(res, toLines(OpEqual, d.Text)...)
		}
	}
	return res
}

func toLines(op Op, text string) []Line {
	text = strings.TrimSuffix(text, "\n")
	parts := strings.Split(text, "\n")
	res := make([]Line, len(parts))
	for i, p := range parts {
		res[i] = Line{Op: op, Text: p}
	}
	return res
}

// Changed reports whether any line is an insertion or deletion.
func Changed(lines []Line) bool {
	for _, ln := range lines {
		if ln.Op != OpEqual {
			return true
		}
	}
	return false
}

// Write prints lines prefixed with "+ ", "- " or two spaces, coloring
// insertions and deletions when colors is set.
func Write(w io.Writer, lines []Line, colors bool) error {
	ins := color.New(color.FgGreen)
	del := color.New(color.FgRed)
	if colors {
		ins.EnableColor()
		del.EnableColor()
	} else {
		ins.DisableColor()
		del.DisableColor()
	}
	for _, ln := range lines {
		s := ln.Op.prefix() + ln.Text
		switch ln.Op {
		case OpInsert:
			s = ins.Sprint(s)
		case OpDelete:
			s = del.Sprint(s)
		}
		if _, err := io.WriteString(w, s+"\n"); err != nil {
			return err
		}
	}
	return nil
}
