package main

import (
	"fmt"
	"io"

	"github.com/signadot/go-surreal/libdiff"
	"github.com/signadot/go-surreal/surql"
	"github.com/signadot/go-surreal/value"

	"github.com/scott-cotton/cli"
	"go.uber.org/zap"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := readValue(cc.In, args[0])
	if err != nil {
		return err
	}
	b, err := readValue(cc.In, args[1])
	if err != nil {
		return err
	}
	differs, err := diffValues(cc.Out, a, b, cfg.Paths, cfg.useColor(cc.Out))
	if err != nil {
		return err
	}
	cfg.Log.Debug("diffed", zap.Strings("files", args), zap.Bool("differs", differs))
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// diffValues writes the differences from a to b and reports whether
// there are any.
func diffValues(w io.Writer, a, b *value.Value, paths, color bool) (bool, error) {
	if !paths {
		if libdiff.Equal(a, b) {
			return false, nil
		}
		return true, libdiff.Write(w, libdiff.Lines(a, b), color)
	}
	changes := libdiff.Diff(a, b)
	for _, c := range changes {
		path := c.Path
		if path == "" {
			path = "."
		}
		if _, err := fmt.Fprintf(w, "%s: %s -> %s\n", path, render(c.From), render(c.To)); err != nil {
			return true, err
		}
	}
	return len(changes) > 0, nil
}

func render(v *value.Value) string {
	if v == nil {
		return "<absent>"
	}
	return surql.Format(v)
}
