package main

import (
	"fmt"
	"io"

	"github.com/signadot/go-surreal/surql"
	"github.com/signadot/go-surreal/value"

	"github.com/scott-cotton/cli"
	"go.uber.org/zap"
)

func surqlFmt(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Pretty < 0 {
		return fmt.Errorf("%w: -pretty must not be negative", cli.ErrUsage)
	}
	opts := cfg.surqlOpts(cc.Out)
	if cfg.Pretty > 0 {
		opts = append(opts, surql.Pretty(cfg.Pretty))
	}
	for _, file := range inputs(args) {
		v, err := readValue(cc.In, file)
		if err != nil {
			return err
		}
		cfg.Log.Debug("formatting", zap.String("file", file), zap.Stringer("type", v.Type))
		if err := formatValue(cc.Out, v, cfg.Content, opts...); err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
	}
	return nil
}

func formatValue(w io.Writer, v *value.Value, content bool, opts ...surql.Option) error {
	var s string
	if content {
		var err error
		s, err = surql.Content(v, opts...)
		if err != nil {
			return err
		}
	} else {
		s = surql.Format(v, opts...)
	}
	_, err := fmt.Fprintln(w, s)
	return err
}
