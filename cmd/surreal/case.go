package main

import (
	"fmt"
	"io"

	"github.com/signadot/go-surreal/naming"

	"github.com/scott-cotton/cli"
)

func caseConv(cfg *CaseConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Case.Parse(cc, args)
	if err != nil {
		return err
	}
	if count(cfg.Camel, cfg.Snake, cfg.Host) > 1 {
		return fmt.Errorf("%w: must specify at most one of -camel -snake -host", cli.ErrUsage)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: case requires at least one identifier", cli.ErrUsage)
	}
	conv := caseFunc(cfg)
	return writeCases(cc.Out, conv, args)
}

// caseFunc picks the conversion. Without a flag, identifiers are taken
// as Go names and mapped to their wire names under the registry's
// convention.
func caseFunc(cfg *CaseConfig) func(string) string {
	switch {
	case cfg.Camel:
		return naming.SnakeToCamel
	case cfg.Snake:
		return naming.CamelToSnake
	case cfg.Host:
		return naming.HostName
	}
	conv := cfg.Registry.Naming()
	return func(s string) string {
		return conv.Wire(naming.HostName(s))
	}
}

func writeCases(w io.Writer, conv func(string) string, idents []string) error {
	for _, id := range idents {
		if _, err := fmt.Fprintln(w, conv(id)); err != nil {
			return err
		}
	}
	return nil
}
