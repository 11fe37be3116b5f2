package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "surreal").
		WithSynopsis("surreal [opts] command [opts]").
		WithDescription("surreal is a tool for working with SurrealDB values.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return surrealMain(cfg, cc, args)
		}).
		WithSubs(
			CaseCommand(cfg),
			FmtCommand(cfg),
			CborCommand(cfg),
			DiffCommand(cfg))
}

func CaseCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CaseConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Case, "case").
		WithAliases("c").
		WithSynopsis("case [-camel|-snake] idents...").
		WithDescription("convert identifiers between snake_case and camelCase").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return caseConv(cfg, cc, args)
		})
}

func FmtCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FmtConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("fmt").
		WithAliases("f").
		WithSynopsis("fmt [-pretty n] [-content] [files]").
		WithDescription("format json or yaml documents as SurrealQL values").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return surqlFmt(cfg, cc, args)
		})
	cfg.Fmt = cmd
	return cmd
}

func CborCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CborConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("cbor").
		WithAliases("cb").
		WithSynopsis("cbor [-d] [-diag] [files]").
		WithDescription("encode json or yaml documents as SurrealDB cbor, or decode hex cbor with -d").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return cborCmd(cfg, cc, args)
		})
	cfg.Cbor = cmd
	return cmd
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithAliases("d", "di").
		WithOpts(opts...).
		WithSynopsis("diff [-paths] a b").
		WithDescription("diff json or yaml documents as SurrealDB values").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}
