package main

import (
	"io"
	"os"

	"github.com/signadot/go-surreal/codec"
	"github.com/signadot/go-surreal/config"
	"github.com/signadot/go-surreal/surql"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"go.uber.org/zap"
)

type MainConfig struct {
	ConfigFile string `cli:"name=config aliases=c desc='configuration file (default ./surreal.{yaml,json,toml})'"`
	Color      bool   `cli:"name=color desc='output with color'"`
	Verbose    bool   `cli:"name=v aliases=verbose desc='log at debug level to stderr'"`

	Out      string
	CloseOut func() error

	Settings *config.Config
	Log      *zap.Logger
	Registry *codec.Registry

	Main *cli.Command
}

// setup loads the configuration file and environment and builds the
// logger and the codec registry. It runs once, after the main options
// are parsed.
func (cfg *MainConfig) setup() error {
	c, err := config.Load(cfg.ConfigFile)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		c.EnableLog = true
		c.LogLevel = "debug"
	}
	lg, err := c.Logger(nil)
	if err != nil {
		return err
	}
	cfg.Settings = c
	cfg.Log = lg
	cfg.Registry = codec.NewRegistry(c.CodecConfig(lg))
	return nil
}

func (cfg *MainConfig) colorsSet() bool {
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		return opt.Value != nil
	}
	return false
}

// useColor reports whether output to w is colored: -color decides when
// given, otherwise color is used on terminals.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	if cfg.colorsSet() {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) surqlOpts(w io.Writer) []surql.Option {
	if cfg.useColor(w) {
		return []surql.Option{surql.WithColors(surql.NewColors())}
	}
	return nil
}

type CaseConfig struct {
	*MainConfig
	Camel bool `cli:"name=camel desc='convert snake_case to camelCase'"`
	Snake bool `cli:"name=snake desc='convert camelCase to snake_case'"`
	Host  bool `cli:"name=host desc='print the host (variant) name of Go identifiers'"`

	Case *cli.Command
}

type FmtConfig struct {
	*MainConfig
	Pretty  int  `cli:"name=pretty aliases=p desc='indent nested values by this many spaces'"`
	Content bool `cli:"name=content desc='print a CONTENT clause'"`

	Fmt *cli.Command
}

type CborConfig struct {
	*MainConfig
	Decode bool `cli:"name=d aliases=decode desc='decode hex cbor to SurrealQL'"`
	Diag   bool `cli:"name=diag desc='print cbor diagnostic notation'"`

	Cbor *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Paths bool `cli:"name=paths desc='list changed paths instead of lines'"`

	Diff *cli.Command
}
