package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/signadot/go-surreal/surql"
	"github.com/signadot/go-surreal/wirecbor"

	"github.com/scott-cotton/cli"
	"go.uber.org/zap"
)

func cborCmd(cfg *CborConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Cbor.Parse(cc, args)
	if err != nil {
		return err
	}
	for _, file := range inputs(args) {
		if cfg.Decode {
			d, err := readInput(cc.In, file)
			if err != nil {
				return err
			}
			err = decodeHex(cc.Out, d, cfg.Diag, cfg.surqlOpts(cc.Out)...)
			if err != nil {
				return fmt.Errorf("error processing %s: %w", file, err)
			}
			continue
		}
		v, err := readValue(cc.In, file)
		if err != nil {
			return err
		}
		data, err := wirecbor.Marshal(v)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		cfg.Log.Debug("encoded cbor", zap.String("file", file), zap.Int("bytes", len(data)))
		if err := writeCbor(cc.Out, data, cfg.Diag); err != nil {
			return err
		}
	}
	return nil
}

func writeCbor(w io.Writer, data []byte, diag bool) error {
	if !diag {
		_, err := fmt.Fprintln(w, hex.EncodeToString(data))
		return err
	}
	s, err := wirecbor.Diagnose(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, s)
	return err
}

// decodeHex reads whitespace separated hex cbor and prints it as
// SurrealQL, or in diagnostic notation with diag.
func decodeHex(w io.Writer, in []byte, diag bool, opts ...surql.Option) error {
	data, err := hex.DecodeString(string(bytes.Join(bytes.Fields(in), nil)))
	if err != nil {
		return fmt.Errorf("invalid hex: %w", err)
	}
	if diag {
		return writeCbor(w, data, true)
	}
	v, err := wirecbor.Unmarshal(data)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, surql.Format(v, opts...))
	return err
}
