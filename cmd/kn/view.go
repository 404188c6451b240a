package main

import (
	"bytes"
	"fmt"

	"github.com/knot-format/go-knot/encode"
	"github.com/knot-format/go-knot/parse"

	"github.com/scott-cotton/cli"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	files := inputs(args)
	opts := append(cfg.encOpts(cc.Out), encode.Pretty(true))
	for i, file := range files {
		doc, err := getDocFile(cc, file, cfg.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		if err := fileHeader(cfg.MainConfig, cc.Out, file, i, len(files)); err != nil {
			return err
		}
		if err := encode.EncodeDocument(doc, cc.Out, opts...); err != nil {
			return fmt.Errorf("error encoding %s: %w", file, err)
		}
	}
	return nil
}

func fmtCmd(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Write && cfg.Check {
		return fmt.Errorf("%w: only one of -w, -check may be specified", cli.ErrUsage)
	}
	if !cfg.outFormat().IsKnot() && (cfg.Write || cfg.Check) {
		return fmt.Errorf("%w: -w and -check format knot only", cli.ErrUsage)
	}
	files := inputs(args)
	unformatted := 0
	for i, file := range files {
		d, err := readFile(cc, file)
		if err != nil {
			return err
		}
		doc, err := parse.Parse(d, cfg.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		if cfg.Check {
			buf := bytes.NewBuffer(nil)
			// no colors when comparing to the source
			opts := []encode.EncodeOption{encode.Pretty(cfg.Pretty)}
			if cfg.Indent > 0 {
				opts = append(opts, encode.Indent(cfg.Indent))
			}
			if err := encode.EncodeDocument(doc, buf, opts...); err != nil {
				return fmt.Errorf("error encoding %s: %w", file, err)
			}
			if !bytes.Equal(buf.Bytes(), d) {
				fmt.Fprintln(cc.Out, file)
				unformatted++
			}
			continue
		}
		if !cfg.Write {
			if err := fileHeader(cfg.MainConfig, cc.Out, file, i, len(files)); err != nil {
				return err
			}
		}
		if err := writeDocument(cfg.MainConfig, cc, doc, file, cfg.Write); err != nil {
			return err
		}
	}
	if unformatted > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}
