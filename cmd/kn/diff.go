package main

import (
	"fmt"
	"io"

	"github.com/knot-format/go-knot/encode"
	"github.com/knot-format/go-knot/ir"
	"github.com/knot-format/go-knot/mutation"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
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
	if cfg.JSON && cfg.Text {
		return fmt.Errorf("%w: only one of -json, -s may be specified", cli.ErrUsage)
	}
	a, err := getDocFile(cc, args[0], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	b, err := getDocFile(cc, args[1], cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	if cfg.Reverse {
		a, b = b, a
	}
	differs, err := diffInputs(cfg, cc, a, b)
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

func diffInputs(cfg *DiffConfig, cc *cli.Context, a, b *ir.Document) (bool, error) {
	w := cc.Out
	if cfg.Text {
		var opts []encode.EncodeOption
		if cfg.Indent > 0 {
			opts = append(opts, encode.Indent(cfg.Indent))
		}
		lines, err := mutation.TextDiff(a.AsList(), b.AsList(), opts...)
		if err != nil {
			return false, err
		}
		if !mutation.Changed(lines) {
			return false, nil
		}
		return true, writeLines(w, lines, cfg.useColor(w))
	}
	muts, err := mutation.DiffDocuments(a, b)
	if err != nil {
		return false, err
	}
	if len(muts) == 0 {
		return false, nil
	}
	if cfg.JSON {
		d, err := mutation.JSONPatch(a.AsList(), muts)
		if err != nil {
			return false, err
		}
		_, err = fmt.Fprintf(w, "%s\n", d)
		return true, err
	}
	if err := mutation.Encode(muts, w, cfg.encOpts(w)...); err != nil {
		return false, err
	}
	return true, nil
}

func writeLines(w io.Writer, lines []mutation.Line, colored bool) error {
	del := fmt.Sprint
	add := fmt.Sprint
	if colored {
		del = color.New(color.FgRed).Sprint
		add = color.New(color.FgGreen).Sprint
	}
	for _, ln := range lines {
		s := ln.String()
		switch ln.Op {
		case mutation.LineDelete:
			s = del(s)
		case mutation.LineInsert:
			s = add(s)
		}
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}
