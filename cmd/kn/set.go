package main

import (
	"fmt"

	"github.com/knot-format/go-knot/ir"
	"github.com/knot-format/go-knot/ir/npath"
	"github.com/knot-format/go-knot/parse"

	"github.com/scott-cotton/cli"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("%w: set requires a path, a value and at most one file", cli.ErrUsage)
	}
	p, err := npath.Parse(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	v, err := parse.ParseSingle([]byte(args[1]))
	if err != nil {
		return fmt.Errorf("%w: value: %w", cli.ErrUsage, err)
	}
	file := "-"
	if len(args) == 3 {
		file = args[2]
	}
	doc, err := getDocFile(cc, file, cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error processing %s: %w", file, err)
	}
	mode := ir.Replace
	if cfg.Insert {
		mode = ir.Insert
	}
	if err := doc.Set(p, v, mode); err != nil {
		return fmt.Errorf("error setting %s in %s: %w", p, file, err)
	}
	return writeDocument(cfg.MainConfig, cc, doc, file, cfg.Write)
}

func rm(cfg *RmConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Rm.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: rm requires a path and at most one file", cli.ErrUsage)
	}
	p, err := npath.Parse(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	file := "-"
	if len(args) == 2 {
		file = args[1]
	}
	doc, err := getDocFile(cc, file, cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error processing %s: %w", file, err)
	}
	if _, err := doc.Delete(p); err != nil {
		return fmt.Errorf("error deleting %s in %s: %w", p, file, err)
	}
	return writeDocument(cfg.MainConfig, cc, doc, file, cfg.Write)
}
