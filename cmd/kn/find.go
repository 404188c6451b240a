package main

import (
	"fmt"

	"github.com/knot-format/go-knot/encode"
	"github.com/knot-format/go-knot/query"

	"github.com/scott-cotton/cli"
)

func find(cfg *FindConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Find.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: find requires 1 argument, an expression", cli.ErrUsage)
	}
	q, err := query.Compile(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	files := inputs(args[1:])
	opts := cfg.encOpts(cc.Out)
	for _, file := range files {
		doc, err := getDocFile(cc, file, cfg.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		ms, err := q.FindDocument(doc)
		if err != nil {
			return fmt.Errorf("error searching %s: %w", file, err)
		}
		for _, m := range ms {
			prefix := ""
			if len(files) > 1 {
				prefix = file + ":"
			}
			if cfg.Paths {
				fmt.Fprintf(cc.Out, "%s%s\n", prefix, m.Path)
				continue
			}
			s, err := encode.String(m.Node, opts...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cc.Out, "%s%s\t%s\n", prefix, m.Path, s)
		}
	}
	return nil
}
