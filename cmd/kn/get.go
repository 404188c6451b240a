package main

import (
	"fmt"

	"github.com/knot-format/go-knot/encode"
	"github.com/knot-format/go-knot/ir"
	"github.com/knot-format/go-knot/ir/npath"

	"github.com/scott-cotton/cli"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		cfg.Get.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: get requires one argument, a path", cli.ErrUsage)
	}
	p, err := npath.Parse(args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	var ropts []ir.ResolveOption
	if cfg.Lenient {
		ropts = append(ropts, ir.NonStrict())
	}
	for _, file := range inputs(args[1:]) {
		doc, err := getDocFile(cc, file, cfg.parseOpts()...)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		n, err := doc.Resolve(p, ropts...)
		if err != nil {
			return fmt.Errorf("error getting %s from %s: %w", p, file, err)
		}
		if n == nil {
			n = ir.Null()
		}
		if err := encode.Encode(n, cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return err
		}
	}
	return nil
}
