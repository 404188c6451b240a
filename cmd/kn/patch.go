package main

import (
	"fmt"

	"github.com/knot-format/go-knot/mutation"

	"github.com/scott-cotton/cli"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		cfg.Patch.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 1 || len(args) > 2 {
		return fmt.Errorf("%w: patch requires a patch and at most one file to which to apply it", cli.ErrUsage)
	}
	p, err := getish(cfg.String, cfg.File, cc, args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	file := "-"
	if len(args) == 2 {
		file = args[1]
	}
	target, err := getDocFile(cc, file, cfg.parseOpts()...)
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", file, err)
	}
	if cfg.JSON {
		res, err := mutation.PatchPlain(target.AsList(), p)
		if err != nil {
			return fmt.Errorf("error patching %s: %w", file, err)
		}
		_, err = fmt.Fprintf(cc.Out, "%s\n", res)
		return err
	}
	muts, err := mutation.Decode(p)
	if err != nil {
		return fmt.Errorf("error decoding patch: %w", err)
	}
	if err := mutation.ApplyDocument(target, muts); err != nil {
		return fmt.Errorf("error patching %s: %w", file, err)
	}
	return writeDocument(cfg.MainConfig, cc, target, file, false)
}
