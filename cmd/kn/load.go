package main

import (
	"fmt"
	"os"

	"github.com/knot-format/go-knot/encode"
	"github.com/knot-format/go-knot/loader"

	"github.com/scott-cotton/cli"
)

func load(cfg *LoadConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Load.Parse(cc, args)
	if err != nil {
		return err
	}
	files := inputs(args)
	srcs := make([]loader.Source, len(files))
	for i, file := range files {
		d, err := readFile(cc, file)
		if err != nil {
			return err
		}
		srcs[i] = loader.Source{Name: file, Data: d}
	}
	b, err := loader.BatchLoad(srcs,
		loader.DropPrefabs(cfg.DropPrefabs),
		loader.WithParseOptions(cfg.parseOpts()...))
	if err != nil {
		return err
	}
	opts := cfg.encOpts(cc.Out)
	if cfg.Exports {
		return encode.EncodeDocument(b.Exports.Document(), cc.Out, opts...)
	}
	for i, doc := range b.Resolved {
		for _, w := range doc.Warnings {
			fmt.Fprintf(os.Stderr, "%s:%d:%d: warning: %s\n", files[i], w.Line, w.Col, w.Msg)
		}
		if err := fileHeader(cfg.MainConfig, cc.Out, files[i], i, len(files)); err != nil {
			return err
		}
		if err := encode.EncodeDocument(doc, cc.Out, opts...); err != nil {
			return fmt.Errorf("error encoding %s: %w", files[i], err)
		}
	}
	return nil
}
