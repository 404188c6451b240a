package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knot-format/go-knot/encode"
	"github.com/knot-format/go-knot/ir"
	"github.com/knot-format/go-knot/parse"

	"github.com/scott-cotton/cli"
)

func readFile(cc *cli.Context, path string) ([]byte, error) {
	var r io.Reader
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		r = cc.In
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %q: %w", path, err)
	}
	return d, nil
}

func getDocFile(cc *cli.Context, path string, opts ...parse.ParseOption) (*ir.Document, error) {
	d, err := readFile(cc, path)
	if err != nil {
		return nil, err
	}
	return parse.Parse(d, opts...)
}

// getish reads a document given as an argument, as a string by default
// or with -s, or from a file with -f.
func getish(s, f bool, cc *cli.Context, arg string) ([]byte, error) {
	if s == f && s {
		return nil, fmt.Errorf("%w: only one of -s, -f may be specified", cli.ErrUsage)
	}
	if !f {
		return []byte(arg), nil
	}
	d, err := readFile(cc, arg)
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", arg, err)
	}
	return d, nil
}

// inputs returns args, or stdin if there are none.
func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}

// writeDocument writes doc to w, or to file when write is set.
func writeDocument(cfg *MainConfig, cc *cli.Context, doc *ir.Document, file string, write bool) error {
	if !write || file == "-" {
		return encode.EncodeDocument(doc, cc.Out, cfg.encOpts(cc.Out)...)
	}
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := encode.EncodeDocument(doc, f, cfg.encOpts(f)...); err != nil {
		f.Close()
		return fmt.Errorf("error encoding %s: %w", file, err)
	}
	return f.Close()
}

// fileHeader separates the knot outputs of several files with a comment
// naming the file.
func fileHeader(cfg *MainConfig, w io.Writer, file string, i, n int) error {
	if n < 2 || !cfg.outFormat().IsKnot() {
		return nil
	}
	sep := ""
	if i > 0 {
		sep = "\n"
	}
	name := strings.ReplaceAll(file, "--", "-\\-")
	_, err := fmt.Fprintf(w, "%s<!-- %s -->\n", sep, name)
	return err
}
