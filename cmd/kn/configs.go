package main

import (
	"fmt"
	"io"
	"os"

	"github.com/knot-format/go-knot/encode"
	"github.com/knot-format/go-knot/format"
	"github.com/knot-format/go-knot/parse"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Color  bool `cli:"name=color desc='encode with color'"`
	Pretty bool `cli:"name=p aliases=pretty desc='one entry per line'"`
	Indent int  `cli:"name=indent desc='indent width of pretty output'"`

	OutFormat *format.Format

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fp **format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		*fp = &f
		return f, nil
	})
}

func (cfg *MainConfig) outFormat() format.Format {
	if cfg.OutFormat == nil {
		return format.KnotFormat
	}
	return *cfg.OutFormat
}

func (cfg *MainConfig) parseOpts() []parse.ParseOption {
	return nil
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeFormat(cfg.outFormat()),
		encode.Pretty(cfg.Pretty),
	}
	if cfg.Indent > 0 {
		res = append(res, encode.Indent(cfg.Indent))
	}
	if cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// useColor reports whether output to w is colored: as set by -color, else
// when w is a terminal.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type FmtConfig struct {
	*MainConfig
	Write bool `cli:"name=w desc='write the result to the source file'"`
	Check bool `cli:"name=check desc='exit 1 if a file is not formatted'"`

	Fmt *cli.Command
}

func (cfg *FmtConfig) parseOpts() []parse.ParseOption {
	return append(cfg.MainConfig.parseOpts(), parse.ParseComments(true))
}

type ViewConfig struct {
	*MainConfig

	Comments bool `cli:"name=c desc='include comments'"`
	View     *cli.Command
}

func (cfg *ViewConfig) parseOpts() []parse.ParseOption {
	return append(cfg.MainConfig.parseOpts(), parse.ParseComments(cfg.Comments))
}

type GetConfig struct {
	*MainConfig
	Lenient bool `cli:"name=n desc='print null for missing paths'"`

	Get *cli.Command
}

type SetConfig struct {
	*MainConfig
	Insert bool `cli:"name=i desc='insert instead of replacing'"`
	Write  bool `cli:"name=w desc='write the result to the source file'"`

	Set *cli.Command
}

type RmConfig struct {
	*MainConfig
	Write bool `cli:"name=w desc='write the result to the source file'"`

	Rm *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Reverse bool `cli:"name=r desc='reverse the diff'"`
	JSON    bool `cli:"name=json desc='output a JSON Patch'"`
	Text    bool `cli:"name=s desc='output a line diff of the pretty forms'"`

	Diff *cli.Command
}

type PatchConfig struct {
	*MainConfig
	JSON   bool `cli:"name=json desc='the patch is a JSON Patch, output is JSON'"`
	String bool `cli:"name=s desc='patch arg as string'"`
	File   bool `cli:"name=f desc='patch arg as file'"`

	Patch *cli.Command
}

type LoadConfig struct {
	*MainConfig
	Exports     bool `cli:"name=exports desc='output the exported prototypes'"`
	DropPrefabs bool `cli:"name=drop-prefabs desc='omit Prefabs containers'"`

	Load *cli.Command
}

type FindConfig struct {
	*MainConfig
	Paths bool `cli:"name=l desc='only print the paths of matches'"`

	Find *cli.Command
}
