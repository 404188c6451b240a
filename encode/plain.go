package encode

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"github.com/knot-format/go-knot/format"
)

// encodePlain writes a plain projection in JSON or YAML.
func encodePlain(v any, w io.Writer, es *EncState) error {
	var (
		d   []byte
		err error
	)
	switch es.format {
	case format.JSONFormat:
		if es.pretty {
			d, err = json.MarshalIndent(v, "", es.indent)
		} else {
			d, err = json.Marshal(v)
		}
	case format.YAMLFormat:
		d, err = yaml.MarshalWithOptions(v, yaml.Indent(max(len(es.indent), 2)))
	default:
		return fmt.Errorf("%w: format %s", ErrEncoding, es.format)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	if len(d) == 0 || d[len(d)-1] != '\n' {
		d = append(d, '\n')
	}
	_, err = w.Write(d)
	return err
}
