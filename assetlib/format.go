package assetlib

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a library file encoding.
type Format uint8

const (
	FormatYAML Format = iota
	FormatTOML
	FormatJSON
)

func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	case FormatJSON:
		return "json"
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// FormatOf returns the format implied by a file name's extension.
func FormatOf(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Decoder decodes one value from the reader it was created with.
type Decoder interface {
	Decode(v any) error
}

// DecoderFunc creates a Decoder for r.
type DecoderFunc func(r io.Reader) Decoder

var decoders = map[Format]DecoderFunc{
	FormatYAML: func(r io.Reader) Decoder {
		d := yaml.NewDecoder(r)
		d.KnownFields(true)
		return d
	},
	FormatTOML: func(r io.Reader) Decoder {
		return toml.NewDecoder(r).DisallowUnknownFields()
	},
	FormatJSON: func(r io.Reader) Decoder {
		d := json.NewDecoder(r)
		d.DisallowUnknownFields()
		return d
	},
}
