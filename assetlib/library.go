package assetlib

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"slices"

	"github.com/gogpu/handfollow"
	"github.com/gogpu/handfollow/compose"
)

// Library is a validated set of tools and hands.
type Library struct {
	Tools []compose.ToolAsset `json:"tools" yaml:"tools" toml:"tools"`
	Hands []compose.HandAsset `json:"hands" yaml:"hands" toml:"hands"`
}

// Load reads a library file, choosing the format from its extension.
func Load(filename string) (*Library, error) {
	format, err := FormatOf(filename)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(bufio.NewReader(f), format)
}

// LoadFS is like Load but reads from fsys.
func LoadFS(fsys fs.FS, name string) (*Library, error) {
	format, err := FormatOf(name)
	if err != nil {
		return nil, err
	}
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(bufio.NewReader(f), format)
}

// Decode reads and validates a library in the given format. Empty input
// yields an empty library.
func Decode(r io.Reader, format Format) (*Library, error) {
	lib := &Library{}
	if err := decode(r, format, lib); err != nil {
		return nil, err
	}
	if err := lib.Validate(); err != nil {
		return nil, err
	}
	handfollow.Logger().Debug("assetlib: library loaded",
		slog.String("format", format.String()),
		slog.Int("tools", len(lib.Tools)),
		slog.Int("hands", len(lib.Hands)))
	return lib, nil
}

// decode fills v from r. Empty input leaves v unchanged.
func decode(r io.Reader, format Format, v any) error {
	newDecoder, ok := decoders[format]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	if err := newDecoder(r).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("assetlib: decode %v: %w", format, err)
	}
	return nil
}

// Validate checks names are present and unique and every asset has a
// usable axis.
func (l *Library) Validate() error {
	seen := make(map[string]bool)
	for _, t := range l.Tools {
		if err := checkName("tool", t.Name, seen); err != nil {
			return err
		}
		if err := t.Validate(); err != nil {
			return err
		}
	}
	clear(seen)
	for _, h := range l.Hands {
		if err := checkName("hand", h.Name, seen); err != nil {
			return err
		}
		if err := h.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func checkName(kind, name string, seen map[string]bool) error {
	if name == "" {
		return fmt.Errorf("%s: %w", kind, ErrUnnamedAsset)
	}
	if seen[name] {
		return fmt.Errorf("%s %q: %w", kind, name, ErrDuplicateAsset)
	}
	seen[name] = true
	return nil
}

// Tool returns the tool called name.
func (l *Library) Tool(name string) (compose.ToolAsset, error) {
	i := slices.IndexFunc(l.Tools, func(t compose.ToolAsset) bool { return t.Name == name })
	if i < 0 {
		return compose.ToolAsset{}, fmt.Errorf("tool %q: %w", name, ErrAssetNotFound)
	}
	return l.Tools[i], nil
}

// Hand returns the hand called name, mirrored when mirrored is set.
func (l *Library) Hand(name string, mirrored bool) (compose.HandAsset, error) {
	i := slices.IndexFunc(l.Hands, func(h compose.HandAsset) bool { return h.Name == name })
	if i < 0 {
		return compose.HandAsset{}, fmt.Errorf("hand %q: %w", name, ErrAssetNotFound)
	}
	if mirrored {
		return compose.MirrorHand(l.Hands[i])
	}
	return l.Hands[i], nil
}

// ToolNames returns the tool names in sorted order.
func (l *Library) ToolNames() []string {
	names := make([]string, len(l.Tools))
	for i, t := range l.Tools {
		names[i] = t.Name
	}
	slices.Sort(names)
	return names
}

// HandNames returns the hand names in sorted order.
func (l *Library) HandNames() []string {
	names := make([]string, len(l.Hands))
	for i, h := range l.Hands {
		names[i] = h.Name
	}
	slices.Sort(names)
	return names
}
