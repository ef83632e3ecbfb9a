package assetlib

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gogpu/handfollow"
	"github.com/gogpu/handfollow/lift"
)

// LoadLiftConfig reads lift tuning from a file, choosing the format from
// its extension. Fields the file leaves out keep their lift.DefaultConfig
// values.
func LoadLiftConfig(filename string) (lift.Config, error) {
	format, err := FormatOf(filename)
	if err != nil {
		return lift.Config{}, err
	}
	f, err := os.Open(filename)
	if err != nil {
		return lift.Config{}, err
	}
	defer f.Close()
	return DecodeLiftConfig(bufio.NewReader(f), format)
}

// DecodeLiftConfig reads and validates lift tuning in the given format.
// Durations are strings such as "280ms".
func DecodeLiftConfig(r io.Reader, format Format) (lift.Config, error) {
	cfg := lift.DefaultConfig()
	if err := decode(r, format, &cfg); err != nil {
		return lift.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return lift.Config{}, fmt.Errorf("assetlib: %w", err)
	}
	handfollow.Logger().Debug("assetlib: lift config loaded",
		slog.String("format", format.String()),
		slog.Int("window", cfg.Window()))
	return cfg, nil
}
