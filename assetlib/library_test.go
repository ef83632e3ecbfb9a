package assetlib

import (
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/handfollow"
	"github.com/gogpu/handfollow/compose"
)

func TestLoadFormats(t *testing.T) {
	for _, name := range []string{"library.yaml", "library.toml", "library.json"} {
		t.Run(name, func(t *testing.T) {
			lib, err := Load(filepath.Join("testdata", name))
			require.NoError(t, err)

			pen, err := lib.Tool("pen")
			require.NoError(t, err)
			assert.Equal(t, 40.0, pen.Width)
			assert.Equal(t, handfollow.Pt(20, 150), pen.SocketBase)
			assert.Equal(t, handfollow.Pt(20, 195), pen.TipAnchor)

			hand, err := lib.Hand("right", false)
			require.NoError(t, err)
			assert.Equal(t, handfollow.Pt(110, 40), hand.GripForward)
			assert.Equal(t, 8.0, hand.TiltBias)
			assert.True(t, hand.Mirrorable)
		})
	}
}

func TestLoadYAMLNames(t *testing.T) {
	lib, err := Load(filepath.Join("testdata", "library.yaml"))
	require.NoError(t, err)
	assert.Equal(t, []string{"brush", "pen"}, lib.ToolNames())
	assert.Equal(t, []string{"right"}, lib.HandNames())

	brush, err := lib.Tool("brush")
	require.NoError(t, err)
	assert.Equal(t, 12.0, brush.RotationBias)
	assert.True(t, brush.Mirrorable)
}

func TestHandMirrored(t *testing.T) {
	lib, err := Load(filepath.Join("testdata", "library.yaml"))
	require.NoError(t, err)

	m, err := lib.Hand("right", true)
	require.NoError(t, err)
	assert.True(t, m.Mirrored)
	assert.Equal(t, handfollow.Pt(120, 90), m.GripBase)
	assert.Equal(t, -8.0, m.TiltBias)
}

func TestLookupMissing(t *testing.T) {
	lib := &Library{}
	_, err := lib.Tool("quill")
	assert.ErrorIs(t, err, ErrAssetNotFound)
	_, err = lib.Hand("left", false)
	assert.ErrorIs(t, err, ErrAssetNotFound)
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"assets/lib.yml": {Data: []byte("tools:\n  - name: stick\n    socketBase: {x: 0, y: 0}\n    socketForward: {x: 0, y: -10}\n")},
		"assets/lib.ini": {Data: []byte("[tools]")},
	}
	lib, err := LoadFS(fsys, "assets/lib.yml")
	require.NoError(t, err)
	assert.Equal(t, []string{"stick"}, lib.ToolNames())

	_, err = LoadFS(fsys, "assets/lib.ini")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		data   string
		want   error
	}{
		{
			name:   "duplicate tool",
			format: FormatJSON,
			data: `{"tools": [
				{"name": "pen", "socketForward": {"x": 0, "y": 1}},
				{"name": "pen", "socketForward": {"x": 0, "y": 1}}]}`,
			want: ErrDuplicateAsset,
		},
		{
			name:   "unnamed hand",
			format: FormatYAML,
			data:   "hands:\n  - gripForward: {x: 1, y: 0}\n",
			want:   ErrUnnamedAsset,
		},
		{
			name:   "degenerate axis",
			format: FormatTOML,
			data:   "[[hands]]\nname = \"flat\"\n",
			want:   compose.ErrDegenerateAxis,
		},
		{
			name:   "unknown format",
			format: Format(9),
			data:   "",
			want:   ErrUnknownFormat,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.data), tt.format)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	inputs := map[Format]string{
		FormatYAML: "tools:\n  - name: pen\n    tipAnchr: {x: 1, y: 2}\n",
		FormatTOML: "[[tools]]\nname = \"pen\"\ntipAnchr = { x = 1.0, y = 2.0 }\n",
		FormatJSON: `{"tools": [{"name": "pen", "tipAnchr": {"x": 1, "y": 2}}]}`,
	}
	for format, data := range inputs {
		_, err := Decode(strings.NewReader(data), format)
		assert.Error(t, err, format.String())
	}
}

func TestDecodeEmpty(t *testing.T) {
	for _, format := range []Format{FormatYAML, FormatTOML, FormatJSON} {
		lib, err := Decode(strings.NewReader(""), format)
		require.NoError(t, err, format.String())
		assert.Empty(t, lib.Tools)
		assert.Empty(t, lib.Hands)
	}
}

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"a.yaml":      FormatYAML,
		"dir/b.YML":   FormatYAML,
		"c.toml":      FormatTOML,
		"/abs/d.json": FormatJSON,
	}
	for name, want := range tests {
		got, err := FormatOf(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := FormatOf("noext")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
