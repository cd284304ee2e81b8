// FILE: lixenwraith/options/save_test.go
package options

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func savedSettings(t *testing.T) *Settings {
	t.Helper()
	settings := NewSettings()
	require.NoError(t, settings.Store(mustParseArgs(t, serverCatalog(),
		"--name=app", "--server.port=8080", "--server.timeout=1m30s",
		"--server.max-body=1MiB", "--server.tags=a", "--server.tags=b")))
	require.NoError(t, settings.Notify())
	return settings
}

// TestEncode tests rendering settings as nested documents
func TestEncode(t *testing.T) {
	settings := savedSettings(t)

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, settings.Encode(&buf, "json"))

		out := buf.String()
		require.True(t, gjson.Valid(out), out)
		assert.Equal(t, "app", gjson.Get(out, "name").String())
		assert.Equal(t, false, gjson.Get(out, "debug").Bool())
		assert.Equal(t, int64(8080), gjson.Get(out, "server.port").Int())
		assert.Equal(t, "1m30s", gjson.Get(out, "server.timeout").String())
		assert.Equal(t, "1.0 MiB", gjson.Get(out, "server.max-body").String())
		assert.Equal(t, `["a","b"]`, gjson.Get(out, "server.tags").Raw)
		assert.False(t, gjson.Get(out, "server.ratio").Exists())
	})

	t.Run("JSONEscapesPathSyntax", func(t *testing.T) {
		catalog := NewCatalog("").Add("metrics.*", Value[string](nil), "")
		settings := NewSettings()
		require.NoError(t, settings.Store(mustParseArgs(t, catalog, "--metrics.p99?=on")))

		var buf bytes.Buffer
		require.NoError(t, settings.Encode(&buf, "json"))
		assert.Equal(t, "on", gjson.Get(buf.String(), `metrics.p99\?`).String())
	})

	t.Run("TOML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, settings.Encode(&buf, "toml"))
		out := buf.String()
		assert.Contains(t, out, `name = "app"`)
		assert.Contains(t, out, "[server]")
		assert.Contains(t, out, `timeout = "1m30s"`)
	})

	t.Run("YAML", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, settings.Encode(&buf, "yaml"))
		out := buf.String()
		assert.Contains(t, out, "name: app")
		assert.Contains(t, out, "server:\n")
		assert.Contains(t, out, "port: 8080")
	})

	t.Run("Unsupported", func(t *testing.T) {
		assert.Error(t, settings.Encode(&bytes.Buffer{}, "ini"))
	})
}

func TestSave(t *testing.T) {
	original := savedSettings(t)

	for _, name := range []string{"saved.toml", "saved.yaml", "saved.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			require.NoError(t, original.Save(path))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

			entries, err := os.ReadDir(filepath.Dir(path))
			require.NoError(t, err)
			assert.Len(t, entries, 1, "temporary file left behind")

			result, err := ParseStructuredFile(path, serverCatalog(), false)
			require.NoError(t, err)
			restored := NewSettings()
			require.NoError(t, restored.Store(result))

			assert.Equal(t, "app", restored.Get("name").Value())
			assert.Equal(t, uint16(8080), restored.Get("server.port").Value())
			assert.Equal(t, 90*time.Second, restored.Get("server.timeout").Value())
			assert.Equal(t, ByteSize(1<<20), restored.Get("server.max-body").Value())
			assert.Equal(t, []string{"a", "b"}, restored.Get("server.tags").Value())
		})
	}

	t.Run("DefaultsToTOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings")
		require.NoError(t, original.Save(path))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "toml", detectFormatFromContent(data))
	})
}

func TestExportValue(t *testing.T) {
	size := ByteSize(2048)
	tests := []struct {
		name  string
		value any
		want  any
	}{
		{"Scalar", 42, 42},
		{"Stringer", 5 * time.Second, "5s"},
		{"Slice", []time.Duration{time.Second}, []any{"1s"}},
		{"Pointer", &size, "2.0 KiB"},
		{"NilPointer", (*ByteSize)(nil), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exportValue(tt.value))
		})
	}
}
