// FILE: lixenwraith/options/save.go
package options

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"
)

// Save writes the current values to path atomically. The format follows the
// file extension (.toml, .yaml/.yml, .json) and defaults to TOML.
func (s *Settings) Save(path string) error {
	format := detectFileFormat(path)
	if format == "" {
		format = "toml"
	}

	var buf bytes.Buffer
	if err := s.Encode(&buf, format); err != nil {
		return err
	}
	return atomicWriteFile(path, buf.Bytes())
}

// Encode writes the current values to w as "toml", "yaml" or "json".
// Dotted keys become nested tables. Values with a textual form (durations,
// sizes, UUIDs) are written as text so they read back through the same options.
func (s *Settings) Encode(w io.Writer, format string) error {
	switch format {
	case "toml":
		if err := toml.NewEncoder(w).Encode(s.exportNested()); err != nil {
			return fmt.Errorf("failed to marshal settings to TOML: %w", err)
		}
		return nil

	case "yaml":
		data, err := yaml.Marshal(s.exportNested())
		if err != nil {
			return fmt.Errorf("failed to marshal settings to YAML: %w", err)
		}
		_, err = w.Write(data)
		return err

	case "json":
		data := []byte("{}")
		for _, key := range s.visibleKeys() {
			v := s.Get(key)
			if v.Empty() {
				continue
			}
			var err error
			data, err = sjson.SetBytes(data, jsonPath(key), exportValue(v.value))
			if err != nil {
				return fmt.Errorf("failed to set %q in JSON output: %w", key, err)
			}
		}
		_, err := w.Write(append(data, '\n'))
		return err
	}
	return fmt.Errorf("unsupported output format %q", format)
}

func (s *Settings) exportNested() map[string]any {
	nested := make(map[string]any)
	for _, key := range s.visibleKeys() {
		v := s.Get(key)
		if v.Empty() {
			continue
		}
		setNestedValue(nested, key, exportValue(v.value))
	}
	return nested
}

// exportValue converts stored values to plain strings, numbers, bools and lists
func exportValue(value any) any {
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Ptr && rv.IsNil() {
		return nil
	}

	switch t := value.(type) {
	case string, bool, int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return t
	case fmt.Stringer:
		return t.String()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = exportValue(rv.Index(i).Interface())
		}
		return out
	case reflect.Ptr:
		return exportValue(rv.Elem().Interface())
	}
	return value
}

// jsonPath escapes sjson path syntax inside each dotted segment
func jsonPath(key string) string {
	segments := strings.Split(key, ".")
	escaper := strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `|`, `\|`, `#`, `\#`, `@`, `\@`)
	for i, seg := range segments {
		segments[i] = escaper.Replace(seg)
	}
	return strings.Join(segments, ".")
}

// atomicWriteFile writes through a temporary file in the target directory and renames it into place
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath)

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}
