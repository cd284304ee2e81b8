// FILE: lixenwraith/options/structured.go
package options

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

// ParseStructuredFile reads a TOML, YAML or JSON file into occurrences.
// The format follows the file extension, falling back to content detection.
func ParseStructuredFile(path string, catalog *Catalog, allowUnregistered bool) (*ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &Error{Kind: ErrReadingFile, Value: path, Err: errors.Join(err, ErrConfigNotFound)}
		}
		return nil, &Error{Kind: ErrReadingFile, Value: path, Err: err}
	}

	format := detectFileFormat(path)
	if format == "" {
		format = detectFormatFromContent(data)
	}
	if format == "" {
		return nil, fmt.Errorf("unable to determine config format for file '%s'", path)
	}

	result, err := ParseStructured(data, format, catalog, allowUnregistered)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s config file '%s': %w", strings.ToUpper(format), path, err)
	}
	return result, nil
}

// ParseStructured reads TOML, YAML or JSON text into occurrences.
// Nested tables become dotted keys, arrays become one occurrence with one token
// per element and scalars are rendered as text, so the result stores like a
// parsed options configuration file.
func ParseStructured(data []byte, format string, catalog *Catalog, allowUnregistered bool) (*ParseResult, error) {
	if catalog == nil {
		catalog = NewCatalog("")
	}
	if err := catalog.Err(); err != nil {
		return nil, err
	}
	allowed, err := newAllowedNames(catalog)
	if err != nil {
		return nil, err
	}

	var entries []structuredEntry
	switch format {
	case "toml":
		tree := make(map[string]any)
		if err := toml.Unmarshal(data, &tree); err != nil {
			return nil, err
		}
		entries, err = flattenTree(tree, "")
	case "yaml":
		tree := make(map[string]any)
		if err := yaml.Unmarshal(data, &tree); err != nil {
			return nil, err
		}
		entries, err = flattenTree(tree, "")
	case "json":
		if !gjson.ValidBytes(data) {
			return nil, fmt.Errorf("invalid JSON document")
		}
		entries, err = flattenJSON(gjson.ParseBytes(data), "")
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
	if err != nil {
		return nil, err
	}

	result := &ParseResult{Catalog: catalog}
	for _, entry := range entries {
		registered := allowed.allowed(entry.key)
		if !registered && !allowUnregistered {
			return nil, unknownOptionError(entry.key)
		}
		result.Options = append(result.Options, Occurrence{
			Key:          entry.key,
			Position:     -1,
			Value:        entry.tokens,
			Original:     append([]string{entry.key}, entry.tokens...),
			Unregistered: !registered,
		})
	}
	return result, nil
}

type structuredEntry struct {
	key    string
	tokens []string
}

// flattenTree walks a decoded TOML or YAML document in key order
func flattenTree(tree map[string]any, prefix string) ([]structuredEntry, error) {
	keys := make([]string, 0, len(tree))
	for k := range tree {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var entries []structuredEntry
	for _, k := range keys {
		path := joinKey(prefix, k)
		switch v := tree[k].(type) {
		case nil:
			continue
		case map[string]any:
			sub, err := flattenTree(v, path)
			if err != nil {
				return nil, err
			}
			entries = append(entries, sub...)
		default:
			tokens, err := scalarTokens(path, v)
			if err != nil {
				return nil, err
			}
			entries = append(entries, structuredEntry{key: path, tokens: tokens})
		}
	}
	return entries, nil
}

func scalarTokens(path string, value any) ([]string, error) {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice {
		text, err := scalarText(path, value)
		if err != nil {
			return nil, err
		}
		return []string{text}, nil
	}

	tokens := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		text, err := scalarText(path, rv.Index(i).Interface())
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, text)
	}
	return tokens, nil
}

func scalarText(path string, value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case time.Time:
		return v.Format(time.RFC3339Nano), nil
	}
	return "", fmt.Errorf("value of %q has unsupported type %T: %w", path, value, ErrInvalidOptionValue)
}

// flattenJSON walks a JSON document in document order
func flattenJSON(node gjson.Result, prefix string) ([]structuredEntry, error) {
	if !node.IsObject() {
		return nil, fmt.Errorf("top-level JSON value must be an object")
	}

	var (
		entries []structuredEntry
		walkErr error
	)
	node.ForEach(func(k, v gjson.Result) bool {
		path := joinKey(prefix, k.String())
		switch {
		case v.Type == gjson.Null:
		case v.IsObject():
			sub, err := flattenJSON(v, path)
			if err != nil {
				walkErr = err
				return false
			}
			entries = append(entries, sub...)
		case v.IsArray():
			var tokens []string
			for _, elem := range v.Array() {
				if elem.IsObject() || elem.IsArray() {
					walkErr = fmt.Errorf("value of %q has unsupported nested element: %w", path, ErrInvalidOptionValue)
					return false
				}
				tokens = append(tokens, elem.String())
			}
			entries = append(entries, structuredEntry{key: path, tokens: tokens})
		default:
			entries = append(entries, structuredEntry{key: path, tokens: []string{v.String()}})
		}
		return true
	})
	return entries, walkErr
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return "toml"
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	}
	return ""
}

// detectFormatFromContent attempts to detect format by parsing
func detectFormatFromContent(data []byte) string {
	// JSON first, as YAML accepts most JSON documents
	if gjson.ValidBytes(data) && gjson.ParseBytes(data).IsObject() {
		return "json"
	}

	var tomlTest map[string]any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return "toml"
	}

	var yamlTest map[string]any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return "yaml"
	}
	return ""
}
