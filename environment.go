// FILE: lixenwraith/options/environment.go
package options

import (
	"io"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPair is one NAME=VALUE environment entry
type EnvPair struct {
	Name  string
	Value string
}

// EnvTransformFunc converts an option key to an environment variable name
type EnvTransformFunc func(key string) string

// EnvironmentPairs returns the process environment
func EnvironmentPairs() []EnvPair {
	environ := os.Environ()
	pairs := make([]EnvPair, 0, len(environ))
	for _, kv := range environ {
		name, value, found := strings.Cut(kv, "=")
		if !found || name == "" {
			continue
		}
		pairs = append(pairs, EnvPair{Name: name, Value: value})
	}
	return pairs
}

// DotEnvPairs reads .env files, ".env" when none are given.
// A name set by an earlier file is not overridden by a later one.
func DotEnvPairs(files ...string) ([]EnvPair, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	values := make(map[string]string)
	for _, file := range files {
		fileValues, err := godotenv.Read(file)
		if err != nil {
			return nil, &Error{Kind: ErrReadingFile, Value: file, Err: err}
		}
		for name, value := range fileValues {
			if _, exists := values[name]; !exists {
				values[name] = value
			}
		}
	}
	return sortedPairs(values), nil
}

// ParseDotEnv reads .env formatted text
func ParseDotEnv(r io.Reader) ([]EnvPair, error) {
	values, err := godotenv.Parse(r)
	if err != nil {
		return nil, err
	}
	return sortedPairs(values), nil
}

func sortedPairs(values map[string]string) []EnvPair {
	pairs := make([]EnvPair, 0, len(values))
	for name, value := range values {
		pairs = append(pairs, EnvPair{Name: name, Value: value})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Name < pairs[j].Name })
	return pairs
}

// PrefixMapper keeps variables starting with prefix and lower-cases the remainder,
// so with prefix "APP_" APP_VERBOSE becomes "verbose". Other variables are skipped.
func PrefixMapper(prefix string) func(string) string {
	return func(name string) string {
		if !strings.HasPrefix(name, prefix) {
			return ""
		}
		return strings.ToLower(name[len(prefix):])
	}
}

// CatalogMapper maps environment variable names back to catalog keys.
// With the default transform and prefix "MYAPP_", "server.port" is read from MYAPP_SERVER_PORT.
func CatalogMapper(catalog *Catalog, prefix string, transform EnvTransformFunc) func(string) string {
	if transform == nil {
		transform = defaultEnvTransform(prefix)
	}
	reverse := make(map[string]string)
	for _, opt := range catalog.Options() {
		key := opt.LongName()
		if key == "" || strings.Contains(key, "*") {
			continue
		}
		if env := transform(key); env != "" {
			reverse[env] = key
		}
	}
	return func(name string) string {
		return reverse[name]
	}
}

// defaultEnvTransform upper-cases a key and replaces '.' and '-' with '_'
func defaultEnvTransform(prefix string) EnvTransformFunc {
	return func(key string) string {
		env := strings.NewReplacer(".", "_", "-", "_").Replace(key)
		env = strings.ToUpper(env)
		if prefix != "" {
			env = prefix + env
		}
		return env
	}
}

// ParseEnvironment turns environment pairs into occurrences.
// mapper decides which variables are options; an empty result skips the variable.
// Unknown keys are reported when the result is stored.
func ParseEnvironment(catalog *Catalog, pairs []EnvPair, mapper func(string) string) (*ParseResult, error) {
	if catalog == nil {
		catalog = NewCatalog("")
	}
	if err := catalog.Err(); err != nil {
		return nil, err
	}

	result := &ParseResult{Catalog: catalog}
	for _, pair := range pairs {
		key := mapper(pair.Name)
		if key == "" {
			continue
		}
		result.Options = append(result.Options, Occurrence{
			Key:      key,
			Position: -1,
			Value:    []string{pair.Value},
		})
	}
	return result, nil
}
