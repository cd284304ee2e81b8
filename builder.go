// FILE: lixenwraith/options/builder.go
package options

import (
	"errors"
	"fmt"
	"os"
)

// Source names one input of a multi-source load
type Source string

const (
	// SourceDefault represents declared default values
	SourceDefault Source = "default"
	// SourceFile represents values loaded from a configuration file
	SourceFile Source = "file"
	// SourceEnv represents values loaded from environment variables and .env files
	SourceEnv Source = "env"
	// SourceCLI represents values loaded from command-line arguments
	SourceCLI Source = "cli"
)

// LoadOptions configures how settings are loaded from multiple sources
type LoadOptions struct {
	// Sources defines the precedence order (first = highest priority)
	// Default: [SourceCLI, SourceEnv, SourceFile, SourceDefault]
	// Declared defaults fill whatever no source supplied, wherever SourceDefault is listed.
	Sources []Source

	// EnvPrefix is prepended to environment variable names
	// Example: "MYAPP_" reads "server.port" from "MYAPP_SERVER_PORT"
	EnvPrefix string

	// EnvTransform customizes how keys map to environment variables
	// If nil, uses default transformation (dots and dashes to underscores, uppercase)
	EnvTransform EnvTransformFunc

	// EnvMapper replaces the key-driven mapping entirely when set
	EnvMapper func(name string) string

	// DotEnvFiles are read as environment entries; the process environment wins on conflicts
	DotEnvFiles []string

	// AllowUnregistered keeps unknown command-line and file options out of the way instead of failing
	AllowUnregistered bool

	// Style is the command-line style, DefaultStyle when zero
	Style Style
}

// DefaultLoadOptions returns the standard load options
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Sources: []Source{SourceCLI, SourceEnv, SourceFile, SourceDefault},
		Style:   DefaultStyle,
	}
}

// ValidatorFunc validates the fully loaded and notified settings
type ValidatorFunc func(s *Settings) error

// Builder provides a fluent interface for loading settings from several sources
type Builder struct {
	catalog    *Catalog
	positional *PositionalOptions
	extra      ExtraParser
	opts       LoadOptions
	prefix     string
	file       string
	args       []string
	err        error
	validators []ValidatorFunc
}

// NewBuilder creates a builder reading the process arguments
func NewBuilder() *Builder {
	var args []string
	if len(os.Args) > 1 {
		args = os.Args[1:]
	}
	return &Builder{
		opts:       DefaultLoadOptions(),
		args:       args,
		validators: make([]ValidatorFunc, 0),
	}
}

// WithCatalog sets the declared options
func (b *Builder) WithCatalog(catalog *Catalog) *Builder {
	b.catalog = catalog
	return b
}

// WithArgs sets the command-line arguments, program name excluded
func (b *Builder) WithArgs(args []string) *Builder {
	b.args = args
	return b
}

// WithPositional sets the positional mapping for the command line
func (b *Builder) WithPositional(p *PositionalOptions) *Builder {
	b.positional = p
	return b
}

// WithStyle sets the command-line style
func (b *Builder) WithStyle(style Style) *Builder {
	b.opts.Style = style
	return b
}

// WithExtraParser installs a single-token command-line hook
func (b *Builder) WithExtraParser(fn ExtraParser) *Builder {
	b.extra = fn
	return b
}

// WithAllowUnregistered tolerates unknown command-line and file options
func (b *Builder) WithAllowUnregistered() *Builder {
	b.opts.AllowUnregistered = true
	return b
}

// WithPrefix sets the base path BuildAndScan decodes from
func (b *Builder) WithPrefix(prefix string) *Builder {
	b.prefix = prefix
	return b
}

// WithFile sets the configuration file path
func (b *Builder) WithFile(path string) *Builder {
	b.file = path
	return b
}

// WithEnvPrefix sets the environment variable prefix
func (b *Builder) WithEnvPrefix(prefix string) *Builder {
	b.opts.EnvPrefix = prefix
	return b
}

// WithEnvTransform sets a custom key to environment variable transformer
func (b *Builder) WithEnvTransform(fn EnvTransformFunc) *Builder {
	b.opts.EnvTransform = fn
	return b
}

// WithEnvMapper sets a custom environment variable to key mapper
func (b *Builder) WithEnvMapper(fn func(name string) string) *Builder {
	b.opts.EnvMapper = fn
	return b
}

// WithDotEnv adds .env files to the environment source
func (b *Builder) WithDotEnv(files ...string) *Builder {
	b.opts.DotEnvFiles = append(b.opts.DotEnvFiles, files...)
	return b
}

// WithSources sets the precedence order for sources
func (b *Builder) WithSources(sources ...Source) *Builder {
	for _, source := range sources {
		switch source {
		case SourceDefault, SourceFile, SourceEnv, SourceCLI:
		default:
			b.err = fmt.Errorf("unknown source %q", source)
		}
	}
	b.opts.Sources = sources
	return b
}

// WithValidator adds a validation function that runs at the end of the build process
// Multiple validators can be added and are executed in the order they are added
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// Build loads every source, notifies and validates the result.
// A missing configuration file is reported as ErrConfigNotFound alongside valid settings.
func (b *Builder) Build() (*Settings, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.catalog == nil {
		return nil, fmt.Errorf("builder has no catalog: %w", ErrInvalidCatalog)
	}
	if err := b.catalog.Err(); err != nil {
		return nil, err
	}

	settings := NewSettings()
	var loadErrors []error

	// The first Store of a key wins, so sources are stored in precedence order
	for _, source := range b.opts.Sources {
		var (
			result *ParseResult
			err    error
		)

		switch source {
		case SourceDefault:
			continue
		case SourceCLI:
			result, err = b.parseCLI()
		case SourceEnv:
			result, err = b.parseEnv()
		case SourceFile:
			if b.file == "" {
				continue
			}
			result, err = b.parseFile()
			if errors.Is(err, os.ErrNotExist) {
				loadErrors = append(loadErrors, fmt.Errorf("%w: %s", ErrConfigNotFound, b.file))
				continue
			}
		default:
			return nil, fmt.Errorf("unknown source %q", source)
		}
		if err != nil {
			return nil, fmt.Errorf("%s source: %w", source, err)
		}

		if err := settings.Store(result); err != nil {
			return nil, fmt.Errorf("%s source: %w", source, err)
		}
	}

	if err := settings.Notify(); err != nil {
		return nil, err
	}

	for _, validator := range b.validators {
		if err := validator(settings); err != nil {
			return nil, fmt.Errorf("settings validation failed: %w", err)
		}
	}

	// ErrConfigNotFound or nil
	return settings, errors.Join(loadErrors...)
}

func (b *Builder) parseCLI() (*ParseResult, error) {
	p := NewCommandLineParser(b.args).
		Options(b.catalog).
		Positional(b.positional).
		Style(b.opts.Style).
		ExtraParser(b.extra)
	if b.opts.AllowUnregistered {
		p.AllowUnregistered()
	}
	return p.Run()
}

func (b *Builder) parseEnv() (*ParseResult, error) {
	values := make(map[string]string)
	if len(b.opts.DotEnvFiles) > 0 {
		pairs, err := DotEnvPairs(b.opts.DotEnvFiles...)
		if err != nil {
			return nil, err
		}
		for _, p := range pairs {
			values[p.Name] = p.Value
		}
	}
	for _, p := range EnvironmentPairs() {
		values[p.Name] = p.Value
	}

	mapper := b.opts.EnvMapper
	if mapper == nil {
		mapper = CatalogMapper(b.catalog, b.opts.EnvPrefix, b.opts.EnvTransform)
	}
	return ParseEnvironment(b.catalog, sortedPairs(values), mapper)
}

// parseFile picks the reader by extension: TOML, YAML and JSON go through the
// structured reader, everything else is an options configuration file.
func (b *Builder) parseFile() (*ParseResult, error) {
	if detectFileFormat(b.file) != "" {
		return ParseStructuredFile(b.file, b.catalog, b.opts.AllowUnregistered)
	}
	return ParseConfigFile(b.file, b.catalog, b.opts.AllowUnregistered)
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Settings {
	settings, err := b.Build()
	if err != nil {
		// ErrConfigNotFound is not fatal; defaults and other sources still apply
		if !errors.Is(err, ErrConfigNotFound) {
			panic(fmt.Sprintf("options build failed: %v", err))
		}
	}
	return settings
}

// BuildAndScan builds and decodes the settings under the builder's prefix into target
func (b *Builder) BuildAndScan(target any) error {
	settings, err := b.Build()
	if err != nil && !errors.Is(err, ErrConfigNotFound) {
		return err
	}

	if scanErr := settings.Scan(b.prefix, target); scanErr != nil {
		return fmt.Errorf("failed to scan settings into target: %w", scanErr)
	}

	// ErrConfigNotFound or nil
	return err
}
