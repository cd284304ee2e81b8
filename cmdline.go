// FILE: lixenwraith/options/cmdline.go
package options

// ExtraParser inspects a single token before the built-in parsers.
// A non-empty name claims the token as that option, with value as its
// adjacent value when non-empty.
type ExtraParser func(token string) (name, value string)

// StyleParser claims any number of tokens from the front of args.
// It returns the occurrences it produced and how many tokens it consumed;
// consumed == 0 passes args[0] on to the built-in parsers.
type StyleParser func(args []string) (opts []Occurrence, consumed int, err error)

// CommandLineParser configures and runs one command-line parse
type CommandLineParser struct {
	args              []string
	catalog           *Catalog
	positional        *PositionalOptions
	style             Style
	extra             ExtraParser
	extraStyle        StyleParser
	allowUnregistered bool
}

// NewCommandLineParser creates a parser over args. The program name, if any,
// must already be removed.
func NewCommandLineParser(args []string) *CommandLineParser {
	return &CommandLineParser{
		args:  append([]string(nil), args...),
		style: DefaultStyle,
	}
}

// Options sets the catalog options are resolved against
func (p *CommandLineParser) Options(catalog *Catalog) *CommandLineParser {
	p.catalog = catalog
	return p
}

// Positional sets the mapping from positional tokens to option keys
func (p *CommandLineParser) Positional(positional *PositionalOptions) *CommandLineParser {
	p.positional = positional
	return p
}

// Style sets the accepted conventions; zero selects DefaultStyle
func (p *CommandLineParser) Style(style Style) *CommandLineParser {
	if style == 0 {
		style = DefaultStyle
	}
	p.style = style
	return p
}

// ExtraParser installs a single-token hook tried before the built-in parsers
func (p *CommandLineParser) ExtraParser(fn ExtraParser) *CommandLineParser {
	p.extra = fn
	return p
}

// ExtraStyleParser installs a multi-token hook tried before everything else
func (p *CommandLineParser) ExtraStyleParser(fn StyleParser) *CommandLineParser {
	p.extraStyle = fn
	return p
}

// AllowUnregistered keeps unknown options as unregistered occurrences instead of failing
func (p *CommandLineParser) AllowUnregistered() *CommandLineParser {
	p.allowUnregistered = true
	return p
}

// Run matches all tokens against the catalog
func (p *CommandLineParser) Run() (*ParseResult, error) {
	if err := p.style.Validate(); err != nil {
		return nil, err
	}
	catalog := p.catalog
	if catalog == nil {
		catalog = NewCatalog("")
	}
	if err := catalog.Err(); err != nil {
		return nil, err
	}

	m := newMatcher(catalog, p.style, p.positional, p.extra, p.extraStyle, p.allowUnregistered)
	opts, err := m.run(p.args)
	if err != nil {
		return nil, err
	}
	return &ParseResult{Options: opts, Catalog: catalog, Prefix: m.prefix}, nil
}

// ParseCommandLine parses os.Args-shaped input: argv[0] is the program name and is skipped.
// extra may be nil.
func ParseCommandLine(argv []string, catalog *Catalog, style Style, extra ExtraParser) (*ParseResult, error) {
	var args []string
	if len(argv) > 1 {
		args = argv[1:]
	}
	return NewCommandLineParser(args).
		Options(catalog).
		Style(style).
		ExtraParser(extra).
		Run()
}

// ParseArgs parses args with the default style
func ParseArgs(args []string, catalog *Catalog) (*ParseResult, error) {
	return NewCommandLineParser(args).Options(catalog).Run()
}
