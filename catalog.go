// FILE: lixenwraith/options/catalog.go
package options

import "fmt"

const (
	// DefaultLineLength is the help output width
	DefaultLineLength = 80
	// DefaultMinDescriptionLength is the narrowest description column help output will use
	DefaultMinDescriptionLength = 40
)

// Catalog is an ordered collection of options, optionally split into captioned groups.
// All options, grouped or not, live in one lookup arena; groups only affect help output.
type Catalog struct {
	caption              string
	lineLength           int
	minDescriptionLength int

	options []*Option
	grouped []bool // parallel to options; true when the option came in through AddGroup
	groups  []*Catalog

	err error
}

// NewCatalog creates an empty catalog. The caption heads its section of the help output.
func NewCatalog(caption string) *Catalog {
	return &Catalog{
		caption:              caption,
		lineLength:           DefaultLineLength,
		minDescriptionLength: DefaultMinDescriptionLength,
	}
}

// Add declares an option. names is a comma-separated list such as "config,c".
// A nil semantic declares a presence-only switch.
// Declaration errors are recorded and reported by Err and by every parser using the catalog.
func (c *Catalog) Add(names string, semantic ValueSemantic, description string) *Catalog {
	opt, err := NewOption(names, semantic, description)
	if err != nil {
		c.recordErr(err)
		return c
	}
	return c.AddOption(opt)
}

// AddFlag declares a presence-only switch
func (c *Catalog) AddFlag(names, description string) *Catalog {
	return c.Add(names, nil, description)
}

// AddOption appends an already constructed option
func (c *Catalog) AddOption(opt *Option) *Catalog {
	if opt == nil {
		c.recordErr(&Error{Kind: ErrInvalidCatalog, Message: "nil option added to catalog"})
		return c
	}
	c.options = append(c.options, opt)
	c.grouped = append(c.grouped, false)
	return c
}

// AddGroup appends every option of group to this catalog and keeps the group for help output
func (c *Catalog) AddGroup(group *Catalog) *Catalog {
	if group == nil {
		return c
	}
	if group.err != nil {
		c.recordErr(group.err)
	}
	c.groups = append(c.groups, group)
	for _, opt := range group.options {
		c.options = append(c.options, opt)
		c.grouped = append(c.grouped, true)
	}
	return c
}

// SetLineLength changes the help output geometry.
// minDescriptionLength must leave room for at least one column separator.
func (c *Catalog) SetLineLength(lineLength, minDescriptionLength int) error {
	if minDescriptionLength >= lineLength-1 {
		return &Error{Kind: ErrInvalidCatalog,
			Message: fmt.Sprintf("description length %d does not fit in line length %d", minDescriptionLength, lineLength)}
	}
	c.lineLength = lineLength
	c.minDescriptionLength = minDescriptionLength
	return nil
}

// Err returns the first declaration error, if any
func (c *Catalog) Err() error {
	return c.err
}

// Caption returns the catalog caption
func (c *Catalog) Caption() string {
	return c.caption
}

// Options returns all options in declaration order, groups included
func (c *Catalog) Options() []*Option {
	return append([]*Option(nil), c.options...)
}

// Groups returns the groups added with AddGroup
func (c *Catalog) Groups() []*Catalog {
	return append([]*Catalog(nil), c.groups...)
}

// Find resolves a spelled name, failing with ErrUnknownOption when nothing matches
func (c *Catalog) Find(name string, approx, longIgnoreCase, shortIgnoreCase bool) (*Option, error) {
	opt, err := c.Lookup(name, approx, longIgnoreCase, shortIgnoreCase)
	if err != nil {
		return nil, err
	}
	if opt == nil {
		return nil, unknownOptionError(name)
	}
	return opt, nil
}

// Lookup resolves a spelled name. It returns (nil, nil) when nothing matches and
// ErrAmbiguousOption when the match is not unique. A full match always beats
// abbreviations, so "--all" selects "all" even when "all-files" exists.
func (c *Catalog) Lookup(name string, approx, longIgnoreCase, shortIgnoreCase bool) (*Option, error) {
	var (
		found      *Option
		fullMatch  bool
		fullKeys   []string
		approxKeys []string
	)

	for _, opt := range c.options {
		switch opt.Match(name, approx, longIgnoreCase, shortIgnoreCase) {
		case NoMatch:
			continue
		case FullMatch:
			fullKeys = append(fullKeys, opt.Key(name))
			found = opt
			fullMatch = true
		default:
			approxKeys = append(approxKeys, opt.Key(name))
			if !fullMatch {
				found = opt
			}
		}
	}

	if len(fullKeys) > 1 {
		return nil, ambiguousOptionError(fullKeys)
	}
	if len(fullKeys) == 0 && len(approxKeys) > 1 {
		return nil, ambiguousOptionError(approxKeys)
	}
	return found, nil
}

func (c *Catalog) recordErr(err error) {
	if c.err == nil {
		c.err = err
	}
}
