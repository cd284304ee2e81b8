// FILE: lixenwraith/options/positional.go
package options

// PositionalOptions maps positional tokens to option names.
// Add("input", 1).Add("files", -1) binds the first positional token to "input"
// and every following one to "files".
type PositionalOptions struct {
	names    []string
	trailing string // absorbs everything past names when set
}

// NewPositionalOptions creates an empty mapping
func NewPositionalOptions() *PositionalOptions {
	return &PositionalOptions{}
}

// Add binds the next maxCount positions to name; -1 binds all remaining positions.
// Nothing can be added after an unlimited entry.
func (p *PositionalOptions) Add(name string, maxCount int) *PositionalOptions {
	if p.trailing != "" {
		return p
	}
	if maxCount == -1 {
		p.trailing = name
		return p
	}
	for i := 0; i < maxCount; i++ {
		p.names = append(p.names, name)
	}
	return p
}

// MaxTotalCount returns the number of positions that can be bound, Unbounded when unlimited
func (p *PositionalOptions) MaxTotalCount() int {
	if p.trailing != "" {
		return Unbounded
	}
	return len(p.names)
}

// NameForPosition returns the option name bound to position, or "" when out of range
func (p *PositionalOptions) NameForPosition(position int) string {
	if position < len(p.names) {
		return p.names[position]
	}
	return p.trailing
}
