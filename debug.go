// File: lixenwraith/options/debug.go
package options

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Debug returns a formatted listing of every visible key, its value and where it came from
func (s *Settings) Debug() string {
	var b strings.Builder
	b.WriteString("Settings Debug Info:\n")

	for _, key := range s.visibleKeys() {
		v := s.Get(key)
		origin := "explicit"
		switch {
		case v.Empty():
			origin = "empty"
		case v.Defaulted():
			origin = "default"
		case s.Count(key) == 0:
			origin = "chained"
		}
		b.WriteString(fmt.Sprintf("  %s = %v (%s)\n", key, exportValue(v.Value()), origin))
	}

	if len(s.required) > 0 {
		b.WriteString("Required:\n")
		for _, key := range slices.Sorted(maps.Keys(s.required)) {
			b.WriteString(fmt.Sprintf("  %s as %s\n", key, s.required[key]))
		}
	}
	return b.String()
}
