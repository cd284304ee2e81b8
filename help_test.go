// FILE: lixenwraith/options/help_test.go
package options

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestHelpOutput tests the column layout and wrapping of the help listing
func TestHelpOutput(t *testing.T) {
	t.Run("Basic", func(t *testing.T) {
		catalog := NewCatalog("Allowed options").
			AddFlag("help,h", "produce help message").
			Add("compression,c", Value[int](nil).Default(10), "set compression level").
			Add("input", Value[string](nil).ValueName("file"), "")

		want := "Allowed options:\n" +
			"  -h [ --help ]                  produce help message\n" +
			"  -c [ --compression ] arg (=10) set compression level\n" +
			"  --input file\n"
		assert.Equal(t, want, catalog.String())
	})

	t.Run("WrapsLongDescriptions", func(t *testing.T) {
		catalog := NewCatalog("").
			AddFlag("verbose,v", "print every step of the process to the standard error stream").
			Add("level", Value[int](nil).Default(3), "short")
		require.NoError(t, catalog.SetLineLength(40, 20))

		want := "  -v [ --verbose ]  print every step of\n" +
			"                    the process to the \n" +
			"                    standard error \n" +
			"                    stream\n" +
			"  --level arg (=3)  short\n"
		assert.Equal(t, want, catalog.String())
	})

	t.Run("TabSetsContinuationIndent", func(t *testing.T) {
		catalog := NewCatalog("").
			Add("mode", Value[string](nil), "selects the mode: \tfast means quick and dirty, safe means slow and careful")
		require.NoError(t, catalog.SetLineLength(60, 30))

		want := "  --mode arg            selects the mode: fast means quick \n" +
			"                                          and dirty, safe \n" +
			"                                          means slow and \n" +
			"                                          careful\n"
		assert.Equal(t, want, catalog.String())
	})

	t.Run("ExplicitNewlines", func(t *testing.T) {
		catalog := NewCatalog("").
			Add("format", Value[string](nil), "output format\nauto, toml, yaml or json")

		want := "  --format arg          output format\n" +
			"                        auto, toml, yaml or json\n"
		assert.Equal(t, want, catalog.String())
	})

	t.Run("WideNameMovesDescriptionDown", func(t *testing.T) {
		catalog := NewCatalog("").
			Add("a-very-long-option-name-indeed", Value[string](nil), "wraps below")
		require.NoError(t, catalog.SetLineLength(50, 25))

		want := "  --a-very-long-option-name-indeed arg\n" +
			"                         wraps below\n"
		assert.Equal(t, want, catalog.String())
	})

	t.Run("Groups", func(t *testing.T) {
		general := NewCatalog("General").AddFlag("verbose", "more output")
		server := NewCatalog("Server").
			Add("server.port", Value[int](nil).Default(8080), "listen port")
		catalog := NewCatalog("Usage").
			AddFlag("help,h", "help").
			AddGroup(general).
			AddGroup(server)

		want := "Usage:\n" +
			"  -h [ --help ]             help\n" +
			"\n" +
			"General:\n" +
			"  --verbose                 more output\n" +
			"\n" +
			"Server:\n" +
			"  --server.port arg (=8080) listen port\n"
		assert.Equal(t, want, catalog.String())
		assert.Len(t, catalog.Options(), 3)
		assert.Len(t, catalog.Groups(), 2)
	})

	t.Run("TwoTabsRejected", func(t *testing.T) {
		catalog := NewCatalog("").
			Add("mode", Value[string](nil), "a\tb\tc and enough text to make the paragraph wrap somewhere")

		var buf bytes.Buffer
		err := catalog.Print(&buf)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidCatalog)
		assert.Equal(t, "Only one tab per paragraph is allowed in the options description", err.Error())
	})

	t.Run("InvalidGeometry", func(t *testing.T) {
		catalog := NewCatalog("")
		err := catalog.SetLineLength(40, 39)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidCatalog)
	})
}

func TestValueNames(t *testing.T) {
	tests := []struct {
		name     string
		semantic ValueSemantic
		want     string
	}{
		{"Plain", Value[string](nil), "arg"},
		{"Named", Value[string](nil).ValueName("path"), "path"},
		{"Default", Value[int](nil).Default(10), "arg (=10)"},
		{"DefaultText", Value[ByteSize](nil).DefaultText(1<<20, "1MiB"), "arg (=1MiB)"},
		{"Implicit", Value[int](nil).Implicit(5), "[=arg(=5)]"},
		{"ImplicitAndDefault", Value[int](nil).ValueName("n").Default(1).Implicit(2), "[=n(=2)] (=1)"},
		{"Switch", Switch(nil), "arg (=false)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.semantic.Name())
		})
	}

	t.Run("SwitchHidesParameter", func(t *testing.T) {
		opt, err := NewOption("verbose,v", Switch(nil), "")
		require.NoError(t, err)
		assert.Equal(t, "", opt.FormatParameter())
		assert.Equal(t, "-v [ --verbose ]", opt.FormatName())
	})
}
