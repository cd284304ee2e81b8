// FILE: lixenwraith/options/errors_test.go
package options

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	styleUnix       = UnixStyle
	styleLongDash   = AllowLong | LongAllowAdjacent | AllowGuessing
	styleShortDash  = AllowShort | AllowDashForShort | ShortAllowAdjacent | AllowSticky
	styleShortSlash = AllowShort | AllowSlashForShort | ShortAllowAdjacent
)

// storeArgs runs the full parse, store and notify cycle for one command line
func storeArgs(catalog *Catalog, style Style, args ...string) error {
	result, err := NewCommandLineParser(args).Options(catalog).Style(style).Run()
	if err != nil {
		return err
	}
	settings := NewSettings()
	if err := settings.Store(result); err != nil {
		return err
	}
	return settings.Notify()
}

// storeConfig runs the full parse, store and notify cycle for one configuration text
func storeConfig(catalog *Catalog, content string) error {
	result, err := ParseConfig(strings.NewReader(content), catalog, false)
	if err != nil {
		return err
	}
	settings := NewSettings()
	if err := settings.Store(result); err != nil {
		return err
	}
	return settings.Notify()
}

type messageCase struct {
	name    string
	style   Style // 0 selects the configuration file reader
	args    []string
	content string
	want    string
}

func runMessageCases(t *testing.T, catalog func() *Catalog, kind error, cases []messageCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var err error
			if tc.style == 0 {
				err = storeConfig(catalog(), tc.content)
			} else {
				err = storeArgs(catalog(), tc.style, tc.args...)
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, kind)
			assert.Equal(t, tc.want, err.Error())
		})
	}
}

func TestErrorMessages(t *testing.T) {
	t.Run("InvalidOptionValue", func(t *testing.T) {
		catalog := func() *Catalog {
			return NewCatalog("").Add("int-option,d", Value[int](nil), "An option taking an integer")
		}
		runMessageCases(t, catalog, ErrInvalidOptionValue, []messageCase{
			{name: "Unix", style: styleUnix, args: []string{"-d", "A_STRING"},
				want: "the argument ('A_STRING') for option '--int-option' is invalid"},
			{name: "LongDash", style: styleLongDash, args: []string{"--int=A_STRING"},
				want: "the argument ('A_STRING') for option '--int-option' is invalid"},
			{name: "ShortDash", style: styleShortDash, args: []string{"-dA_STRING"},
				want: "the argument ('A_STRING') for option '-d' is invalid"},
			{name: "ShortSlash", style: styleShortSlash, args: []string{"/dA_STRING"},
				want: "the argument ('A_STRING') for option '/d' is invalid"},
			{name: "ConfigFile", content: "int-option=A_STRING\n",
				want: "the argument ('A_STRING') for option 'int-option' is invalid"},
		})
	})

	t.Run("MissingParameter", func(t *testing.T) {
		catalog := func() *Catalog {
			return NewCatalog("").
				Add("cfgfile,e", Value[string](nil), "the config file").
				Add("output,o", Value[string](nil), "the output file")
		}
		runMessageCases(t, catalog, ErrInvalidSyntax, []messageCase{
			{name: "Unix", style: styleUnix, args: []string{"-e", "-e", "output.txt"},
				want: "the required argument for option '--cfgfile' is missing"},
			{name: "LongDash", style: styleLongDash, args: []string{"--cfgfile"},
				want: "the required argument for option '--cfgfile' is missing"},
			{name: "ShortDash", style: styleShortDash, args: []string{"-e", "-e", "output.txt"},
				want: "the required argument for option '-e' is missing"},
		})
	})

	t.Run("AmbiguousOption", func(t *testing.T) {
		catalog := func() *Catalog {
			return NewCatalog("").
				Add("cfgfile1,c", Value[string](nil), "the config file").
				Add("cfgfile2,o", Value[string](nil), "the config file").
				AddFlag("good,g", "good option").
				Add("output,c", Value[string](nil), "the output file").
				Add("output", Value[string](nil), "the output file")
		}
		runMessageCases(t, catalog, ErrAmbiguousOption, []messageCase{
			{name: "Unix", style: styleUnix, args: []string{"-ggc", "file", "-o", "anotherfile"},
				want: "option '-c' is ambiguous and matches '--cfgfile1', and '--output'"},
			{name: "LongDash", style: styleLongDash, args: []string{"--cfgfile", "file"},
				want: "option '--cfgfile' is ambiguous and matches '--cfgfile1', and '--cfgfile2'"},
			{name: "ShortDash", style: styleShortDash, args: []string{"-ggc", "file"},
				want: "option '-c' is ambiguous"},
			{name: "ShortSlash", style: styleShortSlash, args: []string{"/c", "file"},
				want: "option '/c' is ambiguous"},
			{name: "ConfigFile", content: "output=output.txt\n",
				want: "option 'output' is ambiguous and matches different versions of 'output'"},
		})
	})

	t.Run("MultipleOccurrences", func(t *testing.T) {
		catalog := func() *Catalog {
			return NewCatalog("").Add("cfgfile,c", Value[string](nil), "the configfile")
		}
		runMessageCases(t, catalog, ErrMultipleOccurrences, []messageCase{
			{name: "Unix", style: styleUnix, args: []string{"-c", "file", "-c", "anotherfile"},
				want: "option '--cfgfile' cannot be specified more than once"},
			{name: "LongDash", style: styleLongDash, args: []string{"--cfgfi=file", "--cfgfi=anotherfile"},
				want: "option '--cfgfile' cannot be specified more than once"},
			{name: "ShortDash", style: styleShortDash, args: []string{"-cfile", "-canotherfile"},
				want: "option '-c' cannot be specified more than once"},
			{name: "ShortSlash", style: styleShortSlash, args: []string{"/cfile", "/canotherfile"},
				want: "option '/c' cannot be specified more than once"},
			{name: "ConfigFile", content: "cfgfile=output.txt\ncfgfile=output.txt\n",
				want: "option 'cfgfile' cannot be specified more than once"},
		})
	})

	t.Run("UnknownOption", func(t *testing.T) {
		catalog := func() *Catalog {
			return NewCatalog("").AddFlag("good,g", "good option")
		}
		runMessageCases(t, catalog, ErrUnknownOption, []messageCase{
			{name: "Unix", style: styleUnix, args: []string{"-ggc", "file"},
				want: "unrecognised option '-ggc'"},
			{name: "LongDash", style: styleLongDash, args: []string{"--cfgfile", "file"},
				want: "unrecognised option '--cfgfile'"},
			{name: "ShortDash", style: styleShortDash, args: []string{"-ggc", "file"},
				want: "unrecognised option '-ggc'"},
			{name: "ShortSlash", style: styleShortSlash, args: []string{"/c", "file"},
				want: "unrecognised option '/c'"},
			{name: "ConfigFile", content: "cfgfile=output.txt\n",
				want: "unrecognised option 'cfgfile'"},
		})
	})

	t.Run("InvalidBoolValue", func(t *testing.T) {
		catalog := func() *Catalog {
			return NewCatalog("").Add("bool_option,b", Value[bool](nil), "bool_option")
		}
		const choices = ". Valid choices are 'on|off', 'yes|no', '1|0' and 'true|false'"
		runMessageCases(t, catalog, ErrInvalidBoolValue, []messageCase{
			{name: "Unix", style: styleUnix, args: []string{"-b", "file"},
				want: "the argument ('file') for option '--bool_option' is invalid" + choices},
			{name: "LongDash", style: styleLongDash, args: []string{"--bool_optio=file"},
				want: "the argument ('file') for option '--bool_option' is invalid" + choices},
			{name: "ShortDash", style: styleShortDash, args: []string{"-bfile"},
				want: "the argument ('file') for option '-b' is invalid" + choices},
			{name: "ShortSlash", style: styleShortSlash, args: []string{"/bfile"},
				want: "the argument ('file') for option '/b' is invalid" + choices},
			{name: "ConfigFile", content: "bool_option=output.txt\n",
				want: "the argument ('output.txt') for option 'bool_option' is invalid" + choices},
		})
	})

	t.Run("MultipleValues", func(t *testing.T) {
		catalog := func() *Catalog {
			return NewCatalog("").
				Add("cfgfile,c", Value[string](nil).Multitoken(), "the config file").
				AddFlag("good,g", "good option").
				Add("output,o", Value[string](nil), "the output file")
		}
		runMessageCases(t, catalog, ErrMultipleValues, []messageCase{
			{name: "Unix", style: styleUnix, args: []string{"-c", "file", "c", "-o", "fritz", "hugo"},
				want: "option '--cfgfile' only takes a single argument"},
			{name: "LongDash", style: styleLongDash, args: []string{"--cfgfil=file", "c"},
				want: "option '--cfgfile' only takes a single argument"},
			{name: "ShortDash", style: styleShortDash, args: []string{"-cfile", "c"},
				want: "option '-c' only takes a single argument"},
			{name: "ShortSlash", style: styleShortSlash, args: []string{"/cfile", "c"},
				want: "option '/c' only takes a single argument"},
		})
	})

	t.Run("AtLeastOneValue", func(t *testing.T) {
		catalog := func() *Catalog {
			return NewCatalog("").
				Add("cfgfile,c", Value[int](nil).ZeroTokens(), "the config file").
				Add("other,o", Value[string](nil), "other")
		}
		runMessageCases(t, catalog, ErrAtLeastOneValue, []messageCase{
			{name: "Unix", style: styleUnix, args: []string{"-c"},
				want: "option '--cfgfile' requires at least one argument"},
			{name: "LongDash", style: styleLongDash, args: []string{"--cfg"},
				want: "option '--cfgfile' requires at least one argument"},
			{name: "ShortDash", style: styleShortDash, args: []string{"-c"},
				want: "option '-c' requires at least one argument"},
			{name: "ShortSlash", style: styleShortSlash, args: []string{"/c"},
				want: "option '/c' requires at least one argument"},
		})
	})

	t.Run("RequiredOption", func(t *testing.T) {
		catalog := func() *Catalog {
			return NewCatalog("").
				Add("cfgfile,c", Value[string](nil).Required(), "the config file").
				AddFlag("good,g", "good option").
				Add("output,o", Value[string](nil).Required(), "the output file")
		}
		runMessageCases(t, catalog, ErrRequiredOption, []messageCase{
			{name: "Unix", style: styleUnix, args: []string{"-g"},
				want: "the option '--cfgfile' is required but missing"},
			{name: "LongDash", style: styleLongDash, args: []string{"--g"},
				want: "the option '--cfgfile' is required but missing"},
			{name: "ShortDash", style: styleShortDash, args: []string{"-g"},
				want: "the option '-c' is required but missing"},
			{name: "ShortSlash", style: styleShortSlash, args: []string{"/g"},
				want: "the option '/c' is required but missing"},
			{name: "ConfigFile", content: "",
				want: "the option 'cfgfile' is required but missing"},
		})
	})

	t.Run("EmptyValue", func(t *testing.T) {
		catalog := NewCatalog("").Add("foo", Value[uint32](nil).ValueName("<time>").Required(), "")
		result, err := NewCommandLineParser([]string{""}).
			Options(catalog).
			Positional(NewPositionalOptions().Add("foo", 1)).
			Style(DefaultStyle &^ AllowGuessing).
			Run()
		require.NoError(t, err)

		err = NewSettings().Store(result)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidOptionValue)
		assert.Equal(t, "the argument for option '--foo' is invalid", err.Error())
	})
}

func TestErrorMessagesWithoutOptions(t *testing.T) {
	t.Run("ReadingFile", func(t *testing.T) {
		catalog := NewCatalog("").Add("output,o", Value[string](nil), "the output file")
		_, err := ParseConfigFile("no_such_file", catalog, true)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrReadingFile)
		assert.Equal(t, "can not read options configuration file 'no_such_file'", err.Error())
	})

	t.Run("WildcardConflict", func(t *testing.T) {
		catalog := NewCatalog("").
			Add("outpu*", Value[string](nil), "the output file1").
			Add("outp*", Value[string](nil), "the output file2")
		err := storeConfig(catalog, "output1=whichone\noutput2=whichone\n")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidCatalog)
		assert.Equal(t, "options 'outpu*' and 'outp*' will both match the same arguments from the configuration file", err.Error())
	})

	t.Run("UnrecognizedLine", func(t *testing.T) {
		err := storeConfig(NewCatalog(""), "funny wierd line\n")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidSyntax)
		assert.Equal(t, "the options configuration file contains an invalid line 'funny wierd line'", err.Error())

		var e *Error
		require.True(t, errors.As(err, &e))
		assert.Equal(t, SyntaxUnrecognizedLine, e.Syntax)
		assert.Equal(t, 1, e.Line)
	})

	t.Run("AbbreviatedNameInConfigFile", func(t *testing.T) {
		catalog := NewCatalog("").Add(",o", Value[string](nil), "the output file")
		err := storeConfig(catalog, "o=output.txt\n")
		require.Error(t, err)
		assert.Equal(t, "abbreviated option names are not permitted in options configuration files", err.Error())
	})

	t.Run("TooManyPositional", func(t *testing.T) {
		_, err := NewCommandLineParser([]string{"1", "2", "3"}).
			Options(NewCatalog("")).
			Positional(NewPositionalOptions().Add("two_positional_arguments", 2)).
			Run()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTooManyPositional)
		assert.Equal(t, "too many positional options have been specified on the command line", err.Error())
	})
}

func TestErrorStructure(t *testing.T) {
	t.Run("FieldsAfterMatching", func(t *testing.T) {
		catalog := NewCatalog("").
			AddFlag("verbose", "").
			AddFlag("version", "")
		_, err := ParseArgs([]string{"--ver"}, catalog)
		require.Error(t, err)

		var e *Error
		require.True(t, errors.As(err, &e))
		assert.Equal(t, ErrAmbiguousOption, e.Kind)
		assert.Equal(t, "--ver", e.OriginalToken)
		assert.Equal(t, AllowLong, e.Style)
		assert.ElementsMatch(t, []string{"verbose", "version"}, e.Alternatives)
		assert.Equal(t, "option '--ver' is ambiguous and matches '--verbose', and '--version'", e.Error())
	})

	t.Run("UnwrapExposesKindAndCause", func(t *testing.T) {
		cause := fmt.Errorf("disk on fire")
		e := &Error{Kind: ErrReadingFile, Value: "app.conf", Err: cause}
		assert.ErrorIs(t, e, ErrReadingFile)
		assert.ErrorIs(t, e, cause)
		assert.NotErrorIs(t, e, ErrUnknownOption)

		wrapped := fmt.Errorf("loading: %w", e)
		var target *Error
		require.True(t, errors.As(wrapped, &target))
		assert.Equal(t, "app.conf", target.Value)
	})

	t.Run("DefaultPlaceholders", func(t *testing.T) {
		e := &Error{Kind: ErrInvalidOptionValue}
		assert.Equal(t, "the argument for option is invalid", e.Error())

		e = &Error{Kind: ErrTypeMismatch, Message: "stored value has type int, wanted string"}
		assert.Equal(t, "stored value has type int, wanted string", e.Error())

		e = &Error{Kind: ErrTypeMismatch}
		assert.Equal(t, ErrTypeMismatch.Error(), e.Error())
	})

	t.Run("CanonicalOption", func(t *testing.T) {
		tests := []struct {
			name string
			err  *Error
			want string
		}{
			{"Long", &Error{Kind: ErrMultipleOccurrences, Option: "cfgfile", OriginalToken: "-c", Style: AllowLong}, "--cfgfile"},
			{"Disguised", &Error{Kind: ErrMultipleOccurrences, Option: "cfgfile", OriginalToken: "-cfgfile", Style: AllowLongDisguise}, "-cfgfile"},
			{"Dash", &Error{Kind: ErrMultipleOccurrences, Option: "cfgfile", OriginalToken: "-cvalue", Style: AllowDashForShort}, "-c"},
			{"Slash", &Error{Kind: ErrMultipleOccurrences, Option: "cfgfile", OriginalToken: "/c", Style: AllowSlashForShort}, "/c"},
			{"Bare", &Error{Kind: ErrMultipleOccurrences, Option: "cfgfile", OriginalToken: "cfgfile"}, "cfgfile"},
			{"Unknown", &Error{Kind: ErrUnknownOption, Option: "x", OriginalToken: "--x=1", Style: AllowLong}, "--x=1"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				assert.Equal(t, tt.want, tt.err.CanonicalOption())
			})
		}
	})

	t.Run("AddContextIgnoresForeignErrors", func(t *testing.T) {
		plain := errors.New("plain")
		assert.Same(t, plain, addContext(plain, "x", "--x", AllowLong))
	})

	t.Run("SyntaxKindNames", func(t *testing.T) {
		assert.Equal(t, "missing_parameter", SyntaxMissingParameter.String())
		assert.Equal(t, "empty_adjacent_parameter", SyntaxEmptyAdjacentParameter.String())
		assert.Equal(t, "none", SyntaxNone.String())
	})
}
