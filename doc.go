// File: lixenwraith/options/doc.go

// Package options turns command-line arguments, configuration files and
// environment variables into one typed table of program settings.
//
// Features:
//   - Declarative option catalog with long, short and wildcard names
//   - Typed values with defaults, implicit values, composition and write-back
//   - Style-driven command-line parsing (GNU, DOS and disguised-long styles)
//   - Options configuration files with [section] prefixes
//   - TOML, YAML and JSON files flattened to dotted option keys
//   - Environment variables and .env files mapped to option keys
//   - First-source-wins merging with required option checks
//   - Help output wrapped to the terminal width
//   - Builder pattern for multi-source loading
//
// Quick Start:
//
//	var (
//	    level int
//	    files []string
//	)
//
//	catalog := options.NewCatalog("Allowed options").
//	    AddFlag("help,h", "produce help message").
//	    Add("compression,c", options.Value(&level).Default(10), "set compression level").
//	    Add("input-file", options.Slice(&files).Composing(), "input files")
//
//	positional := options.NewPositionalOptions().Add("input-file", -1)
//
//	result, err := options.NewCommandLineParser(os.Args[1:]).
//	    Options(catalog).
//	    Positional(positional).
//	    Run()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	settings := options.NewSettings()
//	if err := settings.Store(result); err != nil {
//	    log.Fatal(err)
//	}
//	if err := settings.Notify(); err != nil {
//	    log.Fatal(err)
//	}
//
//	if settings.Count("help") > 0 {
//	    fmt.Print(catalog)
//	}
//
// Precedence:
// The first Store of a key wins; later sources only fill keys that are still
// unset. Composing options accumulate across every Store instead. Sources are
// therefore stored from highest to lowest priority, which is what the Builder does:
//
//	settings, err := options.NewBuilder().
//	    WithCatalog(catalog).
//	    WithEnvPrefix("MYAPP_").
//	    WithFile("myapp.conf").
//	    WithSources(
//	        options.SourceCLI,
//	        options.SourceEnv,
//	        options.SourceFile,
//	        options.SourceDefault,
//	    ).
//	    Build()
//
// Thread Safety:
// Catalogs are safe to share once declared. Parsers and Settings are not safe
// for concurrent use; each parse is a one-shot transform of its input.
package options
