// FILE: lixenwraith/options/cmd/optdump/main.go
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lixenwraith/options"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// optdump loads its options from every source and prints the merged result.
// It doubles as a playground for precedence: try it with a config file,
// OPTDUMP_* variables and flags at the same time.
func main() {
	var (
		help    bool
		verbose bool
		format  string
	)

	general := options.NewCatalog("General").
		Add("help,h", options.Switch(&help), "produce help message").
		Add("verbose,v", options.Switch(&verbose), "log every loading step").
		Add("config", options.Value[string](nil).ValueName("path"), "options configuration file").
		Add("format,f", options.Value(&format).Default("auto"),
			"output format:\n\tauto (settings listing on a terminal, json otherwise), toml, yaml or json")

	server := options.NewCatalog("Server").
		Add("server.host", options.Value[string](nil).Default("localhost"), "listen address").
		Add("server.port", options.Value[uint16](nil).Default(8080), "listen port").
		Add("server.timeout", options.Value[time.Duration](nil).Default(30*time.Second), "request timeout").
		Add("server.max-body", options.Value[options.ByteSize](nil).DefaultText(1<<20, "1MiB"), "largest accepted request body").
		Add("server.tags", options.Slice[string](nil).Composing().Multitoken(), "tags attached to every request")

	catalog := options.NewCatalog("Usage: optdump [options]").
		AddGroup(general).
		AddGroup(server)

	if isatty.IsTerminal(os.Stdout.Fd()) {
		if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > options.DefaultMinDescriptionLength+1 {
			_ = catalog.SetLineLength(width, options.DefaultMinDescriptionLength)
		}
	}

	builder := options.NewBuilder().
		WithCatalog(catalog).
		WithEnvPrefix("OPTDUMP_").
		WithFileDiscovery(options.DefaultDiscoveryOptions("optdump"))

	settings, err := builder.Build()
	if err != nil && !errors.Is(err, options.ErrConfigNotFound) {
		slog.Error("Error loading options", "error", err)
		fmt.Fprintln(os.Stderr, "Try 'optdump --help' for more information.")
		os.Exit(2)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	if err != nil {
		slog.Debug("Configuration file not loaded", "error", err)
	}

	if help {
		if err := catalog.Print(os.Stdout); err != nil {
			slog.Error("Error printing help", "error", err)
			os.Exit(1)
		}
		return
	}

	slog.Debug("Options loaded", "keys", settings.Len())
	for _, key := range settings.Keys() {
		v := settings.Get(key)
		slog.Debug("Option", "key", key, "defaulted", v.Defaulted())
	}

	if format == "auto" {
		if isatty.IsTerminal(os.Stdout.Fd()) {
			fmt.Print(settings.Debug())
			return
		}
		format = "json"
	}

	if err := settings.Encode(os.Stdout, format); err != nil {
		slog.Error("Error writing settings", "format", format, "error", err)
		os.Exit(1)
	}
}
