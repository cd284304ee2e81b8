// FILE: lixenwraith/options/example/main.go
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/lixenwraith/options"
)

// ServerConfig is filled from the merged settings with BuildAndScan
type ServerConfig struct {
	Host    string        `option:"host"`
	Port    int           `option:"port"`
	Timeout time.Duration `option:"timeout"`
	Tags    []string      `option:"tags"`
}

var magicNumber = regexp.MustCompile(`^\d\d\d-\d\d\d$`)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))

	workDir, err := os.MkdirTemp("", "options-example-")
	if err != nil {
		slog.Error("Failed to create working directory", "error", err)
		os.Exit(1)
	}
	defer func() {
		slog.Info("Cleaning up", "dir", workDir)
		os.RemoveAll(workDir)
	}()

	// =========================================================================
	// PART 1: OPTION GROUPS AND HELP
	// =========================================================================
	slog.Info("PART 1: option groups and help")

	general := options.NewCatalog("General options").
		AddFlag("help,h", "produce help message").
		Add("verbose,v", options.Value[int](nil).Implicit(1).ValueName("level"),
			"verbosity level;\n\t0 is silent, 1 shows progress and 2 shows every step")
	server := options.NewCatalog("Server options").
		Add("server.host", options.Value[string](nil).Default("localhost"), "listen address").
		Add("server.port", options.Value[int](nil).Default(8080), "listen port").
		Add("server.timeout", options.Value[time.Duration](nil).Default(30*time.Second), "request timeout").
		Add("server.tags", options.Slice[string](nil).Composing(), "tags attached to every request")
	catalog := options.NewCatalog("Usage: example [options]").
		AddGroup(general).
		AddGroup(server)

	fmt.Print(catalog)

	// =========================================================================
	// PART 2: CUSTOM SYNTAX
	// "+name" enables a switch alongside the usual "--name".
	// =========================================================================
	slog.Info("PART 2: custom syntax")

	var (
		debug bool
		trace bool
	)
	syntax := options.NewCatalog("").
		Add("debug", options.Switch(&debug), "").
		Add("trace", options.Switch(&trace), "")

	plusSwitch := func(token string) (string, string) {
		if name, ok := strings.CutPrefix(token, "+"); ok && name != "" {
			return name, ""
		}
		return "", ""
	}
	if settings, err := parseAndNotify(syntax, []string{"+debug", "--trace"}, plusSwitch); err != nil {
		slog.Error("Custom syntax failed", "error", err)
	} else {
		slog.Info("Custom syntax parsed", "debug", debug, "trace", trace, "keys", settings.Keys())
	}

	// =========================================================================
	// PART 3: RESPONSE FILE
	// "@path" names a file holding further arguments.
	// =========================================================================
	slog.Info("PART 3: response file")

	responseFile := filepath.Join(workDir, "args.rsp")
	if err := os.WriteFile(responseFile, []byte("--server.port 9090\n--server.tags \"blue green\"\n"), 0644); err != nil {
		slog.Error("Failed to write response file", "error", err)
		os.Exit(1)
	}

	respCatalog := options.NewCatalog("").
		AddGroup(server).
		Add("response-file", options.Value[string](nil), "can be specified with '@name', too")
	atFile := func(token string) (string, string) {
		if path, ok := strings.CutPrefix(token, "@"); ok {
			return "response-file", path
		}
		return "", ""
	}
	if err := loadResponseFile(respCatalog, []string{"@" + responseFile, "--server.tags=red"}, atFile); err != nil {
		slog.Error("Response file failed", "error", err)
	}

	// =========================================================================
	// PART 4: REGEX VALIDATION
	// =========================================================================
	slog.Info("PART 4: custom validation")

	magic := options.NewCatalog("").
		Add("magic,M", options.ValueFunc[string](nil, func(s string) (string, error) {
			if !magicNumber.MatchString(s) {
				return "", errors.New("expected NNN-NNN")
			}
			return s, nil
		}), "magic value (in NNN-NNN format)")

	for _, value := range []string{"123-456", "12-3456"} {
		if _, err := parseAndNotify(magic, []string{"-M", value}, nil); err != nil {
			slog.Warn("Magic value rejected", "value", value, "error", err)
			continue
		}
		slog.Info("Magic value accepted", "value", value)
	}

	// =========================================================================
	// PART 5: MULTIPLE SOURCES
	// Command line beats environment, environment beats the file, and the
	// file beats declared defaults.
	// =========================================================================
	slog.Info("PART 5: multiple sources")

	configFile := filepath.Join(workDir, "example.conf")
	content := "# example configuration\n[server]\nhost = example.org\nport = 7000\ntags = from-file\n"
	if err := os.WriteFile(configFile, []byte(content), 0644); err != nil {
		slog.Error("Failed to write config file", "error", err)
		os.Exit(1)
	}
	os.Setenv("EXAMPLE_SERVER_PORT", "7500")
	defer os.Unsetenv("EXAMPLE_SERVER_PORT")

	var cfg ServerConfig
	err = options.NewBuilder().
		WithCatalog(catalog).
		WithArgs([]string{"--server.timeout=5s", "-v"}).
		WithEnvPrefix("EXAMPLE_").
		WithFile(configFile).
		WithPrefix("server").
		WithValidator(func(s *options.Settings) error {
			port, err := options.Lookup[int](s, "server.port")
			if err != nil {
				return err
			}
			if port < 1024 {
				return fmt.Errorf("port %d is privileged", port)
			}
			return nil
		}).
		BuildAndScan(&cfg)
	if err != nil {
		slog.Error("Failed to load settings", "error", err)
		os.Exit(1)
	}
	slog.Info("Settings loaded",
		"host", cfg.Host,
		"port", cfg.Port,
		"timeout", cfg.Timeout,
		"tags", cfg.Tags,
	)
}

// parseAndNotify parses args with the default style and notifies the result
func parseAndNotify(catalog *options.Catalog, args []string, extra options.ExtraParser) (*options.Settings, error) {
	result, err := options.NewCommandLineParser(args).
		Options(catalog).
		ExtraParser(extra).
		Run()
	if err != nil {
		return nil, err
	}
	settings := options.NewSettings()
	if err := settings.Store(result); err != nil {
		return nil, err
	}
	return settings, settings.Notify()
}

// loadResponseFile stores the command line, then the arguments read from the response file
func loadResponseFile(catalog *options.Catalog, args []string, extra options.ExtraParser) error {
	settings := options.NewSettings()
	result, err := options.NewCommandLineParser(args).Options(catalog).ExtraParser(extra).Run()
	if err != nil {
		return err
	}
	if err := settings.Store(result); err != nil {
		return err
	}

	if path, err := settings.String("response-file"); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("could not read the response file: %w", err)
		}
		fileArgs := options.SplitUnix(string(data), "", "", "")
		slog.Debug("Response file read", "path", path, "args", fileArgs)

		fileResult, err := options.ParseArgs(fileArgs, catalog)
		if err != nil {
			return err
		}
		if err := settings.Store(fileResult); err != nil {
			return err
		}
	}

	if err := settings.Notify(); err != nil {
		return err
	}
	fmt.Print(settings.Debug())
	return nil
}
