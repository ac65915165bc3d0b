package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/glsipy/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// ParseBool reports whether v spells a true value: yes, true, t or 1 in any
// letter case. Everything else is false.
func ParseBool(v string) bool {
	switch strings.ToLower(v) {
	case "yes", "true", "t", "1":
		return true
	default:
		return false
	}
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("glsipy", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
glsipy - inlines required shader modules into a single shader file.

Usage:
  glsipy [options] ENTRY OUTPUT [MINIFY]
  glsipy [options] -config PROJECT

Arguments:
  ENTRY   Entry shader, relative to the working directory.
  OUTPUT  Output file, relative to the entry shader's directory.
  MINIFY  yes/true/t/1 to minify (case-insensitive); anything else disables it.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to a project file (.hcl, .yaml) or a directory of them.")
	dirsFlag := flagSet.String("dirs", strings.Join(app.DefaultSearchDirs, ","), "Comma separated search directories for required modules.")
	minifyFlag := flagSet.Bool("minify", false, "Minify the compiled shader.")
	logFormatFlag := flagSet.String("log-format", "auto", "Log output format. Options: 'text', 'json' or 'auto'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	positional := flagSet.Args()
	if len(positional) == 0 && *configFlag == "" {
		slog.Debug("No entry or project config provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}
	if len(positional) > 3 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("too many arguments: %q", positional[3:])}
	}

	var entry, out string
	minify := *minifyFlag
	if len(positional) > 0 {
		entry = positional[0]
	}
	if len(positional) > 1 {
		out = positional[1]
	}
	if len(positional) > 2 {
		minify = ParseBool(positional[2])
	}

	logFormat := strings.ToLower(*logFormatFlag)
	switch logFormat {
	case "text", "json", "auto":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text', 'json' or 'auto'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		EntryPath:  entry,
		OutputPath: out,
		Minify:     minify,
		SearchDirs: splitList(*dirsFlag),
		ConfigPath: *configFlag,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
