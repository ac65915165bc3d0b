package app

import "errors"

// DefaultSearchDirs is used when neither the command line nor a project file
// names any search directory.
var DefaultSearchDirs = []string{"./others"}

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	EntryPath  string // relative to the working directory
	OutputPath string // relative to the entry file's directory
	Minify     bool

	SearchDirs []string
	ConfigPath string // project file or directory
	WorkDir    string // defaults to the process working directory

	LogFormat string
	LogLevel  string
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.EntryPath == "" && cfg.ConfigPath == "" {
		return nil, errors.New("an entry file or a project config is required")
	}
	if cfg.EntryPath != "" && cfg.OutputPath == "" {
		return nil, errors.New("an output path is required when an entry file is given")
	}
	if cfg.EntryPath == "" && cfg.OutputPath != "" {
		return nil, errors.New("an output path was given without an entry file")
	}
	if len(cfg.SearchDirs) == 0 {
		cfg.SearchDirs = DefaultSearchDirs
	}

	return &cfg, nil
}
