package config

import "flag"

// Options are command line settings that are not part of a match
// configuration.
type Options struct {
	ConfigPath string
	Headless   bool
	Matches    int
	Greedy     bool
	LogLevel   string
}

func defaultOptions() Options {
	return Options{Matches: 1, LogLevel: "info"}
}

func newFlagSet(name string, cfg *Config, opts *Options) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	fs.StringVar(&opts.ConfigPath, "config", opts.ConfigPath, "JSON config file")
	fs.BoolVar(&opts.Headless, "headless", opts.Headless, "Run AI-only matches without a window")
	fs.IntVar(&opts.Matches, "matches", opts.Matches, "Matches to play in headless mode (0 = until interrupted)")
	fs.BoolVar(&opts.Greedy, "greedy", opts.Greedy, "Score moves by food distance only")
	fs.StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "debug, info, warn or error")
	return fs
}

// ParseArgs builds a Config from the defaults, an optional -config file and
// the remaining flags, in that order of precedence. The flags are parsed a
// second time after loading the file so they win over it.
func ParseArgs(name string, args []string) (Config, Options, error) {
	cfg := Default()
	opts := defaultOptions()
	if err := newFlagSet(name, &cfg, &opts).Parse(args); err != nil {
		return cfg, opts, err
	}
	if opts.ConfigPath == "" {
		return cfg, opts, nil
	}

	loaded, err := Load(opts.ConfigPath)
	if err != nil {
		return cfg, opts, err
	}
	opts = defaultOptions()
	if err := newFlagSet(name, &loaded, &opts).Parse(args); err != nil {
		return loaded, opts, err
	}
	return loaded, opts, nil
}
