package runner

import (
	"os"
	"time"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
	updateutils "github.com/projectdiscovery/utils/update"
)

// Options is the parsed CLI surface.
type Options struct {
	SourcePath string
	Output     string
	MaxAge     time.Duration
	Source     string // ninja | watch | none

	StopOnError bool
	WarnAsError bool
	PrintAST    bool

	CacheDir string

	Match      string // path to an item fixture, enables the -match harness
	RealFilter bool

	Config             string
	EmitConfig         string
	Verbose            bool
	Silent             bool
	DisableUpdateCheck bool
}

func ParseFlags() *Options {
	var maxAge string
	opts := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Compiles a high-level spirit filter source into a flat, native item-filter file.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringVarP(&opts.SourcePath, "file", "f", "", "spirit-filter source path"),
		flagSet.BoolVarP(&opts.RealFilter, "realfilter", "rf", false, "treat the input as a native item filter (round-trip/diff entry)"),
	)

	flagSet.CreateGroup("market-data", "Market data",
		flagSet.StringVar(&opts.Source, "source", "none", "market-data source: ninja, watch, or none"),
		flagSet.StringVar(&maxAge, "max-age", "24h", "maximum cached market-data snapshot age before a refetch is required"),
		flagSet.StringVar(&opts.CacheDir, "cache-dir", "", "market-data snapshot cache directory (default '$HOME/.cache/filterspirit')"),
	)

	flagSet.CreateGroup("compiler", "Compiler",
		flagSet.BoolVarP(&opts.StopOnError, "stop-on-error", "soe", false, "stop compiling the current subtree on its first error"),
		flagSet.BoolVarP(&opts.WarnAsError, "warn-as-error", "wae", false, "treat warnings as errors"),
		flagSet.BoolVar(&opts.PrintAST, "print-ast", false, "debug: dump the parsed AST instead of compiling"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&opts.Output, "output", "o", "", "output item-filter path (default stdout)"),
		flagSet.StringVar(&opts.EmitConfig, "emit-config", "", "emitter line-format config file (default '$HOME/.config/filterspirit/emit.yaml')"),
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "display verbose output"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "display results only"),
		flagSet.CallbackVar(printVersion, "version", "display filterspirit version"),
	)

	flagSet.CreateGroup("verify", "Verification",
		flagSet.StringVar(&opts.Match, "match", "", "run the item-matcher test harness against a real filter + item fixture path"),
	)

	flagSet.CreateGroup("config", "Config",
		flagSet.StringVar(&opts.Config, "config", "", `filterspirit cli config file (default '$HOME/.config/filterspirit/config.yaml')`),
	)

	flagSet.CreateGroup("update", "Update",
		flagSet.CallbackVarP(GetUpdateCallback(), "update", "up", "update filterspirit to latest version"),
		flagSet.BoolVarP(&opts.DisableUpdateCheck, "disable-update-check", "duc", false, "disable automatic filterspirit update check"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("Could not read flags: %s\n", err)
	}

	if opts.Config != "" {
		if err := flagSet.MergeConfigFile(opts.Config); err != nil {
			gologger.Error().Msgf("failed to read config file got %v", err)
		}
	}

	if opts.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	showBanner()

	if !opts.DisableUpdateCheck {
		latestVersion, err := updateutils.GetVersionCheckCallback("filterspirit")()
		if err != nil {
			if opts.Verbose {
				gologger.Error().Msgf("filterspirit version check failed: %v", err.Error())
			}
		} else {
			gologger.Info().Msgf("Current filterspirit version %v %v", version, updateutils.GetVersionDescription(version, latestVersion))
		}
	}

	if opts.CacheDir == "" {
		opts.CacheDir = DefaultCLIConfig.CacheDir
	}
	if opts.Source == "" {
		opts.Source = DefaultCLIConfig.DefaultSource
	}

	parsedAge, err := time.ParseDuration(maxAge)
	if err != nil {
		gologger.Fatal().Msgf("Could not parse max-age: %s\n", err)
	}
	opts.MaxAge = parsedAge

	if opts.SourcePath == "" {
		gologger.Fatal().Msgf("filterspirit: no input file given, pass -file")
	}

	switch opts.Source {
	case "ninja", "watch", "none":
	default:
		gologger.Fatal().Msgf("filterspirit: invalid -source %q (must be ninja, watch, or none)", opts.Source)
	}

	return opts
}

func printVersion() {
	gologger.Info().Msgf("Current version: %s", version)
	os.Exit(0)
}
