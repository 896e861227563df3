package main

import (
	"encoding/json"
	"os"

	"github.com/filterspirit/filterspirit/ast"
	"github.com/filterspirit/filterspirit/autogen"
	"github.com/filterspirit/filterspirit/compiler"
	"github.com/filterspirit/filterspirit/diagnostics"
	"github.com/filterspirit/filterspirit/emit"
	"github.com/filterspirit/filterspirit/internal/runner"
	"github.com/filterspirit/filterspirit/internal/snapshotcache"
	"github.com/filterspirit/filterspirit/lang"
	"github.com/filterspirit/filterspirit/match"
	"github.com/filterspirit/filterspirit/resolver"
	"github.com/filterspirit/filterspirit/settings"
	"github.com/filterspirit/filterspirit/sourcemap"
	"github.com/projectdiscovery/gologger"
	errorutil "github.com/projectdiscovery/utils/errors"
)

func main() {
	opts := runner.ParseFlags()

	src, err := os.ReadFile(opts.SourcePath)
	if err != nil {
		gologger.Fatal().Msgf("failed to read %v got %v", opts.SourcePath, err)
	}

	if opts.Match != "" {
		runMatchHarness(opts, string(src))
		return
	}

	if opts.RealFilter {
		runRealFilter(opts, string(src))
		return
	}

	runSpiritFilter(opts, string(src))
}

// runMatchHarness is the verification entry point: -file is a native
// item filter, -match is a JSON fixture decoding to a match.Item, and
// the winning block (if any) is reported.
func runMatchHarness(opts *runner.Options, src string) {
	result := ast.ParseReal(src)
	sm := sourcemap.New(src)
	diags := result.Diags

	blocks := compiler.CompileReal(result.Filter, diags)
	diagnostics.Print(os.Stderr, sm, diags.All())
	if diags.Failed(opts.WarnAsError) {
		os.Exit(1)
	}

	fixtureBin, err := os.ReadFile(opts.Match)
	if err != nil {
		gologger.Fatal().Msgf("failed to read item fixture %v got %v", opts.Match, err)
	}
	var item match.Item
	if err := json.Unmarshal(fixtureBin, &item); err != nil {
		gologger.Fatal().Msgf("malformed item fixture %v got %v", opts.Match, err)
	}

	winner, ok := match.Match(blocks, item)
	if !ok {
		gologger.Info().Msgf("no block matched")
		return
	}
	gologger.Info().Msgf("matched block: visibility=%v", winner.Visibility)
}

func runRealFilter(opts *runner.Options, src string) {
	result := ast.ParseReal(src)
	sm := sourcemap.New(src)
	diags := result.Diags

	blocks := compiler.CompileReal(result.Filter, diags)
	reportAndExit(opts, sm, diags, func() {
		writeOutput(opts, blocks)
	})
}

func runSpiritFilter(opts *runner.Options, src string) {
	result := ast.Parse(src)
	sm := sourcemap.New(src)
	diags := result.Diags

	if opts.PrintAST {
		gologger.Info().Msgf("%+v", result.Filter)
		return
	}

	set := settings.Settings{
		StopOnError:           opts.StopOnError,
		TreatWarningsAsErrors: opts.WarnAsError,
	}

	st := resolver.Resolve(result.Filter.Definitions, diags)
	spiritBlocks := compiler.CompileSpirit(result.Filter, st, set, diags)

	snap, err := loadSnapshot(opts)
	if err != nil {
		gologger.Fatal().Msgf("failed to load market-data snapshot got %v", err)
	}

	blocks := make([]lang.Block, 0, len(spiritBlocks))
	for _, sb := range spiritBlocks {
		block, ok := autogen.Expand(sb, snap, diags)
		if !ok {
			continue
		}
		blocks = append(blocks, block)
	}

	reportAndExit(opts, sm, diags, func() {
		writeOutput(opts, blocks)
	})
}

// loadSnapshot reads a cached market-data snapshot if -source requests
// one; "none" (the default) runs with an empty snapshot, which is
// equivalent to compiling without a snapshot at all as long as no Autogen block is present.
func loadSnapshot(opts *runner.Options) (autogen.Snapshot, error) {
	if opts.Source == "none" {
		return autogen.Empty(), nil
	}

	cache, err := snapshotcache.New(opts.CacheDir)
	if err != nil {
		return autogen.Snapshot{}, errorutil.NewWithErr(err).Msgf("failed to open snapshot cache")
	}

	age, ok, err := cache.Age(opts.Source, "")
	if err != nil {
		return autogen.Snapshot{}, err
	}
	if !ok {
		gologger.Warning().Msgf("no cached %v snapshot found; autogen blocks will expand against an empty snapshot", opts.Source)
		return autogen.Empty(), nil
	}
	if age > opts.MaxAge {
		gologger.Warning().Msgf("cached %v snapshot is %v old, older than -max-age %v", opts.Source, age, opts.MaxAge)
	}

	snap, _, _, err := cache.Load(opts.Source, "")
	if err != nil {
		return autogen.Snapshot{}, err
	}
	return snap, nil
}

func reportAndExit(opts *runner.Options, sm *sourcemap.Map, diags *diagnostics.Store, onSuccess func()) {
	diagnostics.Print(os.Stderr, sm, diags.All())
	if diags.Failed(opts.WarnAsError) {
		os.Exit(1)
	}
	onSuccess()
}

func writeOutput(opts *runner.Options, blocks []lang.Block) {
	cfg := emit.Default()
	if opts.EmitConfig != "" {
		loaded, err := emit.NewConfig(opts.EmitConfig)
		if err != nil {
			gologger.Fatal().Msgf("failed to read emit config %v got %v", opts.EmitConfig, err)
		}
		cfg = *loaded
	}

	rendered := emit.Emit(blocks, cfg)

	if opts.Output == "" {
		os.Stdout.WriteString(rendered)
		return
	}
	if err := os.WriteFile(opts.Output, []byte(rendered), 0644); err != nil {
		gologger.Fatal().Msgf("failed to write output to %v got %v", opts.Output, err)
	}
}
