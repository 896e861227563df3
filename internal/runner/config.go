package runner

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/projectdiscovery/gologger"
	fileutil "github.com/projectdiscovery/utils/file"
)

// CLIConfig is the on-disk CLI config, separate from emit.Config (SPEC_FULL.md's AMBIENT
// STACK/Configuration section): this one is operational, not a
// line-formatting knob.
type CLIConfig struct {
	CacheDir              string `yaml:"cache_dir"`
	DefaultSource         string `yaml:"default_source"`
	StopOnError           bool   `yaml:"stop_on_error"`
	TreatWarningsAsErrors bool   `yaml:"treat_warnings_as_errors"`
}

// DefaultCLIConfig holds the baked-in defaults, overwritten by init()
// below once the on-disk file is read.
var DefaultCLIConfig = CLIConfig{
	CacheDir:      filepath.Join(getUserHomeDir(), ".cache/filterspirit"),
	DefaultSource: "none",
}

func getUserHomeDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(err)
	}
	return homeDir
}

func init() {
	defaultConfigPath := filepath.Join(getUserHomeDir(), ".config/filterspirit/config.yaml")
	// create default config.yaml if it does not exist
	if fileutil.FileExists(defaultConfigPath) {
		if bin, err := os.ReadFile(defaultConfigPath); err == nil {
			var cfg CLIConfig
			if errx := yaml.Unmarshal(bin, &cfg); errx == nil {
				DefaultCLIConfig = cfg
				return
			} else {
				gologger.Error().Msgf("filterspirit yaml configuration syntax error.\n %v\n.", yaml.FormatError(errx, true, true))
				os.Exit(1)
			}
		}
	}
	if err := validateDir(filepath.Join(getUserHomeDir(), ".config/filterspirit")); err != nil {
		gologger.Error().Msgf("filterspirit config dir not found and failed to create got: %v", err)
		return
	}
	bin, err := yaml.Marshal(DefaultCLIConfig)
	if err != nil {
		gologger.Error().Msgf("failed to marshal default filterspirit config got: %v", err)
		return
	}
	if err := os.WriteFile(defaultConfigPath, bin, 0600); err != nil {
		gologger.Error().Msgf("failed to save default config to %v got: %v", defaultConfigPath, err)
	}
}

// validateDir checks if dir exists if not creates it
func validateDir(dirPath string) error {
	if fileutil.FolderExists(dirPath) {
		return nil
	}
	return fileutil.CreateFolder(dirPath)
}
