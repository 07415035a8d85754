package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/vvka-141/strata/internal/config"
	"github.com/vvka-141/strata/internal/layers"
	"github.com/vvka-141/strata/pkg/strata"
)

// settingsFlags holds the flag values that override configuration.
// Zero values mean "not given on the command line".
type settingsFlags struct {
	configFile string
	maxListed  int
	strictRefs bool
}

// resolvedRun is everything a command needs after configuration is merged.
type resolvedRun struct {
	Root     string
	Settings config.Settings
	Registry *layers.Registry
}

// loadDotEnv loads .env from the working directory without overriding
// variables already present in the environment.
func loadDotEnv() {
	_ = godotenv.Load()
}

// resolveCorpusRoot picks the corpus root.
// Priority (highest to lowest): argument > STRATA_ROOT > working directory
func resolveCorpusRoot(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if root := os.Getenv(config.EnvRoot); root != "" {
		return root
	}
	return "."
}

// loadProjectConfig loads the explicit --config file, or strata.yaml from the
// corpus root. Returns nil config if strata.yaml does not exist (not an error);
// a missing explicit --config file is an error.
func loadProjectConfig(root, configFile string) (*config.ProjectConfig, error) {
	if configFile != "" {
		cfg, err := config.LoadFile(configFile)
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("%v: %w", err, strata.ErrInvalidConfig)
		}
		return cfg, err
	}

	cfg, err := config.Load(root)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}
	return cfg, nil
}

// resolveRun merges configuration sources and loads the layer registry.
// Priority (highest to lowest): flags > environment > config file > defaults
func resolveRun(args []string, flags settingsFlags, verbose bool) (*resolvedRun, error) {
	loadDotEnv()
	root := resolveCorpusRoot(args)

	projectCfg, err := loadProjectConfig(root, flags.configFile)
	if err != nil {
		return nil, err
	}

	settings := config.Defaults()
	settings.ApplyFile(projectCfg)
	if err := settings.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if flags.maxListed != 0 {
		settings.MaxListed = flags.maxListed
	}
	if flags.strictRefs {
		settings.StrictReferences = true
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	registry := layers.Default()
	if settings.LayersFile != "" {
		registry, err = layers.LoadFile(settings.LayersFile)
		if err != nil {
			return nil, err
		}
	}

	if verbose {
		logSettingsVerbose(root, projectCfg, settings)
	}

	return &resolvedRun{Root: root, Settings: settings, Registry: registry}, nil
}

// logSettingsVerbose logs the effective configuration when verbose mode is enabled.
func logSettingsVerbose(root string, projectCfg *config.ProjectConfig, s config.Settings) {
	fmt.Fprintf(os.Stderr, "[VERBOSE] Configuration resolved:\n")
	fmt.Fprintf(os.Stderr, "  Corpus root: %s\n", root)
	if projectCfg != nil {
		fmt.Fprintf(os.Stderr, "  Config file: %s\n", projectCfg.Path())
	}
	fmt.Fprintf(os.Stderr, "  Include: %v\n", s.Include)
	fmt.Fprintf(os.Stderr, "  Exclude: %v\n", s.Exclude)
	fmt.Fprintf(os.Stderr, "  Max listed: %d\n", s.MaxListed)
	fmt.Fprintf(os.Stderr, "  Strict references: %v\n", s.StrictReferences)
	if s.LayersFile != "" {
		fmt.Fprintf(os.Stderr, "  Layers file: %s\n", s.LayersFile)
	}
}
