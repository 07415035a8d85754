package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/vvka-141/strata/internal/files/scanner"
	"github.com/vvka-141/strata/pkg/strata"
)

// Environment variables that override strata.yaml.
const (
	EnvRoot       = "STRATA_ROOT"
	EnvMaxListed  = "STRATA_MAX_LISTED"
	EnvStrictRefs = "STRATA_STRICT_REFS"
)

// Settings is the effective configuration of a run after every source has
// been merged. Sources are applied lowest priority first:
// defaults, strata.yaml, environment, command-line flags.
type Settings struct {
	Include          []string
	Exclude          []string
	MaxListed        int
	StrictReferences bool
	LayersFile       string
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Settings {
	return Settings{
		Include:   append([]string(nil), strata.DefaultIncludePatterns...),
		Exclude:   append([]string(nil), strata.DefaultExcludePatterns...),
		MaxListed: strata.DefaultMaxListed,
	}
}

// ApplyFile overlays the fields set in cfg. A nil cfg is a no-op.
func (s *Settings) ApplyFile(cfg *ProjectConfig) {
	if cfg == nil {
		return
	}
	if cfg.Include != nil {
		s.Include = cfg.Include
	}
	if cfg.Exclude != nil {
		s.Exclude = cfg.Exclude
	}
	if cfg.MaxListed != nil {
		s.MaxListed = *cfg.MaxListed
	}
	if cfg.StrictReferences != nil {
		s.StrictReferences = *cfg.StrictReferences
	}
	if p := cfg.LayersPath(); p != "" {
		s.LayersFile = p
	}
}

// ApplyEnv overlays STRATA_MAX_LISTED and STRATA_STRICT_REFS as reported by
// lookup (normally os.LookupEnv). Unparseable values are configuration errors.
func (s *Settings) ApplyEnv(lookup func(string) (string, bool)) error {
	var errs []error

	if v, ok := lookup(EnvMaxListed); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s=%q is not an integer: %w", EnvMaxListed, v, strata.ErrInvalidConfig))
		} else {
			s.MaxListed = n
		}
	}
	if v, ok := lookup(EnvStrictRefs); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s=%q is not a boolean: %w", EnvStrictRefs, v, strata.ErrInvalidConfig))
		} else {
			s.StrictReferences = b
		}
	}

	return errors.Join(errs...)
}

// Policy returns the reference policy selected by the settings.
func (s Settings) Policy() strata.ReferencePolicy {
	if s.StrictReferences {
		return strata.PolicyStrict
	}
	return strata.PolicyPermissive
}

// Validate reports every problem at once; each joined error wraps
// strata.ErrInvalidConfig.
func (s Settings) Validate() error {
	var errs []error

	if len(s.Include) == 0 {
		errs = append(errs, fmt.Errorf("include: at least one pattern is required: %w", strata.ErrInvalidConfig))
	}
	if err := scanner.ValidatePatterns(s.Include); err != nil {
		errs = append(errs, fmt.Errorf("include: %v: %w", err, strata.ErrInvalidConfig))
	}
	if err := scanner.ValidatePatterns(s.Exclude); err != nil {
		errs = append(errs, fmt.Errorf("exclude: %v: %w", err, strata.ErrInvalidConfig))
	}
	if s.MaxListed < 1 {
		errs = append(errs, fmt.Errorf("max_listed must be positive, got %d: %w", s.MaxListed, strata.ErrInvalidConfig))
	}

	return errors.Join(errs...)
}
