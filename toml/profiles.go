// Package toml loads named render profiles from TOML files.
//
// A profile file holds one table per profile:
//
//	[profiles.headings]
//	extends = "clean"
//	recursion_limit = 64
//
//	[profiles.headings.newlines]
//	h2 = 3
//
// Fields left unset are inherited from the extended profile, or from the
// defaults when a profile extends nothing. Newline counts are merged tag by
// tag over the inherited ones.
package toml

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/fwojciec/corpusmaker"
	"github.com/pelletier/go-toml/v2"
)

type profileFile struct {
	Profiles map[string]profile `toml:"profiles"`
}

type profile struct {
	Extends              string         `toml:"extends"`
	DropListsAndTables   *bool          `toml:"drop_lists_and_tables"`
	DropRefTags          *bool          `toml:"drop_ref_tags"`
	InterwikiHostPattern *string        `toml:"interwiki_host_pattern"`
	RecursionLimit       *int           `toml:"recursion_limit"`
	Newlines             map[string]int `toml:"newlines"`
}

// LoadProfiles reads the profile file at path and returns the built-in
// profiles merged with the ones it defines.
func LoadProfiles(path string) (corpusmaker.Profiles, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, corpusmaker.Errorf(corpusmaker.ENOTFOUND, "profile file %q not found", path)
		}
		return nil, err
	}
	defer f.Close()

	profiles, err := ReadProfiles(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return profiles, nil
}

// ReadProfiles decodes a profile file from r and returns the built-in
// profiles merged with the ones it defines. A file profile named after a
// built-in one replaces it.
// Returns EINVALID for unknown keys, bad patterns, extension cycles or
// profiles that fail validation.
func ReadProfiles(r io.Reader) (corpusmaker.Profiles, error) {
	var file profileFile
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, decodeError(err)
	}

	res := &resolver{
		defined:  file.Profiles,
		builtin:  corpusmaker.BuiltinProfiles(),
		resolved: make(corpusmaker.Profiles, len(file.Profiles)),
		visiting: make(map[string]bool),
	}

	names := make([]string, 0, len(file.Profiles))
	for name := range file.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	profiles := corpusmaker.BuiltinProfiles()
	for _, name := range names {
		cfg, err := res.resolve(name)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, corpusmaker.Errorf(corpusmaker.EINVALID, "profile %q: %s", name, corpusmaker.ErrorMessage(err))
		}
		profiles[name] = cfg
	}
	return profiles, nil
}

func decodeError(err error) error {
	var strict *toml.StrictMissingError
	if errors.As(err, &strict) {
		keys := make([]string, 0, len(strict.Errors))
		for _, e := range strict.Errors {
			keys = append(keys, strings.Join(e.Key(), "."))
		}
		return corpusmaker.Errorf(corpusmaker.EINVALID, "unknown profile keys: %s", strings.Join(keys, ", "))
	}
	var decode *toml.DecodeError
	if errors.As(err, &decode) {
		row, col := decode.Position()
		return corpusmaker.Errorf(corpusmaker.EINVALID, "invalid profile file at line %d column %d: %s", row, col, decode.Error())
	}
	return corpusmaker.Errorf(corpusmaker.EINVALID, "invalid profile file: %v", err)
}

type resolver struct {
	defined  map[string]profile
	builtin  corpusmaker.Profiles
	resolved corpusmaker.Profiles
	visiting map[string]bool
}

func (r *resolver) resolve(name string) (*corpusmaker.RenderConfig, error) {
	if cfg, ok := r.resolved[name]; ok {
		return cfg.Clone(), nil
	}
	p, ok := r.defined[name]
	if !ok {
		cfg, err := r.builtin.Get(name)
		if err != nil {
			return nil, err
		}
		return cfg.Clone(), nil
	}
	if r.visiting[name] {
		return nil, corpusmaker.Errorf(corpusmaker.EINVALID, "profile %q extends itself", name)
	}
	r.visiting[name] = true
	defer delete(r.visiting, name)

	base := defaults()
	if p.Extends != "" {
		var err error
		if base, err = r.resolve(p.Extends); err != nil {
			if corpusmaker.ErrorCode(err) == corpusmaker.ENOTFOUND {
				return nil, corpusmaker.Errorf(corpusmaker.EINVALID, "profile %q extends unknown profile %q", name, p.Extends)
			}
			return nil, err
		}
	}

	cfg, err := p.apply(base)
	if err != nil {
		return nil, corpusmaker.Errorf(corpusmaker.EINVALID, "profile %q: %s", name, corpusmaker.ErrorMessage(err))
	}
	r.resolved[name] = cfg
	return cfg.Clone(), nil
}

func defaults() *corpusmaker.RenderConfig {
	return &corpusmaker.RenderConfig{
		NewlinesByTag:        map[string]int{},
		InterwikiHostPattern: corpusmaker.DefaultInterwikiPattern,
		RecursionLimit:       corpusmaker.DefaultRecursionLimit,
	}
}

// apply overlays the fields set in p onto base.
func (p profile) apply(base *corpusmaker.RenderConfig) (*corpusmaker.RenderConfig, error) {
	cfg := base
	if p.DropListsAndTables != nil {
		cfg.DropListsAndTables = *p.DropListsAndTables
	}
	if p.DropRefTags != nil {
		cfg.DropRefTags = *p.DropRefTags
	}
	if p.RecursionLimit != nil {
		cfg.RecursionLimit = *p.RecursionLimit
	}
	if p.InterwikiHostPattern != nil {
		if *p.InterwikiHostPattern == "" {
			cfg.InterwikiHostPattern = nil
		} else {
			re, err := regexp.Compile(*p.InterwikiHostPattern)
			if err != nil {
				return nil, corpusmaker.Errorf(corpusmaker.EINVALID, "invalid interwiki host pattern: %v", err)
			}
			cfg.InterwikiHostPattern = re
		}
	}
	for tag, n := range p.Newlines {
		cfg.NewlinesByTag[tag] = n
	}
	return cfg, nil
}
