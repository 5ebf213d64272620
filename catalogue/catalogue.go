package catalogue

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/solveloop/solveloop/diag"
	"github.com/solveloop/solveloop/method"
	"github.com/solveloop/solveloop/solveerr"
)

// Entry is one {name, origin} pair in a Catalogue (spec.md §3).
type Entry struct {
	Name   string
	Origin string
}

// Catalogue is an ordered, immutable-after-Populate sequence of Entry,
// each backed by a Constructor capable of instantiating that entry's
// method for a chosen dimensionality.
type Catalogue struct {
	entries []Entry
	ctors   []Constructor
}

// manifest is the on-disk shape of catalogue.yaml.
type manifest struct {
	Methods []struct {
		Name   string `yaml:"name"`
		Origin string `yaml:"origin"`
	} `yaml:"methods"`
}

// maxNameLength bounds a catalogue entry name, per spec.md §3 ("name is
// a short method identifier, bounded length, <= 63 characters").
const maxNameLength = 63

// Populate enumerates method providers for a Catalogue.
//
// If root is empty, the Catalogue is built directly from every
// statically linked provider registered via Register, in registration
// order.
//
// If root is non-empty, it must name either a catalogue.yaml file or a
// directory containing one; each manifest entry is resolved against the
// static registry by name. An entry whose name has no statically linked
// provider is skipped, with a warning logged at debug verbosity.
//
// Populate fails only when root is non-empty and does not resolve to a
// readable manifest (solveerr.Resource).
func Populate(root string, logger *diag.Logger) (*Catalogue, error) {
	if logger == nil {
		logger = diag.NewDefault()
	}

	if root == "" {
		cat := &Catalogue{}
		for _, p := range staticProviders {
			cat.entries = append(cat.entries, Entry{Name: p.name, Origin: p.origin})
			cat.ctors = append(cat.ctors, p.ctor)
		}

		return cat, nil
	}

	path := root
	info, err := os.Stat(root)
	if err != nil {
		return nil, solveerr.Wrap(solveerr.Resource, "catalogue", "invalid catalogue root", err)
	}
	if info.IsDir() {
		path = filepath.Join(root, "catalogue.yaml")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, solveerr.Wrap(solveerr.Resource, "catalogue", "cannot read manifest", err)
	}

	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, solveerr.Wrap(solveerr.Resource, "catalogue", "cannot parse manifest", err)
	}

	cat := &Catalogue{}
	for _, me := range m.Methods {
		if len(me.Name) > maxNameLength {
			logger.Warnf("catalogue", "skipping manifest entry %q: name exceeds %d characters", me.Name, maxNameLength)
			continue
		}
		ctor, _, ok := lookupStatic(me.Name)
		if !ok {
			logger.Warnf("catalogue", "skipping manifest entry %q: no statically linked provider", me.Name)
			continue
		}
		origin := me.Origin
		if origin == "" {
			origin = "builtin:" + me.Name
		}
		cat.entries = append(cat.entries, Entry{Name: me.Name, Origin: origin})
		cat.ctors = append(cat.ctors, ctor)
	}

	return cat, nil
}

// Entries returns the Catalogue's entries in population order. The
// returned slice must not be mutated by the caller.
func (c *Catalogue) Entries() []Entry {
	return c.entries
}

// Select scans the Catalogue in order for the first entry named name,
// attempting to instantiate it for dimensionality d. If instantiation
// fails with a recoverable error (solveerr.Unsupported or
// solveerr.InvalidArgument — the method declined this d), Select
// continues scanning for another entry of the same name. d < 1 fails
// immediately with solveerr.InvalidArgument.
func (c *Catalogue) Select(name string, d int, env Env) (method.Capability, error) {
	if d < 1 {
		return nil, solveerr.New(solveerr.InvalidArgument, "catalogue", fmt.Sprintf("dimensionality must be >= 1, got %d", d))
	}

	var lastErr error
	matched := false
	for i, e := range c.entries {
		if e.Name != name {
			continue
		}
		matched = true
		inst, err := c.ctors[i](d, env)
		if err == nil {
			return inst, nil
		}
		lastErr = err
		if solveerr.Is(err, solveerr.Unsupported) || solveerr.Is(err, solveerr.InvalidArgument) {
			continue
		}

		return nil, err
	}

	if !matched {
		return nil, solveerr.New(solveerr.Resource, "catalogue", fmt.Sprintf("no provider named %q", name))
	}

	return nil, solveerr.Wrap(solveerr.Resource, "catalogue", fmt.Sprintf("no initializable provider named %q for d=%d", name, d), lastErr)
}
