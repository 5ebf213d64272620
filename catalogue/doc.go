// Package catalogue implements the method catalogue and loader of
// spec.md §4.1 (component C): an ordered sequence of {name, origin}
// entries populated once at session open, and a selection operation
// that instantiates the first matching, initializable entry for a
// chosen name and dimensionality.
//
// The source this spec distills from loads providers from shared
// objects discovered under a filesystem root; that loader is explicitly
// out of scope (spec.md §1, "the shared-object loader itself"). Dynamic
// `plugin`-package loading is likewise excluded by SPEC_FULL.md's
// Non-goals. Instead, providers are statically linked: every methods/*
// package registers its constructor in an init() function against the
// package-level registry in registry.go (Register), which is always
// consulted.
//
// Populate additionally accepts an optional manifest root: a directory
// containing a catalogue.yaml file (or a direct path to one), listing
// {name, origin} pairs with gopkg.in/yaml.v3. A manifest lets a caller
// curate which of the statically linked providers appear in a given
// catalogue, and under what origin label, without needing dynamic
// loading — this is the "implementation-defined locator" spec.md leaves
// open, resolved the way a Go program actually can.
package catalogue
