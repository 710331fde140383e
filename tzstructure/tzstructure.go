// Package tzstructure derives the Area/Location[/Sub] hierarchy that the
// tzdata naming convention implies (e.g. "America/Argentina/Buenos_Aires"
// is the zone "Buenos_Aires" inside submodule "Argentina" inside area
// "America"), so that a code generator can lay out one file or directory
// per area without re-deriving the hierarchy itself.
package tzstructure

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zonepile/tzcompile/tztable"
)

// ChildKind distinguishes a Submodule entry (itself containing further
// children) from a TimeZone leaf.
type ChildKind int

const (
	// Submodule is an intermediate entry: a directory-like grouping that
	// itself has children registered under a deeper key. It sorts before
	// TimeZone so that a directory is created before the files in it.
	Submodule ChildKind = iota
	// TimeZone is a leaf entry: a concrete zone or link name.
	TimeZone
)

// Child is one entry under a parent key in the Structure. Submodule
// children sort before TimeZone children, matching the requirement that
// a directory must be created before the files inside it.
type Child struct {
	Kind ChildKind
	Name string
}

// Entry pairs a parent key with its children, already sorted so that
// Submodule children come first.
type Entry struct {
	Name     string
	Children []Child
}

// Build derives the structure of every zone and link name in t. Entries
// are returned in an order where a parent key always precedes any key
// that is itself one of that parent's Submodule children (e.g. "America"
// is returned before "America/Argentina"). A name with more than three
// Area/Location/Sub segments (e.g. "A/B/C/D") is rejected: the naming
// convention this package derives structure from does not nest any
// deeper than that.
func Build(t tztable.Table) ([]Entry, error) {
	mappings := make(map[string]map[Child]bool)

	register := func(name string) error {
		if strings.Count(name, "/") > 2 {
			return fmt.Errorf("tzstructure: %q has more than three Area/Location/Sub segments", name)
		}

		i := strings.LastIndex(name, "/")
		if i < 0 {
			return nil // top-level name with no parent, e.g. "UTC"
		}
		parent, leaf := name[:i], name[i+1:]
		addChild(mappings, parent, Child{Kind: TimeZone, Name: leaf})

		if j := strings.LastIndex(parent, "/"); j >= 0 {
			grandparent, sub := parent[:j], parent[j+1:]
			addChild(mappings, grandparent, Child{Kind: Submodule, Name: sub})
		}
		return nil
	}

	for name := range t.Zones {
		if err := register(name); err != nil {
			return nil, err
		}
	}
	for name := range t.Links {
		if err := register(name); err != nil {
			return nil, err
		}
	}

	keys := make([]string, 0, len(mappings))
	for k := range mappings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		childSet := mappings[k]
		children := make([]Child, 0, len(childSet))
		for c := range childSet {
			children = append(children, c)
		}
		sort.Slice(children, func(i, j int) bool {
			if children[i].Kind != children[j].Kind {
				return children[i].Kind < children[j].Kind
			}
			return children[i].Name < children[j].Name
		})
		entries = append(entries, Entry{Name: k, Children: children})
	}
	return entries, nil
}

func addChild(m map[string]map[Child]bool, parent string, c Child) {
	if m[parent] == nil {
		m[parent] = make(map[Child]bool)
	}
	m[parent][c] = true
}
