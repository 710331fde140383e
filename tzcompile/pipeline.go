// Package tzcompile drives the full pipeline from raw tzdata source
// files to an expanded, per-zone offset history: parse, build the
// zone/rule table, derive the area hierarchy, and expand every zone
// name's continuation chain into a FixedTimespanSet.
package tzcompile

import (
	"bytes"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/zonepile/tzcompile/tzdata"
	"github.com/zonepile/tzcompile/tzsource"
	"github.com/zonepile/tzcompile/tzstructure"
	"github.com/zonepile/tzcompile/tztable"
	"github.com/zonepile/tzcompile/tztransitions"
)

// Options controls one Compile run.
type Options struct {
	// FromYear and ToYear bound the window rule occurrences are expanded
	// over; 1800-2099 comfortably brackets the real-world tzdata corpus.
	FromYear, ToYear int

	// Workers is the number of zones expanded concurrently. Zero or
	// negative means runtime.GOMAXPROCS(0).
	Workers int

	// ZoneFilter, if non-nil, restricts which zones are compiled. A zone
	// or alias is kept if the predicate matches it directly, or if it is
	// linked to another kept name (one hop, in either direction). "GMT"
	// and "UTC" are always kept regardless of the predicate.
	ZoneFilter func(name string) bool
}

// Result is everything a code generator or TZif writer needs for one
// compiled tzdata release.
type Result struct {
	Version   string
	Table     tztable.Table
	Structure []tzstructure.Entry
	Zones     map[string]tztransitions.FixedTimespanSet
}

// Compile parses every data file in release, builds the zone/rule table,
// derives the area hierarchy, and expands every resolvable zone or link
// name into its FixedTimespanSet, fanning the expansion step out across
// a bounded worker pool. Parsing is line-local: a malformed line in a
// data file is recorded in the returned Diagnostics (keyed "parse:
// <file>") and skipped, not fatal, so one bad line never costs the run
// the rest of that file's zones, nor any other file's. A zone that fails
// to resolve or expand is likewise recorded rather than aborting the
// run. Only a failure that prevents a table from being built at all (a
// dangling rule reference, a duplicate zone or link, a name nested
// deeper than Area/Location/Sub) is returned as the error result.
func Compile(release *tzsource.Release, opts Options) (Result, *Diagnostics, error) {
	diag := &Diagnostics{}

	table, err := buildTable(release, diag)
	if err != nil {
		return Result{}, diag, err
	}

	if opts.ZoneFilter != nil {
		table = filterTable(table, opts.ZoneFilter)
	}

	structure, err := tzstructure.Build(table)
	if err != nil {
		return Result{}, diag, fmt.Errorf("build structure: %w", err)
	}

	names := table.ZoneNames()
	sort.Strings(names)

	zones := expandAll(table, names, opts, diag)

	return Result{
		Version:   release.Version,
		Table:     table,
		Structure: structure,
		Zones:     zones,
	}, diag, nil
}

func buildTable(release *tzsource.Release, diag *Diagnostics) (tztable.Table, error) {
	builder := tztable.NewBuilder()

	// Iterate file names in sorted order so that a duplicate-definition
	// error is reported deterministically across runs.
	fileNames := make([]string, 0, len(release.DataFiles))
	for name := range release.DataFiles {
		fileNames = append(fileNames, name)
	}
	sort.Strings(fileNames)

	for _, name := range fileNames {
		f, err := tzdata.Parse(bytes.NewReader(release.DataFiles[name]))
		if err != nil {
			diag.add("parse:"+name, err)
		}
		if err := builder.Add(f); err != nil {
			return tztable.Table{}, fmt.Errorf("add %q: %w", name, err)
		}
	}

	table, err := builder.Build()
	if err != nil {
		return tztable.Table{}, fmt.Errorf("build table: %w", err)
	}
	return table, nil
}

type zoneResult struct {
	name string
	set  tztransitions.FixedTimespanSet
	err  error
}

func expandAll(table tztable.Table, names []string, opts Options, diag *Diagnostics) map[string]tztransitions.FixedTimespanSet {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(names) {
		workers = len(names)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan string)
	results := make(chan zoneResult, len(names))

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for name := range jobs {
				results <- expandOne(table, name, opts)
			}
		}()
	}

	go func() {
		for _, name := range names {
			jobs <- name
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	zones := make(map[string]tztransitions.FixedTimespanSet, len(names))
	for r := range results {
		if r.err != nil {
			diag.add(r.name, r.err)
			continue
		}
		zones[r.name] = r.set
	}
	return zones
}

// alwaysKeptZones are retained under any filter, since they serve as the
// canonical fallback zone for "no local timezone known" callers.
var alwaysKeptZones = map[string]bool{"GMT": true, "UTC": true}

// filterTable restricts table to the zones and links that match, directly
// or transitively through one link hop, the given predicate, matching the
// zone filter facility's alias-closure rule: if either side of a link
// matches, both names are kept.
func filterTable(table tztable.Table, match func(string) bool) tztable.Table {
	keep := make(map[string]bool, len(table.Zones)+len(table.Links))
	for name := range table.Zones {
		if alwaysKeptZones[name] || match(name) {
			keep[name] = true
		}
	}
	for alias, target := range table.Links {
		if alwaysKeptZones[alias] || alwaysKeptZones[target] || match(alias) || match(target) {
			keep[alias] = true
			keep[target] = true
		}
	}

	zones := make(map[string][]tzdata.ZoneLine, len(keep))
	for name, chain := range table.Zones {
		if keep[name] {
			zones[name] = chain
		}
	}
	links := make(map[string]string, len(keep))
	for alias, target := range table.Links {
		if keep[alias] {
			links[alias] = target
		}
	}

	return tztable.Table{
		Zones:   zones,
		Rules:   table.Rules,
		Links:   links,
		Leap:    table.Leap,
		Expires: table.Expires,
	}
}

func expandOne(table tztable.Table, name string, opts Options) zoneResult {
	_, chain, err := table.Resolve(name)
	if err != nil {
		return zoneResult{name: name, err: fmt.Errorf("resolve: %w", err)}
	}
	set, err := tztransitions.Expand(chain, table.Rules, opts.FromYear, opts.ToYear)
	if err != nil {
		return zoneResult{name: name, err: fmt.Errorf("expand: %w", err)}
	}
	return zoneResult{name: name, set: set}
}
