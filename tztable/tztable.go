// Package tztable resolves a parsed tzdata.File into a Table: zone
// continuation chains keyed by zone name, rule sets keyed by rule name,
// and links keyed by alias. Rule-set references are checked when the
// Table is built; a link's target is checked when Resolve follows it.
package tztable

import (
	"fmt"

	"github.com/zonepile/tzcompile/tzdata"
)

// Table is the cross-referenced result of combining every zone,
// continuation, rule, and link line from one or more tzdata.File values.
type Table struct {
	// Zones maps a zone name to its ordered continuation chain. The first
	// entry in the chain is never a continuation; every later entry is.
	Zones map[string][]tzdata.ZoneLine
	// Rules maps a rule set name to its rule lines, in the order they were
	// declared.
	Rules map[string][]tzdata.RuleLine
	// Links maps an alias name to the zone name it targets. Chains of
	// links are not followed: Resolve rejects a link whose target is not
	// a zone.
	Links map[string]string
	// Leap and Expires are carried through unchanged from leapsecond
	// files, concatenated across every File handed to the builder.
	Leap    []tzdata.LeapLine
	Expires []tzdata.ExpiresLine
}

// Error reports a referential-integrity problem discovered while
// building a Table.
type Error struct {
	Kind ErrorKind
	Name string
	err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Kind, e.Name, e.err)
}

func (e *Error) Unwrap() error { return e.err }

// ErrorKind classifies a Table-building error.
type ErrorKind int

const (
	ErrKindUnknown ErrorKind = iota
	// ErrKindDuplicateZone means the same zone name was declared by more
	// than one non-continuation Zone line.
	ErrKindDuplicateZone
	// ErrKindDuplicateLink means the same alias name was declared by more
	// than one Link line, or collides with a Zone name.
	ErrKindDuplicateLink
	// ErrKindUnknownRuleset means a zone continuation referenced a rule
	// set name that no Rule line ever declares.
	ErrKindUnknownRuleset
	// ErrKindUnexpectedContinuation means a continuation line was found
	// where the builder did not expect one (this should not occur for
	// input that came from tzdata.Parse, which already enforces
	// continuation placement, but the builder checks anyway since a
	// Table can be built from hand-constructed tzdata.File values too).
	ErrKindUnexpectedContinuation
)

func (k ErrorKind) String() string {
	switch k {
	case ErrKindDuplicateZone:
		return "duplicate zone"
	case ErrKindDuplicateLink:
		return "duplicate link"
	case ErrKindUnknownRuleset:
		return "unknown ruleset"
	case ErrKindUnexpectedContinuation:
		return "unexpected continuation"
	default:
		return "unknown"
	}
}

// Builder accumulates zone, rule, and link lines from one or more
// tzdata.File values and produces a Table once every source has been
// added.
type Builder struct {
	zones   map[string][]tzdata.ZoneLine
	rules   map[string][]tzdata.RuleLine
	links   map[string]string
	leap    []tzdata.LeapLine
	expires []tzdata.ExpiresLine
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		zones: make(map[string][]tzdata.ZoneLine),
		rules: make(map[string][]tzdata.RuleLine),
		links: make(map[string]string),
	}
}

// Add merges the lines of f into the builder, returning an error if doing
// so would violate referential integrity (a duplicate zone or link name,
// or a continuation line with no preceding zone to continue).
func (b *Builder) Add(f tzdata.File) error {
	var current string
	for _, z := range f.ZoneLines {
		if !z.Continuation {
			if _, exists := b.zones[z.Name]; exists {
				return &Error{Kind: ErrKindDuplicateZone, Name: z.Name, err: fmt.Errorf("zone already declared")}
			}
			b.zones[z.Name] = []tzdata.ZoneLine{z}
			current = z.Name
			continue
		}
		if current == "" {
			return &Error{Kind: ErrKindUnexpectedContinuation, Name: "", err: fmt.Errorf("continuation line with no preceding zone")}
		}
		b.zones[current] = append(b.zones[current], z)
	}

	for _, r := range f.RuleLines {
		b.rules[r.Name] = append(b.rules[r.Name], r)
	}

	for _, l := range f.LinkLines {
		if _, exists := b.links[l.To]; exists {
			return &Error{Kind: ErrKindDuplicateLink, Name: l.To, err: fmt.Errorf("alias already declared")}
		}
		if _, exists := b.zones[l.To]; exists {
			return &Error{Kind: ErrKindDuplicateLink, Name: l.To, err: fmt.Errorf("alias collides with a zone name")}
		}
		b.links[l.To] = l.From
	}

	b.leap = append(b.leap, f.LeapLines...)
	b.expires = append(b.expires, f.ExpiresLines...)

	return nil
}

// Build validates every zone continuation's rule-set reference against
// the declared rule sets and returns the resulting Table.
func (b *Builder) Build() (Table, error) {
	for name, chain := range b.zones {
		for _, z := range chain {
			if z.Rules.Form != tzdata.ZoneRulesName {
				continue
			}
			if _, ok := b.rules[z.Rules.Name]; !ok {
				return Table{}, &Error{Kind: ErrKindUnknownRuleset, Name: z.Rules.Name, err: fmt.Errorf("referenced by zone %q", name)}
			}
		}
	}

	return Table{
		Zones:   b.zones,
		Rules:   b.rules,
		Links:   b.links,
		Leap:    b.leap,
		Expires: b.expires,
	}, nil
}

// Resolve looks up name and returns the zone name it ultimately targets,
// along with that zone's continuations. If name is itself a zone, it
// resolves to itself with no hop. Otherwise name must be a link, and its
// target must be a declared zone: a link that targets another link is a
// chain, and chains are rejected rather than followed, so an alias
// always names a real zoneset after exactly one hop.
func (t Table) Resolve(name string) (string, []tzdata.ZoneLine, error) {
	if chain, ok := t.Zones[name]; ok {
		return name, chain, nil
	}
	target, ok := t.Links[name]
	if !ok {
		return "", nil, fmt.Errorf("no zone or link named %q", name)
	}
	chain, ok := t.Zones[target]
	if !ok {
		return "", nil, fmt.Errorf("link %q targets %q, which is itself a link, not a zone: alias chains are not allowed", name, target)
	}
	return target, chain, nil
}

// ZoneNames returns every name a caller can ask Resolve to expand: every
// declared zone plus every link alias.
func (t Table) ZoneNames() []string {
	names := make([]string, 0, len(t.Zones)+len(t.Links))
	for name := range t.Zones {
		names = append(names, name)
	}
	for name := range t.Links {
		names = append(names, name)
	}
	return names
}
