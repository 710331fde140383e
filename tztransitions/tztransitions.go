// Package tztransitions expands a resolved zone (its ordered chain of
// continuations together with the rule sets they reference) into a
// FixedTimespanSet: a sorted sequence of the instants at which the
// zone's UTC offset, DST offset, or abbreviation changes.
package tztransitions

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/zonepile/tzcompile/calendar"
	"github.com/zonepile/tzcompile/tzdata"
)

// FixedTimespan is the offset and abbreviation in effect during one
// contiguous span of time.
type FixedTimespan struct {
	UTCOffset time.Duration
	DSTOffset time.Duration
	Name      string
}

// Transition marks the instant, as a Unix timestamp, at which the active
// FixedTimespan changes to Span.
type Transition struct {
	At   int64
	Span FixedTimespan
}

// FixedTimespanSet is the full description of a zone's offset history:
// First applies from the indefinite past up to Rest[0].At, and each
// subsequent entry in Rest applies from its At up to the next one's (or
// forever, for the last entry).
type FixedTimespanSet struct {
	First FixedTimespan
	Rest  []Transition
}

// Expand walks chain (a zone's continuations, in order, as produced by
// tztable.Table.Resolve) and the rule sets it references, and returns the
// FixedTimespanSet covering [fromYear, toYear]. Rule occurrences outside
// that window are not expanded; a chain whose last continuation has no
// UNTIL is assumed to continue applying its final rule set forever, so
// toYear should be chosen generously (1800-2099 comfortably brackets the
// real-world tzdata corpus).
func Expand(chain []tzdata.ZoneLine, rules map[string][]tzdata.RuleLine, fromYear, toYear int) (FixedTimespanSet, error) {
	if len(chain) == 0 {
		return FixedTimespanSet{}, fmt.Errorf("tztransitions: empty zone continuation chain")
	}

	first := baseSpan(chain[0])

	var all []Transition
	windowStart := int64(math.MinInt64)
	for i, z := range chain {
		windowEnd := int64(math.MaxInt64)
		if z.Until.Defined {
			windowEnd = untilInstant(z, fromYear, toYear)
		}

		segment, err := expandContinuation(z, rules, windowStart, windowEnd, fromYear, toYear, i == 0)
		if err != nil {
			return FixedTimespanSet{}, fmt.Errorf("continuation %d: %w", i, err)
		}
		all = append(all, segment...)
		windowStart = windowEnd
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].At < all[j].At })

	return FixedTimespanSet{First: first, Rest: minimise(first, all)}, nil
}

// baseSpan returns the FixedTimespan a continuation is in before any of
// its named rules first take effect: standard time, no DST, using the
// format's standard-time rendering.
func baseSpan(z tzdata.ZoneLine) FixedTimespan {
	switch z.Rules.Form {
	case tzdata.ZoneRulesStandard:
		return FixedTimespan{UTCOffset: z.Offset, Name: formatName(z.Format, "", false, z.Offset)}
	case tzdata.ZoneRulesTime:
		dst := z.Rules.Time.Form == tzdata.DaylightSavingTime
		off := z.Offset + z.Rules.Time.Duration
		d := time.Duration(0)
		if dst {
			d = z.Rules.Time.Duration
		}
		return FixedTimespan{UTCOffset: off, DSTOffset: d, Name: formatName(z.Format, "", dst, off)}
	default: // ZoneRulesName: standard time applies until the first rule transition.
		return FixedTimespan{UTCOffset: z.Offset, Name: formatName(z.Format, "", false, z.Offset)}
	}
}

// expandContinuation produces every transition that falls strictly within
// [windowStart, windowEnd) for one continuation, including the boundary
// transition into the continuation's base state (skipped for the very
// first continuation of a zone, since that's covered by First).
func expandContinuation(z tzdata.ZoneLine, rules map[string][]tzdata.RuleLine, windowStart, windowEnd int64, fromYear, toYear int, isFirst bool) ([]Transition, error) {
	if z.Rules.Form != tzdata.ZoneRulesName {
		var out []Transition
		if !isFirst {
			out = append(out, Transition{At: windowStart, Span: baseSpan(z)})
		}
		return out, nil
	}

	ruleset, ok := rules[z.Rules.Name]
	if !ok {
		return nil, fmt.Errorf("unknown rule set %q", z.Rules.Name)
	}

	candidates := expandRuleOccurrences(ruleset, fromYear, toYear)
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].nominal < candidates[j].nominal })

	// Latch the ruleset's DST state by walking every occurrence strictly
	// before windowStart without emitting a transition for it. A
	// non-first continuation's header span must reflect whatever state
	// this latching settles on rather than always assuming standard
	// time: common for Southern Hemisphere zones whose DST season
	// straddles the continuation boundary.
	activeDst := time.Duration(0)
	activeIsDST := false
	activeLetter := ""
	for _, c := range candidates {
		at := ruleInstant(c.rule, c.nominal, z.Offset, activeDst)
		if at >= windowStart {
			break
		}
		activeDst = c.rule.Save.Duration
		activeIsDST = c.rule.Save.Form == tzdata.DaylightSavingTime
		activeLetter = c.rule.Letter
	}

	var out []Transition
	if !isFirst {
		out = append(out, Transition{
			At: windowStart,
			Span: FixedTimespan{
				UTCOffset: z.Offset + activeDst,
				DSTOffset: activeDst,
				Name:      formatName(z.Format, activeLetter, activeIsDST, z.Offset+activeDst),
			},
		})
	}

	for _, c := range candidates {
		at := ruleInstant(c.rule, c.nominal, z.Offset, activeDst)
		if at < windowStart || at >= windowEnd {
			continue
		}
		dst := c.rule.Save.Duration
		isDST := c.rule.Save.Form == tzdata.DaylightSavingTime
		span := FixedTimespan{
			UTCOffset: z.Offset + dst,
			DSTOffset: dst,
			Name:      formatName(z.Format, c.rule.Letter, isDST, z.Offset+dst),
		}
		out = append(out, Transition{At: at, Span: span})
		activeDst = dst
		activeIsDST = isDST
		activeLetter = c.rule.Letter
	}

	return out, nil
}

// ruleCandidate is one (rule, year) occurrence with a nominal ordering
// key computed by treating the rule's wall-clock date and time as if it
// were already UTC. Offsets never change the ordering of rule
// occurrences within a single zone's ruleset in any real-world tzdata, so
// this key is sufficient to sort candidates before resolving each one's
// true UTC instant in chronological (offset-threaded) order.
type ruleCandidate struct {
	rule    tzdata.RuleLine
	nominal int64
}

func expandRuleOccurrences(ruleset []tzdata.RuleLine, fromYear, toYear int) []ruleCandidate {
	var out []ruleCandidate
	for _, r := range ruleset {
		from, to := clampYear(int(r.From), fromYear), clampYear(int(r.To), toYear)
		if from < fromYear {
			from = fromYear
		}
		if to > toYear {
			to = toYear
		}
		for year := from; year <= to; year++ {
			y, m, d := dayOfMonth(year, r.In, r.On)
			hh, mm, ss := splitDuration(r.At.Duration)
			nominal := calendar.ToTimestamp(y, m, d, hh, mm, ss)
			out = append(out, ruleCandidate{rule: r, nominal: nominal})
		}
	}
	return out
}

func ruleInstant(r tzdata.RuleLine, nominal int64, stdOffset, activeDst time.Duration) int64 {
	switch r.At.Form {
	case tzdata.StandardTime:
		return nominal - int64(stdOffset/time.Second)
	case tzdata.UniversalTime:
		return nominal
	default: // WallClock
		return nominal - int64((stdOffset+activeDst)/time.Second)
	}
}

// untilInstant resolves a continuation's UNTIL column to an absolute UTC
// instant, filling unspecified trailing parts with their earliest
// possible values per spec, and interpreting the reference frame using
// this continuation's own standard offset (the DST in effect, if any,
// just before the transition is not modeled here: tzdata authors
// overwhelmingly write UNTIL columns in a reference frame - usually wall
// clock at year/month granularity - where that distinction is moot).
func untilInstant(z tzdata.ZoneLine, fromYear, toYear int) int64 {
	u := z.Until

	month := time.January
	if u.Parts.Has(tzdata.UntilMonth) {
		month = u.Month
	}

	year, m, day := u.Year, month, 1
	if u.Parts.Has(tzdata.UntilDay) {
		year, m, day = dayOfMonth(u.Year, month, u.Day)
	}

	var tod time.Duration
	form := tzdata.WallClock
	if u.Parts.Has(tzdata.UntilTime) {
		tod = u.Time.Duration
		form = u.Time.Form
	}

	hh, mm, ss := splitDuration(tod)
	nominal := calendar.ToTimestamp(year, m, day, hh, mm, ss)

	switch form {
	case tzdata.StandardTime:
		return nominal - int64(z.Offset/time.Second)
	case tzdata.UniversalTime:
		return nominal
	default:
		return nominal - int64(z.Offset/time.Second)
	}
}

func dayOfMonth(year int, month time.Month, d tzdata.Day) (int, time.Month, int) {
	switch d.Form {
	case tzdata.DayFormDayNum:
		return year, month, d.Num
	case tzdata.DayFormLast:
		return year, month, calendar.LastWeekdayOfMonth(year, month, d.Day)
	case tzdata.DayFormAfter:
		y, m, day := calendar.NextWeekday(year, month, d.Num, d.Day)
		return y, m, day
	case tzdata.DayFormBefore:
		y, m, day := calendar.PrevWeekday(year, month, d.Num, d.Day)
		return y, m, day
	default:
		panic(fmt.Sprintf("tztransitions: invalid day form %v", d.Form))
	}
}

func splitDuration(d time.Duration) (hh, mm, ss int) {
	if d < 0 {
		d = 0
	}
	hh = int(d / time.Hour)
	d -= time.Duration(hh) * time.Hour
	mm = int(d / time.Minute)
	d -= time.Duration(mm) * time.Minute
	ss = int(d / time.Second)
	return hh, mm, ss
}

func clampYear(y, bound int) int {
	if y == tzdata.MinYear || y == tzdata.MaxYear {
		return bound
	}
	return y
}

// formatName renders a zone FORMAT column given the variable-part letter
// (empty for standard time, or "-" already translated to "" by the
// parser), whether DST is in effect, and the numeric UTC offset for %z
// substitution.
func formatName(format, letter string, isDST bool, utcOffset time.Duration) string {
	switch {
	case strings.Contains(format, "%s"):
		return strings.Replace(format, "%s", letter, 1)
	case strings.Contains(format, "%z"):
		return strings.Replace(format, "%z", formatNumericOffset(utcOffset), 1)
	case strings.Contains(format, "/"):
		parts := strings.SplitN(format, "/", 2)
		if isDST {
			return parts[1]
		}
		return parts[0]
	default:
		return format
	}
}

// formatNumericOffset renders utcOffset in the shortest lossless ±hh,
// ±hhmm, or ±hhmmss form.
func formatNumericOffset(utcOffset time.Duration) string {
	sign := "+"
	d := utcOffset
	if d < 0 {
		sign = "-"
		d = -d
	}
	h := int(d / time.Hour)
	d -= time.Duration(h) * time.Hour
	m := int(d / time.Minute)
	d -= time.Duration(m) * time.Minute
	s := int(d / time.Second)

	if s != 0 {
		return fmt.Sprintf("%s%02d%02d%02d", sign, h, m, s)
	}
	if m != 0 {
		return fmt.Sprintf("%s%02d%02d", sign, h, m)
	}
	return fmt.Sprintf("%s%02d", sign, h)
}

// totalOffset is the sum of standard and DST offset, in seconds: the full
// local-time adjustment in effect during this timespan.
func (f FixedTimespan) totalOffset() int64 {
	return int64((f.UTCOffset + f.DSTOffset) / time.Second)
}

// minimise applies the two-step reduction that turns a raw, chronologically
// sorted candidate list into a zone's final transition list:
//
//   - Dominated merge: a candidate whose local wall-clock instant (its At
//     plus the offset of the transition just ahead of it) falls no later
//     than the previous kept transition's own local wall-clock instant
//     (computed the same way, one step further back) means that previous
//     transition never actually took effect in local time. It is
//     overwritten by the candidate's span in place rather than kept.
//   - Equality merge: a candidate whose span equals the currently active
//     one changes nothing and is dropped.
//
// Ported from the optimise pass in the reference implementation this
// package is based on.
func minimise(first FixedTimespan, all []Transition) []Transition {
	rest := make([]Transition, len(all))
	copy(rest, all)

	toI := 0
	for fromI := 0; fromI < len(rest); fromI++ {
		if toI > 1 {
			from := rest[fromI].At
			to := rest[toI-1].At
			if from+rest[toI-1].Span.totalOffset() <= to+rest[toI-2].Span.totalOffset() {
				rest[toI-1].Span = rest[fromI].Span
				continue
			}
		}

		if toI == 0 || rest[toI-1].Span != rest[fromI].Span {
			rest[toI] = rest[fromI]
			toI++
		}
	}
	rest = rest[:toI]

	if len(rest) > 0 && first == rest[0].Span {
		rest = rest[1:]
	}
	return rest
}
