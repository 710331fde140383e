package tzif

import (
	"time"

	"github.com/zonepile/tzcompile/tztransitions"
)

// FromFixedTimespanSet builds a TZif File from a FixedTimespanSet
// produced by tztransitions.Expand, plus the leap-second table (leap
// history, leap corrections applied since 1972 expressed as whole-second
// deltas from zero), and the POSIX TZ footer string to use for times
// beyond the last transition. The result is always written as a V2 file
// with a V1 block present, since the overwhelming majority of real tzdb
// distributions do the same for backward compatibility with 32-bit
// readers.
func FromFixedTimespanSet(set tztransitions.FixedTimespanSet, leaps []LeapRecord, posixTZ string) File {
	types, typeIdx := localTimeTypes(set)
	designations, offsets := designationTable(types)

	v1times := make([]int32, 0, len(set.Rest))
	v1types := make([]uint8, 0, len(set.Rest))
	v2times := make([]int64, 0, len(set.Rest))
	v2types := make([]uint8, 0, len(set.Rest))
	for _, tr := range set.Rest {
		idx := typeIdx[tr.Span]
		if tr.At >= minV1Time && tr.At <= maxV1Time {
			v1times = append(v1times, int32(tr.At))
			v1types = append(v1types, idx)
		}
		v2times = append(v2times, tr.At)
		v2types = append(v2types, idx)
	}

	v1leap := make([]V1LeapSecondRecord, len(leaps))
	v2leap := make([]V2LeapSecondRecord, len(leaps))
	for i, l := range leaps {
		v1leap[i] = V1LeapSecondRecord{Occur: int32(l.Occur), Corr: l.Corr}
		v2leap[i] = V2LeapSecondRecord{Occur: l.Occur, Corr: l.Corr}
	}

	records := make([]LocalTimeTypeRecord, len(types))
	for i, ts := range types {
		records[i] = LocalTimeTypeRecord{
			Utoff: int32(ts.UTCOffset / time.Second),
			Dst:   ts.DSTOffset != 0,
			Idx:   offsets[i],
		}
	}

	v1 := V1DataBlock{
		TransitionTimes:     v1times,
		TransitionTypes:     v1types,
		LocalTimeTypeRecord: records,
		TimeZoneDesignation: designations,
		LeapSecondRecords:   v1leap,
	}
	v2 := V2DataBlock{
		TransitionTimes:     v2times,
		TransitionTypes:     v2types,
		LocalTimeTypeRecord: records,
		TimeZoneDesignation: designations,
		LeapSecondRecords:   v2leap,
	}

	v1h := Header{Version: V1, Typecnt: uint32(len(records)), Charcnt: uint32(len(designations)), Timecnt: uint32(len(v1times)), Leapcnt: uint32(len(v1leap))}
	v2h := Header{Version: V2, Typecnt: uint32(len(records)), Charcnt: uint32(len(designations)), Timecnt: uint32(len(v2times)), Leapcnt: uint32(len(v2leap))}

	return File{
		Version:  V2,
		V1Header: v1h,
		V1Data:   v1,
		V2Header: v2h,
		V2Data:   v2,
		V2Footer: Footer{TZString: []byte(posixTZ)},
	}
}

// LeapRecord is one leap-second occurrence, in the (occurrence instant,
// cumulative correction) form TZif stores them in, independent of the
// rolling/stationary distinction tzdata's own leap-second lines use.
type LeapRecord struct {
	Occur int64
	Corr  int32
}

const (
	minV1Time = -1 << 31
	maxV1Time = 1<<31 - 1
)

// localTimeTypes deduplicates the spans in a FixedTimespanSet down to
// their distinct (UTCOffset, DSTOffset, Name) local time types, in first-seen
// order starting with First, and returns the index each span maps to.
func localTimeTypes(set tztransitions.FixedTimespanSet) ([]tztransitions.FixedTimespan, map[tztransitions.FixedTimespan]uint8) {
	seen := make(map[tztransitions.FixedTimespan]uint8)
	var types []tztransitions.FixedTimespan

	add := func(ts tztransitions.FixedTimespan) {
		if _, ok := seen[ts]; ok {
			return
		}
		seen[ts] = uint8(len(types))
		types = append(types, ts)
	}

	add(set.First)
	for _, tr := range set.Rest {
		add(tr.Span)
	}
	return types, seen
}

// designationTable packs each type's Name into the NUL-terminated byte
// blob TZif expects, sharing one entry between types with identical
// names (RFC 8536 also permits sharing a common suffix between two
// different designations, but no encoder is required to take advantage
// of that, and the exact-match case covers every real tzdata zone).
func designationTable(types []tztransitions.FixedTimespan) ([]byte, []uint8) {
	var buf []byte
	offsets := make([]uint8, len(types))
	cache := make(map[string]uint8)

	for i, ts := range types {
		if idx, ok := cache[ts.Name]; ok {
			offsets[i] = idx
			continue
		}
		idx := uint8(len(buf))
		buf = append(buf, []byte(ts.Name)...)
		buf = append(buf, 0)
		offsets[i] = idx
		cache[ts.Name] = idx
	}
	if len(buf) == 0 {
		buf = []byte{0}
	}
	return buf, offsets
}
