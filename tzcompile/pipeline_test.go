package tzcompile

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/zonepile/tzcompile/tzsource"
)

func TestCompile(t *testing.T) {
	release := &tzsource.Release{
		Version: "2024test",
		DataFiles: tzsource.Files{
			"europe": []byte(`# tzdb data for Europe and environs
Rule    EU    1981  max   -  Mar  lastSun  1:00u 1:00  S
Rule    EU    1996  max   -  Oct  lastSun  1:00u 0     -
Zone    Europe/Zurich  1:00  EU  CE%sT
Link    Europe/Zurich  Europe/Vaduz
`),
		},
	}

	result, diag, err := Compile(release, Options{FromYear: 1995, ToYear: 1997})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !diag.Empty() {
		t.Fatalf("unexpected diagnostics: %v", diag.Err())
	}
	if result.Version != "2024test" {
		t.Errorf("Version = %q, want 2024test", result.Version)
	}
	if len(result.Structure) != 1 || result.Structure[0].Name != "Europe" {
		t.Errorf("Structure = %+v, want one Europe entry", result.Structure)
	}

	zurich, ok := result.Zones["Europe/Zurich"]
	if !ok {
		t.Fatal("expected Europe/Zurich to be compiled")
	}
	if zurich.First.Name != "CET" {
		t.Errorf("Europe/Zurich First.Name = %q, want CET", zurich.First.Name)
	}

	vaduz, ok := result.Zones["Europe/Vaduz"]
	if !ok {
		t.Fatal("expected the linked zone Europe/Vaduz to be compiled too")
	}
	if len(vaduz.Rest) != len(zurich.Rest) {
		t.Errorf("Europe/Vaduz should follow its link and compile identically to Europe/Zurich")
	}
}

func TestCompile_RecordsPerZoneFailureWithoutAbortingRun(t *testing.T) {
	release := &tzsource.Release{
		Version: "2024test",
		DataFiles: tzsource.Files{
			"mixed": []byte(`# tzdb data for mixed content
Zone    Etc/Good  0:00  -  UTC
Zone    Etc/Bad   1:00  Nonexistent  E%sT
`),
		},
	}

	result, diag, err := Compile(release, Options{FromYear: 1970, ToYear: 2020})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if diag.Empty() {
		t.Fatal("expected Etc/Bad to be reported as failed")
	}
	failed := diag.Failed()
	if len(failed) != 1 || failed[0] != "Etc/Bad" {
		t.Errorf("Failed() = %v, want [Etc/Bad]", failed)
	}
	if diag.Err() == nil {
		t.Error("Err() should be non-nil when a zone failed")
	}

	if _, ok := result.Zones["Etc/Good"]; !ok {
		t.Error("Etc/Good should still have compiled despite Etc/Bad failing")
	}
	if _, ok := result.Zones["Etc/Bad"]; ok {
		t.Error("Etc/Bad should not appear in Zones")
	}
}

func TestCompile_ZoneFilterKeepsLinkedNamesAndWellKnownZones(t *testing.T) {
	release := &tzsource.Release{
		Version: "2024test",
		DataFiles: tzsource.Files{
			"mixed": []byte(`# tzdb data for mixed content
Zone    UTC            0:00  -  UTC
Zone    Europe/Zurich  1:00  -  CET
Link    Europe/Zurich  Europe/Vaduz
Zone    Pacific/Fiji   12:00 -  FJT
`),
		},
	}

	result, diag, err := Compile(release, Options{
		FromYear:   1970,
		ToYear:     2020,
		ZoneFilter: func(name string) bool { return name == "Europe/Vaduz" },
	})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !diag.Empty() {
		t.Fatalf("unexpected diagnostics: %v", diag.Err())
	}

	for _, want := range []string{"Europe/Zurich", "Europe/Vaduz", "UTC"} {
		if _, ok := result.Zones[want]; !ok {
			t.Errorf("expected %s to be kept by the filter closure", want)
		}
	}
	if _, ok := result.Zones["Pacific/Fiji"]; ok {
		t.Error("Pacific/Fiji does not match the filter and has no link to a match, should be excluded")
	}
}

func TestCompile_MalformedLineIsRecordedNotFatal(t *testing.T) {
	release := &tzsource.Release{
		Version: "2024test",
		DataFiles: tzsource.Files{
			"broken": []byte(`# tzdb data for mixed content
Zone    Etc/Good  0:00  -  UTC
Bogus line that matches nothing
`),
		},
	}

	result, diag, err := Compile(release, Options{FromYear: 1970, ToYear: 2020})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if diag.Empty() {
		t.Fatal("expected the malformed line to be recorded in Diagnostics")
	}
	failed := diag.Failed()
	if len(failed) != 1 || failed[0] != "parse:broken" {
		t.Errorf("Failed() = %v, want [parse:broken]", failed)
	}
	if _, ok := result.Zones["Etc/Good"]; !ok {
		t.Error("Etc/Good should still compile despite the malformed line elsewhere in the file")
	}
}

// A source tree with one malformed line and nine otherwise well-formed
// zones (plus a tenth zone whose own header parsed fine but lost one
// continuation row to that malformed line) should yield a Diagnostics
// with exactly one entry and a compiled map containing all ten zone
// names: parsing is line-local, so the bad line costs only itself.
func TestCompile_OneMalformedContinuationDoesNotCostTheOtherZones(t *testing.T) {
	var source bytes.Buffer
	source.WriteString("# tzdb data for mixed content\n")
	for i := 0; i < 9; i++ {
		fmt.Fprintf(&source, "Zone    Etc/Zone%d  0:00  -  Z%d\n", i, i)
	}
	source.WriteString("Zone    Etc/WithBadContinuation  1:00  -  WBC  1999\n")
	source.WriteString("                                bogus\n")

	release := &tzsource.Release{
		Version:   "2024test",
		DataFiles: tzsource.Files{"mixed": source.Bytes()},
	}

	result, diag, err := Compile(release, Options{FromYear: 1970, ToYear: 2020})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	failed := diag.Failed()
	if len(failed) != 1 {
		t.Fatalf("Failed() = %v, want exactly one entry", failed)
	}

	wantNames := []string{
		"Etc/Zone0", "Etc/Zone1", "Etc/Zone2", "Etc/Zone3", "Etc/Zone4",
		"Etc/Zone5", "Etc/Zone6", "Etc/Zone7", "Etc/Zone8", "Etc/WithBadContinuation",
	}
	for _, name := range wantNames {
		if _, ok := result.Zones[name]; !ok {
			t.Errorf("expected %s to be compiled despite the malformed continuation elsewhere", name)
		}
	}
}
