package report

import (
	"os"
	"path/filepath"
	"testing"
)

func writeReport(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "diff.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write report fixture: %v", err)
	}
	return path
}

func TestLoadReport(t *testing.T) {
	path := writeReport(t, `{
		"differences": [
			{
				"renderIndex": 2,
				"referenceIndex": 0,
				"issues": ["missing texture", "wrong shading"],
				"bbox": [10, 20, 50, 60],
				"severity": "high"
			}
		]
	}`)

	rep, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rep.Differences) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(rep.Differences))
	}

	e := rep.Differences[0]
	if e.RenderIndex != 2 || e.ReferenceIndex != 0 {
		t.Errorf("unexpected indices: render=%d reference=%d", e.RenderIndex, e.ReferenceIndex)
	}
	if len(e.Issues) != 2 || e.Issues[0] != "missing texture" {
		t.Errorf("unexpected issues: %v", e.Issues)
	}
	if e.BBox != (BBox{10, 20, 50, 60}) {
		t.Errorf("unexpected bbox: %+v", e.BBox)
	}
	if e.Severity != SeverityHigh {
		t.Errorf("unexpected severity: %q", e.Severity)
	}
}

func TestIssuesAsBareString(t *testing.T) {
	path := writeReport(t, `{"differences":[{"renderIndex":0,"referenceIndex":0,"issues":"bad UV"}]}`)
	rep, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e := rep.Differences[0]
	if len(e.Issues) != 1 || e.Issues[0] != "bad UV" {
		t.Errorf("expected [\"bad UV\"], got %v", e.Issues)
	}
}

func TestSingularIssueKey(t *testing.T) {
	path := writeReport(t, `{"differences":[{"renderIndex":0,"referenceIndex":0,"issue":["seam visible"]}]}`)
	rep, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e := rep.Differences[0]
	if len(e.Issues) != 1 || e.Issues[0] != "seam visible" {
		t.Errorf("expected [\"seam visible\"], got %v", e.Issues)
	}
}

func TestPluralKeyWinsOverSingular(t *testing.T) {
	path := writeReport(t, `{"differences":[{"issues":["a"],"issue":["b"]}]}`)
	rep, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e := rep.Differences[0]
	if len(e.Issues) != 1 || e.Issues[0] != "a" {
		t.Errorf("expected plural key to win, got %v", e.Issues)
	}
}

func TestEntryDefaults(t *testing.T) {
	path := writeReport(t, `{"differences":[{}]}`)
	rep, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e := rep.Differences[0]
	if e.RenderIndex != -1 || e.ReferenceIndex != -1 {
		t.Errorf("expected indices to default to -1, got render=%d reference=%d", e.RenderIndex, e.ReferenceIndex)
	}
	if e.Severity != SeverityLow {
		t.Errorf("expected severity to default to low, got %q", e.Severity)
	}
	if len(e.Issues) != 0 {
		t.Errorf("expected no issues, got %v", e.Issues)
	}
	if e.BBox != (BBox{}) {
		t.Errorf("expected zero bbox, got %+v", e.BBox)
	}
}

func TestExplicitEmptySeverityKept(t *testing.T) {
	// An explicitly empty severity is present, not absent: it must stay ""
	// so downstream color lookup treats it as unrecognized rather than low.
	path := writeReport(t, `{"differences":[{"severity":""}]}`)
	rep, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Differences[0].Severity != "" {
		t.Errorf("expected empty severity kept verbatim, got %q", rep.Differences[0].Severity)
	}
}

func TestUnrecognizedSeverityPreserved(t *testing.T) {
	path := writeReport(t, `{"differences":[{"severity":"catastrophic"}]}`)
	rep, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Differences[0].Severity != "catastrophic" {
		t.Errorf("expected severity kept verbatim, got %q", rep.Differences[0].Severity)
	}
}

func TestShortBBox(t *testing.T) {
	path := writeReport(t, `{"differences":[{"bbox":[5, 7]}]}`)
	rep, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rep.Differences[0].BBox != (BBox{5, 7, 0, 0}) {
		t.Errorf("unexpected bbox: %+v", rep.Differences[0].BBox)
	}
}

func TestMissingDifferencesKey(t *testing.T) {
	path := writeReport(t, `{}`)
	rep, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rep.Differences) != 0 {
		t.Errorf("expected no entries, got %d", len(rep.Differences))
	}
}

func TestMalformedReport(t *testing.T) {
	path := writeReport(t, `{"differences": [`)
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestMissingReportFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing report file")
	}
}
