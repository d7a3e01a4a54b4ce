package report

import (
	"encoding/json"
	"fmt"
	"os"
)

// Severity classifies a reported issue.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Report is a decoded diff report listing discrepancies between rendered
// and reference images.
type Report struct {
	Differences []Entry `json:"differences"`
}

// Entry is one reported mismatch between a render and a reference.
type Entry struct {
	RenderIndex    int
	ReferenceIndex int
	Issues         []string
	BBox           BBox
	Severity       Severity
}

// BBox is (x, y, width, height) in source-image pixel coordinates.
type BBox struct {
	X, Y, W, H float64
}

// UnmarshalJSON decodes a bbox from a JSON number array. Missing trailing
// elements stay zero.
func (b *BBox) UnmarshalJSON(data []byte) error {
	var vals []float64
	if err := json.Unmarshal(data, &vals); err != nil {
		return err
	}
	dst := []*float64{&b.X, &b.Y, &b.W, &b.H}
	for i := 0; i < len(vals) && i < len(dst); i++ {
		*dst[i] = vals[i]
	}
	return nil
}

// UnmarshalJSON decodes one diff entry. Indices default to -1 when absent so
// that they read as out-of-range; severity defaults to "low" only when the
// key is absent. Issues may be spelled as a string list, a bare string, or
// under the singular key "issue".
func (e *Entry) UnmarshalJSON(data []byte) error {
	var raw struct {
		RenderIndex    *int            `json:"renderIndex"`
		ReferenceIndex *int            `json:"referenceIndex"`
		Issues         json.RawMessage `json:"issues"`
		Issue          json.RawMessage `json:"issue"`
		BBox           *BBox           `json:"bbox"`
		Severity       *Severity       `json:"severity"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.RenderIndex = -1
	if raw.RenderIndex != nil {
		e.RenderIndex = *raw.RenderIndex
	}
	e.ReferenceIndex = -1
	if raw.ReferenceIndex != nil {
		e.ReferenceIndex = *raw.ReferenceIndex
	}

	// Plural key wins when both are present.
	issues := raw.Issues
	if !present(issues) {
		issues = raw.Issue
	}
	e.Issues = parseIssues(issues)

	if raw.BBox != nil {
		e.BBox = *raw.BBox
	}

	// Only a truly absent key defaults to low; a present value is kept
	// verbatim, so an explicit "" counts as unrecognized downstream.
	e.Severity = SeverityLow
	if raw.Severity != nil {
		e.Severity = *raw.Severity
	}
	return nil
}

func present(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

// parseIssues accepts either a list of strings or a single bare string.
// Anything else yields no issues.
func parseIssues(raw json.RawMessage) []string {
	if !present(raw) {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []string{single}
	}
	return nil
}

// Load reads and decodes a diff report from disk.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read diff report: %w", err)
	}
	var rep Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("failed to decode diff report %s: %w", path, err)
	}
	return &rep, nil
}
