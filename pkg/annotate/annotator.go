package annotate

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"annotate/pkg/images"
	"annotate/pkg/report"
	"annotate/pkg/text"
)

// MaxRenders is the number of leading positional image arguments treated as
// renders; everything after is a reference.
const MaxRenders = 4

// Options configures label drawing. Use DefaultOptions as the base.
type Options struct {
	ThumbSize      int     // side length of each thumbnail in pixels
	FontPath       string  // preferred font file; silent fallback when unusable
	FontSize       float64 // label point size
	Padding        float64 // spacing around label text and between stacked labels
	AllLabels      bool    // draw every issue, stacked upward; default only the first
	SeverityColors bool    // color label text by severity instead of black
	DrawBoxes      bool    // outline the reported bbox in the severity color
}

// DefaultOptions returns the annotator defaults.
func DefaultOptions() Options {
	return Options{
		ThumbSize: 1024,
		FontPath:  "arial.ttf",
		FontSize:  20,
		Padding:   8,
	}
}

// severityColors maps a severity to its label color.
var severityColors = map[report.Severity]color.RGBA{
	report.SeverityLow:    {0, 128, 0, 255},   // green
	report.SeverityMedium: {255, 165, 0, 255}, // orange
	report.SeverityHigh:   {255, 0, 0, 255},   // red
}

// colorFor returns the color for a severity; unrecognized severities are red.
func colorFor(s report.Severity) color.RGBA {
	if c, ok := severityColors[s]; ok {
		return c
	}
	return color.RGBA{255, 0, 0, 255}
}

// Annotator produces annotated side-by-side composites from a diff report.
type Annotator struct {
	opts Options
	face font.Face
}

// New creates an Annotator, resolving the font face up front.
func New(opts Options) *Annotator {
	return &Annotator{
		opts: opts,
		face: text.LoadFace(opts.FontPath, opts.FontSize),
	}
}

// SplitFiles partitions positional image arguments: the first four are
// renders, everything after is a reference.
func SplitFiles(files []string) (renders, references []string) {
	n := len(files)
	if n > MaxRenders {
		n = MaxRenders
	}
	return files[:n], files[n:]
}

// Annotate writes one composite PNG per valid diff entry into outDir.
// The output directory is fully recreated first; a previous run's contents do
// not survive. Entries with out-of-range indices are skipped silently and
// their ordinal position is never reused. The first I/O failure aborts the
// run; there is no partial-result recovery.
func (a *Annotator) Annotate(renders, references []string, diffPath, outDir string) error {
	// Clear previous output
	if err := os.RemoveAll(outDir); err != nil {
		return fmt.Errorf("failed to clear output directory %s: %w", outDir, err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", outDir, err)
	}

	rep, err := report.Load(diffPath)
	if err != nil {
		return err
	}

	for idx, entry := range rep.Differences {
		r := entry.RenderIndex
		f := entry.ReferenceIndex
		if r < 0 || r >= len(renders) || f < 0 || f >= len(references) {
			continue
		}

		name := fmt.Sprintf("annot_%d_r%d_ref%d.png", idx, r, f)
		if err := a.renderEntry(renders[r], references[f], entry, filepath.Join(outDir, name)); err != nil {
			return err
		}
	}

	return nil
}

// renderEntry composites one render/reference pair and draws its labels.
func (a *Annotator) renderEntry(renderPath, referencePath string, entry report.Entry, outPath string) error {
	size := a.opts.ThumbSize

	renderThumb, err := images.LoadThumbnail(renderPath, size)
	if err != nil {
		return err
	}
	referenceThumb, err := images.LoadThumbnail(referencePath, size)
	if err != nil {
		return err
	}

	// Side-by-side canvas: render on the left, reference on the right.
	dc := gg.NewContext(size*2, size)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.DrawImage(renderThumb, 0, 0)
	dc.DrawImage(referenceThumb, size, 0)
	dc.SetFontFace(a.face)

	if a.opts.DrawBoxes {
		a.drawBox(dc, entry)
	}
	a.drawLabels(dc, entry)

	if err := dc.SavePNG(outPath); err != nil {
		return fmt.Errorf("failed to save %s: %w", outPath, err)
	}
	return nil
}

// drawBox outlines the reported bounding box in the severity color.
func (a *Annotator) drawBox(dc *gg.Context, entry report.Entry) {
	dc.SetColor(colorFor(entry.Severity))
	dc.SetLineWidth(6)
	dc.DrawRectangle(entry.BBox.X, entry.BBox.Y, entry.BBox.W, entry.BBox.H)
	dc.Stroke()
}

// drawLabels draws issue text near the reported bounding box. Labels stack
// upward from the box's top edge; a label that would leave the canvas above
// is placed below the box instead. Coordinates come straight from the report,
// which describes source-image pixels; they are not rescaled to the thumbnail.
func (a *Annotator) drawLabels(dc *gg.Context, entry report.Entry) {
	issues := entry.Issues
	if !a.opts.AllLabels && len(issues) > 1 {
		issues = issues[:1]
	}

	textColor := color.RGBA{0, 0, 0, 255}
	if a.opts.SeverityColors {
		textColor = colorFor(entry.Severity)
	}

	box := entry.BBox
	pad := a.opts.Padding
	yCursor := box.Y - pad

	for _, issue := range issues {
		if issue == "" {
			continue
		}

		tw, th := dc.MeasureString(issue)

		tx := box.X
		ty := yCursor - th
		if ty < 0 {
			ty = box.Y + box.H + pad
		}

		// Near-opaque background so the label stays readable on any thumbnail.
		dc.SetRGBA(1, 1, 1, 0.9)
		dc.DrawRectangle(tx-pad, ty-pad, tw+2*pad, th+2*pad)
		dc.Fill()

		dc.SetColor(textColor)
		dc.DrawString(issue, tx, ty+th)

		yCursor = ty - pad
	}
}
