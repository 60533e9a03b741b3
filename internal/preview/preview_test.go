package preview

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/basicfont"

	"github.com/subtxtpress/brandkit/internal/brand"
	"github.com/subtxtpress/brandkit/internal/curve"
	"github.com/subtxtpress/brandkit/internal/paint"
)

func basicFaces() Faces {
	return Faces{
		Headline: basicfont.Face7x13,
		Body:     basicfont.Face7x13,
		Mono:     basicfont.Face7x13,
	}
}

func TestSteps_Order(t *testing.T) {
	var got []string
	for _, s := range Steps(brand.Default(), basicFaces()) {
		got = append(got, s.Name)
	}
	want := []string{
		"base", "wash", "accent-bar", "scanlines", "watermark",
		"grid", "subhead", "headline", "eyebrow", "site-label",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("step order mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_SizeAndOpacity(t *testing.T) {
	c, err := Build(brand.Default(), basicFaces())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if c.Width() != 1280 || c.Height() != 720 {
		t.Fatalf("preview is %dx%d, want 1280x720", c.Width(), c.Height())
	}
	for y := range Height {
		for x := range Width {
			if a := c.At(x, y).A; a != 255 {
				t.Fatalf("pixel (%d,%d) alpha %d, want 255", x, y, a)
			}
		}
	}
}

func TestBuild_AccentBar(t *testing.T) {
	b := brand.Default()
	c, err := Build(b, basicFaces())
	if err != nil {
		t.Fatal(err)
	}
	if got := c.At(0, 0); got != b.Palette.Silver.Opaque() {
		t.Errorf("bar start = %v, want silver", got)
	}
	if got := c.At(Width-1, 2); got != b.Palette.Accent.Opaque() {
		t.Errorf("bar end = %v, want accent", got)
	}
}

func TestCells(t *testing.T) {
	cells := Cells()
	if len(cells) != 20 {
		t.Fatalf("got %d cells, want 20", len(cells))
	}
	counts := map[CellKind]int{}
	seen := map[image.Rectangle]bool{}
	canvas := image.Rect(0, 0, Width, Height)
	for _, c := range cells {
		counts[c.Kind]++
		if seen[c.Rect] {
			t.Errorf("duplicate cell %v", c.Rect)
		}
		seen[c.Rect] = true
		if c.Rect.Dx() != 32 || c.Rect.Dy() != 32 {
			t.Errorf("cell %v is not 32x32", c.Rect)
		}
		if !c.Rect.In(canvas) {
			t.Errorf("cell %v outside canvas", c.Rect)
		}
	}
	want := map[CellKind]int{CellEmpty: 8, CellSilver: 6, CellTeal: 6}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("cell kinds (-want +got):\n%s", diff)
	}
	if got := cells[0].Rect.Min; got != image.Pt(1032, 276) {
		t.Errorf("first cell at %v, want (1032,276)", got)
	}
}

func TestGrid_DrawsEveryCell(t *testing.T) {
	var grid Step
	for _, s := range Steps(brand.Default(), basicFaces()) {
		if s.Name == "grid" {
			grid = s
		}
	}
	c, err := Render([]Step{grid})
	if err != nil {
		t.Fatal(err)
	}
	for _, cell := range Cells() {
		edge := c.At(cell.Rect.Min.X, cell.Rect.Min.Y+16)
		if edge.A == 0 {
			t.Errorf("cell %v: no outline", cell.Rect)
		}
		center := c.At(cell.Rect.Min.X+16, cell.Rect.Min.Y+16)
		filled := center.A != 0
		if filled != (cell.Kind != CellEmpty) {
			t.Errorf("cell %v kind %d: center alpha %d", cell.Rect, cell.Kind, center.A)
		}
	}
}

func TestSiteLabelX(t *testing.T) {
	// basicfont advances 7 px per glyph: 21 glyphs = 147 px.
	if got := SiteLabelX(basicfont.Face7x13, "subtxtpress.github.io"); got != 1053 {
		t.Errorf("SiteLabelX = %d, want 1053", got)
	}
}

func TestWatermarkTransform(t *testing.T) {
	tr := WatermarkTransform()
	if math.Abs(tr.Scale-200.0/512) > 1e-12 {
		t.Errorf("scale = %v, want %v", tr.Scale, 200.0/512)
	}
	left := tr.Apply(curve.EyeLeft)
	if math.Abs(left.X-1008) > 1e-9 {
		t.Errorf("left tip x = %v, want 1008", left.X)
	}
	if c := tr.Apply(curve.EyeCenter); math.Abs(c.Y-148) > 1e-9 {
		t.Errorf("center y = %v, want 148", c.Y)
	}
}

func TestWatermark_Dimmed(t *testing.T) {
	b := brand.Default()
	steps := Steps(b, basicFaces())
	c, err := Render(steps[:5])
	if err != nil {
		t.Fatal(err)
	}
	// A sclera pixel of the watermark: cream at 45/255 over navy.
	p := WatermarkTransform().Apply(curve.Point{X: 150, Y: 256})
	got := c.At(int(p.X), int(p.Y))
	if got.A != 255 {
		t.Fatalf("alpha = %d, want 255", got.A)
	}
	if got.R < 40 || got.R > 56 {
		t.Errorf("sclera red = %d, want about 48", got.R)
	}
}

func TestRender_StepError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Render([]Step{
		{"ok", func(*paint.Canvas) error { return nil }},
		{"bad", func(*paint.Canvas) error { return boom }},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
}
