// Package brand holds the single immutable styling configuration every
// builder draws from: palette, font requests and copy text.
package brand

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/subtxtpress/brandkit/internal/paint"
	"github.com/subtxtpress/brandkit/internal/typeface"
)

// Palette is the fixed set of named brand colors.
type Palette struct {
	Base   paint.Color // navy background
	Accent paint.Color // rust, gradient end
	Second paint.Color // teal, washes and grid
	Light  paint.Color // near-white glint
	Cream  paint.Color // eye fill, eyebrow text
	Silver paint.Color // gradient start, text
}

// DefaultPalette returns the house colors.
func DefaultPalette() Palette {
	return Palette{
		Base:   paint.RGB(6, 11, 20),
		Accent: paint.RGB(192, 78, 1),
		Second: paint.RGB(18, 64, 60),
		Light:  paint.RGB(245, 245, 245),
		Cream:  paint.RGB(244, 229, 196),
		Silver: paint.RGB(216, 218, 219),
	}
}

// IrisGradient is the silver to accent ramp used for the iris and the
// preview's accent bar.
func (p Palette) IrisGradient(alpha uint8) paint.GradientSpec {
	return paint.GradientSpec{From: p.Silver, To: p.Accent, Orientation: paint.Horizontal, Alpha: alpha}
}

// Fonts names the faces used by the preview image.
type Fonts struct {
	Headline typeface.Request
	Body     typeface.Request
	Mono     typeface.Request
}

// Copy is the preview image's text.
type Copy struct {
	Eyebrow  string
	Headline string
	Subhead  string
	Site     string
}

// Brand bundles everything the builders need. Construct it once with New or
// Default and pass it by value.
type Brand struct {
	Palette Palette
	Fonts   Fonts
	Copy    Copy
}

// Default font files, as shipped with macOS.
const (
	DefaultHeadlineFont = "/System/Library/Fonts/Supplemental/Georgia Bold.ttf"
	DefaultMonoFont     = "/System/Library/Fonts/Supplemental/Courier New.ttf"
	DefaultBodyFont     = "/System/Library/Fonts/HelveticaNeue.ttc"
)

// DefaultFonts returns the font requests for the given files.
func DefaultFonts(headline, body, mono string) Fonts {
	return Fonts{
		Headline: typeface.Request{Path: headline, Size: 80, Fallback: typeface.Bold},
		Body:     typeface.Request{Path: body, Size: 18, Fallback: typeface.Regular},
		Mono:     typeface.Request{Path: mono, Size: 13, Fallback: typeface.Mono},
	}
}

// DefaultCopy returns the house copy text.
func DefaultCopy() Copy {
	return Copy{
		Eyebrow:  "Subtxt Press — Investigative Reporting",
		Headline: "Dept. of Homeland Security",
		Subhead:  "Mapping the Surveillance Infrastructure",
		Site:     "subtxtpress.github.io",
	}
}

// Default returns the house brand.
func Default() Brand {
	return Brand{
		Palette: DefaultPalette(),
		Fonts:   DefaultFonts(DefaultHeadlineFont, DefaultBodyFont, DefaultMonoFont),
		Copy:    DefaultCopy(),
	}
}

// Overrides carries optional configuration values. Empty fields keep the
// defaults.
type Overrides struct {
	Colors       map[string]string
	HeadlineFont string
	BodyFont     string
	MonoFont     string
	Copy         Copy
}

// New builds a Brand from the defaults and o. Unknown color names and bad hex
// values are errors.
func New(o Overrides) (Brand, error) {
	b := Default()

	slots := map[string]*paint.Color{
		"base":   &b.Palette.Base,
		"accent": &b.Palette.Accent,
		"second": &b.Palette.Second,
		"light":  &b.Palette.Light,
		"cream":  &b.Palette.Cream,
		"silver": &b.Palette.Silver,
	}
	for name, hex := range o.Colors {
		slot, ok := slots[name]
		if !ok {
			return Brand{}, fmt.Errorf("unknown palette color %q", name)
		}
		c, err := paint.ParseHex(hex)
		if err != nil {
			return Brand{}, fmt.Errorf("palette color %q: %w", name, err)
		}
		*slot = c
	}

	b.Fonts = DefaultFonts(
		orDefault(o.HeadlineFont, DefaultHeadlineFont),
		orDefault(o.BodyFont, DefaultBodyFont),
		orDefault(o.MonoFont, DefaultMonoFont),
	)

	b.Copy = Copy{
		Eyebrow:  orDefault(o.Copy.Eyebrow, b.Copy.Eyebrow),
		Headline: orDefault(o.Copy.Headline, b.Copy.Headline),
		Subhead:  orDefault(o.Copy.Subhead, b.Copy.Subhead),
		Site:     orDefault(o.Copy.Site, b.Copy.Site),
	}
	return b, nil
}

// EyebrowText returns the eyebrow label set in capitals.
func (b Brand) EyebrowText() string {
	return cases.Upper(language.English).String(b.Copy.Eyebrow)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
