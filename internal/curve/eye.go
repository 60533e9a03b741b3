package curve

// DesignGrid is the side of the square coordinate space the eye motif is
// authored in.
const DesignGrid = 512

// Eye outline constants on the design grid.
var (
	EyeLeft   = Point{X: 97, Y: 256}
	EyeRight  = Point{X: 415, Y: 256}
	EyeCenter = Point{X: 256, Y: 256}

	upperCtrl = Point{X: 256, Y: 122}
	lowerCtrl = Point{X: 256, Y: 390}
)

// Transform maps design-grid coordinates to pixels with a uniform scale
// followed by a translation.
type Transform struct {
	Scale  float64
	Offset Point
}

// Identity leaves coordinates unchanged.
var Identity = Transform{Scale: 1}

// Fit returns the transform that scales the design grid to size pixels and
// places its origin at (x, y).
func Fit(size, x, y float64) Transform {
	return Transform{Scale: size / DesignGrid, Offset: Point{X: x, Y: y}}
}

// Apply maps a single point.
func (t Transform) Apply(p Point) Point {
	return p.Mul(t.Scale).Add(t.Offset)
}

// Scalar scales a length such as a radius.
func (t Transform) Scalar(v float64) float64 {
	return v * t.Scale
}

// EyePolygon returns the closed almond outline: an upper arc from the left
// tip to the right tip followed by a lower arc back, mapped through t.
func EyePolygon(t Transform) Path {
	upper := QuadraticBezier(EyeLeft, upperCtrl, EyeRight, DefaultSteps)
	lower := QuadraticBezier(EyeRight, lowerCtrl, EyeLeft, DefaultSteps)

	out := make(Path, 0, len(upper)+len(lower))
	for _, p := range upper {
		out = append(out, t.Apply(p))
	}
	for _, p := range lower {
		out = append(out, t.Apply(p))
	}
	return out
}
