package preview

import (
	"image"

	"github.com/subtxtpress/brandkit/internal/brand"
	"github.com/subtxtpress/brandkit/internal/paint"
)

// CellKind selects a grid cell's appearance.
type CellKind int

const (
	CellEmpty  CellKind = iota // cream outline only
	CellSilver                 // translucent silver fill
	CellTeal                   // translucent teal fill
)

// gridPattern is the fixed 5x4 arrangement of cell kinds.
var gridPattern = [5][4]CellKind{
	{CellSilver, CellEmpty, CellTeal, CellEmpty},
	{CellEmpty, CellTeal, CellSilver, CellTeal},
	{CellTeal, CellSilver, CellEmpty, CellSilver},
	{CellEmpty, CellEmpty, CellTeal, CellEmpty},
	{CellSilver, CellTeal, CellEmpty, CellSilver},
}

// Cell is one square of the decorative grid.
type Cell struct {
	Rect image.Rectangle
	Kind CellKind
}

// Cells returns the grid cells in row-major order.
func Cells() []Cell {
	rows, cols := len(gridPattern), len(gridPattern[0])
	x0 := Width - gridRight - cols*cellPitch
	y0 := Height/2 - 2*cellPitch

	cells := make([]Cell, 0, rows*cols)
	for row, kinds := range gridPattern {
		for col, kind := range kinds {
			p := image.Pt(x0+col*cellPitch, y0+row*cellPitch)
			cells = append(cells, Cell{
				Rect: image.Rectangle{Min: p, Max: p.Add(image.Pt(cellSize, cellSize))},
				Kind: kind,
			})
		}
	}
	return cells
}

func drawCell(c *paint.Canvas, pal brand.Palette, cell Cell) {
	x0, y0 := float64(cell.Rect.Min.X), float64(cell.Rect.Min.Y)
	x1, y1 := float64(cell.Rect.Max.X), float64(cell.Rect.Max.Y)

	switch cell.Kind {
	case CellSilver:
		c.FillRoundedRect(x0, y0, x1, y1, cellRadius, pal.Silver.Alpha(35))
		c.StrokeRoundedRect(x0, y0, x1, y1, cellRadius, 1, pal.Silver.Alpha(25))
	case CellTeal:
		c.FillRoundedRect(x0, y0, x1, y1, cellRadius, pal.Second.Alpha(80))
		c.StrokeRoundedRect(x0, y0, x1, y1, cellRadius, 1, pal.Second.Alpha(50))
	default:
		c.StrokeRoundedRect(x0, y0, x1, y1, cellRadius, 1, pal.Cream.Alpha(30))
	}
}
