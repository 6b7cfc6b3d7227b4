// Package tabular places report grids side by side on a worksheet and
// renders their cells for spreadsheet and CSV outputs.
package tabular

import (
	"strconv"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/odkpulse/pkg/domain/model"
	"github.com/xuri/excelize/v2"
)

// DefaultStartCell is the top-left cell of the first table
const DefaultStartCell = "A2"

// Region is a grid anchored at a 1-based column and row of a worksheet
type Region struct {
	Grid *model.Grid
	Col  int
	Row  int
}

// TopLeft returns the A1 name of the region's first cell
func (r *Region) TopLeft() string {
	name, _ := excelize.CoordinatesToCellName(r.Col, r.Row)
	return name
}

// BottomRight returns the A1 name of the region's last cell
func (r *Region) BottomRight() string {
	width := max(r.Grid.Width(), 1)
	name, _ := excelize.CoordinatesToCellName(r.Col+width-1, r.Row+r.Grid.Height()-1)
	return name
}

// Range returns the region as an A1 range such as "A2:E10"
func (r *Region) Range() string {
	return r.TopLeft() + ":" + r.BottomRight()
}

// Values returns the header row followed by the data rows
func (r *Region) Values() [][]any {
	values := make([][]any, 0, r.Grid.Height())
	header := make([]any, len(r.Grid.Header))
	for i, h := range r.Grid.Header {
		header[i] = h
	}
	values = append(values, header)
	values = append(values, r.Grid.Rows...)
	return values
}

// Layout anchors grids left to right from start, leaving one empty column
// between neighbours. Regions never overlap.
func Layout(grids []*model.Grid, start string) ([]*Region, error) {
	if start == "" {
		start = DefaultStartCell
	}
	col, row, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid start cell",
			goerr.T(model.ErrTagConfig),
			goerr.V("cell", start))
	}

	regions := make([]*Region, 0, len(grids))
	for _, grid := range grids {
		regions = append(regions, &Region{Grid: grid, Col: col, Row: row})
		col += max(grid.Width(), 1) + 1
	}
	return regions, nil
}

// Bounds returns the range covering every region, used to clear stale cells
// before a rewrite.
func Bounds(regions []*Region) string {
	if len(regions) == 0 {
		return ""
	}
	first := regions[0]
	last := regions[len(regions)-1]
	bottom := first.Row
	for _, r := range regions {
		bottom = max(bottom, r.Row+r.Grid.Height()-1)
	}
	right := last.Col + max(last.Grid.Width(), 1) - 1
	br, _ := excelize.CoordinatesToCellName(right, bottom)
	return first.TopLeft() + ":" + br
}

// CellString renders a cell value as text
func CellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return ""
	}
}
