package model

const MinCellSize = 4

type Layout struct {
	Cell          int
	Width, Height int
}

// Fit sizes the arena canvas for the space the host gives it.
func Fit(availWidth, availHeight, cols, rows int) Layout {
	cell := MinCellSize
	if cols > 0 && rows > 0 {
		cell = availWidth / cols
		if h := availHeight / rows; h < cell {
			cell = h
		}
		if cell < MinCellSize {
			cell = MinCellSize
		}
	}
	return Layout{
		Cell:   cell,
		Width:  cell * cols,
		Height: cell * rows,
	}
}

// CellAt maps canvas pixels to a grid cell.
func (l Layout) CellAt(x, y int) (Point, bool) {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return Point{}, false
	}
	return Point{X: x / l.Cell, Y: y / l.Cell}, true
}
