// Package gridmap holds the static tile grid the ray caster walks through.
package gridmap

import (
	"errors"
	"fmt"
	"strings"
)

// Map errors.
var (
	ErrSize     = errors.New("map cell count does not match width*height")
	ErrCellCode = errors.New("invalid map cell")
)

// EmptyCell is the character marking a walkable cell.
const EmptyCell = ' '

// empty is the stored marker for walkable cells. It is outside the 0-9
// code range, so it can never be confused with wall type 0.
const empty = 0xFF

// Map is an immutable width*height grid of wall codes.
type Map struct {
	width  int
	height int
	cells  []uint8
}

// New builds a map from a row-major string of cell characters:
// '0'-'9' for wall types and ' ' for empty space.
func New(width, height int, cells string) (*Map, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", ErrSize, width, height)
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("%w: got %d cells for %dx%d", ErrSize, len(cells), width, height)
	}

	m := &Map{
		width:  width,
		height: height,
		cells:  make([]uint8, len(cells)),
	}
	for i := 0; i < len(cells); i++ {
		ch := cells[i]
		switch {
		case ch == EmptyCell:
			m.cells[i] = empty
		case ch >= '0' && ch <= '9':
			m.cells[i] = ch - '0'
		default:
			return nil, fmt.Errorf("%w %q at (%d,%d)", ErrCellCode, ch, i%width, i/width)
		}
	}
	return m, nil
}

// FromRows builds a map from equal-length rows, top row first.
func FromRows(rows []string) (*Map, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrSize)
	}
	width := len(rows[0])
	for j, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrSize, j, len(row), width)
		}
	}
	return New(width, len(rows), strings.Join(rows, ""))
}

// Width returns the number of columns.
func (m *Map) Width() int { return m.width }

// Height returns the number of rows.
func (m *Map) Height() int { return m.height }

// Contains reports whether (i, j) is a cell of the map.
func (m *Map) Contains(i, j int) bool {
	return i >= 0 && j >= 0 && i < m.width && j < m.height
}

func (m *Map) index(i, j int) int {
	if !m.Contains(i, j) {
		panic(fmt.Sprintf("gridmap: cell (%d,%d) outside %dx%d map", i, j, m.width, m.height))
	}
	return i + j*m.width
}

// IsEmpty reports whether cell (i, j) is walkable. Panics if out of bounds.
func (m *Map) IsEmpty(i, j int) bool {
	return m.cells[m.index(i, j)] == empty
}

// Get returns the wall code of cell (i, j). The cell must be in bounds and
// occupied; check IsEmpty first.
func (m *Map) Get(i, j int) int {
	c := m.cells[m.index(i, j)]
	if c == empty {
		panic(fmt.Sprintf("gridmap: Get on empty cell (%d,%d)", i, j))
	}
	return int(c)
}

// Rows renders the map back into its row strings.
func (m *Map) Rows() []string {
	rows := make([]string, m.height)
	var sb strings.Builder
	for j := 0; j < m.height; j++ {
		sb.Reset()
		for i := 0; i < m.width; i++ {
			c := m.cells[i+j*m.width]
			if c == empty {
				sb.WriteByte(EmptyCell)
			} else {
				sb.WriteByte('0' + c)
			}
		}
		rows[j] = sb.String()
	}
	return rows
}

// MaxCode returns the highest wall code present, or -1 for a map with no walls.
func (m *Map) MaxCode() int {
	highest := -1
	for _, c := range m.cells {
		if c != empty && int(c) > highest {
			highest = int(c)
		}
	}
	return highest
}
