// Package render turns a report.Report into a styled terminal block: a
// head line, a location line, an interest block showing the annotated
// source with connectors and labels, and a tail line.
//
// The interest block is built on canvas, a small auto-extending 2D grid
// of styled cells that supports absolute-position writes. This mirrors
// the original renderer this package is ported from, which draws
// multiline connectors by seeking back into rows that earlier,
// shorter connectors already started — something a simple top-to-bottom
// line builder cannot express.
package render

import (
	"strings"

	"github.com/mppl-lang/mpplc/style"
)

type cell struct {
	text  string
	style style.Style
}

// canvas is a 2D grid of styled cells addressed by (row, column),
// growing on demand as writes land outside its current bounds.
type canvas struct {
	rows       [][]cell
	curRow     int
	curCol     int
}

func newCanvas() *canvas {
	return &canvas{rows: [][]cell{nil}}
}

// row returns the current row index.
func (c *canvas) row() int { return c.curRow }

// col returns the current column index.
func (c *canvas) col() int { return c.curCol }

// nextLine advances to the start of a fresh row below the current one.
func (c *canvas) nextLine() {
	c.curRow++
	c.curCol = 0
	c.growRows(c.curRow)
}

// seek jumps to an absolute (row, col), extending the grid as needed.
func (c *canvas) seek(row, col int) {
	c.curRow, c.curCol = row, col
	c.growRows(row)
	c.growCols(row, col)
}

func (c *canvas) growRows(row int) {
	for len(c.rows) <= row {
		c.rows = append(c.rows, nil)
	}
}

func (c *canvas) growCols(row, col int) {
	for len(c.rows[row]) <= col {
		c.rows[row] = append(c.rows[row], cell{text: " "})
	}
}

// draw writes text at the cursor, advancing one cell per grapheme
// cluster and overwriting any cell already present.
func (c *canvas) draw(s style.Style, text string) {
	for _, cl := range splitCells(text) {
		c.growRows(c.curRow)
		line := c.rows[c.curRow]
		if c.curCol < len(line) {
			line[c.curCol] = cell{text: cl, style: s}
		} else {
			c.rows[c.curRow] = append(c.rows[c.curRow], cell{text: cl, style: s})
		}
		c.curCol++
	}
}

// print flushes the grid to buf, one styled write per run of equally
// styled cells, with a newline between rows.
func (c *canvas) print(buf *style.Buffer) {
	for i, line := range c.rows {
		j := 0
		for j < len(line) {
			k := j + 1
			for k < len(line) && line[k].style == line[j].style {
				k++
			}
			var sb strings.Builder
			for _, cl := range line[j:k] {
				sb.WriteString(cl.text)
			}
			buf.Write(line[j].style, sb.String())
			j = k
		}
		if i+1 < len(c.rows) {
			buf.Plain("\n")
		}
	}
}
