package render

import (
	"github.com/mppl-lang/mpplc/source"
	"github.com/rivo/uniseg"
)

// DefaultTabWidth is the display width of a tab stop used when no
// configuration overrides it.
const DefaultTabWidth = 4

// Location is a 0-based line and a tab/grapheme-expanded display
// column, as opposed to source.Source.Position's raw byte column.
type Location struct {
	Line   int
	Column int
}

// splitCells breaks s into grapheme clusters, the unit canvas.draw
// advances the cursor by.
func splitCells(s string) []string {
	var cells []string
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		cells = append(cells, gr.Str())
	}
	return cells
}

// expandLine breaks a raw source line into display cells (one per
// grapheme cluster, or tabWidth space cells for a tab) and a map from
// each cluster's starting byte offset to its display column, so that a
// byte offset produced by source.Source.Position can be converted to a
// display column.
func expandLine(lineText string, tabWidth int) (cells []string, byteToColumn map[int]int) {
	byteToColumn = map[int]int{0: 0}
	col := 0
	gr := uniseg.NewGraphemes(lineText)
	for gr.Next() {
		cluster := gr.Str()
		if cluster == "\t" {
			width := tabWidth - (col % tabWidth)
			for i := 0; i < width; i++ {
				cells = append(cells, " ")
			}
			col += width
		} else {
			cells = append(cells, cluster)
			col++
		}
		_, end := gr.Positions()
		byteToColumn[end] = col
	}
	return cells, byteToColumn
}

func displayColumn(byteToColumn map[int]int, byteOffset int) int {
	if col, ok := byteToColumn[byteOffset]; ok {
		return col
	}
	// byteOffset fell inside a multi-byte cluster; fall back to the
	// nearest preceding cluster boundary's column.
	best := 0
	for b, col := range byteToColumn {
		if b <= byteOffset && col >= best {
			best = col
		}
	}
	return best
}

// displayLocation converts a byte offset into a source into its 0-based
// line and tab/grapheme-expanded display column.
func displayLocation(src *source.Source, offset int, tabWidth int) Location {
	line, byteCol := src.Position(offset)
	_, byteToColumn := expandLine(src.LineText(line), tabWidth)
	return Location{Line: line, Column: displayColumn(byteToColumn, byteCol)}
}
