// Package source owns the compiler's view of one input file: its name,
// its full text, and a line-start offset table for offset→(line, column)
// mapping. A Source is immutable after construction.
package source

import "sort"

// Source is a file name plus its full byte text and a precomputed table
// of line-start offsets.
type Source struct {
	fileName    string
	text        string
	lineOffsets []int
}

// New builds a Source from a file name and its full contents. Line
// endings may be LF, CRLF, or CR; any of the three counts as a single
// line separator for line numbering.
func New(fileName, text string) *Source {
	return &Source{
		fileName:    fileName,
		text:        text,
		lineOffsets: computeLineOffsets(text),
	}
}

func computeLineOffsets(text string) []int {
	offsets := []int{0}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			offsets = append(offsets, i+1)
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// FileName returns the source's file name.
func (s *Source) FileName() string { return s.fileName }

// Text returns the full source text.
func (s *Source) Text() string { return s.text }

// Len returns the length of the source text in bytes.
func (s *Source) Len() int { return len(s.text) }

// LineCount returns the number of lines in the source.
func (s *Source) LineCount() int { return len(s.lineOffsets) }

// LineStart returns the byte offset at which line (0-based) starts.
func (s *Source) LineStart(line int) int {
	if line < 0 {
		line = 0
	}
	if line >= len(s.lineOffsets) {
		return len(s.text)
	}
	return s.lineOffsets[line]
}

// LineEnd returns the byte offset at which line (0-based) ends, not
// including its terminating newline.
func (s *Source) LineEnd(line int) int {
	next := line + 1
	if next >= len(s.lineOffsets) {
		return len(s.text)
	}
	end := s.lineOffsets[next]
	for end > s.lineOffsets[line] && (s.text[end-1] == '\n' || s.text[end-1] == '\r') {
		end--
	}
	return end
}

// LineText returns the raw text of line (0-based), excluding its
// terminating newline.
func (s *Source) LineText(line int) string {
	return s.text[s.LineStart(line):s.LineEnd(line)]
}

// Position converts a byte offset into a 0-based (line, column) pair via
// binary search over the line-start table. Column is a byte offset into
// the line, not yet tab-expanded; see the render package for the
// tab-aware display column.
func (s *Source) Position(offset int) (line, column int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.text) {
		offset = len(s.text)
	}
	line = sort.Search(len(s.lineOffsets), func(i int) bool {
		return s.lineOffsets[i] > offset
	}) - 1
	if line < 0 {
		line = 0
	}
	column = offset - s.lineOffsets[line]
	return line, column
}
