// Package session threads the compiler's state explicitly through each
// phase of the pipeline, instead of holding it in package-level
// variables: a Session carries its Source and the outputs each phase
// attaches as it runs.
package session

import (
	"github.com/mppl-lang/mpplc/report"
	"github.com/mppl-lang/mpplc/resolve"
	"github.com/mppl-lang/mpplc/source"
	"github.com/mppl-lang/mpplc/syntax"
	"github.com/mppl-lang/mpplc/types"
)

// Session owns everything produced while compiling one source file.
// Fields are nil until the phase that produces them runs, and are
// read-only to later phases once set.
type Session struct {
	Source     *source.Source
	Root       *syntax.Node
	Resolution *resolve.Resolution
	Inference  *types.Inference
}

// New creates a Session over src; no phase has run yet.
func New(src *source.Source) *Session {
	return &Session{Source: src}
}

// Compile runs the lex/parse, resolve, and type-check phases in order,
// stopping after any phase that produced an error-severity report, and
// returns every report collected up to that point.
func Compile(src *source.Source) (*Session, []*report.Report) {
	s := New(src)
	var reports []*report.Report

	root, parseReports := syntax.Parse(src.Text())
	s.Root = root
	reports = append(reports, parseReports...)
	if report.HasErrors(parseReports) {
		return s, reports
	}

	res, resolveReports := resolve.Resolve(root)
	s.Resolution = res
	reports = append(reports, resolveReports...)
	if report.HasErrors(resolveReports) {
		return s, reports
	}

	inf, typeReports := types.Check(root, res)
	s.Inference = inf
	reports = append(reports, typeReports...)
	return s, reports
}
