// Package report formats violations and per-file failures.
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/phobologic/pystyle/internal/model"
)

var failureStyle = color.New(color.FgRed, color.Bold)

// Format renders one violation as "<file>: Line <n>: <code> <message>".
func Format(v model.Violation) string {
	return fmt.Sprintf("%s: Line %d: %s %s", v.File, v.Line, v.Code, v.Message())
}

// Merge returns the report order of one file: every line-rule violation, as
// given, followed by every tree-rule violation, as given. Nothing is re-sorted.
func Merge(lineViolations, treeViolations []model.Violation) []model.Violation {
	out := make([]model.Violation, 0, len(lineViolations)+len(treeViolations))
	out = append(out, lineViolations...)
	return append(out, treeViolations...)
}

// FileReport is the outcome of analyzing one file.
type FileReport struct {
	Path       string
	Violations []model.Violation
	// Err is set when the file could not be read or parsed. Violations then
	// hold whatever was found before the failure.
	Err error
}

// Reporter writes file reports: violations to out, failures to errOut.
type Reporter struct {
	out    io.Writer
	errOut io.Writer
}

// New returns a Reporter writing to out and errOut.
func New(out, errOut io.Writer) *Reporter {
	return &Reporter{out: out, errOut: errOut}
}

// Write prints one file report.
func (r *Reporter) Write(fr FileReport) error {
	for _, v := range fr.Violations {
		if _, err := fmt.Fprintln(r.out, Format(v)); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}
	if fr.Err != nil {
		_, _ = failureStyle.Fprintf(r.errOut, "%s: %v\n", fr.Path, fr.Err)
	}
	return nil
}

// WriteAll prints reports in the given order and returns the number of
// files that failed.
func (r *Reporter) WriteAll(reports []FileReport) (int, error) {
	failed := 0
	for _, fr := range reports {
		if err := r.Write(fr); err != nil {
			return failed, err
		}
		if fr.Err != nil {
			failed++
		}
	}
	return failed, nil
}
