// Package analyzers provides all custom static analyzers for lms.
package analyzers

import (
	"golang.org/x/tools/go/analysis"

	"github.com/javatronic/lms/tools/lms-lint/analyzers/loopcall"
)

// All returns all analyzers to run.
func All() []*analysis.Analyzer {
	return []*analysis.Analyzer{
		loopcall.Analyzer,
	}
}
