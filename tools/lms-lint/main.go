// lms-lint is a custom static analyzer for the storage access patterns of lms.
package main

import (
	"golang.org/x/tools/go/analysis/multichecker"

	"github.com/javatronic/lms/tools/lms-lint/analyzers"
)

func main() {
	multichecker.Main(analyzers.All()...)
}
