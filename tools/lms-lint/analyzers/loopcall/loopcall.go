// Package loopcall detects whole-collection storage calls inside loops.
package loopcall

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer detects storage calls that read or rewrite a whole collection
// inside loops. Each of them rewrites a file, a table or a key range.
var Analyzer = &analysis.Analyzer{
	Name:     "loopcall",
	Doc:      "detects whole-collection storage calls inside loops that should be done once",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// collectionMethods are the ports.Storage methods working on a whole collection.
// UpdatePerson works on one record and is allowed.
var collectionMethods = map[string]bool{
	"ReadPersons":        true,
	"StorePersons":       true,
	"ReadRelationships":  true,
	"StoreRelationships": true,
	"ClearPersons":       true,
	"ClearRelationships": true,
}

func run(pass *analysis.Pass) (any, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.RangeStmt)(nil),
		(*ast.ForStmt)(nil),
	}

	inspect.Preorder(nodeFilter, func(n ast.Node) {
		var body *ast.BlockStmt
		switch stmt := n.(type) {
		case *ast.RangeStmt:
			body = stmt.Body
		case *ast.ForStmt:
			body = stmt.Body
		}
		if body == nil {
			return
		}

		ast.Inspect(body, func(n ast.Node) bool {
			// function literals are not run by the loop itself
			if _, ok := n.(*ast.FuncLit); ok {
				return false
			}

			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}

			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}

			if name := sel.Sel.Name; collectionMethods[name] {
				pass.Reportf(call.Pos(),
					"%s called inside loop - collect the changes and call it once",
					name)
			}

			return true
		})
	})

	return nil, nil
}
