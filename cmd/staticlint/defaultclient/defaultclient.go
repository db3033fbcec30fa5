// Package defaultclient определяет анализатор, запрещающий исходящие
// HTTP-вызовы через http.DefaultClient и функции-обертки пакета net/http.
//
// У http.DefaultClient нет таймаута: медленный внешний сервис удерживает
// обработку запроса сколь угодно долго. Исходящие вызовы должны идти через
// собственный http.Client с заданным Timeout. Тестовые файлы не проверяются.
package defaultclient

import (
	"go/ast"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

var Analyzer = &analysis.Analyzer{
	Name:     "defaultclient",
	Doc:      "проверка исходящих HTTP-вызовов через клиент без таймаута",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// forbidden - объекты net/http, использующие DefaultClient
var forbidden = map[string]bool{
	"DefaultClient": true,
	"Get":           true,
	"Head":          true,
	"Post":          true,
	"PostForm":      true,
}

func run(pass *analysis.Pass) (interface{}, error) {
	inspector := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.SelectorExpr)(nil),
	}

	inspector.Preorder(nodeFilter, func(node ast.Node) {
		sel := node.(*ast.SelectorExpr)

		if !forbidden[sel.Sel.Name] {
			return
		}

		filename := pass.Fset.Position(sel.Pos()).Filename
		if strings.HasSuffix(filename, "_test.go") {
			return
		}

		ident, ok := sel.X.(*ast.Ident)
		if !ok {
			return
		}

		obj, ok := pass.TypesInfo.Uses[ident].(*types.PkgName)
		if !ok || obj.Imported().Path() != "net/http" {
			return
		}

		pass.Reportf(sel.Pos(), "http.%s использует клиент без таймаута, создайте http.Client с Timeout", sel.Sel.Name)
	})

	return nil, nil
}
