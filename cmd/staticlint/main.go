// Package main - линтер репозитория, multichecker из golang.org/x/tools.
//
//	go run ./cmd/staticlint ./...
//
// Набор проходов подобран под то, из чего состоят server и alertbot:
// HTTP-обработчики и исходящий клиент, JSON-модели, контексты с отменой,
// реестр метрик под мьютексом. Ассемблерные, cgo- и build-tag-проходы
// не включены: такого кода в репозитории нет.
//
// HTTP: httpresponse, bodyclose и собственный defaultclient, который
// запрещает http.DefaultClient и http.Get/Head/Post/PostForm вне тестов.
// Вызов Telegram без таймаута держит обработчик вебхука неограниченно долго.
//
// JSON и теги: structtag, unmarshal.
//
// Конкурентность и контексты: atomic, copylock, loopclosure, lostcancel.
//
// Ошибки и форматирование: errcheck, errorsas, printf, unusedresult.
//
// Общие: assign, bools, nilfunc, stdmethods, tests, unreachable.
package main

import (
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/multichecker"
	"golang.org/x/tools/go/analysis/passes/assign"
	"golang.org/x/tools/go/analysis/passes/atomic"
	"golang.org/x/tools/go/analysis/passes/bools"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/loopclosure"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/nilfunc"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/stdmethods"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/tests"
	"golang.org/x/tools/go/analysis/passes/unmarshal"
	"golang.org/x/tools/go/analysis/passes/unreachable"
	"golang.org/x/tools/go/analysis/passes/unusedresult"

	"github.com/kisielk/errcheck/errcheck"
	"github.com/timakin/bodyclose/passes/bodyclose"

	"github.com/25x8/sre-stack/cmd/staticlint/defaultclient"
)

func main() {
	multichecker.Main(analyzers()...)
}

func analyzers() []*analysis.Analyzer {
	return []*analysis.Analyzer{
		// HTTP
		httpresponse.Analyzer,
		bodyclose.Analyzer,
		defaultclient.Analyzer,

		// JSON
		structtag.Analyzer,
		unmarshal.Analyzer,

		// конкурентность
		atomic.Analyzer,
		copylock.Analyzer,
		loopclosure.Analyzer,
		lostcancel.Analyzer,

		// ошибки
		errcheck.Analyzer,
		errorsas.Analyzer,
		printf.Analyzer,
		unusedresult.Analyzer,

		assign.Analyzer,
		bools.Analyzer,
		nilfunc.Analyzer,
		stdmethods.Analyzer,
		tests.Analyzer,
		unreachable.Analyzer,
	}
}
