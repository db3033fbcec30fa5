package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/analysis"
)

func TestAnalyzers(t *testing.T) {
	all := analyzers()

	names := make(map[string]bool, len(all))
	for _, a := range all {
		require.NoError(t, analysis.Validate([]*analysis.Analyzer{a}))
		assert.False(t, names[a.Name], "duplicate analyzer %s", a.Name)
		names[a.Name] = true
	}

	for _, name := range []string{"printf", "bodyclose", "errcheck", "defaultclient"} {
		assert.True(t, names[name], "analyzer %s is missing", name)
	}

	// В репозитории нет ассемблера и cgo
	for _, name := range []string{"asmdecl", "cgocall", "buildtag"} {
		assert.False(t, names[name], "analyzer %s is not expected", name)
	}
}
