// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"robdd/bdd"
)

func TestParseFilter(t *testing.T) {
	cases := map[string]Filter{
		"true": FilterTrue, "1": FilterTrue,
		"false": FilterFalse, "0": FilterFalse,
		"any": FilterAny, "*": FilterAny,
	}
	for s, want := range cases {
		got, err := ParseFilter(s)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := ParseFilter("maybe")
	require.Error(t, err)
}

func TestTruthTableSingleRowAnyAny(t *testing.T) {
	env, err := bdd.New(1)
	require.NoError(t, err)
	syms := bdd.NewSymbols()
	syms.Intern("a")

	var buf bytes.Buffer
	require.NoError(t, TruthTable(env, bdd.True, []int{0}, syms, FilterAny, &buf))
	out := buf.String()
	require.True(t, strings.Contains(out, "a=Any"))
}

func TestModelUnsatisfiableReportsSoAsNotToCrash(t *testing.T) {
	env, err := bdd.New(1)
	require.NoError(t, err)
	syms := bdd.NewSymbols()
	syms.Intern("a")
	v0, _ := env.Ithvar(0)
	nv0, err := env.Not(v0)
	require.NoError(t, err)
	f := env.And(v0, nv0)

	var buf bytes.Buffer
	require.NoError(t, Model(env, f, []int{0}, syms, &buf))
	require.Equal(t, "unsatisfiable\n", buf.String())
}

func TestPrintDotEmitsTerminalsAndEdges(t *testing.T) {
	env, err := bdd.New(2)
	require.NoError(t, err)
	syms := bdd.NewSymbols()
	syms.Intern("a")
	syms.Intern("b")
	v0, _ := env.Ithvar(0)
	v1, _ := env.Ithvar(1)
	f := env.And(v0, v1)

	var buf bytes.Buffer
	require.NoError(t, PrintDot(env, []bdd.Node{f}, syms, FilterAny, &buf))
	out := buf.String()
	require.True(t, strings.HasPrefix(out, "digraph BDD {"))
	require.True(t, strings.Contains(out, "n_true"))
	require.True(t, strings.Contains(out, "n_false"))
}
