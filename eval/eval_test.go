// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package eval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"robdd/bdd"
	"robdd/lexer"
	"robdd/parser"
)

// compile lexes, parses, and evaluates src against a fresh Env sized to the
// discovered symbol count, mirroring the CLI's pipeline (§6).
func compile(t *testing.T, src string) (*bdd.Env, *bdd.Symbols, bdd.Node) {
	t.Helper()
	syms := bdd.NewSymbols()
	toks, err := lexer.Lex("<test>", strings.NewReader(src), syms)
	require.NoError(t, err)
	tree, err := parser.Parse(toks)
	require.NoError(t, err)
	env, err := bdd.New(syms.Len())
	require.NoError(t, err)
	ev := New(env)
	root, err := ev.Eval(tree)
	require.NoError(t, err)
	return env, syms, root
}

func TestScenarioNegatedOrItself(t *testing.T) {
	_, _, root := compile(t, "!a | a")
	require.Equal(t, bdd.True, root)
}

func TestScenarioUnsatisfiableConjunction(t *testing.T) {
	_, _, root := compile(t, "a & !a")
	require.Equal(t, bdd.False, root)
}

func TestScenarioExactlyTwoOfThree(t *testing.T) {
	env, _, root := compile(t, "[a, b, c] = 2")
	n, err := env.Satcount(root)
	require.NoError(t, err)
	require.Equal(t, int64(3), n.Int64())
}

func TestScenarioExistsEliminatesVariable(t *testing.T) {
	syms := bdd.NewSymbols()
	syms.Seed([]string{"x", "y"})
	toks, err := lexer.Lex("<test>", strings.NewReader("exists x # x & y"), syms)
	require.NoError(t, err)
	tree, err := parser.Parse(toks)
	require.NoError(t, err)
	env, err := bdd.New(syms.Len())
	require.NoError(t, err)
	ev := New(env)
	root, err := ev.Eval(tree)
	require.NoError(t, err)

	yID, ok := syms.Lookup("y")
	require.True(t, ok)
	vy, err := env.Ithvar(yID)
	require.NoError(t, err)
	require.Equal(t, vy, root)

	free := FreeVars(tree)
	require.Equal(t, []int{yID}, free)
}

func TestFixedPointLfpOrItself(t *testing.T) {
	// mu X # var_a | X converges to var_a after two iterations (§8 scenario 6).
	env, syms, root := compile(t, "lfp x # a | x")
	aID, ok := syms.Lookup("a")
	require.True(t, ok)
	va, err := env.Ithvar(aID)
	require.NoError(t, err)
	require.Equal(t, va, root)
}

func TestFreeVarsStopAtFixPointBinder(t *testing.T) {
	syms := bdd.NewSymbols()
	toks, err := lexer.Lex("<test>", strings.NewReader("lfp x # a | x"), syms)
	require.NoError(t, err)
	tree, err := parser.Parse(toks)
	require.NoError(t, err)
	aID, _ := syms.Lookup("a")
	require.Equal(t, []int{aID}, FreeVars(tree))
}
