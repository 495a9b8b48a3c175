// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Command robddc is the solver's principal binary (§6): it parses a formula
// in the DSL of §4.4-§4.5, evaluates it against the ROBDD engine, and emits
// whichever of the truth table / model / DOT graphs the flags request, in
// the kanso-cli idiom of reading a source, reporting errors with
// github.com/fatih/color, and exiting non-zero on failure.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"robdd/ast"
	"robdd/bdd"
	"robdd/eval"
	"robdd/lexer"
	"robdd/output"
	"robdd/parser"
)

type flags struct {
	evaluate      string
	ordering      string
	exportOrder   bool
	parsetree     string
	dot           string
	truthtable    bool
	vars          bool
	model         bool
	filter        string
	retainChoices string
	benchmark     int
	plot          bool
}

func main() {
	f := &flags{}
	root := &cobra.Command{
		Use:          "robddc [FILE]",
		Short:        "Solve propositional and quantified-boolean formulas via a ROBDD engine",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return run(f, path)
		},
	}
	fs := root.Flags()
	fs.StringVarP(&f.evaluate, "evaluate", "e", "", "parse this string instead of reading a file")
	fs.StringVarP(&f.ordering, "ordering", "o", "", "pre-seed the variable ordering from a file, one identifier per line")
	fs.BoolVarP(&f.exportOrder, "export-ordering", "r", false, "print the computed ordering to standard output")
	fs.StringVarP(&f.parsetree, "parsetree", "p", "", "emit the parse tree in DOT to FILE")
	fs.StringVarP(&f.dot, "dot", "d", "", "emit the result BDD in DOT to FILE")
	fs.BoolVarP(&f.truthtable, "truthtable", "t", false, "print truth table to standard output")
	fs.BoolVarP(&f.vars, "vars", "v", false, "print satisfying variable assignments")
	fs.BoolVarP(&f.model, "model", "m", false, "reduce to a single satisfying model before output")
	fs.StringVarP(&f.filter, "filter", "f", "any", "restrict truth table/DOT output to rows reaching this terminal (true/false/any)")
	fs.StringVarP(&f.retainChoices, "retain-choices", "c", "", "prune choice nodes whose complementary branch disagrees with this filter (true/false/any)")
	fs.IntVarP(&f.benchmark, "benchmark", "b", 0, "run the solve N times, report timing statistics to standard error")
	fs.BoolVarP(&f.plot, "plot", "g", false, "emit benchmark samples as tab-separated data to standard error")

	if err := root.Execute(); err != nil {
		color.Red("error: %v", err)
		os.Exit(1)
	}
}

func run(f *flags, path string) error {
	src, err := readSource(f, path)
	if err != nil {
		return fmt.Errorf("usage error: %w", err)
	}

	syms := bdd.NewSymbols()
	if f.ordering != "" {
		names, err := readOrdering(f.ordering)
		if err != nil {
			return fmt.Errorf("usage error: %w", err)
		}
		syms.Seed(names)
	}

	toks, err := lexer.Lex(path, strings.NewReader(src), syms)
	if err != nil {
		return err
	}
	tree, err := parser.Parse(toks)
	if err != nil {
		return err
	}

	if f.exportOrder {
		for _, name := range syms.Ordering() {
			fmt.Println(name)
		}
	}

	if f.parsetree != "" {
		pf, err := os.Create(f.parsetree)
		if err != nil {
			return fmt.Errorf("IO error: %w", err)
		}
		defer pf.Close()
		writeParseTree(pf, tree)
	}

	if f.benchmark > 0 {
		return runBenchmark(f, syms, tree)
	}

	env, err := bdd.New(syms.Len())
	if err != nil {
		return err
	}
	ev := eval.New(env)

	root, err := ev.Eval(tree)
	if err != nil {
		return err
	}

	filter, err := output.ParseFilter(f.filter)
	if err != nil {
		return fmt.Errorf("usage error: %w", err)
	}
	if f.retainChoices != "" {
		rc, err := output.ParseFilter(f.retainChoices)
		if err != nil {
			return fmt.Errorf("usage error: %w", err)
		}
		root, err = output.RetainChoices(env, root, rc)
		if err != nil {
			return err
		}
	}

	vars := eval.FreeVars(tree)

	if f.model {
		if m := env.Model(root); m == bdd.False {
			fmt.Println("unsatisfiable")
		} else {
			root = m
		}
	}

	if f.truthtable {
		if err := output.TruthTable(env, root, vars, syms, filter, os.Stdout); err != nil {
			return err
		}
	}
	if f.vars {
		if err := output.TruthTable(env, root, vars, syms, output.FilterTrue, os.Stdout); err != nil {
			return err
		}
	}
	if f.dot != "" {
		df, err := os.Create(f.dot)
		if err != nil {
			return fmt.Errorf("IO error: %w", err)
		}
		defer df.Close()
		if err := output.PrintDot(env, []bdd.Node{root}, syms, filter, df); err != nil {
			return err
		}
	}
	return nil
}

func readSource(f *flags, path string) (string, error) {
	if f.evaluate != "" {
		return f.evaluate, nil
	}
	if path == "" {
		return readAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func readAll(r io.Reader) (string, error) {
	var b strings.Builder
	br := bufio.NewReader(r)
	buf := make([]byte, 4096)
	for {
		n, err := br.Read(buf)
		b.Write(buf[:n])
		if err != nil {
			break
		}
	}
	return b.String(), nil
}

func readOrdering(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			names = append(names, line)
		}
	}
	return names, nil
}

// runBenchmark re-evaluates tree f.benchmark times against a fresh Env each
// iteration, so a later run never benefits from the previous run's
// hash-consed nodes, and reports wall-clock statistics to standard error
// (§6 `-b/--benchmark`, `-g/--plot`).
func runBenchmark(f *flags, syms *bdd.Symbols, tree ast.Expr) error {
	samples := make([]time.Duration, 0, f.benchmark)
	var lastEnv *bdd.Env
	for i := 0; i < f.benchmark; i++ {
		env, err := bdd.New(syms.Len())
		if err != nil {
			return err
		}
		ev := eval.New(env)
		start := time.Now()
		root, err := ev.Eval(tree)
		elapsed := time.Since(start)
		if err != nil {
			return err
		}
		samples = append(samples, elapsed)
		lastEnv = env
		_ = root
	}
	var total, min, max time.Duration
	min = samples[0]
	for _, s := range samples {
		total += s
		if s < min {
			min = s
		}
		if s > max {
			max = s
		}
	}
	avg := total / time.Duration(len(samples))
	fmt.Fprintf(os.Stderr, "runs=%d avg=%s min=%s max=%s total=%s\n", len(samples), avg, min, max, total)
	fmt.Fprint(os.Stderr, lastEnv.Stats())
	if f.plot {
		for i, s := range samples {
			fmt.Fprintf(os.Stderr, "%d\t%d\n", i, s.Nanoseconds())
		}
	}
	return nil
}

// writeParseTree renders the symbolic AST as a DOT graph, the `-p` companion
// to output.PrintDot's BDD rendering: same digraph/label/edge idiom, walking
// ast.Expr instead of bdd.Node.
func writeParseTree(w io.Writer, e ast.Expr) {
	fmt.Fprintln(w, "digraph ParseTree {")
	id := 0
	var walk func(e ast.Expr) string
	walk = func(e ast.Expr) string {
		id++
		name := fmt.Sprintf("n_%d", id)
		switch n := e.(type) {
		case *ast.Const:
			fmt.Fprintf(w, "  %s [label=%q];\n", name, fmt.Sprintf("%v", n.Value))
		case *ast.Var:
			fmt.Fprintf(w, "  %s [label=%q];\n", name, n.Name)
		case *ast.Not:
			fmt.Fprintf(w, "  %s [label=\"!\"];\n", name)
			child := walk(n.X)
			fmt.Fprintf(w, "  %s -> %s;\n", name, child)
		case *ast.BinOp:
			fmt.Fprintf(w, "  %s [label=%q];\n", name, n.Op.String())
			x := walk(n.X)
			y := walk(n.Y)
			fmt.Fprintf(w, "  %s -> %s;\n  %s -> %s;\n", name, x, name, y)
		case *ast.Quant:
			fmt.Fprintf(w, "  %s [label=%q];\n", name, n.Kind.String())
			for _, v := range n.Vars {
				vid := fmt.Sprintf("n_%d", func() int { id++; return id }())
				fmt.Fprintf(w, "  %s [label=%q];\n  %s -> %s;\n", vid, v.Name, name, vid)
			}
			body := walk(n.Body)
			fmt.Fprintf(w, "  %s -> %s;\n", name, body)
		case *ast.CardBound:
			fmt.Fprintf(w, "  %s [label=\"card\"];\n", name)
			for _, item := range n.List {
				c := walk(item)
				fmt.Fprintf(w, "  %s -> %s;\n", name, c)
			}
		case *ast.CardCompare:
			fmt.Fprintf(w, "  %s [label=\"card-cmp\"];\n", name)
			for _, item := range n.Left {
				c := walk(item)
				fmt.Fprintf(w, "  %s -> %s;\n", name, c)
			}
			for _, item := range n.Right {
				c := walk(item)
				fmt.Fprintf(w, "  %s -> %s;\n", name, c)
			}
		case *ast.IfThenElse:
			fmt.Fprintf(w, "  %s [label=\"ite\"];\n", name)
			c := walk(n.Cond)
			th := walk(n.Then)
			el := walk(n.Else)
			fmt.Fprintf(w, "  %s -> %s;\n  %s -> %s;\n  %s -> %s;\n", name, c, name, th, name, el)
		case *ast.FixPoint:
			fmt.Fprintf(w, "  %s [label=%q];\n", name, n.Kind.String())
			body := walk(n.Body)
			fmt.Fprintf(w, "  %s -> %s;\n", name, body)
		default:
			fmt.Fprintf(w, "  %s [label=\"?\"];\n", name)
		}
		return name
	}
	walk(e)
	fmt.Fprintln(w, "}")
}
