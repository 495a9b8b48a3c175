// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package output implements C7: the truth-table walk, model printer, and
// DOT-graph emitter of §4.7, generalizing the teacher's stdio.go
// (Print/PrintDot) to the DSL's free-variable columns and filter semantics.
package output

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"robdd/bdd"
)

// Filter names the terminal a truth-table row or DOT edge must reach to be
// reported (§6 `-f/--filter`).
type Filter int

const (
	FilterAny Filter = iota
	FilterTrue
	FilterFalse
)

// ParseFilter implements §6's truth-value grammar: true|True|t|T|1 -> true;
// false|False|f|F|0 -> false; any|Any|a|A|* -> any.
func ParseFilter(s string) (Filter, error) {
	switch s {
	case "true", "True", "t", "T", "1":
		return FilterTrue, nil
	case "false", "False", "f", "F", "0":
		return FilterFalse, nil
	case "any", "Any", "a", "A", "*":
		return FilterAny, nil
	}
	return FilterAny, fmt.Errorf("output: unparseable truth-value %q", s)
}

func (f Filter) matches(n bdd.Node) bool {
	switch f {
	case FilterTrue:
		return n == bdd.True
	case FilterFalse:
		return n == bdd.False
	default:
		return true
	}
}

// rowState holds one row's value for each variable: 0 (false), 1 (true), or
// -1 (Any: either value is consistent with that row, per §4.7).
type rowState struct {
	values []int
	vars   []int // the columns to print, in order
}

func newRowState(varnum int, vars []int) *rowState {
	values := make([]int, varnum)
	for i := range values {
		values[i] = -1
	}
	return &rowState{values: values, vars: vars}
}

func (r *rowState) format(syms *bdd.Symbols) string {
	cells := make([]string, len(r.vars))
	for i, v := range r.vars {
		cells[i] = cellLabel(syms.Name(v), r.values[v])
	}
	return strings.Join(cells, "\t")
}

func cellLabel(name string, v int) string {
	switch v {
	case 0:
		return name + "=False"
	case 1:
		return name + "=True"
	default:
		return name + "=Any"
	}
}

// TruthTable walks root the way §4.7 describes (false branch first, true
// branch second, at each Choice; emit at any terminal matching filter) and
// writes a header line of variable names, then one tab-separated row per path
// that ends at a terminal accepted by filter. vars controls the column order
// and set; typically the formula's free variables.
func TruthTable(env *bdd.Env, root bdd.Node, vars []int, syms *bdd.Symbols, filter Filter, w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 2, 2, ' ', 0)
	header := make([]string, len(vars))
	for i, v := range vars {
		header[i] = syms.Name(v)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	row := newRowState(env.Varnum(), vars)
	var walk func(n bdd.Node) error
	walk = func(n bdd.Node) error {
		if env.IsTerminal(n) {
			if filter.matches(n) {
				fmt.Fprintln(tw, row.format(syms))
			}
			return nil
		}
		v := env.Var(n)
		row.values[v] = 0
		if err := walk(env.Low(n)); err != nil {
			return err
		}
		row.values[v] = 1
		if err := walk(env.High(n)); err != nil {
			return err
		}
		row.values[v] = -1
		return nil
	}
	if err := walk(root); err != nil {
		return err
	}
	return tw.Flush()
}

// Model prints the single satisfying conjunction produced by bdd.Env.Model,
// projected to vars (typically the free variables), the same walk as
// TruthTable restricted to rows reaching the true terminal (§4.7 "Model
// printer"). It reports "unsatisfiable" when root denotes no model.
func Model(env *bdd.Env, root bdd.Node, vars []int, syms *bdd.Symbols, w io.Writer) error {
	m := env.Model(root)
	if m == bdd.False {
		_, err := fmt.Fprintln(w, "unsatisfiable")
		return err
	}
	return TruthTable(env, m, vars, syms, FilterTrue, w)
}

// nodeLabel returns the DOT id for a node, stable within a run (§6 "File formats").
func nodeLabel(n bdd.Node) string {
	switch n {
	case bdd.False:
		return "n_false"
	case bdd.True:
		return "n_true"
	default:
		return fmt.Sprintf("n_%d", int(n))
	}
}

// PrintDot emits the DAG reachable from roots as a DOT graph (§4.7 "DOT
// emitter"): one node per handle, high/low edges labeled T/F, terminals
// sharing the fixed labels n_true/n_false. When filter excludes a terminal,
// edges leading directly into it are omitted.
func PrintDot(env *bdd.Env, roots []bdd.Node, syms *bdd.Symbols, filter Filter, w io.Writer) error {
	fmt.Fprintln(w, "digraph BDD {")
	fmt.Fprintln(w, `  n_true [shape=box, label="1"];`)
	fmt.Fprintln(w, `  n_false [shape=box, label="0"];`)

	omit := func(target bdd.Node) bool {
		if filter == FilterAny {
			return false
		}
		if filter == FilterTrue && target == bdd.False {
			return true
		}
		if filter == FilterFalse && target == bdd.True {
			return true
		}
		return false
	}

	err := env.Allnodes(func(id, _, low, high int) error {
		n := bdd.Node(id)
		if env.IsTerminal(n) {
			return nil
		}
		name := syms.Name(env.Var(n))
		fmt.Fprintf(w, "  %s [label=%q];\n", nodeLabel(n), name)
		if lo := bdd.Node(low); !omit(lo) {
			fmt.Fprintf(w, "  %s -> %s [label=\"F\", style=dashed];\n", nodeLabel(n), nodeLabel(lo))
		}
		if hi := bdd.Node(high); !omit(hi) {
			fmt.Fprintf(w, "  %s -> %s [label=\"T\"];\n", nodeLabel(n), nodeLabel(hi))
		}
		return nil
	}, roots...)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "}")
	return nil
}
