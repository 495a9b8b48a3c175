// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package eval implements C6: it folds the symbolic AST (package ast) into
// the BDD engine (package bdd) exactly as §4.3 defines each operation, and
// drives fixed-point iteration via a compiled substitution closure rather
// than the original's literal AST-splicing (see SPEC_FULL.md §3).
package eval

import (
	"fmt"

	"robdd/ast"
	"robdd/bdd"
	"robdd/token"
)

// Evaluator folds one AST into handles of a single bdd.Env.
type Evaluator struct {
	env   *bdd.Env
	subst map[int]bdd.Node // fixed-point recursion variables currently bound
	err   error            // first error raised inside a Fp transformer closure
}

// New returns an Evaluator over env.
func New(env *bdd.Env) *Evaluator {
	return &Evaluator{env: env, subst: make(map[int]bdd.Node)}
}

// Eval folds e into a bdd.Node, recursing structurally per §4.3/§4.6.
func (ev *Evaluator) Eval(e ast.Expr) (bdd.Node, error) {
	switch n := e.(type) {
	case *ast.Const:
		if n.Value {
			return bdd.True, nil
		}
		return bdd.False, nil

	case *ast.Var:
		if h, ok := ev.subst[n.ID]; ok {
			return h, nil
		}
		return ev.env.Ithvar(n.ID)

	case *ast.Subtree:
		h, ok := n.Handle.(bdd.Node)
		if !ok {
			return bdd.False, fmt.Errorf("eval: malformed Subtree leaf")
		}
		return h, nil

	case *ast.Not:
		x, err := ev.Eval(n.X)
		if err != nil {
			return bdd.False, err
		}
		return ev.env.Not(x)

	case *ast.BinOp:
		return ev.evalBinOp(n)

	case *ast.Quant:
		return ev.evalQuant(n)

	case *ast.CardBound:
		return ev.evalCardBound(n)

	case *ast.CardCompare:
		return ev.evalCardCompare(n)

	case *ast.IfThenElse:
		return ev.evalIfThenElse(n)

	case *ast.FixPoint:
		return ev.evalFixPoint(n)
	}
	return bdd.False, fmt.Errorf("eval: unhandled AST node %T", e)
}

func (ev *Evaluator) evalBinOp(n *ast.BinOp) (bdd.Node, error) {
	x, err := ev.Eval(n.X)
	if err != nil {
		return bdd.False, err
	}
	y, err := ev.Eval(n.Y)
	if err != nil {
		return bdd.False, err
	}
	switch n.Op {
	case token.And:
		return ev.env.And(x, y), nil
	case token.Or:
		return ev.env.Or(x, y), nil
	case token.Xor:
		return ev.env.Xor(x, y), nil
	case token.Nor:
		return ev.env.Not(ev.env.Or(x, y))
	case token.Nand:
		return ev.env.Not(ev.env.And(x, y))
	case token.Implies:
		return ev.env.Implies(x, y), nil
	case token.ImpliedBy:
		// "x <= y" reads as "x is implied by y", i.e. y => x.
		return ev.env.Implies(y, x), nil
	case token.Iff:
		return ev.env.Equiv(x, y), nil
	}
	return bdd.False, fmt.Errorf("eval: unhandled binary operator %s", n.Op)
}

func (ev *Evaluator) evalQuant(n *ast.Quant) (bdd.Node, error) {
	saved := make(map[int]bdd.Node)
	for _, v := range n.Vars {
		if h, ok := ev.subst[v.ID]; ok {
			saved[v.ID] = h
			delete(ev.subst, v.ID)
		}
	}
	body, err := ev.Eval(n.Body)
	for id, h := range saved {
		ev.subst[id] = h
	}
	if err != nil {
		return bdd.False, err
	}
	ids := make([]int, len(n.Vars))
	for i, v := range n.Vars {
		ids[i] = v.ID
	}
	switch n.Kind {
	case token.Exists:
		return ev.env.ExistList(body, ids)
	case token.Forall:
		return ev.env.AllList(body, ids)
	}
	return bdd.False, fmt.Errorf("eval: unhandled quantifier %s", n.Kind)
}

func (ev *Evaluator) evalList(list []ast.Expr) ([]bdd.Node, error) {
	out := make([]bdd.Node, len(list))
	for i, x := range list {
		h, err := ev.Eval(x)
		if err != nil {
			return nil, err
		}
		out[i] = h
	}
	return out, nil
}

// evalCardBound translates a literal-bound comparator to the (function, adjusted
// bound) pair the original's parser.rs fixes exactly (SPEC_FULL.md §3):
// '='->exn(n), '<='->amn(n), '>='->aln(n), '<'->amn(n-1), '>'->aln(n+1).
func (ev *Evaluator) evalCardBound(n *ast.CardBound) (bdd.Node, error) {
	branches, err := ev.evalList(n.List)
	if err != nil {
		return bdd.False, err
	}
	switch n.Cmp {
	case ast.CmpEq:
		return ev.env.Exn(branches, n.Bound), nil
	case ast.CmpLeq:
		return ev.env.Amn(branches, n.Bound), nil
	case ast.CmpGeq:
		return ev.env.Aln(branches, n.Bound), nil
	case ast.CmpLt:
		return ev.env.Amn(branches, n.Bound-1), nil
	case ast.CmpGt:
		return ev.env.Aln(branches, n.Bound+1), nil
	}
	return bdd.False, fmt.Errorf("eval: unhandled cardinality comparator %d", n.Cmp)
}

func (ev *Evaluator) evalCardCompare(n *ast.CardCompare) (bdd.Node, error) {
	left, err := ev.evalList(n.Left)
	if err != nil {
		return bdd.False, err
	}
	right, err := ev.evalList(n.Right)
	if err != nil {
		return bdd.False, err
	}
	switch n.Cmp {
	case ast.CmpEq:
		return ev.env.CountEq(left, right), nil
	case ast.CmpLeq:
		return ev.env.CountLeq(left, right), nil
	case ast.CmpGeq:
		return ev.env.CountGeq(left, right), nil
	case ast.CmpLt:
		return ev.env.CountLt(left, right), nil
	case ast.CmpGt:
		return ev.env.CountGt(left, right), nil
	}
	return bdd.False, fmt.Errorf("eval: unhandled cardinality comparator %d", n.Cmp)
}

func (ev *Evaluator) evalIfThenElse(n *ast.IfThenElse) (bdd.Node, error) {
	cond, err := ev.Eval(n.Cond)
	if err != nil {
		return bdd.False, err
	}
	then, err := ev.Eval(n.Then)
	if err != nil {
		return bdd.False, err
	}
	els, err := ev.Eval(n.Else)
	if err != nil {
		return bdd.False, err
	}
	return ev.env.Ite(cond, then, els)
}

// evalFixPoint implements §4.6's substitution semantics via the closure
// design SPEC_FULL.md §3 adopts: Body is evaluated once per iteration with
// Var's every occurrence resolving to the current iterate through ev.subst,
// rather than literally splicing a Subtree leaf into a freshly copied AST.
func (ev *Evaluator) evalFixPoint(n *ast.FixPoint) (bdd.Node, error) {
	seed := bdd.False
	if n.Kind == token.Gfp {
		seed = bdd.True
	}
	had, existed := ev.subst[n.Var.ID]
	ev.err = nil
	result := ev.env.Fp(seed, func(x bdd.Node) bdd.Node {
		if ev.err != nil {
			return x
		}
		ev.subst[n.Var.ID] = x
		v, err := ev.Eval(n.Body)
		if err != nil {
			ev.err = err
			return x
		}
		return v
	})
	if existed {
		ev.subst[n.Var.ID] = had
	} else {
		delete(ev.subst, n.Var.ID)
	}
	if ev.err != nil {
		return bdd.False, ev.err
	}
	return result, nil
}
