// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package eval

import (
	"sort"

	"robdd/ast"
)

// FreeVars computes the free variables of e (§4.6): every Var id reached by
// the walk that is not, at that point, bound by an enclosing Quant or the
// recursion variable of an enclosing FixPoint. The result is sorted by id.
func FreeVars(e ast.Expr) []int {
	seen := make(map[int]bool)
	bound := make(map[int]bool)
	walkFree(e, bound, seen)
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func walkFree(e ast.Expr, bound, seen map[int]bool) {
	switch n := e.(type) {
	case *ast.Const, *ast.Subtree:
		// no variable reference

	case *ast.Var:
		if !bound[n.ID] {
			seen[n.ID] = true
		}

	case *ast.Not:
		walkFree(n.X, bound, seen)

	case *ast.BinOp:
		walkFree(n.X, bound, seen)
		walkFree(n.Y, bound, seen)

	case *ast.Quant:
		var added []int
		for _, v := range n.Vars {
			if !bound[v.ID] {
				bound[v.ID] = true
				added = append(added, v.ID)
			}
		}
		walkFree(n.Body, bound, seen)
		for _, id := range added {
			delete(bound, id)
		}

	case *ast.CardBound:
		for _, x := range n.List {
			walkFree(x, bound, seen)
		}

	case *ast.CardCompare:
		for _, x := range n.Left {
			walkFree(x, bound, seen)
		}
		for _, x := range n.Right {
			walkFree(x, bound, seen)
		}

	case *ast.IfThenElse:
		walkFree(n.Cond, bound, seen)
		walkFree(n.Then, bound, seen)
		walkFree(n.Else, bound, seen)

	case *ast.FixPoint:
		wasBound := bound[n.Var.ID]
		bound[n.Var.ID] = true
		walkFree(n.Body, bound, seen)
		if !wasBound {
			delete(bound, n.Var.ID)
		}
	}
}
