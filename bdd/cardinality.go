// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

// Cardinality constraints over a list of Boolean formulas (§4.3.4): "at most
// k", "at least k", "exactly k" of branches are true, plus comparisons
// between the satisfied counts of two lists.

// Amn (at-most-n) returns a BDD satisfied exactly when at most k of branches
// hold. The base case (no branches left) is the terminal ⊤ iff k >= 0: once
// the budget has gone negative too many branches were true.
func (e *Env) Amn(branches []Node, k int64) Node {
	if k < 0 {
		return False
	}
	if len(branches) == 0 {
		return e.mkConst(k >= 0)
	}
	rest := e.Amn(branches[1:], k-1)
	restUnchanged := e.Amn(branches[1:], k)
	res, _ := e.Ite(branches[0], rest, restUnchanged)
	return res
}

// Aln (at-least-n) returns a BDD satisfied exactly when at least k of
// branches hold.
func (e *Env) Aln(branches []Node, k int64) Node {
	if len(branches) == 0 {
		return e.mkConst(k <= 0)
	}
	if k <= 0 {
		return True
	}
	rest := e.Aln(branches[1:], k-1)
	restUnchanged := e.Aln(branches[1:], k)
	res, _ := e.Ite(branches[0], rest, restUnchanged)
	return res
}

// Exn (exactly-n) is and(Amn(k), Aln(k)).
func (e *Env) Exn(branches []Node, k int64) Node {
	return e.And(e.Amn(branches, k), e.Aln(branches, k))
}

// countCompare implements the shared recursive scaffolding behind the
// cross-list comparisons: it consumes `as` left to right, incrementing delta
// by one for every satisfied branch, then at the leaves invokes Aln or Amn
// on `bs` parameterized by the accumulated delta. Which predicate to use and
// what to start delta at is exactly what distinguishes ≤, <, >, ≥ (see
// SPEC_FULL.md §3, resolved from the original's operator-to-bound mapping).
func (e *Env) countCompare(as, bs []Node, delta int64, useAln bool) Node {
	if len(as) == 0 {
		if useAln {
			return e.Aln(bs, delta)
		}
		return e.Amn(bs, delta)
	}
	whenTrue := e.countCompare(as[1:], bs, delta+1, useAln)
	whenFalse := e.countCompare(as[1:], bs, delta, useAln)
	res, _ := e.Ite(as[0], whenTrue, whenFalse)
	return res
}

// CountLeq returns count(as) <= count(bs).
func (e *Env) CountLeq(as, bs []Node) Node { return e.countCompare(as, bs, 0, true) }

// CountLt returns count(as) < count(bs).
func (e *Env) CountLt(as, bs []Node) Node { return e.countCompare(as, bs, 1, true) }

// CountGt returns count(as) > count(bs).
func (e *Env) CountGt(as, bs []Node) Node { return e.countCompare(as, bs, -1, false) }

// CountGeq returns count(as) >= count(bs).
func (e *Env) CountGeq(as, bs []Node) Node { return e.countCompare(as, bs, 0, false) }

// CountEq returns count(as) == count(bs).
func (e *Env) CountEq(as, bs []Node) Node {
	return e.And(e.CountLeq(as, bs), e.CountGeq(as, bs))
}
