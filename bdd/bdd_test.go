// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import "testing"

func mustEnv(t *testing.T, varnum int) *Env {
	t.Helper()
	e, err := New(varnum)
	if err != nil {
		t.Fatalf("New(%d): %v", varnum, err)
	}
	return e
}

func TestTerminalsAndVariables(t *testing.T) {
	e := mustEnv(t, 3)
	if e.Varnum() != 3 {
		t.Fatalf("Varnum() = %d, want 3", e.Varnum())
	}
	v0, err := e.Ithvar(0)
	if err != nil {
		t.Fatalf("Ithvar(0): %v", err)
	}
	nv0, err := e.NIthvar(0)
	if err != nil {
		t.Fatalf("NIthvar(0): %v", err)
	}
	if v0 == nv0 {
		t.Fatalf("Ithvar(0) and NIthvar(0) must be distinct")
	}
	if _, err := e.Ithvar(3); err == nil {
		t.Fatalf("Ithvar(3) should fail on a 3-variable Env")
	}
}

func TestReductionRule(t *testing.T) {
	e := mustEnv(t, 2)
	// mkChoice(level, n, n) must collapse to n, never allocate a new node.
	before := e.Size()
	res := e.mkChoice(0, True, True)
	if res != True {
		t.Fatalf("mkChoice(0, True, True) = %v, want True", res)
	}
	if e.Size() != before {
		t.Fatalf("reduction rule allocated a node: size %d -> %d", before, e.Size())
	}
}

func TestUniqueness(t *testing.T) {
	e := mustEnv(t, 2)
	v0, _ := e.Ithvar(0)
	v1, _ := e.Ithvar(1)
	a := e.And(v0, v1)
	b := e.And(v0, v1)
	if a != b {
		t.Fatalf("two structurally equal And() calls produced different handles: %v != %v", a, b)
	}
}

func TestApplyAlgebra(t *testing.T) {
	e := mustEnv(t, 2)
	v0, _ := e.Ithvar(0)
	v1, _ := e.Ithvar(1)

	if got := e.And(v0, True); got != v0 {
		t.Errorf("And(v0, True) = %v, want v0", got)
	}
	if got := e.And(v0, False); got != False {
		t.Errorf("And(v0, False) = %v, want False", got)
	}
	if got := e.Or(v0, True); got != True {
		t.Errorf("Or(v0, True) = %v, want True", got)
	}
	if got := e.Xor(v0, v0); got != False {
		t.Errorf("Xor(v0, v0) = %v, want False", got)
	}
	// commutativity
	if got, want := e.And(v0, v1), e.And(v1, v0); got != want {
		t.Errorf("And not commutative: %v != %v", got, want)
	}
	// De Morgan
	lhs := e.not(e.And(v0, v1))
	rhs := e.Or(e.not(v0), e.not(v1))
	if lhs != rhs {
		t.Errorf("De Morgan failed: not(a&b)=%v, (!a|!b)=%v", lhs, rhs)
	}
}

func TestIteMatchesDerivedOperators(t *testing.T) {
	e := mustEnv(t, 3)
	v0, _ := e.Ithvar(0)
	v1, _ := e.Ithvar(1)
	v2, _ := e.Ithvar(2)

	ite, err := e.Ite(v0, v1, v2)
	if err != nil {
		t.Fatalf("Ite: %v", err)
	}
	want := e.Or(e.And(v0, v1), e.And(e.not(v0), v2))
	if ite != want {
		t.Fatalf("Ite(v0,v1,v2) = %v, want %v (the (f&g)|(!f&h) expansion)", ite, want)
	}
}

func TestExistQuantification(t *testing.T) {
	e := mustEnv(t, 2)
	v0, _ := e.Ithvar(0)
	v1, _ := e.Ithvar(1)
	f := e.And(v0, v1)
	set, err := e.Makeset([]int{0})
	if err != nil {
		t.Fatalf("Makeset: %v", err)
	}
	got, err := e.Exist(f, set)
	if err != nil {
		t.Fatalf("Exist: %v", err)
	}
	if got != v1 {
		t.Fatalf("exists v0 . (v0 & v1) = %v, want v1 (%v)", got, v1)
	}
}

func TestAllQuantification(t *testing.T) {
	e := mustEnv(t, 2)
	v0, _ := e.Ithvar(0)
	v1, _ := e.Ithvar(1)
	f := e.Or(v0, v1)
	set, err := e.Makeset([]int{0})
	if err != nil {
		t.Fatalf("Makeset: %v", err)
	}
	got, err := e.All(f, set)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if got != v1 {
		t.Fatalf("forall v0 . (v0 | v1) = %v, want v1 (%v)", got, v1)
	}
}

func TestAndExistRelationalComposition(t *testing.T) {
	e := mustEnv(t, 2)
	v0, _ := e.Ithvar(0)
	v1, _ := e.Ithvar(1)
	set, err := e.Makeset([]int{0})
	if err != nil {
		t.Fatalf("Makeset: %v", err)
	}
	got := e.AndExist(set, v0, v1)
	want, err := e.Exist(e.And(v0, v1), set)
	if err != nil {
		t.Fatalf("Exist: %v", err)
	}
	if got != want {
		t.Fatalf("AndExist = %v, want %v (the fused result must match Apply+Exist)", got, want)
	}
}

func TestModelAndInfer(t *testing.T) {
	e := mustEnv(t, 2)
	v0, _ := e.Ithvar(0)
	v1, _ := e.Ithvar(1)
	f := e.And(v0, e.not(v1))

	m := e.Model(f)
	if m == False {
		t.Fatalf("Model(f) = False for satisfiable f")
	}
	if e.Implies(f, m) != True {
		t.Fatalf("extracted model does not satisfy f")
	}

	bound, value, err := e.Infer(f, 0)
	if err != nil || !bound || !value {
		t.Fatalf("Infer(f, 0) = (%v, %v, %v), want (true, true, nil)", bound, value, err)
	}
	bound, value, err = e.Infer(f, 1)
	if err != nil || !bound || value {
		t.Fatalf("Infer(f, 1) = (%v, %v, %v), want (true, false, nil)", bound, value, err)
	}

	unbound := v0
	bound, _, err = e.Infer(unbound, 1)
	if err != nil {
		t.Fatalf("Infer: %v", err)
	}
	if bound {
		t.Fatalf("Infer(v0, 1) reported v1 as bound, but v0 alone leaves it free")
	}
}

func TestModelUnsatisfiable(t *testing.T) {
	e := mustEnv(t, 1)
	v0, _ := e.Ithvar(0)
	f := e.And(v0, e.not(v0))
	if got := e.Model(f); got != False {
		t.Fatalf("Model(False-equivalent) = %v, want False", got)
	}
}

func TestSatcount(t *testing.T) {
	e := mustEnv(t, 3)
	v0, _ := e.Ithvar(0)
	v1, _ := e.Ithvar(1)
	_, _ = e.Ithvar(2) // v2 is free in f, satcount must still range over it

	f := e.And(v0, v1)
	n, err := e.Satcount(f)
	if err != nil {
		t.Fatalf("Satcount: %v", err)
	}
	if n.Int64() != 2 {
		t.Fatalf("Satcount(v0&v1) over 3 variables = %v, want 2 (v2 free)", n.Int64())
	}
}

func TestAllsatEnumeratesEverySatisfyingAssignment(t *testing.T) {
	e := mustEnv(t, 2)
	v0, _ := e.Ithvar(0)
	v1, _ := e.Ithvar(1)
	f := e.Or(v0, v1)

	count := 0
	err := e.Allsat(f, func(prof []int) error {
		count++
		if prof[0] == 0 && prof[1] == 0 {
			t.Fatalf("Allsat produced the assignment (0,0), which does not satisfy v0|v1")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Allsat: %v", err)
	}
	if count == 0 {
		t.Fatalf("Allsat found no satisfying assignments for v0|v1")
	}
}

func TestCardinalityAmnAlnExn(t *testing.T) {
	e := mustEnv(t, 3)
	vs := make([]Node, 3)
	for i := range vs {
		vs[i], _ = e.Ithvar(i)
	}

	atMost1 := e.Amn(vs, 1)
	n, err := e.Satcount(atMost1)
	if err != nil {
		t.Fatalf("Satcount: %v", err)
	}
	// 2^3 assignments total; at-most-1-true excludes the C(3,2)+C(3,3)=4 with >=2 true.
	if n.Int64() != 4 {
		t.Fatalf("Satcount(Amn(vs,1)) = %v, want 4", n.Int64())
	}

	atLeast2 := e.Aln(vs, 2)
	n, err = e.Satcount(atLeast2)
	if err != nil {
		t.Fatalf("Satcount: %v", err)
	}
	if n.Int64() != 4 {
		t.Fatalf("Satcount(Aln(vs,2)) = %v, want 4", n.Int64())
	}

	exactly1 := e.Exn(vs, 1)
	n, err = e.Satcount(exactly1)
	if err != nil {
		t.Fatalf("Satcount: %v", err)
	}
	if n.Int64() != 3 {
		t.Fatalf("Satcount(Exn(vs,1)) = %v, want 3", n.Int64())
	}
}

func TestCountComparisons(t *testing.T) {
	e := mustEnv(t, 4)
	a0, _ := e.Ithvar(0)
	a1, _ := e.Ithvar(1)
	b0, _ := e.Ithvar(2)
	b1, _ := e.Ithvar(3)
	as := []Node{a0, a1}
	bs := []Node{b0, b1}

	// count(as) == count(bs) must hold whenever both are all-true or all-false
	// or exactly one true each; check one concrete satisfying assignment by
	// building the conjunction a0&a1&b0&b1 and confirming it implies CountEq.
	allTrue := e.AndN(a0, a1, b0, b1)
	eq := e.CountEq(as, bs)
	if e.Implies(allTrue, eq) != True {
		t.Fatalf("all-true assignment must satisfy CountEq(as, bs)")
	}

	// a0 & !a1 & !b0 & !b1: count(as)=1 > count(bs)=0, so CountGt must hold.
	oneVsZero := e.AndN(a0, e.not(a1), e.not(b0), e.not(b1))
	gt := e.CountGt(as, bs)
	if e.Implies(oneVsZero, gt) != True {
		t.Fatalf("1-vs-0 assignment must satisfy CountGt(as, bs)")
	}
	leq := e.CountLeq(as, bs)
	if e.Implies(oneVsZero, leq) == True {
		t.Fatalf("1-vs-0 assignment must NOT satisfy CountLeq(as, bs)")
	}
}

func TestFixedPointLeastFromFalse(t *testing.T) {
	e := mustEnv(t, 2)
	v0, _ := e.Ithvar(0)
	// transformer: x -> x | v0, starting from False, converges to v0 in one step.
	got := e.Fp(False, func(x Node) Node { return e.Or(x, v0) })
	if got != v0 {
		t.Fatalf("Fp(False, x|v0) = %v, want %v", got, v0)
	}
}

func TestRename(t *testing.T) {
	e := mustEnv(t, 4)
	v0, _ := e.Ithvar(0)
	v1, _ := e.Ithvar(1)
	v2, _ := e.Ithvar(2)
	v3, _ := e.Ithvar(3)
	f := e.And(v0, e.not(v1))

	r, err := e.NewReplacer([]int{0, 1}, []int{2, 3})
	if err != nil {
		t.Fatalf("NewReplacer: %v", err)
	}
	got, err := e.Rename(f, r)
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	want := e.And(v2, e.not(v3))
	if got != want {
		t.Fatalf("Rename(v0 & !v1, 0->2 1->3) = %v, want %v", got, want)
	}
}

func TestNewReplacerRejectsCollidingVariables(t *testing.T) {
	e := mustEnv(t, 2)
	if _, err := e.NewReplacer([]int{0}, []int{1}); err != nil {
		t.Fatalf("NewReplacer([0],[1]): %v", err)
	}
	// 0 appears in oldvars and 1 in newvars is fine on its own, but renaming
	// 0->1 while also implicitly needing 1's old identity is where the
	// teacher's checks matter; exercise the straightforward duplicate case.
	if _, err := e.NewReplacer([]int{0, 0}, []int{1, 1}); err == nil {
		t.Fatalf("NewReplacer with duplicate oldvars should fail")
	}
}
