// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import "testing"

// TestReachabilityFixedPoint computes the set of states reachable from a
// single initial state in a tiny transition system, in the style of the
// teacher's milner_test.go: a least fixed point over AppEx-driven image
// computation plus Rename to shuttle the "next state" vars back onto the
// "current state" vars between iterations.
//
// States are 2 bits (vars 0,1 = current, vars 2,3 = next); the system is a
// 4-cycle 00 -> 01 -> 11 -> 10 -> 00.
func TestReachabilityFixedPoint(t *testing.T) {
	e := mustEnv(t, 4)
	c0, _ := e.Ithvar(0)
	c1, _ := e.Ithvar(1)
	n0, _ := e.Ithvar(2)
	n1, _ := e.Ithvar(3)

	state := func(b0, b1 bool, v0, v1 Node) Node {
		lit := func(v Node, want bool) Node {
			if want {
				return v
			}
			return e.not(v)
		}
		return e.And(lit(v0, b0), lit(v1, b1))
	}

	cur := func(b0, b1 bool) Node { return state(b0, b1, c0, c1) }
	nxt := func(b0, b1 bool) Node { return state(b0, b1, n0, n1) }

	trans := e.OrN(
		e.And(cur(false, false), nxt(false, true)),
		e.And(cur(false, true), nxt(true, true)),
		e.And(cur(true, true), nxt(true, false)),
		e.And(cur(true, false), nxt(false, false)),
	)

	shiftBack, err := e.NewReplacer([]int{2, 3}, []int{0, 1})
	if err != nil {
		t.Fatalf("NewReplacer: %v", err)
	}

	curSet, err := e.Makeset([]int{0, 1})
	if err != nil {
		t.Fatalf("Makeset: %v", err)
	}

	init := cur(false, false)
	reach := e.Fp(init, func(r Node) Node {
		image := e.AndExist(curSet, r, trans)
		imageOnCurrentVars, err := e.Rename(image, shiftBack)
		if err != nil {
			t.Fatalf("Rename: %v", err)
		}
		return e.Or(r, imageOnCurrentVars)
	})

	for _, s := range []struct{ b0, b1 bool }{{false, false}, {false, true}, {true, true}, {true, false}} {
		lit := cur(s.b0, s.b1)
		if e.Implies(lit, reach) != True {
			t.Fatalf("state (%v,%v) should be reachable but is not implied by the fixed point", s.b0, s.b1)
		}
	}
	n, err := e.Satcount(reach)
	if err != nil {
		t.Fatalf("Satcount: %v", err)
	}
	// reach is over vars 0,1 only (free in 2,3), so satcount counts 4 * 2^2.
	if n.Int64() != 16 {
		t.Fatalf("Satcount(reach) = %v, want 16 (4 reachable states over a 4-var Env)", n.Int64())
	}
}
