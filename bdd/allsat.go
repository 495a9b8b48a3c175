// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import "fmt"

// Allsat iterates through all legal variable assignments for n and calls f
// on each of them. f receives a slice of length Varnum whose entries are 0
// (false), 1 (true) or -1 (don't care, i.e. either value satisfies n).
// Iteration stops early, returning f's error, if f returns a non-nil error.
func (e *Env) Allsat(n Node, f func([]int) error) error {
	if err := e.checkNode(n); err != nil {
		return err
	}
	prof := make([]int, e.varnum)
	for k := range prof {
		prof[k] = -1
	}
	return e.allsat(n, prof, f)
}

func (e *Env) allsat(n Node, prof []int, f func([]int) error) error {
	if n == True {
		return f(prof)
	}
	if n == False {
		return nil
	}
	if low := e.Low(n); low != False {
		prof[e.level(n)] = 0
		for v := e.level(low) - 1; v > e.level(n); v-- {
			prof[v] = -1
		}
		if err := e.allsat(low, prof, f); err != nil {
			return err
		}
	}
	if high := e.High(n); high != False {
		prof[e.level(n)] = 1
		for v := e.level(high) - 1; v > e.level(n); v-- {
			prof[v] = -1
		}
		if err := e.allsat(high, prof, f); err != nil {
			return err
		}
	}
	return nil
}

// Allnodes applies f to every node reachable from the nodes in roots, or to
// every node in the Env's arena if roots is empty. f receives the id, level,
// and low/high successor ids of each node; the two terminals always have id
// False (0) and True (1).
func (e *Env) Allnodes(f func(id, level, low, high int) error, roots ...Node) error {
	for _, r := range roots {
		if err := e.checkNode(r); err != nil {
			return fmt.Errorf("bdd: Allnodes: %w", err)
		}
	}
	if len(roots) == 0 {
		return e.allnodesAll(f)
	}
	return e.allnodesFrom(f, roots)
}

func (e *Env) allnodesAll(f func(id, level, low, high int) error) error {
	if err := f(int(False), int(e.varnum), int(False), int(False)); err != nil {
		return err
	}
	if err := f(int(True), int(e.varnum), int(True), int(True)); err != nil {
		return err
	}
	e.mu.RLock()
	nodes := append([]node(nil), e.nodes...)
	e.mu.RUnlock()
	for id := 2; id < len(nodes); id++ {
		n := nodes[id]
		if err := f(id, int(n.level), int(n.low), int(n.high)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Env) allnodesFrom(f func(id, level, low, high int) error, roots []Node) error {
	seen := make(map[Node]bool)
	var visit func(Node) error
	visit = func(n Node) error {
		if seen[n] {
			return nil
		}
		seen[n] = true
		if n == False {
			return f(int(False), int(e.varnum), int(False), int(False))
		}
		if n == True {
			return f(int(True), int(e.varnum), int(True), int(True))
		}
		if err := visit(e.Low(n)); err != nil {
			return err
		}
		if err := visit(e.High(n)); err != nil {
			return err
		}
		return f(int(n), int(e.level(n)), int(e.Low(n)), int(e.High(n)))
	}
	for _, r := range roots {
		if err := visit(r); err != nil {
			return err
		}
	}
	return nil
}
