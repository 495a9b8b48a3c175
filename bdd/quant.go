// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import "fmt"

const cacheidExist = 0x0
const cacheidAppEx = 0x3

// quantset2cache marks, for every variable named in varset (a cube built by
// Makeset), the current quantification generation, and records the deepest
// level among them in quantlast. Using a generation counter instead of a
// fresh bitset per call lets quant/appquant ask "is this level in the
// current varset?" in O(1) without rebuilding state on every Exist.
func (e *Env) quantset2cache(varset Node) error {
	if varset < 2 {
		return fmt.Errorf("bdd: empty or constant varset")
	}
	e.quantcache.quantsetID++
	if e.quantcache.quantsetID == 1<<30 {
		e.quantcache.quantset = make([]int32, e.varnum)
		e.quantcache.quantsetID = 1
	}
	for n := varset; n > 1; n = e.High(n) {
		lvl := e.level(n)
		e.quantcache.quantset[lvl] = e.quantcache.quantsetID
		e.quantcache.quantlast = lvl
	}
	return nil
}

// Exist returns the existential quantification of n over the variables named
// by varset (a cube built with Makeset).
func (e *Env) Exist(n, varset Node) (Node, error) {
	if err := e.checkNode(n); err != nil {
		return False, err
	}
	if err := e.checkNode(varset); err != nil {
		return False, err
	}
	if varset < 2 {
		return n, nil
	}
	if err := e.quantset2cache(varset); err != nil {
		return False, err
	}
	e.quantcache.id = cacheidExist
	return e.quant(n, varset), nil
}

func (e *Env) quant(n, varset Node) Node {
	if n < 2 || e.level(n) > e.quantcache.quantlast {
		return n
	}
	if res, ok := e.quantcache.match(int(n), int(varset)); ok {
		return res
	}
	low := e.quant(e.Low(n), varset)
	high := e.quant(e.High(n), varset)
	var res Node
	if e.quantcache.quantset[e.level(n)] == e.quantcache.quantsetID {
		res = e.apply(low, high, OPor)
	} else {
		res = e.mkChoice(e.level(n), low, high)
	}
	e.quantcache.set(int(n), int(varset), res)
	return res
}

// All returns the universal quantification of n over varset, by De Morgan
// duality: all(vs, b) = not(exists(vs, not(b))).
func (e *Env) All(n, varset Node) (Node, error) {
	neg, err := e.Not(n)
	if err != nil {
		return False, err
	}
	ex, err := e.Exist(neg, varset)
	if err != nil {
		return False, err
	}
	return e.not(ex), nil
}

// ExistList quantifies n existentially over every variable id in vars with a
// single Exist over their Makeset cube; the order of vars does not affect the
// result.
func (e *Env) ExistList(n Node, vars []int) (Node, error) {
	varset, err := e.Makeset(vars)
	if err != nil {
		return False, err
	}
	return e.Exist(n, varset)
}

func (e *Env) AllList(n Node, vars []int) (Node, error) {
	varset, err := e.Makeset(vars)
	if err != nil {
		return False, err
	}
	return e.All(n, varset)
}

// AppEx applies op to left and right and existentially quantifies the result
// over varset in one fused bottom-up pass, which is considerably cheaper
// than Apply followed by Exist because intermediate nodes above the
// quantified variables are never built. When op is OPand this computes the
// relational composition (exists vs . left & right) of two relations.
func (e *Env) AppEx(left, right Node, op Operator, varset Node) (Node, error) {
	if op > OPnand {
		return False, fmt.Errorf("bdd: operator %s not supported in AppEx", op)
	}
	if err := e.checkNode(varset); err != nil {
		return False, err
	}
	if varset < 2 {
		return e.Apply(left, right, op)
	}
	if err := e.checkNode(left); err != nil {
		return False, err
	}
	if err := e.checkNode(right); err != nil {
		return False, err
	}
	if err := e.quantset2cache(varset); err != nil {
		return False, err
	}
	e.appexcache.op = op
	e.appexcache.id = (int(varset) << 2) | int(op)
	e.quantcache.id = (e.appexcache.id << 3) | cacheidAppEx
	return e.appquant(left, right, varset), nil
}

// AndExist is the common "relational composition" instance of AppEx.
func (e *Env) AndExist(varset, left, right Node) Node {
	res, _ := e.AppEx(left, right, OPand, varset)
	return res
}

// appquant's per-operator shortcuts mirror Apply's, except that whichever
// operand survives a shortcut still needs quantifying away (it was never
// passed through Apply), hence the explicit quant(...) calls in place of
// returning the operand unchanged.
func (e *Env) appquant(left, right, varset Node) Node {
	op := e.appexcache.op
	switch op {
	case OPand:
		switch {
		case left == False || right == False:
			return False
		case left == right:
			return e.quant(left, varset)
		case left == True:
			return e.quant(right, varset)
		case right == True:
			return e.quant(left, varset)
		}
	case OPor:
		switch {
		case left == True || right == True:
			return True
		case left == right:
			return e.quant(left, varset)
		case left == False:
			return e.quant(right, varset)
		case right == False:
			return e.quant(left, varset)
		}
	case OPxor:
		switch {
		case left == right:
			return False
		case left == False:
			return e.quant(right, varset)
		case right == False:
			return e.quant(left, varset)
		}
	case OPnand:
		if left == False || right == False {
			return True
		}
	case OPnor:
		if left == True || right == True {
			return False
		}
	}
	if left < 2 && right < 2 {
		return Node(opres[op][left][right])
	}
	if e.level(left) > e.quantcache.quantlast && e.level(right) > e.quantcache.quantlast {
		return e.apply(left, right, e.appexcache.op)
	}
	if res, ok := e.appexcache.match(int(left), int(right)); ok {
		return res
	}
	leftlvl, rightlvl := e.level(left), e.level(right)
	var res Node
	switch {
	case leftlvl == rightlvl:
		low := e.appquant(e.Low(left), e.Low(right), varset)
		high := e.appquant(e.High(left), e.High(right), varset)
		res = e.quantOrChoice(leftlvl, low, high)
	case leftlvl < rightlvl:
		low := e.appquant(e.Low(left), right, varset)
		high := e.appquant(e.High(left), right, varset)
		res = e.quantOrChoice(leftlvl, low, high)
	default:
		low := e.appquant(left, e.Low(right), varset)
		high := e.appquant(left, e.High(right), varset)
		res = e.quantOrChoice(rightlvl, low, high)
	}
	e.appexcache.set(int(left), int(right), res)
	return res
}

func (e *Env) quantOrChoice(level int32, low, high Node) Node {
	if e.quantcache.quantset[level] == e.quantcache.quantsetID {
		return e.apply(low, high, OPor)
	}
	return e.mkChoice(level, low, high)
}
