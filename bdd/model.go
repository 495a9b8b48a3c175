// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

// Model picks one satisfying conjunction of a, preferring the high branch at
// every choice point. The result is False iff a is unsatisfiable.
func (e *Env) Model(a Node) Node {
	memo := make(map[Node]Node)
	return e.model(a, memo)
}

func (e *Env) model(n Node, memo map[Node]Node) Node {
	if n < 2 {
		return n
	}
	if res, ok := memo[n]; ok {
		return res
	}
	v, _ := e.Ithvar(int(e.level(n)))
	l := e.model(e.Low(n), memo)
	h := e.model(e.High(n), memo)
	var res Node
	switch {
	case h != False:
		res = e.And(h, v)
	case l != False:
		res = e.And(e.not(v), l)
	default:
		res = False
	}
	memo[n] = res
	return res
}

// Infer reports whether v's truth value is forced by a, and if so what it is.
// It is implemented via the two implications a=>v and a=>!v: exactly one can
// be identically ⊤ when a is satisfiable and v is forced; neither is when v
// is unbound.
func (e *Env) Infer(a Node, v int) (bound bool, value bool, err error) {
	vn, err := e.Ithvar(v)
	if err != nil {
		return false, false, err
	}
	nvn := e.not(vn)
	if e.Implies(a, vn) == True {
		return true, true, nil
	}
	if e.Implies(a, nvn) == True {
		return true, false, nil
	}
	return false, false, nil
}
