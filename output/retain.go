// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package output

import "robdd/bdd"

// RetainChoices implements the `-c/--retain-choices` post-pass the Design
// Notes describe (§9 "Truth table filtering"): it prunes Choice nodes whose
// branch to the opposite terminal would never be reported under filter,
// producing a new canonical BDD rather than mutating the existing one.
// FilterAny retains every node (no branch is ever "the wrong terminal").
func RetainChoices(env *bdd.Env, root bdd.Node, filter Filter) (bdd.Node, error) {
	if filter == FilterAny {
		return root, nil
	}
	reaches := make(map[bdd.Node]bool)
	var canReach func(n bdd.Node) bool
	canReach = func(n bdd.Node) bool {
		if v, ok := reaches[n]; ok {
			return v
		}
		var res bool
		if env.IsTerminal(n) {
			res = filter.matches(n)
		} else {
			res = canReach(env.Low(n)) || canReach(env.High(n))
		}
		reaches[n] = res
		return res
	}

	pruned := make(map[bdd.Node]bdd.Node)
	var prune func(n bdd.Node) (bdd.Node, error)
	prune = func(n bdd.Node) (bdd.Node, error) {
		if res, ok := pruned[n]; ok {
			return res, nil
		}
		if env.IsTerminal(n) {
			pruned[n] = n
			return n, nil
		}
		loOK, hiOK := canReach(env.Low(n)), canReach(env.High(n))
		var res bdd.Node
		var err error
		switch {
		case loOK && hiOK:
			lo, e1 := prune(env.Low(n))
			if e1 != nil {
				return bdd.False, e1
			}
			hi, e2 := prune(env.High(n))
			if e2 != nil {
				return bdd.False, e2
			}
			v, e3 := env.Ithvar(env.Var(n))
			if e3 != nil {
				return bdd.False, e3
			}
			res, err = env.Ite(v, hi, lo)
		case loOK:
			res, err = prune(env.Low(n))
		case hiOK:
			res, err = prune(env.High(n))
		default:
			// n itself never reaches the filter terminal; leave it as is,
			// the caller's own reachability check will simply never select it.
			res, err = n, nil
		}
		if err != nil {
			return bdd.False, err
		}
		pruned[n] = res
		return res, nil
	}
	return prune(root)
}
