// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"sort"
	"sync"
)

// Node is a handle to a node in the shared ROBDD arena of some Env. Handle 0
// is always the constant False and handle 1 is always the constant True;
// equality of handles coincides with semantic equality of the functions they
// denote (see mkChoice).
type Node int

// False and True name the two terminal handles, valid in every Env.
const (
	False Node = 0
	True  Node = 1
)

// node is the internal representation of a Choice(high, sym, low) vertex.
// Terminals occupy slots 0 and 1 and carry level equal to varnum, so that any
// comparison against a terminal's level behaves as "beyond the last variable".
type node struct {
	level int32
	low   Node
	high  Node
}

type nodeKey struct {
	level int32
	low   Node
	high  Node
}

// Env owns a node arena and the unicity table that hash-conses it. All Node
// handles returned by its methods remain valid for the lifetime of the Env;
// there is no reclamation of unreachable nodes (see doc.go).
type Env struct {
	mu     sync.RWMutex
	nodes  []node
	unique map[nodeKey]Node
	varnum int32
	varset [][2]Node // varset[i] = (var i positive handle, var i negative handle)

	produced int // total nodes created by mkChoice; hash-cons hits are not counted
	err      error

	configs
	applycache   *applyCache
	itecache     *iteCache
	quantcache   *quantCache
	appexcache   *appexCache
	replacecache *replaceCache
}

// New returns a fresh Env with varnum Boolean variables at levels
// [0..varnum). Optional configuration functions (Nodesize, Cachesize, ...)
// tune the initial table/cache sizing.
func New(varnum int, options ...func(*configs)) (*Env, error) {
	if varnum < 0 || varnum > int(maxVar) {
		return nil, errBadVarnum(varnum)
	}
	c := makeConfigs(varnum)
	for _, f := range options {
		f(c)
	}
	e := &Env{
		configs: *c,
		varnum:  int32(varnum),
	}
	e.nodes = make([]node, 2, c.nodesize)
	e.unique = make(map[nodeKey]Node, c.nodesize)
	// terminals: level is set past every real variable so level comparisons
	// in apply/ite treat them as "no more choices to make".
	e.nodes[False] = node{level: int32(varnum), low: False, high: False}
	e.nodes[True] = node{level: int32(varnum), low: True, high: True}
	e.varset = make([][2]Node, varnum)
	for k := 0; k < varnum; k++ {
		e.varset[k] = [2]Node{e.mkChoice(int32(k), False, True), e.mkChoice(int32(k), True, False)}
	}
	e.cacheInit(c)
	return e, nil
}

// Varnum returns the number of declared variables.
func (e *Env) Varnum() int { return int(e.varnum) }

// SetVarnum grows the number of declared variables. It may only increase the
// count; shrinking would invalidate existing handles built over the dropped
// levels.
func (e *Env) SetVarnum(num int) error {
	if num < int(e.varnum) {
		return errShrinkVarnum(num, int(e.varnum))
	}
	if num > int(maxVar) {
		return errBadVarnum(num)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	old := int(e.varnum)
	// terminals' level must stay past the last variable
	e.nodes[False].level = int32(num)
	e.nodes[True].level = int32(num)
	e.varnum = int32(num)
	e.varset = append(e.varset, make([][2]Node, num-old)...)
	e.quantcache.growQuantset(num)
	for k := old; k < num; k++ {
		e.varset[k] = [2]Node{e.mkChoice(int32(k), False, True), e.mkChoice(int32(k), True, False)}
	}
	return nil
}

// mkConst returns the handle of the requested terminal.
func (e *Env) mkConst(v bool) Node {
	if v {
		return True
	}
	return False
}

// mkChoice is the canonicalizing node constructor: Choice(high, sym, low).
// The reduction rule is applied first (low == high collapses to the shared
// child); otherwise the (level, low, high) triple is hash-consed against the
// unicity table so structurally equal nodes always share one handle.
func (e *Env) mkChoice(level int32, low, high Node) Node {
	if low == high {
		return low
	}
	key := nodeKey{level, low, high}
	e.mu.RLock()
	if h, ok := e.unique[key]; ok {
		e.mu.RUnlock()
		return h
	}
	e.mu.RUnlock()
	e.mu.Lock()
	defer e.mu.Unlock()
	// re-check under the write lock: another goroutine may have inserted the
	// same triple between the unlock above and here (see §5 parallel apply).
	if h, ok := e.unique[key]; ok {
		return h
	}
	e.nodes = append(e.nodes, node{level, low, high})
	h := Node(len(e.nodes) - 1)
	e.unique[key] = h
	e.produced++
	return h
}

// find returns the canonical handle for a structurally equal node, were one
// to be built from the given triple, without actually inserting it.
func (e *Env) find(level int32, low, high Node) (Node, bool) {
	if low == high {
		return low, true
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	h, ok := e.unique[nodeKey{level, low, high}]
	return h, ok
}

// Size returns the number of unique nodes currently in the table, including
// the two terminals.
func (e *Env) Size() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.nodes)
}

func (e *Env) level(n Node) int32 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.nodes[n].level
}

// Var returns the id of the variable tested at n. Meaningful only when n is
// not a terminal (IsTerminal reports false); terminals report Varnum().
func (e *Env) Var(n Node) int { return int(e.level(n)) }

// IsTerminal reports whether n is one of the two constant handles.
func (e *Env) IsTerminal(n Node) bool { return n == False || n == True }

// Low returns the false branch of n.
func (e *Env) Low(n Node) Node {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.nodes[n].low
}

// High returns the true branch of n.
func (e *Env) High(n Node) Node {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.nodes[n].high
}

// Ithvar returns the node testing the i'th variable positively.
func (e *Env) Ithvar(i int) (Node, error) {
	if i < 0 || i >= int(e.varnum) {
		return False, errBadVar(i, int(e.varnum))
	}
	return e.varset[i][0], nil
}

// NIthvar returns the node testing the i'th variable negatively.
func (e *Env) NIthvar(i int) (Node, error) {
	if i < 0 || i >= int(e.varnum) {
		return False, errBadVar(i, int(e.varnum))
	}
	return e.varset[i][1], nil
}

// Makeset returns the conjunction (cube) of the positive literals in varset;
// it is the representation used by Exist/AppEx to name a set of variables to
// quantify over. The ids may come in any order and may repeat.
func (e *Env) Makeset(varset []int) (Node, error) {
	sorted := append([]int(nil), varset...)
	sort.Ints(sorted)
	res := True
	for i := len(sorted) - 1; i >= 0; i-- {
		if sorted[i] < 0 || sorted[i] >= int(e.varnum) {
			return False, errBadVar(sorted[i], int(e.varnum))
		}
		if i+1 < len(sorted) && sorted[i] == sorted[i+1] {
			continue
		}
		res = e.mkChoice(int32(sorted[i]), False, res)
	}
	return res, nil
}
