// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

// Memoization tables for the recursive engine operations. Each table is a
// flat, prime-sized slice addressed by a pairing-function hash of its key,
// following the teacher's cache.go; a collision simply evicts the previous
// entry (these are caches, not an index of record).

func pair(a, b, len int) int {
	ua, ub := uint64(a), uint64(b)
	return int((((ua+ub)*(ua+ub+1))/2 + ua) % uint64(len))
}

func triple(a, b, c, len int) int {
	return pair(c, pair(a, b, len), len)
}

// data3n/data4n are the entry shapes for a 3- and 4-ary memo key respectively.

type data3n struct {
	a, c, res int
	valid     bool
}

type data4n struct {
	a, b, c, res int
	valid        bool
}

type table3 struct {
	entries []data3n
	hit     int
	miss    int
}

func newTable3(size int) *table3 {
	return &table3{entries: make([]data3n, primeGte(size))}
}

func (t *table3) reset() {
	for i := range t.entries {
		t.entries[i].valid = false
	}
}

func (t *table3) get(a, c int) (int, bool) {
	e := t.entries[a%len(t.entries)]
	if e.valid && e.a == a && e.c == c {
		t.hit++
		return e.res, true
	}
	t.miss++
	return 0, false
}

func (t *table3) set(a, c, res int) {
	t.entries[a%len(t.entries)] = data3n{a: a, c: c, res: res, valid: true}
}

type table4 struct {
	entries []data4n
	hit     int
	miss    int
}

func newTable4(size int) *table4 {
	return &table4{entries: make([]data4n, primeGte(size))}
}

func (t *table4) reset() {
	for i := range t.entries {
		t.entries[i].valid = false
	}
}

func (t *table4) getTriple(a, b, c int) (int, bool) {
	e := t.entries[triple(a, b, c, len(t.entries))]
	if e.valid && e.a == a && e.b == b && e.c == c {
		t.hit++
		return e.res, true
	}
	t.miss++
	return 0, false
}

func (t *table4) setTriple(a, b, c, res int) {
	t.entries[triple(a, b, c, len(t.entries))] = data4n{a: a, b: b, c: c, res: res, valid: true}
}

func (t *table4) getPair(a, b int) (int, bool) {
	e := t.entries[pair(a, b, len(t.entries))]
	if e.valid && e.a == a && e.b == b {
		t.hit++
		return e.res, true
	}
	t.miss++
	return 0, false
}

func (t *table4) setPair(a, b, res int) {
	t.entries[pair(a, b, len(t.entries))] = data4n{a: a, b: b, res: res, valid: true}
}

func (t *table4) getMod(n int) (int, bool) {
	e := t.entries[n%len(t.entries)]
	if e.valid && e.a == n {
		t.hit++
		return e.res, true
	}
	t.miss++
	return 0, false
}

func (t *table4) setMod(n, res int) {
	t.entries[n%len(t.entries)] = data4n{a: n, res: res, valid: true}
}

// applyCache memoizes binary Apply results keyed by (left, right, op), and Not
// results keyed by n alone (tagged with opnot so the two never collide).
type applyCache struct{ *table4 }

func (c *applyCache) matchApply(left, right int, op Operator) (Node, bool) {
	res, ok := c.table4.getTriple(left, right, int(op))
	return Node(res), ok
}

func (c *applyCache) setApply(left, right int, op Operator, res Node) {
	c.table4.setTriple(left, right, int(op), int(res))
}

func (c *applyCache) matchNot(n int) (Node, bool) {
	e := c.entries[n%len(c.entries)]
	if e.valid && e.a == n && e.c == int(opnot) {
		c.hit++
		return Node(e.res), true
	}
	c.miss++
	return 0, false
}

func (c *applyCache) setNot(n int, res Node) {
	c.entries[n%len(c.entries)] = data4n{a: n, c: int(opnot), res: int(res), valid: true}
}

// iteCache memoizes Ite(f,g,h) keyed by the triple itself.
type iteCache struct{ *table4 }

func (c *iteCache) match(f, g, h int) (Node, bool) {
	res, ok := c.getTriple(f, g, h)
	return Node(res), ok
}

func (c *iteCache) set(f, g, h int, res Node) {
	c.setTriple(f, g, h, int(res))
}

// quantCache memoizes Exist/All results keyed by (n, quantsetID); quantset
// marks, for each level, which "generation" of variable set is currently
// being quantified over, the same trick the teacher uses to avoid rehashing
// a fresh bitset on every call.
type quantCache struct {
	*table4
	quantset   []int32
	quantsetID int32
	quantlast  int32
	id         int
}

func newQuantCache(size, varnum int) *quantCache {
	return &quantCache{table4: newTable4(size), quantset: make([]int32, varnum)}
}

func (c *quantCache) growQuantset(varnum int) {
	c.quantset = append(c.quantset, make([]int32, varnum-len(c.quantset))...)
}

func (c *quantCache) match(n, varset int) (Node, bool) {
	e := c.entries[pair(n, varset, len(c.entries))]
	if e.valid && e.a == n && e.b == varset && e.c == c.id {
		c.hit++
		return Node(e.res), true
	}
	c.miss++
	return 0, false
}

func (c *quantCache) set(n, varset int, res Node) {
	c.entries[pair(n, varset, len(c.entries))] = data4n{a: n, b: varset, c: c.id, res: int(res), valid: true}
}

// appexCache memoizes the fused apply+exist of AppEx, keyed by (left, right, id)
// where id folds in both the combining operator and the varset generation.
type appexCache struct {
	*table4
	op Operator
	id int
}

func (c *appexCache) match(left, right int) (Node, bool) {
	e := c.entries[triple(left, right, c.id, len(c.entries))]
	if e.valid && e.a == left && e.b == right && e.c == c.id {
		c.hit++
		return Node(e.res), true
	}
	c.miss++
	return 0, false
}

func (c *appexCache) set(left, right int, res Node) {
	c.entries[triple(left, right, c.id, len(c.entries))] = data4n{a: left, b: right, c: c.id, res: int(res), valid: true}
}

// replaceCache memoizes Rename results keyed by n, tagged with the id of the
// Replacer in use so two distinct renamings don't collide.
type replaceCache struct {
	*table3
	id int
}

var nextReplacerID = 1

func (e *Env) cacheInit(c *configs) {
	size := primeGte(c.cachesize)
	e.applycache = &applyCache{newTable4(size)}
	e.itecache = &iteCache{newTable4(size)}
	e.quantcache = newQuantCache(size, int(e.varnum))
	e.appexcache = &appexCache{table4: newTable4(size)}
	e.replacecache = &replaceCache{table3: newTable3(size)}
}
