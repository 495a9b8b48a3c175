// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

// configs holds the tunable parameters of an Env, set through functional
// options passed to New.
type configs struct {
	nodesize  int // initial capacity of the node arena
	cachesize int // initial size of each operation cache
}

func makeConfigs(varnum int) *configs {
	return &configs{
		nodesize:  2*varnum + 2,
		cachesize: 10000,
	}
}

// Nodesize sets a preferred initial capacity for the node arena. By default
// the arena starts large enough to hold the two terminals and the variable
// nodes created by New.
func Nodesize(size int) func(*configs) {
	return func(c *configs) {
		if size >= 2 {
			c.nodesize = size
		}
	}
}

// Cachesize sets the initial number of entries in each operation cache
// (apply, ite, quantification, appex, replace). The default is 10000.
func Cachesize(size int) func(*configs) {
	return func(c *configs) {
		c.cachesize = size
	}
}
