// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import (
	"fmt"
	"strings"
)

// Stats renders node-table occupancy and per-cache hit/miss counters, in the
// same spirit as the teacher's stdio.go report: a quick operational summary
// for diagnosing whether an Env's sizing configuration fits its workload.
func (e *Env) Stats() string {
	e.mu.RLock()
	nodesUsed := len(e.nodes)
	varnum := e.varnum
	e.mu.RUnlock()

	var b strings.Builder
	fmt.Fprintf(&b, "Env stats:\n")
	fmt.Fprintf(&b, "  variables    %d\n", varnum)
	fmt.Fprintf(&b, "  nodes        %d\n", nodesUsed)
	fmt.Fprintf(&b, "  produced     %d\n", e.produced)
	fmt.Fprintf(&b, "%s", cacheLine("apply  ", e.applycache.table4))
	fmt.Fprintf(&b, "%s", cacheLine("ite    ", e.itecache.table4))
	fmt.Fprintf(&b, "%s", cacheLine("quant  ", e.quantcache.table4))
	fmt.Fprintf(&b, "%s", cacheLine("appex  ", e.appexcache.table4))
	fmt.Fprintf(&b, "%s", cacheLine3("replace", e.replacecache.table3))
	return b.String()
}

func cacheLine(name string, t *table4) string {
	return fmt.Sprintf("  cache %s  size=%-8d hit=%-8d miss=%-8d\n", name, len(t.entries), t.hit, t.miss)
}

func cacheLine3(name string, t *table3) string {
	return fmt.Sprintf("  cache %s  size=%-8d hit=%-8d miss=%-8d\n", name, len(t.entries), t.hit, t.miss)
}
