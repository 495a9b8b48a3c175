// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package bdd defines a concrete type for Reduced Ordered Binary Decision
Diagrams (ROBDD), a canonical data structure for representing Boolean
functions over a fixed set of variables.

Basics

Each Env has a fixed (but growable) number of variables, Varnum, and each
variable is represented by an integer index in the interval [0..Varnum),
called a level. Operations over the BDD return a Node: an opaque handle into
the Env's node arena, with the convention that handle 0 is the constant False
and handle 1 is the constant True.

Canonical sharing

The Env maintains a unicity table mapping every (level, low, high) triple ever
constructed to a single handle, so that two nodes denote the same Boolean
function if and only if they are the same handle. This is the classical
hash-consing discipline; see mkChoice in node.go.

No garbage collection

Unlike the BuDDy-style C library this package descends from, nodes are never
reclaimed: the arena only grows. Reordering, reference counting, and
mark-sweep collection of unreachable nodes are deliberately out of scope (see
DESIGN.md) — long-running solvers that need to bound memory should create a
fresh Env per query instead.
*/
package bdd
