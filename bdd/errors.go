// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import "fmt"

// Error returns the most recent error recorded on the Env, or the empty
// string if none was ever recorded. A recorded error is never cleared.
func (e *Env) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

// Errored reports whether an error has been recorded on e.
func (e *Env) Errored() bool {
	return e.err != nil
}

func (e *Env) seterror(err error) Node {
	e.err = err
	return False
}

func errBadVarnum(n int) error {
	return fmt.Errorf("bdd: bad number of variables (%d)", n)
}

func errShrinkVarnum(want, have int) error {
	return fmt.Errorf("bdd: cannot shrink varnum from %d to %d", have, want)
}

func errBadVar(i, varnum int) error {
	return fmt.Errorf("bdd: variable %d out of range [0..%d)", i, varnum)
}

func errBadNode(n Node, size int) error {
	return fmt.Errorf("bdd: node handle %d out of range [0..%d)", n, size)
}
