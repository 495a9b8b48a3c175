// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import "testing"

// nqueensCount builds the N-queens constraint as a conjunction of Exn/Amn
// cardinality constraints over one Boolean variable per square (var index
// row*n+col: true means a queen occupies that square), in the style of the
// teacher's nqueens_test.go, and checks the known solution counts.
func nqueensCount(t *testing.T, n int) int64 {
	t.Helper()
	e, err := New(n * n)
	if err != nil {
		t.Fatalf("New(%d): %v", n*n, err)
	}
	sq := func(r, c int) (Node, error) { return e.Ithvar(r*n + c) }

	var rowCsts, colCsts, diagCsts []Node

	for r := 0; r < n; r++ {
		row := make([]Node, n)
		for c := 0; c < n; c++ {
			row[c], err = sq(r, c)
			if err != nil {
				t.Fatalf("sq(%d,%d): %v", r, c, err)
			}
		}
		rowCsts = append(rowCsts, e.Exn(row, 1))
	}
	for c := 0; c < n; c++ {
		col := make([]Node, n)
		for r := 0; r < n; r++ {
			col[r], err = sq(r, c)
			if err != nil {
				t.Fatalf("sq(%d,%d): %v", r, c, err)
			}
		}
		colCsts = append(colCsts, e.Amn(col, 1))
	}
	// diagonals: group squares by r-c and by r+c, at most one queen each.
	diagDown := make(map[int][]Node)
	diagUp := make(map[int][]Node)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			v, err := sq(r, c)
			if err != nil {
				t.Fatalf("sq(%d,%d): %v", r, c, err)
			}
			diagDown[r-c] = append(diagDown[r-c], v)
			diagUp[r+c] = append(diagUp[r+c], v)
		}
	}
	for _, vs := range diagDown {
		if len(vs) > 1 {
			diagCsts = append(diagCsts, e.Amn(vs, 1))
		}
	}
	for _, vs := range diagUp {
		if len(vs) > 1 {
			diagCsts = append(diagCsts, e.Amn(vs, 1))
		}
	}

	all := e.AndN(append(append(append([]Node{}, rowCsts...), colCsts...), diagCsts...)...)
	n64, err := e.Satcount(all)
	if err != nil {
		t.Fatalf("Satcount: %v", err)
	}
	return n64.Int64()
}

func TestNQueensSolutionCounts(t *testing.T) {
	cases := []struct {
		n    int
		want int64
	}{
		{1, 1},
		{4, 2},
		{5, 10},
	}
	for _, tc := range cases {
		if got := nqueensCount(t, tc.n); got != tc.want {
			t.Errorf("nqueens(%d) = %d, want %d", tc.n, got, tc.want)
		}
	}
}
