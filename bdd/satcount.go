// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

import "math/big"

// Satcount computes the number of satisfying variable assignments of n over
// the full variable range [0..Varnum), using arbitrary-precision arithmetic
// to avoid overflow on large diagrams.
func (e *Env) Satcount(n Node) (*big.Int, error) {
	if err := e.checkNode(n); err != nil {
		return big.NewInt(0), err
	}
	res := big.NewInt(0)
	res.SetBit(res, int(e.level(n)), 1)
	memo := make(map[Node]*big.Int)
	return res.Mul(res, e.satcount(n, memo)), nil
}

func (e *Env) satcount(n Node, memo map[Node]*big.Int) *big.Int {
	if n < 2 {
		return big.NewInt(int64(n))
	}
	if res, ok := memo[n]; ok {
		return res
	}
	level := e.level(n)
	low, high := e.Low(n), e.High(n)

	res := big.NewInt(0)
	lscale := big.NewInt(0)
	lscale.SetBit(lscale, int(e.level(low)-level-1), 1)
	res.Add(res, lscale.Mul(lscale, e.satcount(low, memo)))

	hscale := big.NewInt(0)
	hscale.SetBit(hscale, int(e.level(high)-level-1), 1)
	res.Add(res, hscale.Mul(hscale, e.satcount(high, memo)))

	memo[n] = res
	return res
}
