// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package bdd

// maxVar bounds the number of declared variables (and hence levels) in a
// single Env. 2^21 - 1 matches the teacher's own limit, chosen to keep level
// values comfortably inside an int32 once packed alongside cache bookkeeping.
const maxVar int32 = 0x1FFFFF
