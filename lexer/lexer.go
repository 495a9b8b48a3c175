// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

// Package lexer implements C4: a regex-based tokenizer over the formula DSL
// of §4.4, built on participle's stateful lexer the way
// kanso/grammar/lexer.go assembles its own token grammar, combined with the
// per-class identifier/keyword handling idiom of
// kanso/internal/parser/scanner.go.
package lexer

import (
	"fmt"
	"io"

	participle "github.com/alecthomas/participle/v2/lexer"

	"robdd/bdd"
	"robdd/token"
)

// rawRules is the regex grammar: one alternative per §4.4 surface form.
// Multi-character operators are listed before any prefix they share (e.g.
// "<=>" before "<=") so the stateful lexer's longest-alternative-first match
// picks the right one.
var rawRules = participle.MustStateful(participle.Rules{
	"Root": {
		{"Comment", `"[^"]*"`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
		{"Iff", `<=>`, nil},
		{"Implies", `=>`, nil},
		{"ImpliedBy", `<=`, nil},
		{"CmpGeq", `>=`, nil},
		{"Integer", `[0-9]+`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Punct", `[&|^!=<>(),\[\]#*+-]`, nil},
	},
})

// ruleNames inverts rawRules.Symbols() (name -> rune) once, so Lex can turn
// a scanned token's Type back into the rule name that produced it.
var ruleNames = func() map[rune]string {
	m := make(map[rune]string)
	for name, r := range rawRules.Symbols() {
		m[r] = name
	}
	return m
}()

// Error reports a lex failure: an unrecognized character sequence (§7 "Lex
// error").
type Error struct {
	Pos participle.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: lex error: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// Lex tokenizes the full contents of r, assigning each identifier a
// variable id via syms (§4.1: first encounter of a name assigns the next
// unused id; later occurrences reuse it). The returned slice always ends
// with a single token.EOF.
func Lex(filename string, r io.Reader, syms *bdd.Symbols) ([]token.Token, error) {
	def, err := rawRules.Lex(filename, r)
	if err != nil {
		return nil, &Error{Msg: err.Error()}
	}
	var out []token.Token
	for {
		raw, err := def.Next()
		if err != nil {
			return nil, &Error{Pos: raw.Pos, Msg: err.Error()}
		}
		if raw.EOF() {
			out = append(out, token.Token{Kind: token.EOF, VarID: -1, Pos: pos(raw.Pos)})
			return out, nil
		}
		name := ruleNames[raw.Type]
		if name == "Whitespace" || name == "Comment" {
			continue
		}
		tok, err := classify(name, raw.Value, raw.Pos, syms)
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
	}
}

func pos(p participle.Position) token.Position {
	return token.Position{Line: p.Line, Column: p.Column, Offset: p.Offset}
}

func classify(ruleName, value string, p participle.Position, syms *bdd.Symbols) (token.Token, error) {
	tp := pos(p)
	switch ruleName {
	case "Iff":
		return token.Token{Kind: token.Iff, Value: value, VarID: -1, Pos: tp}, nil
	case "Implies":
		return token.Token{Kind: token.Implies, Value: value, VarID: -1, Pos: tp}, nil
	case "ImpliedBy":
		return token.Token{Kind: token.ImpliedBy, Value: value, VarID: -1, Pos: tp}, nil
	case "CmpGeq":
		return token.Token{Kind: token.CmpGeq, Value: value, VarID: -1, Pos: tp}, nil
	case "Integer":
		return token.Token{Kind: token.Integer, Value: value, VarID: -1, Pos: tp}, nil
	case "Ident":
		if kw, ok := token.Keyword(value); ok {
			return token.Token{Kind: kw, Value: value, VarID: -1, Pos: tp}, nil
		}
		id := syms.Intern(value)
		return token.Token{Kind: token.Ident, Value: value, VarID: id, Pos: tp}, nil
	case "Punct":
		return classifyPunct(value, tp)
	default:
		return token.Token{}, &Error{Pos: p, Msg: fmt.Sprintf("unrecognized token class %q", ruleName)}
	}
}

func classifyPunct(value string, p token.Position) (token.Token, error) {
	kind, ok := map[string]token.Kind{
		"&": token.And,
		"*": token.And,
		"|": token.Or,
		"+": token.Or,
		"^": token.Xor,
		"!": token.Not,
		"-": token.Not,
		"=": token.CmpEq,
		"<": token.CmpLt,
		">": token.CmpGt,
		"(": token.LParen,
		")": token.RParen,
		"[": token.LBracket,
		"]": token.RBracket,
		",": token.Comma,
		"#": token.Hash,
	}[value]
	if !ok {
		return token.Token{}, &Error{Msg: fmt.Sprintf("unrecognized character %q", value)}
	}
	return token.Token{Kind: kind, Value: value, VarID: -1, Pos: p}, nil
}
