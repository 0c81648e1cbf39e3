// Copyright 2026 Phillip Cloud
// Licensed under the Apache License, Version 2.0

package editmode

import (
	"github.com/alecthomas/chroma/v2"
)

// formulaLexer is a small custom chroma lexer for the formula buffer:
// cell references, range colons, operators, numbers, quoted strings, and
// function names. It exists purely for the formula bar's syntax
// highlighting; there is no formula evaluator here, this is presentation
// only.
var formulaLexer = chroma.MustNewLexer(
	&chroma.Config{
		Name:      "Formula",
		Filenames: []string{},
		MimeTypes: []string{},
	},
	chroma.Rules{
		"root": {
			{Pattern: `\s+`, Type: chroma.Text},
			{Pattern: `"[^"]*"?`, Type: chroma.LiteralString},
			{Pattern: `[A-Z]+[0-9]+`, Type: chroma.NameVariable},
			{Pattern: `[-+*/^&=<>]`, Type: chroma.Operator},
			{Pattern: `[(),:]`, Type: chroma.Punctuation},
			{Pattern: `[0-9]+(\.[0-9]+)?`, Type: chroma.LiteralNumber},
			{Pattern: `[A-Za-z_][A-Za-z0-9_]*`, Type: chroma.NameFunction},
		},
	},
)

// FormulaToken is one highlighted span of the formula buffer.
type FormulaToken struct {
	Text string
	Type string
}

// Tokens lexes the current buffer for syntax highlighting. It returns
// nil when the buffer isn't formula source (IsFormula() == false); a
// trailing unterminated quote still lexes, since the lexer's
// `"[^"]*"?` pattern accepts it as the in-progress string token a user
// sees while still typing.
func (m *Manager) Tokens() []FormulaToken {
	if !m.IsFormula() {
		return nil
	}
	it, err := formulaLexer.Tokenise(nil, m.Buffer())
	if err != nil {
		return nil
	}
	var out []FormulaToken
	for _, tok := range it.Tokens() {
		if tok.Value == "" {
			continue
		}
		out = append(out, FormulaToken{Text: tok.Value, Type: tok.Type.String()})
	}
	return out
}
