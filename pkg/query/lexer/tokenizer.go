package lexer

import (
	"fmt"
	"regexp"
	"strings"
)

// Error reports input that no rule matches.
type Error struct {
	Pos       int
	Remainder string
}

func (e *Error) Error() string {
	return fmt.Sprintf("unrecognized token near '%v'", e.Remainder)
}

type rule struct {
	kind    TokenKind
	pattern *regexp.Regexp
	skip    bool
}

// Rules are tried in order, so two character operators come before their
// one character prefixes.
//
//nolint:gochecknoglobals
var rules = []rule{
	{pattern: regexp.MustCompile(`^\s+`), skip: true},
	{kind: String, pattern: regexp.MustCompile(`^"[^"]*"`)},
	{kind: String, pattern: regexp.MustCompile(`^'[^']*'`)},
	{kind: String, pattern: regexp.MustCompile("^`[^`]*`")},
	{kind: Number, pattern: regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?([eE][-+]?[0-9]+)?`)},
	{kind: Identifier, pattern: regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*`)},
	{kind: OpenParen, pattern: regexp.MustCompile(`^\(`)},
	{kind: CloseParen, pattern: regexp.MustCompile(`^\)`)},
	{kind: NotEquals, pattern: regexp.MustCompile(`^!=`)},
	{kind: Equals, pattern: regexp.MustCompile(`^=`)},
	{kind: LessEquals, pattern: regexp.MustCompile(`^<=`)},
	{kind: Less, pattern: regexp.MustCompile(`^<`)},
	{kind: GreaterEquals, pattern: regexp.MustCompile(`^>=`)},
	{kind: Greater, pattern: regexp.MustCompile(`^>`)},
	{kind: Dot, pattern: regexp.MustCompile(`^\.`)},
}

// Tokenize splits a search filter into tokens terminated by an EOF token.
func Tokenize(source string) ([]Token, error) {
	tokens := make([]Token, 0)
	pos := 0

	for pos < len(source) {
		remainder := source[pos:]

		token, length, ok := match(remainder)
		if !ok {
			return tokens, &Error{Pos: pos, Remainder: remainder}
		}

		if token != nil {
			token.Pos = pos
			tokens = append(tokens, *token)
		}

		pos += length
	}

	return append(tokens, Token{Kind: EOF, Value: "EOF", Pos: pos}), nil
}

// match returns the token at the start of remainder and its length. Skipped
// input yields a nil token.
func match(remainder string) (*Token, int, bool) {
	for _, rule := range rules {
		lexeme := rule.pattern.FindString(remainder)
		if lexeme == "" {
			continue
		}

		if rule.skip {
			return nil, len(lexeme), true
		}

		kind := rule.kind
		if kind == Identifier {
			if keyword, found := keywords[strings.ToUpper(lexeme)]; found {
				kind = keyword
			}
		}

		return &Token{Kind: kind, Value: lexeme}, len(lexeme), true
	}

	return nil, 0, false
}
