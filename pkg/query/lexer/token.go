package lexer

import "fmt"

type TokenKind int

const (
	EOF TokenKind = iota
	Number
	String
	Identifier
	OpenParen
	CloseParen
	Equals
	NotEquals
	Less
	LessEquals
	Greater
	GreaterEquals
	Dot
	And
	Or
	Is
	Not
	Null
)

//nolint:gochecknoglobals
var kindNames = [...]string{
	EOF:           "eof",
	Number:        "number",
	String:        "string",
	Identifier:    "identifier",
	OpenParen:     "open_paren",
	CloseParen:    "close_paren",
	Equals:        "equals",
	NotEquals:     "not_equals",
	Less:          "less",
	LessEquals:    "less_equals",
	Greater:       "greater",
	GreaterEquals: "greater_equals",
	Dot:           "dot",
	And:           "and",
	Or:            "or",
	Is:            "is",
	Not:           "not",
	Null:          "null",
}

// Filter keywords are case insensitive.
//
//nolint:gochecknoglobals
var keywords = map[string]TokenKind{
	"AND":  And,
	"OR":   Or,
	"IS":   Is,
	"NOT":  Not,
	"NULL": Null,
}

func (kind TokenKind) String() string {
	if kind < 0 || int(kind) >= len(kindNames) {
		return fmt.Sprintf("unknown(%d)", int(kind))
	}

	return kindNames[kind]
}

// Token is a lexeme of a search filter. String values keep their quotes so
// the parser can tell backticked keys from quoted values.
type Token struct {
	Kind  TokenKind
	Value string
	Pos   int
}

// IsKeyword reports whether the token is a reserved word. Keywords are still
// allowed as keys after a dot, as in params.null.
func (token Token) IsKeyword() bool {
	switch token.Kind {
	case And, Or, Is, Not, Null:
		return true
	default:
		return false
	}
}

func (token Token) Debug() string {
	switch token.Kind {
	case Identifier, Number, String:
		return fmt.Sprintf("%s(%s)", token.Kind, token.Value)
	default:
		return token.Kind.String()
	}
}
