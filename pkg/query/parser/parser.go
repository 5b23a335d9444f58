package parser

import (
	"fmt"
	"strconv"

	"github.com/facultyai/mlflow-faculty/pkg/query/lexer"
)

type parser struct {
	tokens []lexer.Token
	pos    int
}

func newParser(tokens []lexer.Token) *parser {
	return &parser{
		tokens: tokens,
		pos:    0,
	}
}

func (p *parser) currentTokenKind() lexer.TokenKind {
	return p.tokens[p.pos].Kind
}

func (p *parser) hasTokens() bool {
	return p.pos < len(p.tokens) && p.currentTokenKind() != lexer.EOF
}

func (p *parser) printCurrentToken() string {
	token := p.tokens[p.pos]

	return fmt.Sprintf("%s at position %d", token.Debug(), token.Pos)
}

func (p *parser) currentToken() lexer.Token {
	return p.tokens[p.pos]
}

func (p *parser) advance() lexer.Token {
	tk := p.currentToken()
	if p.hasTokens() {
		p.pos++
	}

	return tk
}

type Error struct {
	message string
}

func NewParserError(format string, a ...any) *Error {
	return &Error{message: fmt.Sprintf(format, a...)}
}

func (e *Error) Error() string {
	return e.message
}

func unquote(literal string) string {
	return literal[1 : len(literal)-1]
}

func (p *parser) parseIdentifier() (Identifier, error) {
	if p.currentTokenKind() != lexer.Identifier {
		return Identifier{}, NewParserError(
			"expected identifier, got %s",
			p.printCurrentToken(),
		)
	}

	identToken := p.advance()

	if p.currentTokenKind() != lexer.Dot {
		return Identifier{Key: identToken.Value}, nil
	}

	p.advance() // Consume the DOT

	switch token := p.currentToken(); {
	case token.Kind == lexer.Identifier || token.IsKeyword():
		return Identifier{Identifier: identToken.Value, Key: p.advance().Value}, nil
	case token.Kind == lexer.String:
		return Identifier{Identifier: identToken.Value, Key: unquote(p.advance().Value)}, nil
	default:
		return Identifier{}, NewParserError(
			"expected IDENTIFIER or STRING, got %s",
			p.printCurrentToken(),
		)
	}
}

func (p *parser) parseOperator() (OperatorKind, error) {
	token := p.advance()

	switch token.Kind {
	case lexer.Equals:
		return Equals, nil
	case lexer.NotEquals:
		return NotEquals, nil
	case lexer.Less:
		return Less, nil
	case lexer.LessEquals:
		return LessEquals, nil
	case lexer.Greater:
		return Greater, nil
	case lexer.GreaterEquals:
		return GreaterEquals, nil
	default:
		return -1, NewParserError("'%s' is not a valid operator", token.Value)
	}
}

// IS NULL / IS NOT NULL, after the IS has been consumed.
func (p *parser) parseNullCheck() (OperatorKind, error) {
	operator := IsNull

	if p.currentTokenKind() == lexer.Not {
		p.advance() // Consume the NOT

		operator = IsNotNull
	}

	if p.currentTokenKind() != lexer.Null {
		return -1, NewParserError(
			"expected NULL or NOT NULL, got %s",
			p.printCurrentToken(),
		)
	}

	p.advance() // Consume the NULL

	return operator, nil
}

func (p *parser) parseValue() (Value, error) {
	switch p.currentTokenKind() {
	case lexer.Number:
		n, err := strconv.ParseFloat(p.advance().Value, 64)
		if err != nil {
			return nil, fmt.Errorf("number token could not be parsed to float: %w", err)
		}

		return NumberExpr{Value: n}, nil
	case lexer.String:
		if p.currentToken().Value[0] == '`' {
			return nil, NewParserError(
				"expected a quoted string (e.g. 'my-value'), got %s",
				p.printCurrentToken(),
			)
		}

		return StringExpr{Value: unquote(p.advance().Value)}, nil
	default:
		return nil, NewParserError(
			"Expected NUMBER or STRING, got %s",
			p.printCurrentToken(),
		)
	}
}

func (p *parser) parseComparison() (*CompareExpr, error) {
	ident, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	if p.currentTokenKind() == lexer.Is {
		p.advance() // Consume the IS

		operator, err := p.parseNullCheck()
		if err != nil {
			return nil, err
		}

		return &CompareExpr{Left: ident, Operator: operator}, nil
	}

	operator, err := p.parseOperator()
	if err != nil {
		return nil, err
	}

	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	return &CompareExpr{Left: ident, Operator: operator, Right: value}, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	if p.currentTokenKind() != lexer.OpenParen {
		return p.parseComparison()
	}

	p.advance() // Consume the OPEN_PAREN

	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}

	if p.currentTokenKind() != lexer.CloseParen {
		return nil, NewParserError(
			"expected ')', got %s",
			p.printCurrentToken(),
		)
	}

	p.advance() // Consume the CLOSE_PAREN

	return expr, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	if p.currentTokenKind() != lexer.And {
		return left, nil
	}

	exprs := []Expr{left}

	for p.currentTokenKind() == lexer.And {
		p.advance() // Consume the AND

		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}

		exprs = append(exprs, right)
	}

	return &AndExpr{Exprs: exprs}, nil
}

// AND binds tighter than OR.
func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	if p.currentTokenKind() != lexer.Or {
		return left, nil
	}

	exprs := []Expr{left}

	for p.currentTokenKind() == lexer.Or {
		p.advance() // Consume the OR

		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}

		exprs = append(exprs, right)
	}

	return &OrExpr{Exprs: exprs}, nil
}

func (p *parser) parse() (Expr, error) {
	expr, err := p.parseOr()
	if err != nil {
		return nil, fmt.Errorf("error while parsing expression: %w", err)
	}

	if p.hasTokens() {
		return nil, NewParserError(
			"unexpected leftover token(s) after parsing: %s",
			p.printCurrentToken(),
		)
	}

	return expr, nil
}

func Parse(tokens []lexer.Token) (Expr, error) {
	if len(tokens) == 0 {
		return nil, NewParserError("no tokens to parse")
	}

	parser := newParser(tokens)

	return parser.parse()
}
