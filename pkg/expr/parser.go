package expr

import (
	"fmt"
	"strconv"

	"github.com/codeready-toolchain/governed-agent/internal/value"
)

// Parser implements a recursive-descent grammar:
//
//	expr      = orExpr
//	orExpr    = andExpr ( "||" andExpr )*
//	andExpr   = notExpr ( "&&" notExpr )*
//	notExpr   = "!" notExpr | cmpExpr
//	cmpExpr   = primary ( cmpOp primary )?
//	primary   = "(" expr ")" | number | string | bool | null | identifier
type Parser struct {
	lex  *Lexer
	cur  Token
	peek Token
}

// NewParser creates a parser for the given expression source.
func NewParser(input string) (*Parser, error) {
	p := &Parser{lex: NewLexer(input)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Parser) advance() error {
	p.cur = p.peek
	tok, err := p.lex.NextToken()
	if err != nil {
		return err
	}
	p.peek = tok
	return nil
}

// parseExpr parses a complete expression and checks that the entire input
// was consumed.
func (p *Parser) parseExpr() (node, error) {
	n, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != TokEOF {
		return nil, fmt.Errorf("expr: unexpected token %s after expression", p.cur)
	}
	return n, nil
}

func (p *Parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == TokOr {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &orNode{left: left, right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == TokAnd {
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &andNode{left: left, right: right}
	}
	return left, nil
}

func (p *Parser) parseNot() (node, error) {
	if p.cur.Type == TokNot {
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &notNode{operand: operand}, nil
	}
	return p.parseCmp()
}

func (p *Parser) parseCmp() (node, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	op, ok := cmpOpFor(p.cur.Type)
	if !ok {
		return left, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	right, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	return &cmpNode{op: op, left: left, right: right}, nil
}

func cmpOpFor(t TokenType) (cmpOp, bool) {
	switch t {
	case TokGT:
		return cmpGT, true
	case TokGE:
		return cmpGE, true
	case TokLT:
		return cmpLT, true
	case TokLE:
		return cmpLE, true
	case TokEqStrict:
		return cmpEqStrict, true
	case TokEq:
		return cmpEq, true
	case TokNeStrict:
		return cmpNeStrict, true
	case TokNe:
		return cmpNe, true
	default:
		return 0, false
	}
}

func (p *Parser) parsePrimary() (node, error) {
	switch p.cur.Type {
	case TokLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.cur.Type != TokRParen {
			return nil, fmt.Errorf("expr: expected ')' at %d, got %s", p.cur.Position, p.cur)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return inner, nil
	case TokNumber:
		n, err := strconv.ParseFloat(p.cur.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("expr: invalid number literal %q at %d", p.cur.Value, p.cur.Position)
		}
		lit := &literalNode{v: value.Number(n)}
		return lit, p.advance()
	case TokString:
		lit := &literalNode{v: value.String(p.cur.Value)}
		return lit, p.advance()
	case TokTrue:
		lit := &literalNode{v: value.Bool(true)}
		return lit, p.advance()
	case TokFalse:
		lit := &literalNode{v: value.Bool(false)}
		return lit, p.advance()
	case TokNull:
		lit := &literalNode{v: value.Null}
		return lit, p.advance()
	case TokIdent:
		path := p.cur.Value
		if err := p.advance(); err != nil {
			return nil, err
		}
		for p.cur.Type == TokDot {
			if err := p.advance(); err != nil {
				return nil, err
			}
			if p.cur.Type != TokIdent {
				return nil, fmt.Errorf("expr: expected identifier after '.' at %d, got %s", p.cur.Position, p.cur)
			}
			path += "." + p.cur.Value
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
		return &identNode{path: path}, nil
	default:
		return nil, fmt.Errorf("expr: unexpected token %s at %d", p.cur, p.cur.Position)
	}
}
