package evalctx

import (
	"fmt"

	"github.com/oxhq/vmatch/internal/value"
)

// expr is the minimal AST for BasicEvaluator. Each node knows how to
// evaluate itself against an environment snapshot.
type expr interface {
	eval(env map[string]value.Value) (value.Value, error)
}

type parser struct {
	lex *lexer
	cur token
	err error
}

func newParser(s string) *parser {
	p := &parser{lex: newLexer(s)}
	p.advance()
	return p
}

func (p *parser) advance() {
	tok, err := p.lex.next()
	if err != nil {
		p.cur = token{kind: tokEOF}
		p.err = err
		return
	}
	p.cur = tok
}

func (p *parser) atEnd() bool { return p.cur.kind == tokEOF }

func (p *parser) parseExpr() (expr, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.parseOr()
}

func (p *parser) parseOr() (expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokOp && p.cur.text == "||" {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &binExpr{op: "||", l: left, r: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (expr, error) {
	left, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokOp && p.cur.text == "&&" {
		p.advance()
		right, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		left = &binExpr{op: "&&", l: left, r: right}
	}
	return left, nil
}

func (p *parser) parseEquality() (expr, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokOp && (p.cur.text == "==" || p.cur.text == "!=") {
		op := p.cur.text
		p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &binExpr{op: op, l: left, r: right}
	}
	return left, nil
}

func (p *parser) parseComparison() (expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokOp && (p.cur.text == "<" || p.cur.text == "<=" || p.cur.text == ">" || p.cur.text == ">=") {
		op := p.cur.text
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &binExpr{op: op, l: left, r: right}
	}
	return left, nil
}

func (p *parser) parseAdditive() (expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokOp && (p.cur.text == "+" || p.cur.text == "-") {
		op := p.cur.text
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &binExpr{op: op, l: left, r: right}
	}
	return left, nil
}

func (p *parser) parseMultiplicative() (expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur.kind == tokOp && (p.cur.text == "*" || p.cur.text == "/") {
		op := p.cur.text
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &binExpr{op: op, l: left, r: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (expr, error) {
	if p.cur.kind == tokOp && (p.cur.text == "!" || p.cur.text == "-") {
		op := p.cur.text
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &unaryExpr{op: op, operand: operand}, nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (expr, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur.kind {
		case tokDot:
			p.advance()
			if p.cur.kind != tokIdent {
				return nil, fmt.Errorf("expected identifier after '.'")
			}
			name := p.cur.text
			p.advance()
			if p.cur.kind == tokLParen {
				args, err := p.parseArgs()
				if err != nil {
					return nil, err
				}
				e = &callExpr{name: name, args: args}
			} else {
				e = &memberExpr{target: e, name: name}
			}
		case tokLBracket:
			p.advance()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if p.cur.kind != tokRBracket {
				return nil, fmt.Errorf("expected ']'")
			}
			p.advance()
			e = &indexExpr{target: e, index: idx}
		default:
			return e, nil
		}
	}
}

func (p *parser) parseArgs() ([]expr, error) {
	p.advance() // consume '('
	var args []expr
	if p.cur.kind == tokRParen {
		p.advance()
		return args, nil
	}
	for {
		a, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if p.cur.kind == tokComma {
			p.advance()
			continue
		}
		break
	}
	if p.cur.kind != tokRParen {
		return nil, fmt.Errorf("expected ')'")
	}
	p.advance()
	return args, nil
}

func (p *parser) parsePrimary() (expr, error) {
	switch p.cur.kind {
	case tokNumber:
		text := p.cur.text
		p.advance()
		return &numberExpr{text: text}, nil
	case tokString:
		text := p.cur.text
		p.advance()
		return &literalExpr{v: value.Of(text)}, nil
	case tokLParen:
		p.advance()
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.cur.kind != tokRParen {
			return nil, fmt.Errorf("expected ')'")
		}
		p.advance()
		return e, nil
	case tokIdent:
		name := p.cur.text
		p.advance()
		switch name {
		case "true":
			return &literalExpr{v: value.Of(true)}, nil
		case "false":
			return &literalExpr{v: value.Of(false)}, nil
		case "null":
			return &literalExpr{v: value.NullValue()}, nil
		}
		if p.cur.kind == tokLParen {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			return &callExpr{name: name, args: args}, nil
		}
		return &identExpr{name: name}, nil
	}
	return nil, fmt.Errorf("unexpected token while parsing expression")
}
