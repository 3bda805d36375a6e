// Copyright © 2016 Abcum Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package parser

import (
	"github.com/gogo-agent/cyphergraph/ast"
	"github.com/gogo-agent/cyphergraph/token"
)

// expr = orExpr
// Precedence (low to high): OR; XOR; AND; NOT; comparison; additive;
// multiplicative; power (right-assoc); unary; property access; atoms.
func (p *Parser) parseExpr() (*ast.Node, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (*ast.Node, error) {
	left, err := p.parseXor()
	if err != nil {
		return nil, err
	}
	for p.at(token.OR) {
		p.advance()
		right, err := p.parseXor()
		if err != nil {
			return nil, err
		}
		left = ast.New(ast.Or, "OR", left, right)
	}
	return left, nil
}

func (p *Parser) parseXor() (*ast.Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.at(token.XOR) {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = ast.New(ast.Xor, "XOR", left, right)
	}
	return left, nil
}

func (p *Parser) parseAnd() (*ast.Node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.at(token.AND) {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = ast.New(ast.And, "AND", left, right)
	}
	return left, nil
}

func (p *Parser) parseNot() (*ast.Node, error) {
	if p.at(token.NOT) {
		p.advance()
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return ast.New(ast.Not, "NOT", operand), nil
	}
	return p.parseComparison()
}

// comparison = additive ( ( "=" | "<>" | "<" | "<=" | ">" | ">=" | "IS NULL"
//              | "IS NOT NULL" | "STARTS WITH" | "ENDS WITH" | "CONTAINS"
//              | "IN" | "=~" ) additive )?
func (p *Parser) parseComparison() (*ast.Node, error) {

	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	switch p.cur.Kind {

	case token.EQ, token.NEQ, token.LT, token.LTE, token.GT, token.GTE, token.REGEX:
		op := p.cur.Kind.String()
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return ast.New(ast.Comparison, op, left, right), nil

	case token.IN:
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return ast.New(ast.Comparison, "IN", left, right), nil

	case token.CONTAINS:
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return ast.New(ast.Comparison, "CONTAINS", left, right), nil

	case token.STARTS:
		p.advance()
		if _, err := p.expect(token.WITH); err != nil {
			return nil, err
		}
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return ast.New(ast.Comparison, "STARTS WITH", left, right), nil

	case token.ENDS:
		p.advance()
		if _, err := p.expect(token.WITH); err != nil {
			return nil, err
		}
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return ast.New(ast.Comparison, "ENDS WITH", left, right), nil

	case token.IS:
		p.advance()
		neg := false
		if p.at(token.NOT) {
			p.advance()
			neg = true
		}
		if _, err := p.expect(token.NULLTOK); err != nil {
			return nil, err
		}
		op := "IS NULL"
		if neg {
			op = "IS NOT NULL"
		}
		return ast.New(ast.Comparison, op, left), nil

	}

	return left, nil

}

func (p *Parser) parseAdditive() (*ast.Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.atAny(token.ADD, token.SUB) {
		op := p.cur.Kind.String()
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = ast.New(ast.Additive, op, left, right)
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (*ast.Node, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for p.atAny(token.MUL, token.DIV, token.MOD) {
		op := p.cur.Kind.String()
		p.advance()
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		left = ast.New(ast.Multiplicative, op, left, right)
	}
	return left, nil
}

// power = unary ("^" power)?   -- right-associative
func (p *Parser) parsePower() (*ast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if p.at(token.POW) {
		p.advance()
		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		return ast.New(ast.BinaryOp, "^", left, right), nil
	}
	return left, nil
}

func (p *Parser) parseUnary() (*ast.Node, error) {
	switch p.cur.Kind {
	case token.ADD, token.SUB:
		op := p.cur.Kind.String()
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.New(ast.UnaryOp, op, operand), nil
	}
	return p.parsePropertyAccess()
}

func (p *Parser) parsePropertyAccess() (*ast.Node, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for p.at(token.DOT) {
		p.advance()
		id, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		left = ast.New(ast.Property, id.Lit, left)
	}
	return left, nil
}

// atom = identifier | literal | functionCall | listLiteral | mapLiteral
//      | "(" expr ")" | caseExpr | param
func (p *Parser) parseAtom() (*ast.Node, error) {

	switch p.cur.Kind {

	case token.INTEGER:
		lit := p.cur.Lit
		p.advance()
		return &ast.Node{Kind: ast.Literal, Val: lit, Flags: ast.FlagLitInt}, nil

	case token.FLOAT:
		lit := p.cur.Lit
		p.advance()
		return &ast.Node{Kind: ast.Literal, Val: lit, Flags: ast.FlagLitFloat}, nil

	case token.STRING:
		lit := p.cur.Lit
		p.advance()
		return &ast.Node{Kind: ast.Literal, Val: unescape(lit), Flags: ast.FlagLitString}, nil

	case token.TRUE:
		p.advance()
		return &ast.Node{Kind: ast.Literal, Val: "true", Flags: ast.FlagLitBool}, nil

	case token.FALSE:
		p.advance()
		return &ast.Node{Kind: ast.Literal, Val: "false", Flags: ast.FlagLitBool}, nil

	case token.NULLTOK:
		p.advance()
		return &ast.Node{Kind: ast.Literal, Val: "null", Flags: ast.FlagLitNull}, nil

	case token.PARAM:
		lit := p.cur.Lit
		p.advance()
		return &ast.Node{Kind: ast.Param, Val: lit}, nil

	case token.LBRACK:
		return p.parseListLiteral()

	case token.LBRACE:
		return p.parseMapLiteral()

	case token.LPAREN:
		p.advance()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil

	case token.CASE:
		return p.parseCase()

	case token.IDENT:
		name := p.cur.Lit
		p.advance()
		if p.at(token.LPAREN) {
			return p.parseFunctionCall(name)
		}
		return ast.New(ast.Identifier, name), nil

	}

	return nil, p.unexpected(token.IDENT, token.INTEGER, token.STRING, token.LPAREN)

}

func (p *Parser) parseFunctionCall(name string) (*ast.Node, error) {

	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	fn := ast.New(ast.FunctionCall, name)

	if p.at(token.DISTINCT) {
		p.advance()
		fn.Flags |= ast.FlagDistinct
	}

	if p.at(token.RPAREN) {
		p.advance()
		return fn, nil
	}

	for {
		if p.at(token.MUL) {
			p.advance()
			fn.Add(ast.New(ast.Identifier, "*"))
		} else {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			fn.Add(arg)
		}
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}

	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	return fn, nil

}

// caseExpr = "CASE" [expr] ("WHEN" expr "THEN" expr)+ ["ELSE" expr] "END"
func (p *Parser) parseCase() (*ast.Node, error) {

	p.advance() // CASE

	c := ast.New(ast.Case, "")

	if !p.at(token.WHEN) {
		subject, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		c.Add(subject)
	} else {
		c.Add(nil)
	}

	for p.at(token.WHEN) {
		p.advance()
		when, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.THEN); err != nil {
			return nil, err
		}
		then, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		c.Add(ast.New(ast.CaseAlt, "", when, then))
	}

	if p.at(token.ELSE) {
		p.advance()
		els, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		c.Add(ast.New(ast.CaseAlt, "else", els))
	}

	if _, err := p.expect(token.END); err != nil {
		return nil, err
	}

	return c, nil

}

// unescape turns a backslash-escaped string literal's raw source text into
// its interpreted form. The lexer preserves escapes verbatim; the parser
// is responsible for interpreting them.
func unescape(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			out = append(out, s[i])
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}
