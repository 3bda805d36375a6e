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

// Package parser implements a recursive-descent parser, one token of
// lookahead, that turns Cypher query text into an ast.Node tree.
// Grounded on the teacher's sql.Parser buffer-of-one scan/unscan pattern,
// generalized to a single lookahead token field.
package parser

import (
	"fmt"
	"strings"

	"github.com/gogo-agent/cyphergraph/ast"
	"github.com/gogo-agent/cyphergraph/cerr"
	"github.com/gogo-agent/cyphergraph/lexer"
	"github.com/gogo-agent/cyphergraph/token"
)

// Parser holds one token of lookahead over a lexer.Lexer.
type Parser struct {
	lex *lexer.Lexer
	cur token.Token
}

// Parse parses src as a Cypher query. On a syntax error it returns a nil
// *ast.Node and a *cerr.Error of kind cerr.Parse carrying the offending
// token's position: the parser never partially returns, so every path
// that can fail returns before building a partial node.
func Parse(src string) (*ast.Node, error) {
	p := &Parser{lex: lexer.New([]byte(src))}
	p.advance()
	return p.parseQuery()
}

func (p *Parser) advance() {
	p.cur = p.lex.Scan()
}

func (p *Parser) at(k token.Kind) bool { return p.cur.Kind == k }

func (p *Parser) atAny(ks ...token.Kind) bool {
	for _, k := range ks {
		if p.cur.Kind == k {
			return true
		}
	}
	return false
}

// expect consumes the current token if it matches k, else returns a Parse
// error describing what was found and what was expected.
func (p *Parser) expect(k token.Kind) (token.Token, error) {
	if p.cur.Kind == token.ERROR {
		return token.Token{}, cerr.At(cerr.Parse, p.cur.Line, p.cur.Col, "%s", p.cur.Lit)
	}
	if p.cur.Kind != k {
		return token.Token{}, p.unexpected(k)
	}
	tok := p.cur
	p.advance()
	return tok, nil
}

func (p *Parser) unexpected(expected ...token.Kind) error {
	names := make([]string, len(expected))
	for i, k := range expected {
		names[i] = k.String()
	}
	return cerr.At(cerr.Parse, p.cur.Line, p.cur.Col,
		"unexpected %s %q, expected one of [%s]", p.cur.Kind, p.cur.String(), strings.Join(names, ", "))
}

// --------------------------------------------------------------------
// query = singleQuery ("UNION" ["ALL"] singleQuery)*
// --------------------------------------------------------------------

func (p *Parser) parseQuery() (*ast.Node, error) {

	first, err := p.parseSingleQuery()
	if err != nil {
		return nil, err
	}

	q := ast.New(ast.Query, "")
	q.Add(first)

	for p.at(token.UNION) {
		p.advance()
		all := false
		if p.at(token.ALL) {
			p.advance()
			all = true
		}
		sq, err := p.parseSingleQuery()
		if err != nil {
			return nil, err
		}
		val := ""
		if all {
			val = "ALL"
		}
		q.Add(ast.New(ast.Union, val, sq))
	}

	if !p.at(token.EOF) {
		return nil, p.unexpected(token.EOF, token.UNION)
	}

	return q, nil

}

// singleQuery = (readingClause)* updatingClause* [returnClause]
func (p *Parser) parseSingleQuery() (*ast.Node, error) {

	sq := ast.New(ast.SingleQuery, "")

	for {
		switch p.cur.Kind {
		case token.MATCH, token.OPTIONAL:
			n, err := p.parseMatchClause()
			if err != nil {
				return nil, err
			}
			sq.Add(n)
		case token.WITH:
			n, err := p.parseWithClause()
			if err != nil {
				return nil, err
			}
			sq.Add(n)
		case token.UNWIND:
			n, err := p.parseUnwindClause()
			if err != nil {
				return nil, err
			}
			sq.Add(n)
		default:
			goto updating
		}
	}

updating:
	for {
		switch p.cur.Kind {
		case token.CREATE:
			n, err := p.parseCreateClause()
			if err != nil {
				return nil, err
			}
			sq.Add(n)
		case token.MERGE:
			n, err := p.parseMergeClause()
			if err != nil {
				return nil, err
			}
			sq.Add(n)
		case token.SET:
			n, err := p.parseSetClause()
			if err != nil {
				return nil, err
			}
			sq.Add(n)
		case token.REMOVE:
			n, err := p.parseRemoveClause()
			if err != nil {
				return nil, err
			}
			sq.Add(n)
		case token.DETACH, token.DELETE:
			n, err := p.parseDeleteClause()
			if err != nil {
				return nil, err
			}
			sq.Add(n)
		default:
			goto ret
		}
	}

ret:
	if p.at(token.RETURN) {
		n, err := p.parseReturnClause()
		if err != nil {
			return nil, err
		}
		sq.Add(n)
	}

	return sq, nil

}

func (p *Parser) parseWithClause() (*ast.Node, error) {
	p.advance()
	with := ast.New(ast.With, "")
	distinct := false
	if p.at(token.DISTINCT) {
		p.advance()
		distinct = true
	}
	for {
		item, err := p.parseProjectionItem()
		if err != nil {
			return nil, err
		}
		with.Add(item)
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if distinct {
		with.Flags |= ast.FlagDistinct
	}
	return with, nil
}

func (p *Parser) parseUnwindClause() (*ast.Node, error) {
	p.advance()
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.AS); err != nil {
		return nil, err
	}
	id, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	return ast.New(ast.Unwind, id.Lit, expr), nil
}
