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

// matchClause = ["OPTIONAL"] "MATCH" pattern ["WHERE" expr]
func (p *Parser) parseMatchClause() (*ast.Node, error) {

	optional := false
	if p.at(token.OPTIONAL) {
		p.advance()
		optional = true
	}
	if _, err := p.expect(token.MATCH); err != nil {
		return nil, err
	}

	pat, err := p.parsePattern()
	if err != nil {
		return nil, err
	}

	kind := ast.Match
	if optional {
		kind = ast.OptionalMatch
	}
	m := ast.New(kind, "", pat)

	if p.at(token.WHERE) {
		p.advance()
		expr, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		m.Add(ast.New(ast.Where, "", expr))
	}

	return m, nil

}

// pattern = patternPart ("," patternPart)*
func (p *Parser) parsePattern() (*ast.Node, error) {

	pat := ast.New(ast.Pattern, "")

	for {
		part, err := p.parsePatternPart()
		if err != nil {
			return nil, err
		}
		pat.Add(part)
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}

	return pat, nil

}

// patternPart = nodePattern (relPattern nodePattern)*
func (p *Parser) parsePatternPart() (*ast.Node, error) {

	path := ast.New(ast.Path, "")

	first, err := p.parseNodePattern()
	if err != nil {
		return nil, err
	}
	path.Add(first)

	for p.atAny(token.SUB, token.ARROWL, token.ARROWR, token.ARROWB) {
		rel, err := p.parseRelPattern()
		if err != nil {
			return nil, err
		}
		path.Add(rel)
		node, err := p.parseNodePattern()
		if err != nil {
			return nil, err
		}
		path.Add(node)
	}

	return path, nil

}

// nodePattern = "(" [ident] [":" label ("|" label)*] [mapLiteral] ")"
func (p *Parser) parseNodePattern() (*ast.Node, error) {

	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	alias := ""
	if p.at(token.IDENT) {
		alias = p.cur.Lit
		p.advance()
	}

	n := ast.New(ast.NodePattern, alias)

	if p.at(token.COLON) {
		labels, err := p.parseLabelList()
		if err != nil {
			return nil, err
		}
		n.Add(labels)
	}

	if p.at(token.LBRACE) {
		m, err := p.parseMapLiteral()
		if err != nil {
			return nil, err
		}
		n.Add(m)
	}

	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	return n, nil

}

// labels = ":" label ("|" label)*
func (p *Parser) parseLabelList() (*ast.Node, error) {
	labels := ast.New(ast.Labels, "")
	for p.at(token.COLON) {
		p.advance()
		id, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		labels.Add(ast.New(ast.Identifier, id.Lit))
		if p.at(token.PIPE) {
			continue
		}
		break
	}
	// allow "|" separated labels after the first ":label"
	for p.at(token.PIPE) {
		p.advance()
		id, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		labels.Add(ast.New(ast.Identifier, id.Lit))
	}
	return labels, nil
}

// relPattern = ("-"|"<-") "[" [ident] [":" type ("|" type)*] [varLength] [mapLiteral] "]" ("-"|"->")
func (p *Parser) parseRelPattern() (*ast.Node, error) {

	var dirFlag ast.Flag

	switch p.cur.Kind {
	case token.ARROWL:
		dirFlag = ast.FlagDirIn
		p.advance()
	case token.ARROWB:
		dirFlag = ast.FlagDirBoth
		p.advance()
	case token.SUB:
		p.advance()
	default:
		return nil, p.unexpected(token.SUB, token.ARROWL, token.ARROWB)
	}

	if _, err := p.expect(token.LBRACK); err != nil {
		return nil, err
	}

	alias := ""
	if p.at(token.IDENT) {
		alias = p.cur.Lit
		p.advance()
	}

	rel := ast.New(ast.RelPattern, alias)

	if p.at(token.COLON) {
		types, err := p.parseLabelList()
		if err != nil {
			return nil, err
		}
		rel.Add(types)
	} else {
		rel.Add(ast.New(ast.Labels, ""))
	}

	if p.at(token.MUL) {
		vl, err := p.parseVarLength()
		if err != nil {
			return nil, err
		}
		rel.Add(vl)
	}

	if p.at(token.LBRACE) {
		m, err := p.parseMapLiteral()
		if err != nil {
			return nil, err
		}
		rel.Add(m)
	}

	if _, err := p.expect(token.RBRACK); err != nil {
		return nil, err
	}

	switch p.cur.Kind {
	case token.ARROWR:
		if dirFlag == ast.FlagDirIn {
			dirFlag = ast.FlagDirBoth
		} else if dirFlag != ast.FlagDirBoth {
			dirFlag = ast.FlagDirOut
		}
		p.advance()
	case token.SUB:
		if dirFlag == 0 {
			dirFlag = ast.FlagDirBoth
		}
		p.advance()
	default:
		return nil, p.unexpected(token.SUB, token.ARROWR)
	}

	rel.Flags |= dirFlag

	return rel, nil

}

// varLength = "*" [int] [".." [int]]
func (p *Parser) parseVarLength() (*ast.Node, error) {
	p.advance() // consume '*'
	min, max := "", ""
	if p.at(token.INTEGER) {
		min = p.cur.Lit
		p.advance()
	}
	if p.at(token.DOT) {
		p.advance()
		if _, err := p.expect(token.DOT); err != nil {
			return nil, err
		}
		if p.at(token.INTEGER) {
			max = p.cur.Lit
			p.advance()
		}
	} else if min != "" {
		max = min
	}
	return ast.New(ast.Path, min+".."+max), nil
}

// mapLiteral = "{" [ident ":" expr ("," ident ":" expr)*] "}"
func (p *Parser) parseMapLiteral() (*ast.Node, error) {

	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}

	m := ast.New(ast.Map, "")

	if p.at(token.RBRACE) {
		p.advance()
		return m, nil
	}

	for {
		key, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		m.Add(ast.New(ast.PropertyPair, key.Lit, val))
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}

	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}

	return m, nil

}

// listLiteral = "[" [expr ("," expr)*] "]"
func (p *Parser) parseListLiteral() (*ast.Node, error) {

	if _, err := p.expect(token.LBRACK); err != nil {
		return nil, err
	}

	list := ast.New(ast.List, "")

	if p.at(token.RBRACK) {
		p.advance()
		return list, nil
	}

	for {
		item, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		list.Add(item)
		if p.at(token.COMMA) {
			p.advance()
			continue
		}
		break
	}

	if _, err := p.expect(token.RBRACK); err != nil {
		return nil, err
	}

	return list, nil

}
